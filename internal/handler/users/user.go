package users

import (
	"errors"
	"net/http"
	"net/mail"
	"strconv"
	"strings"

	"moviehub/internal/api"
	"moviehub/internal/database"
	"moviehub/internal/model"
	"moviehub/internal/service"
	"moviehub/internal/storage"
	"moviehub/internal/store"
	"moviehub/internal/worker"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

var (
	hashPassword = service.HashPassword
	getUserByID  = store.GetUserByID
	listUsers    = store.ListUsers
	searchUsers  = store.SearchUsers
	updateUser   = store.UpdateUser
	deleteUser   = store.DeleteUser
)

// releaseFile 在背景移除已不再被引用的檔案，預設頭像不刪
func releaseFile(wp worker.Pool, files storage.Storage, name string) {
	if name == "" || name == model.DefaultAvatar {
		return
	}
	wp.Submit(func() {
		_ = files.Delete(name)
	})
}

// @Summary     List users
// @Description 回傳全部使用者清單
// @Tags        users
// @Produce     json
// @Success     200 {array}  api.UserResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users [get]
func ListUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := listUsers(c.Request().Context(), db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		resp := make([]api.UserResponse, 0, len(users))
		for _, u := range users {
			resp = append(resp, api.NewUserResponse(u))
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// @Summary     Search users by name
// @Description 以姓名模糊搜尋使用者，支援分頁 (page 預設 1，limit 預設 10)
// @Tags        users
// @Produce     json
// @Param       query query    string false "姓名關鍵字"
// @Param       page  query    int    false "頁碼"
// @Param       limit query    int    false "每頁筆數"
// @Success     200   {array}  api.UserResponse
// @Failure     500   {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/search [get]
func SearchUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		query := c.QueryParam("query")
		page, err := strconv.Atoi(c.QueryParam("page"))
		if err != nil || page < 1 {
			page = 1
		}
		limit, err := strconv.Atoi(c.QueryParam("limit"))
		if err != nil || limit < 1 {
			limit = 10
		}
		users, err := searchUsers(c.Request().Context(), db, query, page, limit)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		resp := make([]api.UserResponse, 0, len(users))
		for _, u := range users {
			resp = append(resp, api.NewUserResponse(u))
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// @Summary     Get a user by ID
// @Description 透過 ID 查詢並回傳使用者詳細資料
// @Tags        users
// @Produce     json
// @Param       user_id path     int true "使用者 ID"
// @Success     200     {object} api.UserResponse
// @Failure     400     {object} api.ErrorResponse
// @Failure     404     {object} api.ErrorResponse
// @Failure     500     {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/{user_id} [get]
func GetUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}
		user, err := getUserByID(c.Request().Context(), db, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, api.NewUserResponse(*user))
	}
}

// @Summary     Update a user by ID
// @Description 全量更新使用者資料，密碼重新哈希；更新頭像時舊檔在背景移除
// @Tags        users
// @Accept      multipart/form-data
// @Produce     json
// @Param       user_id  path     int    true  "使用者 ID"
// @Param       name     formData string true  "使用者姓名"
// @Param       email    formData string true  "使用者 Email (lowercase)"
// @Param       password formData string true  "使用者密碼"
// @Param       role     formData string true  "角色 (USER 或 ADMIN)"
// @Param       avatar   formData file   false "頭像檔案"
// @Success     200      {object} api.UserResponse
// @Failure     400      {object} api.ErrorResponse
// @Failure     404      {object} api.ErrorResponse
// @Failure     422      {object} api.ValidationErrorResponse
// @Failure     500      {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/{user_id} [put]
func UpdateUserHandler(db database.DB, files storage.Storage, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		id, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}

		var req api.UpdateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid form data"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.NewValidationErrors(err))
		}

		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.ValidationErrorResponse{
				Errors: []api.FieldError{{Field: "email", Message: "must be a valid email address"}},
			})
		}

		user, err := getUserByID(ctx, db, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to hash password"})
		}

		avatar := user.Avatar
		if fh, err := c.FormFile("avatar"); err == nil {
			name, err := files.Save(fh)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to save avatar"})
			}
			avatar = name
		}

		updated := model.User{
			ID:           user.ID,
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: hash,
			Avatar:       avatar,
			Role:         model.Role(req.Role),
			IsActive:     user.IsActive,
			CreatedAt:    user.CreatedAt,
		}
		if err := updateUser(ctx, db, &updated); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		if avatar != user.Avatar {
			releaseFile(wp, files, user.Avatar)
		}

		return c.JSON(http.StatusOK, api.NewUserResponse(updated))
	}
}

// @Summary     Delete a user by ID
// @Description 刪除使用者，非預設頭像檔案在背景移除
// @Tags        users
// @Param       user_id path int true "使用者 ID"
// @Success     204
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/{user_id} [delete]
func DeleteUserHandler(db database.DB, files storage.Storage, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}

		user, err := deleteUser(c.Request().Context(), db, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		releaseFile(wp, files, user.Avatar)

		return c.NoContent(http.StatusNoContent)
	}
}
