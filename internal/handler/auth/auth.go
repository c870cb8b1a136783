// File: internal/handler/auth/auth.go
package auth

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"moviehub/internal/api"
	"moviehub/internal/database"
	"moviehub/internal/model"
	"moviehub/internal/service"
	"moviehub/internal/storage"
	"moviehub/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

var (
	hashPassword     = service.HashPassword
	authenticateUser = service.AuthenticateUser
	getUserByEmail   = store.GetUserByEmail
	createUser       = store.CreateUser
)

// @Summary     Register a new user
// @Description 註冊新帳號，可附頭像檔；成功時回傳使用者與存取令牌
// @Tags        auth
// @Accept      multipart/form-data
// @Produce     json
// @Param       name     formData string true  "使用者姓名"
// @Param       email    formData string true  "使用者 Email (會自動轉小寫)"
// @Param       password formData string true  "密碼 (最短 8 碼，需含大小寫、數字、符號)"
// @Param       role     formData string true  "角色 (USER 或 ADMIN)"
// @Param       avatar   formData file   false "頭像檔，未附時使用 default.png"
// @Success     201 {object} api.AuthResponse
// @Failure     400 {object} api.ErrorResponse "Email 已被註冊"
// @Failure     422 {object} api.ValidationErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /auth/register [post]
func RegisterHandler(db database.DB, auth *service.Auth, files storage.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var req api.RegisterRequest
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

		// Email 唯一性為先查後寫，兩個併發註冊仍可能同時通過 (已知限制)
		if _, err := getUserByEmail(ctx, db, req.Email); err == nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "user already exists"})
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		hash, err := hashPassword(strings.TrimSpace(req.Password))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to hash password"})
		}

		avatar := model.DefaultAvatar
		if fh, err := c.FormFile("avatar"); err == nil {
			name, err := files.Save(fh)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to save avatar"})
			}
			avatar = name
		}

		user, err := createUser(ctx, db, &model.User{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: hash,
			Avatar:       avatar,
			Role:         model.Role(req.Role),
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		token, err := auth.IssueAccessToken(*user)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to issue token"})
		}

		return c.JSON(http.StatusCreated, api.AuthResponse{
			User:        api.NewUserResponse(*user),
			AccessToken: token,
		})
	}
}

// @Summary     Log in with email and password
// @Description 使用 Email 與密碼登入，成功時回傳使用者與存取令牌
// @Tags        auth
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       email    formData string true "使用者 Email"
// @Param       password formData string true "使用者密碼"
// @Success     200 {object} api.AuthResponse
// @Failure     400 {object} api.ErrorResponse "密碼錯誤"
// @Failure     404 {object} api.ErrorResponse "查無此 Email"
// @Failure     422 {object} api.ValidationErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /auth/login [post]
func LoginHandler(db database.DB, auth *service.Auth) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid form data"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.NewValidationErrors(err))
		}

		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		user, err := getUserByEmail(ctx, db, req.Email)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		if err := authenticateUser(ctx, *user, req.Password); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid password"})
		}

		token, err := auth.IssueAccessToken(*user)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to issue token"})
		}

		return c.JSON(http.StatusOK, api.AuthResponse{
			User:        api.NewUserResponse(*user),
			AccessToken: token,
		})
	}
}
