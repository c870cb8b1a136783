package comments

import (
	"errors"
	"net/http"
	"strconv"

	"moviehub/internal/api"
	"moviehub/internal/database"
	"moviehub/internal/middleware"
	"moviehub/internal/model"
	"moviehub/internal/service"
	"moviehub/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

var (
	createComment       = store.CreateComment
	listCommentsByMovie = store.ListCommentsByMovie
	updateComment       = store.UpdateComment
	deleteComment       = store.DeleteComment
	getMovieByID        = store.GetMovieByID
)

// @Summary     Create a comment
// @Description 對指定電影留言，作者取自 token claims 而非表單
// @Tags        comments
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       movie_id formData int    true "電影 ID"
// @Param       text     formData string true "留言內容"
// @Success     201 {object} api.CommentResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     422 {object} api.ValidationErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /comments [post]
func CreateCommentHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var req api.CreateCommentRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid form data"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.NewValidationErrors(err))
		}

		if _, err := getMovieByID(ctx, db, req.MovieID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "movie not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		claims := c.Get(middleware.ContextUserKey).(*service.CustomClaims)

		comment, err := createComment(ctx, db, &model.Comment{
			MovieID: req.MovieID,
			UserID:  claims.UserID,
			Text:    req.Text,
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusCreated, api.NewCommentResponse(*comment))
	}
}

// @Summary     List comments of a movie
// @Description 回傳指定電影的全部留言
// @Tags        comments
// @Produce     json
// @Param       movie_id path     int true "電影 ID"
// @Success     200      {array}  api.CommentResponse
// @Failure     400      {object} api.ErrorResponse
// @Failure     500      {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /comments/{movie_id} [get]
func ListCommentsByMovieHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		movieID, err := strconv.Atoi(c.Param("movie_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid movie ID"})
		}
		comments, err := listCommentsByMovie(c.Request().Context(), db, movieID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		resp := make([]api.CommentResponse, 0, len(comments))
		for _, cm := range comments {
			resp = append(resp, api.NewCommentResponse(cm))
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// @Summary     Update a comment by ID
// @Description 更新留言內容
// @Tags        comments
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       comment_id path     int    true "留言 ID"
// @Param       text       formData string true "留言內容"
// @Success     200 {object} api.CommentResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     422 {object} api.ValidationErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /comments/{comment_id} [put]
func UpdateCommentHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("comment_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid comment ID"})
		}

		var req api.UpdateCommentRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid form data"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.NewValidationErrors(err))
		}

		comment, err := updateComment(c.Request().Context(), db, id, req.Text)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "comment not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, api.NewCommentResponse(*comment))
	}
}

// @Summary     Delete a comment by ID
// @Description 刪除留言
// @Tags        comments
// @Param       comment_id path int true "留言 ID"
// @Success     204
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /comments/{comment_id} [delete]
func DeleteCommentHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("comment_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid comment ID"})
		}
		if err := deleteComment(c.Request().Context(), db, id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "comment not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	}
}
