package movies

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"moviehub/internal/api"
	"moviehub/internal/cache"
	"moviehub/internal/database"
	"moviehub/internal/model"
	"moviehub/internal/storage"
	"moviehub/internal/store"
	"moviehub/internal/worker"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

var (
	listMovies   = store.ListMovies
	getMovieByID = store.GetMovieByID
	createMovie  = store.CreateMovie
	updateMovie  = store.UpdateMovie
	deleteMovie  = store.DeleteMovie
)

// movieTTL 單部電影快取的存活時間
const movieTTL = 5 * time.Minute

func movieKey(id int) string {
	return fmt.Sprintf("movie:%d", id)
}

// releaseFile 在背景移除已不再被引用的檔案，預設圖不刪
func releaseFile(wp worker.Pool, files storage.Storage, name string) {
	if name == "" || name == model.DefaultImage {
		return
	}
	wp.Submit(func() {
		_ = files.Delete(name)
	})
}

func movieFromRequest(title string, year int, description string, genre []string, trailer string, imdb, rotten *float64) model.Movie {
	return model.Movie{
		Title:       title,
		Year:        year,
		Description: description,
		Genre:       genre,
		Trailer:     trailer,
		Rating: model.Rating{
			IMDB:           imdb,
			RottenTomatoes: rotten,
		},
	}
}

// @Summary     List movies
// @Description 回傳全部電影清單
// @Tags        movies
// @Produce     json
// @Success     200 {array}  api.MovieResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /movies [get]
func ListMoviesHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		movies, err := listMovies(c.Request().Context(), db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		resp := make([]api.MovieResponse, 0, len(movies))
		for _, m := range movies {
			resp = append(resp, api.NewMovieResponse(m))
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// @Summary     Get a movie by ID
// @Description 透過 ID 查詢電影，優先讀取快取，未命中時回源資料庫並回填
// @Tags        movies
// @Produce     json
// @Param       movie_id path     int true "電影 ID"
// @Success     200      {object} api.MovieResponse
// @Failure     400      {object} api.ErrorResponse
// @Failure     404      {object} api.ErrorResponse
// @Failure     500      {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /movies/{movie_id} [get]
func GetMovieHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		id, err := strconv.Atoi(c.Param("movie_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid movie ID"})
		}

		if raw, err := rdb.Get(ctx, movieKey(id)).Result(); err == nil {
			var resp api.MovieResponse
			if err := json.Unmarshal([]byte(raw), &resp); err == nil {
				return c.JSON(http.StatusOK, resp)
			}
		}

		movie, err := getMovieByID(ctx, db, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "movie not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		resp := api.NewMovieResponse(*movie)
		if raw, err := json.Marshal(resp); err == nil {
			// 回填失敗不影響回應
			_ = rdb.Set(ctx, movieKey(id), raw, movieTTL).Err()
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// @Summary     Create a new movie
// @Description 建立電影，未附圖片時採用預設圖
// @Tags        movies
// @Accept      multipart/form-data
// @Produce     json
// @Param       title         formData string true  "片名"
// @Param       year          formData int    true  "年份"
// @Param       description   formData string false "簡介"
// @Param       genre         formData []string true "類型 (可多值)"
// @Param       trailer       formData string true  "預告片網址"
// @Param       rating_imdb   formData number false "IMDB 評分"
// @Param       rating_rotten formData number false "爛番茄評分"
// @Param       image         formData file   false "海報檔案"
// @Success     201 {object} api.MovieResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     422 {object} api.ValidationErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /movies [post]
func CreateMovieHandler(db database.DB, files storage.Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateMovieRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid form data"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.NewValidationErrors(err))
		}

		image := model.DefaultImage
		if fh, err := c.FormFile("image"); err == nil {
			name, err := files.Save(fh)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to save image"})
			}
			image = name
		}

		movie := movieFromRequest(req.Title, req.Year, req.Description, req.Genre, req.Trailer, req.RatingIMDB, req.RatingRotten)
		movie.Image = image

		created, err := createMovie(c.Request().Context(), db, &movie)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusCreated, api.NewMovieResponse(*created))
	}
}

// @Summary     Update a movie by ID
// @Description 全量更新電影；更新圖片時舊檔在背景移除，快取立即作廢
// @Tags        movies
// @Accept      multipart/form-data
// @Produce     json
// @Param       movie_id      path     int    true  "電影 ID"
// @Param       title         formData string true  "片名"
// @Param       year          formData int    true  "年份"
// @Param       description   formData string false "簡介"
// @Param       genre         formData []string true "類型 (可多值)"
// @Param       trailer       formData string true  "預告片網址"
// @Param       rating_imdb   formData number false "IMDB 評分"
// @Param       rating_rotten formData number false "爛番茄評分"
// @Param       image         formData file   false "海報檔案"
// @Success     200 {object} api.MovieResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     422 {object} api.ValidationErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /movies/{movie_id} [put]
func UpdateMovieHandler(db database.DB, rdb cache.Cache, files storage.Storage, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		id, err := strconv.Atoi(c.Param("movie_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid movie ID"})
		}

		var req api.UpdateMovieRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid form data"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.NewValidationErrors(err))
		}

		movie, err := getMovieByID(ctx, db, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "movie not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		image := movie.Image
		if fh, err := c.FormFile("image"); err == nil {
			name, err := files.Save(fh)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to save image"})
			}
			image = name
		}

		updated := movieFromRequest(req.Title, req.Year, req.Description, req.Genre, req.Trailer, req.RatingIMDB, req.RatingRotten)
		updated.ID = movie.ID
		updated.Image = image
		updated.CreatedAt = movie.CreatedAt

		if err := updateMovie(ctx, db, &updated); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		_ = rdb.Del(ctx, movieKey(id)).Err()
		if image != movie.Image {
			releaseFile(wp, files, movie.Image)
		}

		return c.JSON(http.StatusOK, api.NewMovieResponse(updated))
	}
}

// @Summary     Delete a movie by ID
// @Description 刪除電影，非預設圖檔在背景移除，快取立即作廢
// @Tags        movies
// @Param       movie_id path int true "電影 ID"
// @Success     204
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /movies/{movie_id} [delete]
func DeleteMovieHandler(db database.DB, rdb cache.Cache, files storage.Storage, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		id, err := strconv.Atoi(c.Param("movie_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid movie ID"})
		}

		movie, err := deleteMovie(ctx, db, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "movie not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		_ = rdb.Del(ctx, movieKey(id)).Err()
		releaseFile(wp, files, movie.Image)

		return c.NoContent(http.StatusNoContent)
	}
}
