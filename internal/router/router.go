package router

import (
	"github.com/labstack/echo/v4"

	"moviehub/internal/cache"
	"moviehub/internal/database"
	"moviehub/internal/handler"
	"moviehub/internal/handler/auth"
	"moviehub/internal/handler/comments"
	"moviehub/internal/handler/movies"
	"moviehub/internal/handler/users"
	"moviehub/internal/middleware"
	"moviehub/internal/model"
	"moviehub/internal/service"
	"moviehub/internal/storage"
	"moviehub/internal/worker"
)

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache, files storage.Storage, authSvc *service.Auth, wp worker.Pool) {
	api := e.Group("/api")

	// 健康檢查（需登入）
	api.GET("/ping", handler.PingHandler(db, rdb), middleware.RequireAuth(authSvc))

	// 註冊與登入皆為公開端點
	api.POST("/auth/register", auth.RegisterHandler(db, authSvc, files))
	api.POST("/auth/login", auth.LoginHandler(db, authSvc))

	// 管理員專屬 Users CRUD 與搜尋
	apiUsers := api.Group("/users", middleware.RequireRoles(authSvc, model.RoleAdmin))
	apiUsers.GET("", users.ListUsersHandler(db))
	apiUsers.GET("/search", users.SearchUsersHandler(db))
	apiUsers.GET("/:user_id", users.GetUserHandler(db))
	apiUsers.PUT("/:user_id", users.UpdateUserHandler(db, files, wp))
	apiUsers.DELETE("/:user_id", users.DeleteUserHandler(db, files, wp))

	// 電影讀取開放給所有登入角色，寫入僅限管理員
	api.GET("/movies", movies.ListMoviesHandler(db), middleware.RequireRoles(authSvc, model.RoleUser, model.RoleAdmin))
	api.GET("/movies/:movie_id", movies.GetMovieHandler(db, rdb), middleware.RequireRoles(authSvc, model.RoleUser, model.RoleAdmin))
	api.POST("/movies", movies.CreateMovieHandler(db, files), middleware.RequireRoles(authSvc, model.RoleAdmin))
	api.PUT("/movies/:movie_id", movies.UpdateMovieHandler(db, rdb, files, wp), middleware.RequireRoles(authSvc, model.RoleAdmin))
	api.DELETE("/movies/:movie_id", movies.DeleteMovieHandler(db, rdb, files, wp), middleware.RequireRoles(authSvc, model.RoleAdmin))

	// 留言操作開放給一般使用者
	apiComments := api.Group("/comments", middleware.RequireRoles(authSvc, model.RoleUser))
	apiComments.POST("", comments.CreateCommentHandler(db))
	apiComments.GET("/:movie_id", comments.ListCommentsByMovieHandler(db))
	apiComments.PUT("/:comment_id", comments.UpdateCommentHandler(db))
	apiComments.DELETE("/:comment_id", comments.DeleteCommentHandler(db))
}
