package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"moviehub/internal/cache"
	"moviehub/internal/database"
	"moviehub/internal/service"
	"moviehub/internal/storage"
	"moviehub/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestSetupRoutes(t *testing.T) {
	e := echo.New()
	authSvc, err := service.NewAuth("testsecret")
	require.NoError(t, err)

	wp := worker.NewPool(1)
	defer wp.Stop()

	Setup(e, &database.FakeDB{}, &cache.FakeCache{}, &storage.FakeStorage{}, authSvc, wp)

	got := map[string]struct{}{}
	for _, r := range e.Routes() {
		got[r.Method+" "+r.Path] = struct{}{}
	}

	expected := []string{
		http.MethodGet + " /api/ping",
		http.MethodPost + " /api/auth/register",
		http.MethodPost + " /api/auth/login",
		http.MethodGet + " /api/users",
		http.MethodGet + " /api/users/search",
		http.MethodGet + " /api/users/:user_id",
		http.MethodPut + " /api/users/:user_id",
		http.MethodDelete + " /api/users/:user_id",
		http.MethodGet + " /api/movies",
		http.MethodGet + " /api/movies/:movie_id",
		http.MethodPost + " /api/movies",
		http.MethodPut + " /api/movies/:movie_id",
		http.MethodDelete + " /api/movies/:movie_id",
		http.MethodPost + " /api/comments",
		http.MethodGet + " /api/comments/:movie_id",
		http.MethodPut + " /api/comments/:comment_id",
		http.MethodDelete + " /api/comments/:comment_id",
	}

	require.Equal(t, len(expected), len(got))
	for _, k := range expected {
		_, ok := got[k]
		require.True(t, ok, "missing route %s", k)
	}
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	e := echo.New()
	authSvc, err := service.NewAuth("testsecret")
	require.NoError(t, err)

	wp := worker.NewPool(1)
	defer wp.Stop()

	Setup(e, &database.FakeDB{}, &cache.FakeCache{}, &storage.FakeStorage{}, authSvc, wp)

	for _, target := range []string{"/api/ping", "/api/users", "/api/movies"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code, "route %s", target)
	}
}
