package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"moviehub/internal/api"
	"moviehub/internal/database"
	"moviehub/internal/model"
	"moviehub/internal/service"
	"moviehub/internal/storage"
	"moviehub/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type stubValidator struct{ err error }

func (s *stubValidator) Validate(i interface{}) error { return s.err }

func newFormCtx(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newMultipartCtx(e *echo.Echo, fields map[string]string, fileField, fileName string) (echo.Context, *httptest.ResponseRecorder) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = w.WriteField(k, v)
	}
	if fileField != "" {
		fw, _ := w.CreateFormFile(fileField, fileName)
		_, _ = fw.Write([]byte("img"))
	}
	_ = w.Close()
	req := httptest.NewRequest(http.MethodPost, "/auth/register", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func restore() {
	hashPassword = service.HashPassword
	authenticateUser = service.AuthenticateUser
	getUserByEmail = store.GetUserByEmail
	createUser = store.CreateUser
}

func newAuth(t *testing.T) *service.Auth {
	t.Helper()
	a, err := service.NewAuth("testsecret")
	require.NoError(t, err)
	return a
}

func registerForm() map[string]string {
	return map[string]string{
		"name":     "Ann",
		"email":    "Ann@X.com",
		"password": "Str0ng!Pass",
		"role":     "USER",
	}
}

func TestRegisterHandler(t *testing.T) {
	e := echo.New()
	a := newAuth(t)

	t.Run("bind error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		ctx, rec := newFormCtx(e, "/auth/register", "%")
		require.NoError(t, RegisterHandler(nil, a, nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "invalid form data")
	})

	t.Run("validate error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{err: errors.New("v")}
		ctx, rec := newFormCtx(e, "/auth/register", "name=Ann")
		require.NoError(t, RegisterHandler(nil, a, nil)(ctx))
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.Contains(t, rec.Body.String(), "v")
	})

	t.Run("bad email", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		fields := registerForm()
		fields["email"] = "not-an-email"
		ctx, rec := newMultipartCtx(e, fields, "", "")
		require.NoError(t, RegisterHandler(nil, a, nil)(ctx))
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.Contains(t, rec.Body.String(), "must be a valid email address")
	})

	t.Run("duplicate email leaves store untouched", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByEmail = func(ctx context.Context, db database.DB, email string) (*model.User, error) {
			require.Equal(t, "ann@x.com", email)
			return &model.User{ID: 1, Email: email}, nil
		}
		createUser = func(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
			t.Fatal("createUser must not be called")
			return nil, nil
		}
		ctx, rec := newMultipartCtx(e, registerForm(), "", "")
		require.NoError(t, RegisterHandler(nil, a, nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "user already exists")
	})

	t.Run("lookup failure", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByEmail = func(ctx context.Context, db database.DB, email string) (*model.User, error) {
			return nil, errors.New("boom")
		}
		ctx, rec := newMultipartCtx(e, registerForm(), "", "")
		require.NoError(t, RegisterHandler(nil, a, nil)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("hash error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByEmail = func(ctx context.Context, db database.DB, email string) (*model.User, error) {
			return nil, pgx.ErrNoRows
		}
		hashPassword = func(string) (string, error) { return "", errors.New("hash") }
		ctx, rec := newMultipartCtx(e, registerForm(), "", "")
		require.NoError(t, RegisterHandler(nil, a, nil)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, rec.Body.String(), "failed to hash password")
	})

	t.Run("create error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByEmail = func(ctx context.Context, db database.DB, email string) (*model.User, error) {
			return nil, pgx.ErrNoRows
		}
		createUser = func(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
			return nil, errors.New("insert")
		}
		ctx, rec := newMultipartCtx(e, registerForm(), "", "")
		require.NoError(t, RegisterHandler(nil, a, nil)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("success with default avatar", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByEmail = func(ctx context.Context, db database.DB, email string) (*model.User, error) {
			return nil, pgx.ErrNoRows
		}
		createUser = func(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
			require.Equal(t, "ann@x.com", u.Email)
			require.Equal(t, model.DefaultAvatar, u.Avatar)
			require.Equal(t, model.RoleUser, u.Role)
			// 密碼必須已哈希
			require.NotEqual(t, "Str0ng!Pass", u.PasswordHash)
			u.ID = 7
			return u, nil
		}
		ctx, rec := newMultipartCtx(e, registerForm(), "", "")
		require.NoError(t, RegisterHandler(nil, a, nil)(ctx))
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp api.AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.AccessToken)
		require.Equal(t, 7, resp.User.ID)
		require.NotContains(t, rec.Body.String(), "Str0ng!Pass")

		claims, err := a.VerifyAccessToken(resp.AccessToken)
		require.NoError(t, err)
		require.Equal(t, 7, claims.UserID)
	})

	t.Run("success with uploaded avatar", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByEmail = func(ctx context.Context, db database.DB, email string) (*model.User, error) {
			return nil, pgx.ErrNoRows
		}
		createUser = func(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
			require.Equal(t, "saved.png", u.Avatar)
			u.ID = 8
			return u, nil
		}
		files := &storage.FakeStorage{
			SaveFn: func(fh *multipart.FileHeader) (string, error) { return "saved.png", nil },
		}
		ctx, rec := newMultipartCtx(e, registerForm(), "avatar", "me.png")
		require.NoError(t, RegisterHandler(nil, a, files)(ctx))
		require.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("avatar save error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByEmail = func(ctx context.Context, db database.DB, email string) (*model.User, error) {
			return nil, pgx.ErrNoRows
		}
		files := &storage.FakeStorage{
			SaveFn: func(fh *multipart.FileHeader) (string, error) { return "", errors.New("disk") },
		}
		ctx, rec := newMultipartCtx(e, registerForm(), "avatar", "me.png")
		require.NoError(t, RegisterHandler(nil, a, files)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, rec.Body.String(), "failed to save avatar")
	})
}

func TestLoginHandler(t *testing.T) {
	e := echo.New()
	a := newAuth(t)

	hash, err := service.HashPassword("Str0ng!Pass")
	require.NoError(t, err)
	stored := model.User{ID: 3, Name: "Ann", Email: "ann@x.com", PasswordHash: hash, Role: model.RoleUser}

	t.Run("bind error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		ctx, rec := newFormCtx(e, "/auth/login", "%")
		require.NoError(t, LoginHandler(nil, a)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("validate error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{err: errors.New("v")}
		ctx, rec := newFormCtx(e, "/auth/login", "email=a@b.com&password=short")
		require.NoError(t, LoginHandler(nil, a)(ctx))
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("unknown email", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByEmail = func(ctx context.Context, db database.DB, email string) (*model.User, error) {
			return nil, pgx.ErrNoRows
		}
		ctx, rec := newFormCtx(e, "/auth/login", "email=none@x.com&password=Str0ng!Pass")
		require.NoError(t, LoginHandler(nil, a)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), "user not found")
	})

	t.Run("lookup failure", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByEmail = func(ctx context.Context, db database.DB, email string) (*model.User, error) {
			return nil, errors.New("boom")
		}
		ctx, rec := newFormCtx(e, "/auth/login", "email=ann@x.com&password=Str0ng!Pass")
		require.NoError(t, LoginHandler(nil, a)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("wrong password returns no token", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByEmail = func(ctx context.Context, db database.DB, email string) (*model.User, error) {
			u := stored
			return &u, nil
		}
		ctx, rec := newFormCtx(e, "/auth/login", "email=ann@x.com&password=WrongPass1!")
		require.NoError(t, LoginHandler(nil, a)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "invalid password")
		require.NotContains(t, rec.Body.String(), "access_token")
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByEmail = func(ctx context.Context, db database.DB, email string) (*model.User, error) {
			require.Equal(t, "ann@x.com", email)
			u := stored
			return &u, nil
		}
		ctx, rec := newFormCtx(e, "/auth/login", "email=Ann@X.com&password=Str0ng!Pass")
		require.NoError(t, LoginHandler(nil, a)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp api.AuthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.AccessToken)

		claims, err := a.VerifyAccessToken(resp.AccessToken)
		require.NoError(t, err)
		require.Equal(t, stored.ID, claims.UserID)
	})
}
