package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/travel-journal/internal/config"
	"github.com/iliyamo/travel-journal/internal/repository"
	"github.com/iliyamo/travel-journal/internal/utils"
)

func testCfg() config.Config {
	return config.Config{
		JWTSecret:      "test-secret",
		AccessTTLHours: 72,
		BcryptCost:     bcrypt.MinCost,
		BaseURL:        "http://localhost:8000",
		UploadsPath:    "uploads",
		AssetsPath:     "assets",
	}
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCreateAccountSuccess(t *testing.T) {
	users := &mockUserStore{
		createFn: func(_ context.Context, fullName, email, password string, _ int) (uint64, error) {
			assert.Equal(t, "Ann", fullName)
			assert.Equal(t, "ann@x.com", email)
			assert.Equal(t, "pw12345", password)
			return 5, nil
		},
	}
	h := NewAuthHandler(testCfg(), users)

	c, rec := newJSONContext(http.MethodPost, "/create-account",
		`{"fullName":"Ann","email":"ann@x.com","password":"pw12345"}`)
	require.NoError(t, h.CreateAccount(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `"fullName":"Ann"`)
	assert.Contains(t, body, `"email":"ann@x.com"`)
	assert.NotContains(t, body, "pw12345")

	// The returned token must pass verification and assert the new user.
	tok := extractJSONField(t, body, "accessToken")
	uid, err := utils.ParseUserID("test-secret", tok)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), uid)
}

func TestCreateAccountMissingFields(t *testing.T) {
	h := NewAuthHandler(testCfg(), &mockUserStore{})

	for _, body := range []string{
		`{"email":"ann@x.com","password":"pw"}`,
		`{"fullName":"Ann","password":"pw"}`,
		`{"fullName":"Ann","email":"ann@x.com"}`,
		`{}`,
	} {
		c, rec := newJSONContext(http.MethodPost, "/create-account", body)
		require.NoError(t, h.CreateAccount(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body=%s", body)
		assert.Contains(t, rec.Body.String(), "All fields are required")
	}
}

func TestCreateAccountDuplicateEmail(t *testing.T) {
	users := &mockUserStore{
		createFn: func(context.Context, string, string, string, int) (uint64, error) {
			return 0, repository.ErrEmailExists
		},
	}
	h := NewAuthHandler(testCfg(), users)

	c, rec := newJSONContext(http.MethodPost, "/create-account",
		`{"fullName":"Ann","email":"ann@x.com","password":"pw12345"}`)
	require.NoError(t, h.CreateAccount(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "User already exists")
}

func TestLoginUnknownEmail(t *testing.T) {
	users := &mockUserStore{
		getByEmailFn: func(context.Context, string) (repository.User, error) {
			return repository.User{}, sql.ErrNoRows
		},
	}
	h := NewAuthHandler(testCfg(), users)

	c, rec := newJSONContext(http.MethodPost, "/login", `{"email":"ghost@x.com","password":"pw"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "User not found")
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := utils.HashPassword("right-password", bcrypt.MinCost)
	require.NoError(t, err)
	users := &mockUserStore{
		getByEmailFn: func(context.Context, string) (repository.User, error) {
			return repository.User{ID: 5, FullName: "Ann", Email: "ann@x.com", PasswordHash: hash}, nil
		},
	}
	h := NewAuthHandler(testCfg(), users)

	c, rec := newJSONContext(http.MethodPost, "/login", `{"email":"ann@x.com","password":"wrong"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	// Wrong password yields invalid credentials, never a not-found leak.
	assert.Contains(t, rec.Body.String(), "Invalid Credentials")
	assert.NotContains(t, rec.Body.String(), "User not found")
}

func TestCreateAccountThenLogin(t *testing.T) {
	// In-memory identity store: Create hashes like the real repo does.
	var stored repository.User
	users := &mockUserStore{
		createFn: func(_ context.Context, fullName, email, password string, cost int) (uint64, error) {
			hash, err := utils.HashPassword(password, cost)
			if err != nil {
				return 0, err
			}
			stored = repository.User{ID: 9, FullName: fullName, Email: email, PasswordHash: hash}
			return 9, nil
		},
		getByEmailFn: func(_ context.Context, email string) (repository.User, error) {
			if email != stored.Email {
				return repository.User{}, sql.ErrNoRows
			}
			return stored, nil
		},
	}
	h := NewAuthHandler(testCfg(), users)

	c, rec := newJSONContext(http.MethodPost, "/create-account",
		`{"fullName":"Ann","email":"ann@x.com","password":"pw12345"}`)
	require.NoError(t, h.CreateAccount(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = newJSONContext(http.MethodPost, "/login", `{"email":"ann@x.com","password":"pw12345"}`)
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	tok := extractJSONField(t, rec.Body.String(), "accessToken")
	uid, err := utils.ParseUserID("test-secret", tok)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), uid)
}

func TestGetUserSuccess(t *testing.T) {
	users := &mockUserStore{
		getByIDFn: func(_ context.Context, id uint64) (repository.User, error) {
			assert.Equal(t, uint64(5), id)
			return repository.User{ID: 5, FullName: "Ann", Email: "ann@x.com", PasswordHash: "$2a$bogus"}, nil
		},
	}
	h := NewAuthHandler(testCfg(), users)

	c, rec := newJSONContext(http.MethodGet, "/get-user", "")
	c.Set("user_id", uint64(5))
	require.NoError(t, h.GetUser(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"fullName":"Ann"`)
	// The hash never leaves the server, even on the full-record endpoint.
	assert.NotContains(t, rec.Body.String(), "$2a$bogus")
}

func TestGetUserGoneIdentity(t *testing.T) {
	users := &mockUserStore{
		getByIDFn: func(context.Context, uint64) (repository.User, error) {
			return repository.User{}, sql.ErrNoRows
		},
	}
	h := NewAuthHandler(testCfg(), users)

	c, rec := newJSONContext(http.MethodGet, "/get-user", "")
	c.Set("user_id", uint64(5))
	require.NoError(t, h.GetUser(c))

	// A token whose subject no longer exists is an auth failure, not a 404.
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
