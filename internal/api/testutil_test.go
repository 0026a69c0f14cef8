package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alumni-portal-backend/config"
	"alumni-portal-backend/internal/auth"
	"alumni-portal-backend/internal/db"
	"alumni-portal-backend/internal/store"
)

type testEnv struct {
	router *gin.Engine
	store  store.Store
	tokens *auth.TokenIssuer
}

// newTestEnv wires the full router against a per-test in-memory SQLite
// database, with push notifications disabled.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))

	s := store.NewGormStore(gormDB)
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	cfg := &config.ServerConfig{
		Environment:     "test",
		RateLimitPerSec: 1000,
		RateLimitBurst:  1000,
		CacheTTLSeconds: 1,
	}

	return &testEnv{
		router: NewRouter(s, tokens, nil, nil, cfg),
		store:  s,
		tokens: tokens,
	}
}

// do performs a JSON request against the test router.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// decode unmarshals a response body into a generic map.
func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// registerUniversity creates a university through the API and returns its
// token and id.
func (e *testEnv) registerUniversity(t *testing.T, name, email string) (string, int64) {
	t.Helper()
	w := e.do(t, "POST", "/api/university/register", "", gin.H{
		"name": name, "email": email, "password": "pass1234",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	uni := body["university"].(map[string]any)
	return body["token"].(string), int64(uni["id"].(float64))
}

func approvePath(userID int64) string {
	return fmt.Sprintf("/api/admin/approve-user/%d", userID)
}

func rejectPath(userID int64) string {
	return fmt.Sprintf("/api/admin/reject-user/%d", userID)
}

func pendingPath(universityID int64) string {
	return fmt.Sprintf("/api/admin/pending-approvals/%d", universityID)
}

// signupUser creates a member through the API and returns its token and id.
func (e *testEnv) signupUser(t *testing.T, name, email string, universityID int64) (string, int64) {
	t.Helper()
	w := e.do(t, "POST", "/api/auth/signup", "", gin.H{
		"name": name, "email": email, "password": "pass1234",
		"universityId": universityID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	user := body["user"].(map[string]any)
	return body["token"].(string), int64(user["id"].(float64))
}
