package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alumni-portal-backend/internal/model"
)

func TestSignup_ForcesPendingStatus(t *testing.T) {
	env := newTestEnv(t)
	_, uniID := env.registerUniversity(t, "Alpha University", "alpha@edu.example")

	// A client-supplied status must be ignored.
	w := env.do(t, "POST", "/api/auth/signup", "", gin.H{
		"name": "Asha", "email": "asha@example.com", "password": "pass1234",
		"universityId": uniID, "status": "approved", "role": "admin",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Contains(t, body["message"], "pending")
	user := body["user"].(map[string]any)
	assert.Equal(t, model.StatusPending, user["status"])
	assert.Equal(t, model.RoleAlumni, user["role"])
	assert.NotEmpty(t, body["token"])
}

func TestSignup_UnknownUniversity(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "POST", "/api/auth/signup", "", gin.H{
		"name": "Asha", "email": "asha@example.com", "password": "pass1234",
		"universityId": 12345,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	_, uniID := env.registerUniversity(t, "Alpha University", "alpha@edu.example")
	env.signupUser(t, "Asha", "asha@example.com", uniID)

	w := env.do(t, "POST", "/api/auth/signup", "", gin.H{
		"name": "Imposter", "email": "asha@example.com", "password": "pass1234",
		"universityId": uniID,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin_PendingMemberSucceeds(t *testing.T) {
	env := newTestEnv(t)
	_, uniID := env.registerUniversity(t, "Alpha University", "alpha@edu.example")
	env.signupUser(t, "Asha", "asha@example.com", uniID)

	w := env.do(t, "POST", "/api/auth/login", "", gin.H{
		"email": "asha@example.com", "password": "pass1234",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := decode(t, w)["token"].(string)

	// The token works immediately, before any approval.
	w = env.do(t, "GET", "/api/user/profile", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogin_RejectedMember(t *testing.T) {
	env := newTestEnv(t)
	_, uniID := env.registerUniversity(t, "Alpha University", "alpha@edu.example")
	_, userID := env.signupUser(t, "Asha", "asha@example.com", uniID)

	_, err := env.store.SetUserStatus(context.Background(), userID, model.StatusRejected)
	require.NoError(t, err)

	// Wrong password on a rejected account: the credential check comes
	// first, so this is 401, not 403.
	w := env.do(t, "POST", "/api/auth/login", "", gin.H{
		"email": "asha@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, w.Body.String())

	// Correct password on a rejected account: 403.
	w = env.do(t, "POST", "/api/auth/login", "", gin.H{
		"email": "asha@example.com", "password": "pass1234",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Your account has been rejected"}`, w.Body.String())
}

func TestUpdateProfile_AllowListedFieldsOnly(t *testing.T) {
	env := newTestEnv(t)
	_, uniID := env.registerUniversity(t, "Alpha University", "alpha@edu.example")
	token, _ := env.signupUser(t, "Asha", "asha@example.com", uniID)

	// Status and role in the payload are silently dropped.
	w := env.do(t, "PUT", "/api/user/profile", token, gin.H{
		"currentCity": "Pune", "company": "Initech",
		"status": "approved", "role": "admin",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	user := decode(t, w)["user"].(map[string]any)
	assert.Equal(t, "Pune", user["currentCity"])
	assert.Equal(t, "Initech", user["company"])
	assert.Equal(t, model.StatusPending, user["status"])
	assert.Equal(t, model.RoleAlumni, user["role"])
}
