package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alumni-portal-backend/internal/model"
)

func TestApproveUser_AsUniversity(t *testing.T) {
	env := newTestEnv(t)
	uniToken, uniID := env.registerUniversity(t, "Alpha University", "alpha@edu.example")
	_, userID := env.signupUser(t, "Asha", "asha@example.com", uniID)

	w := env.do(t, "PUT", approvePath(userID), uniToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	user := decode(t, w)["user"].(map[string]any)
	assert.Equal(t, model.StatusApproved, user["status"])
}

func TestApproveUser_PlainMemberForbidden(t *testing.T) {
	env := newTestEnv(t)
	_, uniID := env.registerUniversity(t, "Alpha University", "alpha@edu.example")
	ashaToken, _ := env.signupUser(t, "Asha", "asha@example.com", uniID)
	_, targetID := env.signupUser(t, "Rohan", "rohan@example.com", uniID)

	w := env.do(t, "PUT", approvePath(targetID), ashaToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestApproveUser_AdminMemberOfSameUniversity(t *testing.T) {
	env := newTestEnv(t)
	_, uniID := env.registerUniversity(t, "Alpha University", "alpha@edu.example")
	adminToken, adminID := env.signupUser(t, "Admin", "admin@example.com", uniID)
	_, targetID := env.signupUser(t, "Asha", "asha@example.com", uniID)

	err := env.store.DB().Model(&model.User{}).
		Where("id = ?", adminID).
		Update("role", model.RoleAdmin).Error
	require.NoError(t, err)

	w := env.do(t, "PUT", approvePath(targetID), adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestApproveUser_OtherUniversityForbidden(t *testing.T) {
	env := newTestEnv(t)
	_, alphaID := env.registerUniversity(t, "Alpha University", "alpha@edu.example")
	betaToken, _ := env.registerUniversity(t, "Beta University", "beta@edu.example")
	_, targetID := env.signupUser(t, "Asha", "asha@example.com", alphaID)

	w := env.do(t, "PUT", approvePath(targetID), betaToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestApproveUser_NotFound(t *testing.T) {
	env := newTestEnv(t)
	uniToken, _ := env.registerUniversity(t, "Alpha University", "alpha@edu.example")

	w := env.do(t, "PUT", approvePath(99999), uniToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRejectThenApprove_LastWriteWins(t *testing.T) {
	env := newTestEnv(t)
	uniToken, uniID := env.registerUniversity(t, "Alpha University", "alpha@edu.example")
	_, userID := env.signupUser(t, "Asha", "asha@example.com", uniID)

	w := env.do(t, "PUT", rejectPath(userID), uniToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, "PUT", approvePath(userID), uniToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	user, err := env.store.UserByID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, user.Status)
}

func TestPendingApprovals(t *testing.T) {
	env := newTestEnv(t)
	uniToken, uniID := env.registerUniversity(t, "Alpha University", "alpha@edu.example")
	_, ashaID := env.signupUser(t, "Asha", "asha@example.com", uniID)
	env.signupUser(t, "Rohan", "rohan@example.com", uniID)

	_, err := env.store.SetUserStatus(context.Background(), ashaID, model.StatusApproved)
	require.NoError(t, err)

	w := env.do(t, "GET", pendingPath(uniID), uniToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	users := decode(t, w)["users"].([]any)
	require.Len(t, users, 1)
	assert.Equal(t, "Rohan", users[0].(map[string]any)["name"])
}

func TestPendingApprovals_Unauthenticated(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "GET", pendingPath(1), "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"No token provided"}`, w.Body.String())
}
