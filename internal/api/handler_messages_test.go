package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessages_ThreadNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	_, uniID := env.registerUniversity(t, "Alpha University", "alpha@edu.example")
	ashaToken, ashaID := env.signupUser(t, "Asha", "asha@example.com", uniID)
	rohanToken, rohanID := env.signupUser(t, "Rohan", "rohan@example.com", uniID)

	send := func(token string, to int64, content string) {
		w := env.do(t, "POST", "/api/messages", token, gin.H{"receiverId": to, "content": content})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
	send(ashaToken, rohanID, "hi rohan")
	send(rohanToken, ashaID, "hi asha")
	send(ashaToken, rohanID, "how have you been?")

	w := env.do(t, "GET", fmt.Sprintf("/api/messages/%d", rohanID), ashaToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	messages := decode(t, w)["messages"].([]any)
	require.Len(t, messages, 3)
	assert.Equal(t, "how have you been?", messages[0].(map[string]any)["content"])
	assert.Equal(t, "hi rohan", messages[2].(map[string]any)["content"])
}

func TestMessages_UnknownRecipient(t *testing.T) {
	env := newTestEnv(t)
	_, uniID := env.registerUniversity(t, "Alpha University", "alpha@edu.example")
	token, _ := env.signupUser(t, "Asha", "asha@example.com", uniID)

	w := env.do(t, "POST", "/api/messages", token, gin.H{"receiverId": 99999, "content": "hello?"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMessages_MarkRead(t *testing.T) {
	env := newTestEnv(t)
	_, uniID := env.registerUniversity(t, "Alpha University", "alpha@edu.example")
	ashaToken, ashaID := env.signupUser(t, "Asha", "asha@example.com", uniID)
	rohanToken, rohanID := env.signupUser(t, "Rohan", "rohan@example.com", uniID)

	w := env.do(t, "POST", "/api/messages", rohanToken, gin.H{"receiverId": ashaID, "content": "ping"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, "PUT", fmt.Sprintf("/api/messages/%d/read", rohanID), ashaToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(1), decode(t, w)["updated"])
}

func TestWorkshops_CreateAndRegister(t *testing.T) {
	env := newTestEnv(t)
	_, uniID := env.registerUniversity(t, "Alpha University", "alpha@edu.example")
	ashaToken, _ := env.signupUser(t, "Asha", "asha@example.com", uniID)
	rohanToken, _ := env.signupUser(t, "Rohan", "rohan@example.com", uniID)

	// Online workshops need a meeting link.
	w := env.do(t, "POST", "/api/workshops", ashaToken, gin.H{
		"title": "Go 101", "date": "2026-09-15", "time": "18:00", "mode": "online",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, "POST", "/api/workshops", ashaToken, gin.H{
		"title": "Go 101", "date": "2026-09-15", "time": "18:00",
		"mode": "online", "meetingLink": "https://meet.example/go101",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	workshop := decode(t, w)["workshop"].(map[string]any)
	assert.Equal(t, float64(uniID), workshop["universityId"])
	workshopID := int64(workshop["id"].(float64))

	w = env.do(t, "POST", fmt.Sprintf("/api/workshops/%d/register", workshopID), rohanToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Registering twice keeps the attendee set stable.
	w = env.do(t, "POST", fmt.Sprintf("/api/workshops/%d/register", workshopID), rohanToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, "GET", fmt.Sprintf("/api/workshops/%d", uniID), "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	workshops := decode(t, w)["workshops"].([]any)
	require.Len(t, workshops, 1)
	attendees := workshops[0].(map[string]any)["attendees"].([]any)
	require.Len(t, attendees, 1)
	assert.Equal(t, "Rohan", attendees[0].(map[string]any)["name"])
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "GET", "/api/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "connected", body["database"])
	assert.Equal(t, "test", body["environment"])
	assert.NotEmpty(t, body["timestamp"])
}
