package rides

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ---- helpers ----

func newRideTestRouter() (*gin.Engine, *fakeRideStore, *recordingPublisher) {
	gin.SetMode(gin.TestMode)
	store := newFakeRideStore()
	publisher := &recordingPublisher{}
	svc := NewService(store, publisher, zap.NewNop())

	router := gin.New()
	RegisterRoutes(router, svc, zap.NewNop())
	return router, store, publisher
}

func doRequest(router *gin.Engine, method, url string, body interface{}) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, nil)
	if body != nil {
		b, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, url, strings.NewReader(string(b)))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// ---- tests ----

func TestCreateRideEndpoint(t *testing.T) {
	router, _, _ := newRideTestRouter()

	w := doRequest(router, http.MethodPost, "/rides", gin.H{
		"origin": "A", "destination": "B", "seats": 2,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Ride created successfully!", body["message"])

	ride, ok := body["ride"].(map[string]any)
	require.True(t, ok)
	assert.NotZero(t, ride["id"])
	assert.Equal(t, "A", ride["origin"])
	assert.Equal(t, "B", ride["destination"])
	assert.Equal(t, float64(2), ride["seats"])
}

func TestCreateRideEndpointValidation(t *testing.T) {
	router, _, _ := newRideTestRouter()

	w := doRequest(router, http.MethodPost, "/rides", gin.H{"origin": "A"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetRideEndpoint(t *testing.T) {
	router, _, _ := newRideTestRouter()

	doRequest(router, http.MethodPost, "/rides", gin.H{
		"origin": "A", "destination": "B", "seats": 2,
	})

	w := doRequest(router, http.MethodGet, "/rides/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "A", body["origin"])
	assert.Equal(t, "B", body["destination"])
	assert.Equal(t, float64(2), body["seats"])
}

func TestGetRideEndpointNotFound(t *testing.T) {
	router, _, _ := newRideTestRouter()

	w := doRequest(router, http.MethodGet, "/rides/9999", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Ride not found!", decodeBody(t, w)["message"])
}

func TestListRidesEndpoint(t *testing.T) {
	router, _, _ := newRideTestRouter()

	w := doRequest(router, http.MethodGet, "/rides", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	doRequest(router, http.MethodPost, "/rides", gin.H{
		"origin": "A", "destination": "B", "seats": 2,
	})

	w = doRequest(router, http.MethodGet, "/rides", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

// Mirrors the documented end-to-end scenario: create, join, leave, then
// join with an unknown user id.
func TestMembershipScenario(t *testing.T) {
	router, store, publisher := newRideTestRouter()

	store.addRider(&Rider{ID: 1, Username: "alice", Email: "alice@x.com"})

	w := doRequest(router, http.MethodPost, "/rides", gin.H{
		"origin": "A", "destination": "B", "seats": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(router, http.MethodPost, "/rides/1/join", gin.H{"user_id": 1})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User joined the ride!", decodeBody(t, w)["message"])

	w = doRequest(router, http.MethodGet, "/rides/1/members", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var members []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &members))
	require.Len(t, members, 1)
	assert.Equal(t, "alice", members[0]["username"])

	w = doRequest(router, http.MethodPost, "/rides/1/leave", gin.H{"user_id": 1})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User left the ride!", decodeBody(t, w)["message"])

	w = doRequest(router, http.MethodPost, "/rides/1/join", gin.H{"user_id": 9999})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Ride or user not found!", decodeBody(t, w)["message"])

	// ride_created, ride_joined, ride_left
	require.Len(t, publisher.messages, 3)
	assert.Equal(t, "ride_created", publisher.messages[0].Type)
	assert.Equal(t, "ride_joined", publisher.messages[1].Type)
	assert.Equal(t, "ride_left", publisher.messages[2].Type)
}

func TestJoinRideEndpointDuplicate(t *testing.T) {
	router, store, _ := newRideTestRouter()

	store.addRider(&Rider{ID: 1, Username: "alice", Email: "alice@x.com"})
	doRequest(router, http.MethodPost, "/rides", gin.H{
		"origin": "A", "destination": "B", "seats": 2,
	})

	w := doRequest(router, http.MethodPost, "/rides/1/join", gin.H{"user_id": 1})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodPost, "/rides/1/join", gin.H{"user_id": 1})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "User already joined the ride!", decodeBody(t, w)["message"])
}

func TestLeaveRideEndpointNonMember(t *testing.T) {
	router, store, _ := newRideTestRouter()

	store.addRider(&Rider{ID: 1, Username: "alice", Email: "alice@x.com"})
	doRequest(router, http.MethodPost, "/rides", gin.H{
		"origin": "A", "destination": "B", "seats": 2,
	})

	w := doRequest(router, http.MethodPost, "/rides/1/leave", gin.H{"user_id": 1})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User left the ride!", decodeBody(t, w)["message"])
}

func TestMembershipEndpointsMissingBody(t *testing.T) {
	router, _, _ := newRideTestRouter()

	w := doRequest(router, http.MethodPost, "/rides/1/join", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodPost, "/rides/1/leave", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
