package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shivanand-hulikatti/activity-board/internal/model"
	"github.com/Shivanand-hulikatti/activity-board/internal/repository"
	"github.com/Shivanand-hulikatti/activity-board/internal/service"
)

const craftsName = "Arts/Crafts & More?"

func newRouter(t *testing.T) (http.Handler, *repository.MemoryRepository) {
	t.Helper()
	seed := repository.DefaultActivities()
	seed[craftsName] = model.ActivityDetails{
		Description:     "Make things",
		Schedule:        "Fridays",
		MaxParticipants: 1,
		Participants:    []string{},
	}
	repo := repository.NewMemoryRepository(seed)

	r := chi.NewRouter()
	r.Use(CORS())
	r.Get("/", Redirect("/static/index.html"))
	r.Get("/health", HealthCheck)
	NewActivityHandler(service.NewActivityService(repo, nil), nil).Routes(r)
	return r, repo
}

func do(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func enrolmentURL(activity, action, email string) string {
	return "/activities/" + url.PathEscape(activity) + "/" + action + "?email=" + url.QueryEscape(email)
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Detail
}

func TestRootRedirect(t *testing.T) {
	h, _ := newRouter(t)
	rec := do(h, http.MethodGet, "/")
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/static/index.html", rec.Header().Get("Location"))
}

func TestHealthCheck(t *testing.T) {
	h, _ := newRouter(t)
	rec := do(h, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestListActivities(t *testing.T) {
	h, _ := newRouter(t)
	rec := do(h, http.MethodGet, "/activities")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var catalog model.Catalog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &catalog))
	assert.Len(t, catalog, 10)
	chess := catalog["Chess Club"]
	assert.Equal(t, 12, chess.MaxParticipants)
	assert.Equal(t, []string{"michael@mergington.edu", "daniel@mergington.edu"}, chess.Participants)
}

func TestSignup(t *testing.T) {
	h, repo := newRouter(t)

	rec := do(h, http.MethodPost, enrolmentURL("Chess Club", "signup", "newstudent@mergington.edu"))
	require.Equal(t, http.StatusOK, rec.Code)
	var msg model.MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.Equal(t, "Signed up newstudent@mergington.edu for Chess Club", msg.Message)

	catalog, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Contains(t, catalog["Chess Club"].Participants, "newstudent@mergington.edu")
}

func TestSignupErrors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantDetail string
	}{
		{
			name:       "unknown activity",
			target:     enrolmentURL("Nonexistent Club", "signup", "a@mergington.edu"),
			wantStatus: http.StatusNotFound,
			wantDetail: "Activity not found",
		},
		{
			name:       "already signed up",
			target:     enrolmentURL("Chess Club", "signup", "michael@mergington.edu"),
			wantStatus: http.StatusBadRequest,
			wantDetail: "Student already signed up for this activity",
		},
		{
			name:       "missing email",
			target:     "/activities/Chess%20Club/signup",
			wantStatus: http.StatusUnprocessableEntity,
			wantDetail: "email query parameter is required",
		},
		{
			name:       "blank email",
			target:     enrolmentURL("Chess Club", "signup", "  "),
			wantStatus: http.StatusUnprocessableEntity,
			wantDetail: "email query parameter is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newRouter(t)
			rec := do(h, http.MethodPost, tt.target)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantDetail, decodeDetail(t, rec))
		})
	}
}

func TestSignupEncodedNameAndCapacity(t *testing.T) {
	h, _ := newRouter(t)

	rec := do(h, http.MethodPost, enrolmentURL(craftsName, "signup", "first@mergington.edu"))
	require.Equal(t, http.StatusOK, rec.Code)
	var msg model.MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.Equal(t, "Signed up first@mergington.edu for "+craftsName, msg.Message)
	// Reserved characters are written verbatim, not as \u0026.
	assert.Contains(t, rec.Body.String(), craftsName)

	rec = do(h, http.MethodPost, enrolmentURL(craftsName, "signup", "second@mergington.edu"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Activity is full", decodeDetail(t, rec))
}

func TestUnregister(t *testing.T) {
	h, repo := newRouter(t)

	rec := do(h, http.MethodDelete, enrolmentURL("Chess Club", "unregister", "michael@mergington.edu"))
	require.Equal(t, http.StatusOK, rec.Code)
	var msg model.MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.Equal(t, "Unregistered michael@mergington.edu from Chess Club", msg.Message)

	catalog, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"daniel@mergington.edu"}, catalog["Chess Club"].Participants)

	rec = do(h, http.MethodDelete, enrolmentURL("Chess Club", "unregister", "michael@mergington.edu"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Student not signed up for this activity", decodeDetail(t, rec))

	rec = do(h, http.MethodDelete, enrolmentURL("Nonexistent Club", "unregister", "a@mergington.edu"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Activity not found", decodeDetail(t, rec))
}

func TestCORS(t *testing.T) {
	h, _ := newRouter(t)
	const origin = "http://localhost:8081"

	req := httptest.NewRequest(http.MethodOptions, "/activities/Chess%20Club/signup", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, []string{"*", origin}, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)

	req = httptest.NewRequest(http.MethodGet, "/activities", nil)
	req.Header.Set("Origin", origin)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, []string{"*", origin}, rec.Header().Get("Access-Control-Allow-Origin"))
}
