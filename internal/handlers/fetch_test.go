package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eduforge/api/internal/models"
)

func TestGetAssessmentReturnsStoredRecordWrapped(t *testing.T) {
	stored := models.Assessment{
		ID:           "asmt_1",
		OwnerSubject: "user_9",
		Title:        "Fractions quiz",
		Data:         json.RawMessage(`{"questions":[{"q":"1/2 + 1/4?"}]}`),
	}
	fake := &fakeAssessments{records: map[string]models.Assessment{"asmt_1": stored}}
	h := testHandlerSet()
	h.assessments = fake

	r := newRouter(http.MethodGet, "/api/v1/assessments/:id", h.wrap(h.GetAssessment))
	w := do(r, httptest.NewRequest(http.MethodGet, "/api/v1/assessments/asmt_1", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Assessment models.Assessment `json:"assessment"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, stored.ID, body.Assessment.ID)
	assert.Equal(t, stored.Title, body.Assessment.Title)
	assert.JSONEq(t, string(stored.Data), string(body.Assessment.Data))
}

func TestGetAssessmentUnmatchedIDIs404(t *testing.T) {
	fake := &fakeAssessments{records: map[string]models.Assessment{}}
	h := testHandlerSet()
	h.assessments = fake

	r := newRouter(http.MethodGet, "/api/v1/assessments/:id", h.wrap(h.GetAssessment))
	w := do(r, httptest.NewRequest(http.MethodGet, "/api/v1/assessments/asmt_missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 1, fake.calls)
}

func TestGetAssessmentEmptyIDIs400BeforeStoreAccess(t *testing.T) {
	fake := &fakeAssessments{records: map[string]models.Assessment{}}
	h := testHandlerSet()
	h.assessments = fake

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/assessments/", nil)
	h.wrap(h.GetAssessment)(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, fake.calls, "store must not be touched for an empty id")
}

func TestGetAssessmentStoreFailureIsGeneric500(t *testing.T) {
	fake := &fakeAssessments{err: errors.New("conn refused: 10.0.0.3:5432")}
	h := testHandlerSet()
	h.assessments = fake

	r := newRouter(http.MethodGet, "/api/v1/assessments/:id", h.wrap(h.GetAssessment))
	w := do(r, httptest.NewRequest(http.MethodGet, "/api/v1/assessments/asmt_1", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "conn refused", "driver detail must not leak")
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestGetContentReturnsStoredRecordWrapped(t *testing.T) {
	stored := models.Content{
		ID:    "cont_1",
		Title: "Photosynthesis explainer",
		Data:  json.RawMessage(`{"sections":["intro","light reactions"]}`),
	}
	fake := &fakeContent{records: map[string]models.Content{"cont_1": stored}}
	h := testHandlerSet()
	h.content = fake

	r := newRouter(http.MethodGet, "/api/v1/content/:id", h.wrap(h.GetContent))
	w := do(r, httptest.NewRequest(http.MethodGet, "/api/v1/content/cont_1", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Content models.Content `json:"content"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, stored.ID, body.Content.ID)
	assert.JSONEq(t, string(stored.Data), string(body.Content.Data))
}

func TestGetContentUnmatchedIDIs404(t *testing.T) {
	fake := &fakeContent{records: map[string]models.Content{}}
	h := testHandlerSet()
	h.content = fake

	r := newRouter(http.MethodGet, "/api/v1/content/:id", h.wrap(h.GetContent))
	w := do(r, httptest.NewRequest(http.MethodGet, "/api/v1/content/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetComicUnmatchedIDIs404(t *testing.T) {
	fake := &fakeComics{records: map[string]models.Comic{}}
	h := testHandlerSet()
	h.comics = fake

	r := newRouter(http.MethodGet, "/api/v1/comics/:id", h.wrap(h.GetComic))
	w := do(r, httptest.NewRequest(http.MethodGet, "/api/v1/comics/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
