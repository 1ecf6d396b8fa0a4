package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCreated_Envelope(t *testing.T) {
	w := httptest.NewRecorder()
	Created(w, "Punch in recorded", map[string]string{"status": "approved"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Punch in recorded", body["message"])
	assert.Equal(t, map[string]interface{}{"status": "approved"}, body["data"])
	assert.NotContains(t, body, "error")
}

func TestFail_CodeFollowsStatus(t *testing.T) {
	cases := []struct {
		write func(w http.ResponseWriter)
		code  int
		kind  string
	}{
		{func(w http.ResponseWriter) { BadRequest(w, "bad", nil) }, http.StatusBadRequest, "BAD_REQUEST"},
		{func(w http.ResponseWriter) { Unauthorized(w, "no") }, http.StatusUnauthorized, "UNAUTHORIZED"},
		{func(w http.ResponseWriter) { Forbidden(w, "no") }, http.StatusForbidden, "FORBIDDEN"},
		{func(w http.ResponseWriter) { NotFound(w, "gone") }, http.StatusNotFound, "NOT_FOUND"},
		{func(w http.ResponseWriter) { Conflict(w, "dup") }, http.StatusConflict, "CONFLICT"},
		{func(w http.ResponseWriter) { TooManyRequests(w, "slow") }, http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{func(w http.ResponseWriter) { InternalServerError(w, "boom") }, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
		{func(w http.ResponseWriter) { Fail(w, http.StatusTeapot, "tea", nil) }, http.StatusTeapot, "ERROR"},
	}
	for _, c := range cases {
		w := httptest.NewRecorder()
		c.write(w)

		assert.Equal(t, c.code, w.Code)
		body := decode(t, w)
		assert.Equal(t, false, body["success"])
		errBody, ok := body["error"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, c.kind, errBody["code"])
		assert.NotContains(t, errBody, "details")
	}
}

func TestValidationError_Details(t *testing.T) {
	w := httptest.NewRecorder()
	ValidationError(w, map[string]string{"latitude": "latitude is required"})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	errBody := decode(t, w)["error"].(map[string]interface{})
	assert.Equal(t, "VALIDATION_ERROR", errBody["code"])
	assert.Equal(t, "Validation failed", errBody["message"])
	assert.Equal(t, map[string]interface{}{"latitude": "latitude is required"}, errBody["details"])
}

func TestWriteJSON_EncodingFailureIsCleanServerError(t *testing.T) {
	w := httptest.NewRecorder()
	Success(w, map[string]interface{}{"bad": make(chan int)})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "ENCODING_ERROR", body["error"].(map[string]interface{})["code"])
}
