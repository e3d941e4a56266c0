package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestSuccessEnvelope(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	Success(rec, map[string]string{"id": "att-1"})

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decode(t, rec)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}

func TestErrorEnvelopes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		write    func(rec *httptest.ResponseRecorder)
		wantCode int
		wantTag  string
	}{
		{"conflict", func(rec *httptest.ResponseRecorder) { Conflict(rec, "already checked in") }, 409, "CONFLICT"},
		{"not found", func(rec *httptest.ResponseRecorder) { NotFound(rec, "shift not found") }, 404, "NOT_FOUND"},
		{"unauthorized", func(rec *httptest.ResponseRecorder) { Unauthorized(rec, "missing token") }, 401, "UNAUTHORIZED"},
		{"validation", func(rec *httptest.ResponseRecorder) { ValidationError(rec, map[string]string{"start_time": "invalid"}) }, 422, "VALIDATION_ERROR"},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			c.write(rec)

			assert.Equal(t, c.wantCode, rec.Code)

			resp := decode(t, rec)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, c.wantTag, resp.Error.Code)
		})
	}
}
