package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/hvacsite/internal/pkg/apperror"
)

func render(t *testing.T, fn func(c *gin.Context)) (int, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	fn(c)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestError_Upstream(t *testing.T) {
	code, body := render(t, func(c *gin.Context) {
		Error(c, apperror.Upstream(errors.New("pq"), "duplicate key value"), "Failed to send message")
	})

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Failed to send message", body["message"])
	assert.Equal(t, "duplicate key value", body["error"])
}

func TestError_ValidationUsesValidationShape(t *testing.T) {
	code, body := render(t, func(c *gin.Context) {
		Error(c, apperror.Validation([]string{"Invalid email format"}), "")
	})

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, MessageValidationFailed, body["error"])
	assert.Equal(t, []any{"Invalid email format"}, body["validationErrors"])
}

func TestError_PlainErrorIsMasked(t *testing.T) {
	code, body := render(t, func(c *gin.Context) {
		Error(c, errors.New("sql: connection refused on 10.0.0.5"), "Failed to load products")
	})

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, apperror.GenericMessage, body["error"])
}

func TestList_HasMore(t *testing.T) {
	_, body := render(t, func(c *gin.Context) {
		List(c, []int{1, 2}, 5, 2, 2)
	})
	assert.Equal(t, true, body["hasMore"])

	_, body = render(t, func(c *gin.Context) {
		List(c, []int{5}, 5, 3, 2)
	})
	assert.Equal(t, false, body["hasMore"])
}
