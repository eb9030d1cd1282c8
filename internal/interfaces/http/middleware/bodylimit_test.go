package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestBodyLimit(t *testing.T) {
	newEngine := func(maxBytes int64) *gin.Engine {
		engine := gin.New()
		engine.Use(BodyLimit(maxBytes))
		engine.POST("/", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return engine
	}

	t.Run("allows body within limit", func(t *testing.T) {
		engine := newEngine(64)

		req := httptest.NewRequest("POST", "/", strings.NewReader("small body"))
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects body over limit", func(t *testing.T) {
		engine := newEngine(8)

		req := httptest.NewRequest("POST", "/", strings.NewReader("this body is definitely too large"))
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), "REQUEST_TOO_LARGE")
	})
}
