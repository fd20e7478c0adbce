package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})
	return r
}

func TestRequestIDGenerated(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	id := rec.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, rec.Body.String())
}

func TestRequestIDPropagated(t *testing.T) {
	want := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, want)

	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)
	assert.Equal(t, want, rec.Header().Get(RequestIDHeader))
}

func TestRequestIDRejectsGarbage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "<script>")

	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)
	assert.NotEqual(t, "<script>", rec.Header().Get(RequestIDHeader))
}
