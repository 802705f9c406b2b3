package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/defense-scheduler/internal/middleware"
	"github.com/noah-isme/defense-scheduler/internal/models"
	"github.com/noah-isme/defense-scheduler/internal/progress"
)

func withClaims(c *gin.Context, userID string) {
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: userID})
}

func TestProgressHandlerStreamUnauthorized(t *testing.T) {
	h := NewProgressHandler(progress.NewHub(4), 0)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/progress", nil)

	h.Stream(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProgressHandlerStreamReplaysLastFrameThenExitsOnCancel(t *testing.T) {
	hub := progress.NewHub(4)
	hub.Publish("user-1", progress.Frame{Type: progress.TypeAlgorithmComplete})
	h := NewProgressHandler(hub, time.Hour)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/progress", nil).WithContext(ctx)
	withClaims(c, "user-1")

	h.Stream(c)

	assert.Contains(t, w.Body.String(), string(progress.TypeAlgorithmComplete))
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
}

func TestProgressHandlerClientFrameUnauthorized(t *testing.T) {
	h := NewProgressHandler(progress.NewHub(4), 0)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/progress", bytes.NewBufferString(`{}`))

	h.ClientFrame(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProgressHandlerClientFramePing(t *testing.T) {
	h := NewProgressHandler(progress.NewHub(4), 0)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := bytes.NewBufferString(`{"type":"ping"}`)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/progress", body)
	c.Request.Header.Set("Content-Type", "application/json")
	withClaims(c, "user-2")

	h.ClientFrame(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), progress.TypePong)
}

func TestProgressHandlerClientFrameInvalidBody(t *testing.T) {
	h := NewProgressHandler(progress.NewHub(4), 0)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := bytes.NewBufferString(`{not json`)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/progress", body)
	c.Request.Header.Set("Content-Type", "application/json")
	withClaims(c, "user-3")

	h.ClientFrame(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
