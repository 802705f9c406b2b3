package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/defense-scheduler/internal/progress"
	appErrors "github.com/noah-isme/defense-scheduler/pkg/errors"
	"github.com/noah-isme/defense-scheduler/pkg/response"
)

// ProgressHandler serves the per-user progress stream (§4.6) over
// server-sent events rather than a websocket, matching the teacher's
// habit of hand-rolled gin handlers over pulling in a new transport
// dependency the rest of the codebase doesn't use.
type ProgressHandler struct {
	hub          *progress.Hub
	pingInterval time.Duration
}

// NewProgressHandler constructs a progress handler.
func NewProgressHandler(hub *progress.Hub, pingInterval time.Duration) *ProgressHandler {
	if pingInterval <= 0 {
		pingInterval = 20 * time.Second
	}
	return &ProgressHandler{hub: hub, pingInterval: pingInterval}
}

// Stream handles GET /api/v1/progress: an SSE stream of Frame events
// for the authenticated caller, replaying the last known frame
// immediately so a late subscriber catches up (§4.6).
func (h *ProgressHandler) Stream(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	userID := claims.UserID

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "streaming unsupported"))
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	frames, unsubscribe := h.hub.Subscribe(userID)
	defer unsubscribe()

	if last, ok := h.hub.LastFrame(userID); ok {
		writeFrame(c.Writer, last)
		flusher.Flush()
	}

	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case frame, open := <-frames:
			if !open {
				return
			}
			writeFrame(c.Writer, frame)
			flusher.Flush()
		case <-ticker.C:
			writeFrame(c.Writer, progress.Frame{Type: progress.TypePong})
			flusher.Flush()
		}
	}
}

// ClientFrame handles the client-to-server half of §4.6
// (ping/get_progress/subscribe_algorithm) for callers that can't hold
// the SSE connection open and poll instead.
func (h *ProgressHandler) ClientFrame(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var in progress.ClientFrame
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid frame"))
		return
	}

	out := h.hub.HandleClientFrame(claims.UserID, in)
	response.JSON(c, http.StatusOK, out, nil)
}

func writeFrame(w http.ResponseWriter, frame progress.Frame) {
	raw, err := json.Marshal(frame)
	if err != nil {
		return
	}
	_, _ = w.Write([]byte("data: "))
	_, _ = w.Write(raw)
	_, _ = w.Write([]byte("\n\n"))
}
