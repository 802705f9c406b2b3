package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/defense-scheduler/internal/runstore"
	appErrors "github.com/noah-isme/defense-scheduler/pkg/errors"
	"github.com/noah-isme/defense-scheduler/pkg/response"
)

// ScheduleLister is the read side of the persisted schedule the handler
// needs; repository.ScheduleResultRepository satisfies it.
type ScheduleLister interface {
	ListSchedule(ctx context.Context, isMakeup *bool) ([]runstore.ScheduleRow, error)
}

// ScheduleHandler exposes the persisted-schedule listing RPC (§6).
type ScheduleHandler struct {
	schedules ScheduleLister
}

// NewScheduleHandler constructs a schedule handler.
func NewScheduleHandler(schedules ScheduleLister) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules}
}

// List handles GET /api/v1/schedule?is_makeup=true|false.
func (h *ScheduleHandler) List(c *gin.Context) {
	var isMakeup *bool
	if raw := c.Query("is_makeup"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "is_makeup must be a boolean"))
			return
		}
		isMakeup = &parsed
	}

	rows, err := h.schedules.ListSchedule(c.Request.Context(), isMakeup)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}
