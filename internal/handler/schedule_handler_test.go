package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/defense-scheduler/internal/runstore"
)

type fakeScheduleLister struct {
	rows        []runstore.ScheduleRow
	err         error
	lastArg     *bool
	lastArgSeen bool
}

func (f *fakeScheduleLister) ListSchedule(_ context.Context, isMakeup *bool) ([]runstore.ScheduleRow, error) {
	f.lastArg = isMakeup
	f.lastArgSeen = true
	return f.rows, f.err
}

func TestScheduleHandlerListAll(t *testing.T) {
	lister := &fakeScheduleLister{rows: []runstore.ScheduleRow{{ID: 1, ProjectID: 1}}}
	h := NewScheduleHandler(lister)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/schedule", nil)

	h.List(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, lister.lastArgSeen)
	assert.Nil(t, lister.lastArg)
}

func TestScheduleHandlerListFilteredByMakeup(t *testing.T) {
	lister := &fakeScheduleLister{rows: []runstore.ScheduleRow{{ID: 2, ProjectID: 2, IsMakeup: true}}}
	h := NewScheduleHandler(lister)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/schedule?is_makeup=true", nil)

	h.List(c)
	assert.Equal(t, http.StatusOK, w.Code)
	if assert.NotNil(t, lister.lastArg) {
		assert.True(t, *lister.lastArg)
	}
}

func TestScheduleHandlerListInvalidMakeupValue(t *testing.T) {
	lister := &fakeScheduleLister{}
	h := NewScheduleHandler(lister)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/schedule?is_makeup=notabool", nil)

	h.List(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleHandlerListRepositoryError(t *testing.T) {
	lister := &fakeScheduleLister{err: errors.New("db down")}
	h := NewScheduleHandler(lister)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/schedule", nil)

	h.List(c)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
