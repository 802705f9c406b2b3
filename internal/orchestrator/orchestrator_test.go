package orchestrator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/defense-scheduler/internal/algorithm"
	"github.com/noah-isme/defense-scheduler/internal/domain"
	"github.com/noah-isme/defense-scheduler/internal/fitness"
	"github.com/noah-isme/defense-scheduler/internal/runstore"
	appErrors "github.com/noah-isme/defense-scheduler/pkg/errors"
)

// fakeStrategy lets each test script the exact Result/error a tag
// produces, and counts how many times it actually ran (to assert
// memoization skips re-invocation).
type fakeStrategy struct {
	result   algorithm.Result
	err      error
	panicMsg string
	calls    *int
}

func (f *fakeStrategy) Initialize(context.Context, *domain.Snapshot, map[string]any) error { return nil }

func (f *fakeStrategy) Optimize(context.Context) (algorithm.Result, error) {
	if f.calls != nil {
		*f.calls++
	}
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	return f.result, f.err
}

func (f *fakeStrategy) EvaluateFitness([]domain.Assignment) float64 { return f.result.Fitness }
func (f *fakeStrategy) Category() fitness.AlgorithmCategory         { return fitness.CategorySearchDefault }

type fakeDataSource struct {
	snapshot *domain.Snapshot
	err      error
}

func (d *fakeDataSource) LoadSnapshot(context.Context, int) (*domain.Snapshot, error) {
	return d.snapshot, d.err
}

type fakeResultStore struct {
	mu          sync.Mutex
	created     []*runstore.RunRecord
	updated     []*runstore.RunRecord
	scheduleLen int
	createErr   error
	replaceErr  error
	updateErr   error
}

func (r *fakeResultStore) CreateRun(_ context.Context, run *runstore.RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, run)
	return r.createErr
}

func (r *fakeResultStore) UpdateRun(_ context.Context, run *runstore.RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updated = append(r.updated, run)
	return r.updateErr
}

func (r *fakeResultStore) ReplaceSchedule(_ context.Context, _ string, rows []runstore.ScheduleRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scheduleLen = len(rows)
	return r.replaceErr
}

type fakeCache struct {
	mu    sync.Mutex
	store map[string]algorithm.Result
}

func newFakeCache() *fakeCache { return &fakeCache{store: map[string]algorithm.Result{}} }

func (c *fakeCache) Get(_ context.Context, key string, dest any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	ptr, ok := dest.(*algorithm.Result)
	if !ok {
		return errors.New("unexpected dest type")
	}
	*ptr = v
	return nil
}

func (c *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	res, ok := value.(*algorithm.Result)
	if !ok {
		return errors.New("unexpected value type")
	}
	c.store[key] = *res
	return nil
}

func testSnapshot(t *testing.T) *domain.Snapshot {
	t.Helper()
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	snap, err := domain.NewSnapshot(
		[]domain.Project{{ID: 1, ResponsibleID: 10}},
		[]domain.Instructor{{ID: 10}},
		[]domain.Classroom{{ID: 1, Active: true}},
		[]domain.Timeslot{{ID: 1, Start: base}},
	)
	require.NoError(t, err)
	return snap
}

func successResult(tag string) algorithm.Result {
	return algorithm.Result{
		Assignments:  []domain.Assignment{{ProjectID: 1, ClassroomID: 1, TimeslotID: 1, InstructorIDs: []int{10}}},
		Fitness:      90,
		AlgorithmTag: tag,
		Status:       algorithm.StatusSuccess,
	}
}

func newRegistryWithTags(t *testing.T, tags map[string]*fakeStrategy) *algorithm.Registry {
	t.Helper()
	reg := algorithm.NewRegistry()
	for tag, strat := range tags {
		s := strat
		reg.Register(tag, func() algorithm.Strategy { return s }, nil)
	}
	return reg
}

func TestRunAlgorithmUnknownTag(t *testing.T) {
	reg := algorithm.NewRegistry()
	svc := NewService(reg, &fakeDataSource{}, &fakeResultStore{}, nil, nil, time.Minute, 1, nil)

	_, _, err := svc.RunAlgorithm(context.Background(), "nope", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown algorithm tag")
}

func TestRunAlgorithmSuccess(t *testing.T) {
	snap := testSnapshot(t)
	reg := newRegistryWithTags(t, map[string]*fakeStrategy{
		"greedy": {result: successResult("greedy")},
	})
	store := &fakeResultStore{}
	svc := NewService(reg, &fakeDataSource{snapshot: snap}, store, nil, nil, time.Minute, 1, nil)

	result, run, err := svc.RunAlgorithm(context.Background(), "greedy", nil, nil)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, runstore.StatusCompleted, run.Status)
	assert.Len(t, store.created, 1)
	assert.Len(t, store.updated, 1)
	assert.Equal(t, 1, store.scheduleLen)
	assert.False(t, run.FallbackUsed)
}

func TestRunAlgorithmDegenerateFallsBackToComprehensive(t *testing.T) {
	snap := testSnapshot(t)
	reg := newRegistryWithTags(t, map[string]*fakeStrategy{
		"flaky":         {result: algorithm.Result{Status: algorithm.StatusDegenerate}},
		"comprehensive": {result: successResult("comprehensive")},
	})
	store := &fakeResultStore{}
	svc := NewService(reg, &fakeDataSource{snapshot: snap}, store, nil, nil, time.Minute, 1, nil)

	result, run, err := svc.RunAlgorithm(context.Background(), "flaky", nil, nil)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, run.FallbackUsed)
	require.NotNil(t, run.FallbackFrom)
	assert.Equal(t, "flaky", *run.FallbackFrom)
}

func TestRunAlgorithmPSOExemptFromFallback(t *testing.T) {
	snap := testSnapshot(t)
	reg := newRegistryWithTags(t, map[string]*fakeStrategy{
		"pso":           {result: algorithm.Result{Status: algorithm.StatusDegenerate}},
		"comprehensive": {result: successResult("comprehensive")},
	})
	store := &fakeResultStore{}
	svc := NewService(reg, &fakeDataSource{snapshot: snap}, store, nil, nil, time.Minute, 1, nil)

	result, run, err := svc.RunAlgorithm(context.Background(), "pso", nil, nil)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, run.FallbackUsed)
	assert.Empty(t, result.Assignments)
}

func TestRunAlgorithmFallbackAlsoDegenerateFails(t *testing.T) {
	snap := testSnapshot(t)
	reg := newRegistryWithTags(t, map[string]*fakeStrategy{
		"flaky":         {result: algorithm.Result{Status: algorithm.StatusDegenerate}},
		"comprehensive": {result: algorithm.Result{Status: algorithm.StatusDegenerate}},
	})
	store := &fakeResultStore{}
	svc := NewService(reg, &fakeDataSource{snapshot: snap}, store, nil, nil, time.Minute, 1, nil)

	_, run, err := svc.RunAlgorithm(context.Background(), "flaky", nil, nil)
	require.Error(t, err)
	assert.Equal(t, runstore.StatusFailed, run.Status)
}

func TestRunAlgorithmStrategyPanicBecomesError(t *testing.T) {
	snap := testSnapshot(t)
	reg := newRegistryWithTags(t, map[string]*fakeStrategy{
		"boom":          {panicMsg: "kaboom"},
		"comprehensive": {result: algorithm.Result{Status: algorithm.StatusDegenerate}},
	})
	store := &fakeResultStore{}
	svc := NewService(reg, &fakeDataSource{snapshot: snap}, store, nil, nil, time.Minute, 1, nil)

	_, run, err := svc.RunAlgorithm(context.Background(), "boom", nil, nil)
	require.Error(t, err)
	assert.Equal(t, runstore.StatusFailed, run.Status)
}

func TestRunAlgorithmMemoizationSkipsSecondInvocation(t *testing.T) {
	snap := testSnapshot(t)
	calls := 0
	reg := newRegistryWithTags(t, map[string]*fakeStrategy{
		"greedy": {result: successResult("greedy"), calls: &calls},
	})
	store := &fakeResultStore{}
	cache := newFakeCache()
	svc := NewService(reg, &fakeDataSource{snapshot: snap}, store, nil, cache, time.Minute, 1, nil)

	_, _, err := svc.RunAlgorithm(context.Background(), "greedy", nil, nil)
	require.NoError(t, err)
	_, _, err = svc.RunAlgorithm(context.Background(), "greedy", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, calls, "second run should hit the memoization cache instead of re-invoking the strategy")
}

func TestRunAlgorithmLoadSnapshotError(t *testing.T) {
	reg := newRegistryWithTags(t, map[string]*fakeStrategy{"greedy": {result: successResult("greedy")}})
	store := &fakeResultStore{}
	svc := NewService(reg, &fakeDataSource{err: errors.New("db down")}, store, nil, nil, time.Minute, 1, nil)

	_, run, err := svc.RunAlgorithm(context.Background(), "greedy", nil, nil)
	require.Error(t, err)
	assert.Equal(t, runstore.StatusFailed, run.Status)
}

func TestRunAlgorithmCreateRunError(t *testing.T) {
	reg := newRegistryWithTags(t, map[string]*fakeStrategy{"greedy": {result: successResult("greedy")}})
	store := &fakeResultStore{createErr: errors.New("insert failed")}
	svc := NewService(reg, &fakeDataSource{snapshot: testSnapshot(t)}, store, nil, nil, time.Minute, 1, nil)

	_, _, err := svc.RunAlgorithm(context.Background(), "greedy", nil, nil)
	require.Error(t, err)
}
