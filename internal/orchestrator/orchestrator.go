// Package orchestrator implements the algorithm run lifecycle (§4.5):
// tag resolution, snapshot loading, strategy execution, degenerate
// fallback, bounded post-processing, diagnostics, sanitization and
// persistence. It is the single place that knows how all of C1-C8 fit
// together; everything it depends on is a narrow interface so it can be
// tested without Postgres or Redis.
package orchestrator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/defense-scheduler/internal/algorithm"
	"github.com/noah-isme/defense-scheduler/internal/domain"
	"github.com/noah-isme/defense-scheduler/internal/progress"
	"github.com/noah-isme/defense-scheduler/internal/runstore"
	"github.com/noah-isme/defense-scheduler/internal/solutionutil"
	appErrors "github.com/noah-isme/defense-scheduler/pkg/errors"
)

// DataSource loads the read-only snapshot a run operates on (§9 Design
// Notes narrow trait #1).
type DataSource interface {
	LoadSnapshot(ctx context.Context, classroomCount int) (*domain.Snapshot, error)
}

// ResultStore persists RunRecords and the derived schedule rows (§9
// Design Notes narrow trait #2, §4.7).
type ResultStore interface {
	CreateRun(ctx context.Context, run *runstore.RunRecord) error
	UpdateRun(ctx context.Context, run *runstore.RunRecord) error
	ReplaceSchedule(ctx context.Context, runID string, rows []runstore.ScheduleRow) error
}

// Cache memoizes a strategy's algorithm.Result, keyed by a hash of the
// algorithm tag, the parameters and the snapshot (see memoKey).
// It is optional: a nil Cache (or one backed by an unreachable Redis)
// degrades to always-miss without failing the run.
type Cache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Service wires the registry and its two storage traits into the
// RunAlgorithm lifecycle. A single Service is safe for concurrent
// distinct RunAlgorithm calls: there is no run-global lock, only
// ResultStore's own clear-then-insert transaction serializes writes.
type Service struct {
	registry     *algorithm.Registry
	dataSource   DataSource
	resultStore  ResultStore
	progressHub  *progress.Hub
	cache        Cache
	cacheTTL     time.Duration
	logger       *zap.Logger
	defaultRooms int
}

// NewService constructs the orchestrator. progressHub and cache may be
// nil; a nil progressHub skips all progress emission (§4.6: "advisory").
func NewService(registry *algorithm.Registry, dataSource DataSource, resultStore ResultStore, progressHub *progress.Hub, cache Cache, cacheTTL time.Duration, defaultRooms int, logger *zap.Logger) *Service {
	if defaultRooms <= 0 {
		defaultRooms = 7
	}
	return &Service{
		registry:     registry,
		dataSource:   dataSource,
		resultStore:  resultStore,
		progressHub:  progressHub,
		cache:        cache,
		cacheTTL:     cacheTTL,
		defaultRooms: defaultRooms,
		logger:       logger,
	}
}

func (s *Service) emit(userID *string, frame progress.Frame) {
	if s.progressHub == nil || userID == nil {
		return
	}
	s.progressHub.Publish(*userID, frame)
}

// RunAlgorithm executes §4.5 steps 1-15 for one algorithm tag.
func (s *Service) RunAlgorithm(ctx context.Context, tag string, params map[string]any, userID *string) (*algorithm.Result, *runstore.RunRecord, error) {
	// Step 1: normalize tag; unknown tag => ValidationError.
	if !s.registry.Has(tag) {
		return nil, nil, appErrors.Wrap(fmt.Errorf("tag %q not in %v", tag, s.registry.Tags()), appErrors.ErrUnknownStrategy.Code, appErrors.ErrUnknownStrategy.Status, appErrors.ErrUnknownStrategy.Message)
	}
	if params == nil {
		params = map[string]any{}
	}

	started := time.Now()
	run := &runstore.RunRecord{
		ID:           uuid.NewString(),
		AlgorithmTag: tag,
		Status:       runstore.StatusRunning,
		StartedAt:    started,
		UserID:       userID,
	}
	if raw, err := marshalJSON(params); err == nil {
		run.Parameters = raw
	}

	// Step 2: persist RunRecord with status=running.
	if err := s.resultStore.CreateRun(ctx, run); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, appErrors.ErrPersistence.Message)
	}

	// Step 3: emit "starting" (0%).
	s.emit(userID, progress.Frame{Type: progress.TypeAlgorithmProgress, Data: map[string]any{"run_id": run.ID, "tag": tag, "phase": "starting", "percent": 0}})

	result, err := s.execute(ctx, run, tag, params, userID)
	if err != nil {
		s.failRun(ctx, run, err)
		s.emit(userID, progress.Frame{Type: progress.TypeAlgorithmError, Message: err.Error()})
		return nil, run, err
	}

	s.emit(userID, progress.Frame{Type: progress.TypeAlgorithmComplete, Data: result})
	return result, run, nil
}

// execute is steps 4-14; any error here is routed through the fallback
// path by RunAlgorithm's caller-visible failRun (step 15).
func (s *Service) execute(ctx context.Context, run *runstore.RunRecord, tag string, params map[string]any, userID *string) (*algorithm.Result, error) {
	classroomCount := s.defaultRooms
	if v, ok := params["classroom_count"]; ok {
		if n, ok2 := toInt(v); ok2 && n > 0 {
			classroomCount = n
		}
	}

	// Step 4: load the snapshot.
	snapshot, err := s.dataSource.LoadSnapshot(ctx, classroomCount)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "failed to load snapshot")
	}
	if len(snapshot.Projects) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "snapshot has no schedulable projects")
	}
	if err := preflightResponsibleInstructors(snapshot); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}

	// Step 5: merge classroom_count and params into snapshot extras.
	snapshot.Extras["classroom_count"] = classroomCount
	for k, v := range params {
		snapshot.Extras[k] = v
	}

	if raw, err := marshalJSON(map[string]any{"classroom_count": classroomCount, "project_count": len(snapshot.Projects)}); err == nil {
		run.Data = raw
	}

	// Step 6: instantiate and run the strategy, memoized by a content
	// hash of tag+params+snapshot when a Cache is configured (§9
	// "Caching... advisory, not required for correctness").
	s.emit(userID, progress.Frame{Type: progress.TypeAlgorithmProgress, Data: map[string]any{"run_id": run.ID, "tag": tag, "phase": "running", "percent": 10}})

	memoKey := s.memoKey(tag, snapshot, params)
	var result *algorithm.Result
	var usedFallback bool
	var fallbackFrom string
	if s.cache != nil && memoKey != "" {
		var cached algorithm.Result
		if cacheErr := s.cache.Get(ctx, memoKey, &cached); cacheErr == nil {
			result = &cached
			s.emit(userID, progress.Frame{Type: progress.TypeAlgorithmProgress, Data: map[string]any{"run_id": run.ID, "tag": tag, "phase": "memoized", "percent": 80}})
		}
	}
	if result == nil {
		result, usedFallback, fallbackFrom, err = s.runWithFallback(ctx, tag, snapshot, params)
		if err != nil {
			return nil, err
		}
		if s.cache != nil && memoKey != "" && !usedFallback {
			if setErr := s.cache.Set(ctx, memoKey, result, s.cacheTTL); setErr != nil && s.logger != nil {
				s.logger.Warn("failed to memoize algorithm result", zap.String("run_id", run.ID), zap.Error(setErr))
			}
		}
	}

	// Step 8: bounded post-processing loop.
	result.Assignments = s.postProcess(snapshot, result.Assignments)

	// Step 9: diagnostic reports.
	gapReport := solutionutil.DetectGaps(snapshot, result.Assignments)
	policySummary := buildPolicySummary(snapshot, result.Assignments)

	// Step 10: global dedup pass.
	result.Assignments, _ = solutionutil.Dedup(snapshot, result.Assignments)

	stats := map[string]any{}
	for k, v := range result.Stats {
		stats[k] = v
	}
	stats["gap_report"] = gapReport
	stats["policy_summary"] = policySummary
	if usedFallback {
		stats["fallback_used"] = true
		stats["fallback_from"] = fallbackFrom
		run.FallbackUsed = true
		run.FallbackFrom = &fallbackFrom
	}
	result.Stats = stats

	// Step 11+12: sanitize, compute execution time, complete RunRecord.
	resultJSON, err := marshalJSON(sanitize(result))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrPostProcessing.Code, appErrors.ErrPostProcessing.Status, "failed to marshal sanitized result")
	}
	result.ExecutionTime = time.Since(run.StartedAt)
	run.ExecutionTimeSeconds = result.ExecutionTime.Seconds()
	run.Result = resultJSON
	run.Status = runstore.StatusCompleted
	completed := time.Now()
	run.CompletedAt = &completed

	// Step 13: persist final schedule (clear-then-insert).
	rows := toScheduleRows(result.Assignments)
	if err := s.resultStore.ReplaceSchedule(ctx, run.ID, rows); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, appErrors.ErrPersistence.Message)
	}
	if err := s.resultStore.UpdateRun(ctx, run); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, appErrors.ErrPersistence.Message)
	}

	return result, nil
}

// runWithFallback is step 7: detect a degenerate/errored result and, for
// every tag except pso, retry once with comprehensive.
func (s *Service) runWithFallback(ctx context.Context, tag string, snapshot *domain.Snapshot, params map[string]any) (*algorithm.Result, bool, string, error) {
	result, err := s.runStrategy(ctx, tag, snapshot, params)
	if err == nil && !result.Degenerate() {
		return result, false, "", nil
	}
	if tag == "pso" {
		// PSO is exempted from fallback-on-degenerate (§4.4/§4.5 step 7).
		if err != nil {
			return nil, false, "", appErrors.Wrap(err, appErrors.ErrStrategyException.Code, appErrors.ErrStrategyException.Status, appErrors.ErrStrategyException.Message)
		}
		return result, false, "", nil
	}

	fallback, fbErr := s.runStrategy(ctx, "comprehensive", snapshot, params)
	if fbErr != nil || fallback.Degenerate() {
		cause := err
		if cause == nil {
			cause = fmt.Errorf("strategy %q returned a degenerate solution", tag)
		}
		return nil, false, "", appErrors.Wrap(cause, appErrors.ErrFallbackFailure.Code, appErrors.ErrFallbackFailure.Status, appErrors.ErrFallbackFailure.Message)
	}
	return fallback, true, tag, nil
}

// runStrategy builds, initializes and runs one strategy instance,
// converting a panic or Initialize error into StrategyException.
func (s *Service) runStrategy(ctx context.Context, tag string, snapshot *domain.Snapshot, params map[string]any) (result *algorithm.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("strategy %q panicked: %v", tag, r)
		}
	}()

	strategy, buildErr := s.registry.Get(tag)
	if buildErr != nil {
		return nil, buildErr
	}
	if initErr := strategy.Initialize(ctx, snapshot, params); initErr != nil {
		return nil, initErr
	}
	res, optErr := strategy.Optimize(ctx)
	if optErr != nil {
		return nil, optErr
	}
	return &res, nil
}

// memoKey hashes tag+params+snapshot contents into a stable cache key.
// A marshal failure degrades to an empty key, which callers treat as
// "do not memoize" rather than an error.
func (s *Service) memoKey(tag string, snapshot *domain.Snapshot, params map[string]any) string {
	payload, err := json.Marshal(struct {
		Tag         string              `json:"tag"`
		Params      map[string]any      `json:"params"`
		Projects    []domain.Project    `json:"projects"`
		Instructors []domain.Instructor `json:"instructors"`
		Classrooms  []domain.Classroom  `json:"classrooms"`
		Timeslots   []domain.Timeslot   `json:"timeslots"`
	}{tag, params, snapshot.Projects, snapshot.Instructors, snapshot.Classrooms, snapshot.Timeslots})
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(payload)
	return "algorithm_run:" + hex.EncodeToString(sum[:])
}

func (s *Service) failRun(ctx context.Context, run *runstore.RunRecord, cause error) {
	msg := cause.Error()
	run.Status = runstore.StatusFailed
	run.Error = &msg
	completed := time.Now()
	run.CompletedAt = &completed
	run.ExecutionTimeSeconds = time.Since(run.StartedAt).Seconds()
	if err := s.resultStore.UpdateRun(ctx, run); err != nil && s.logger != nil {
		s.logger.Error("failed to persist failed run", zap.String("run_id", run.ID), zap.Error(err))
	}
}

func preflightResponsibleInstructors(snapshot *domain.Snapshot) error {
	for _, p := range snapshot.Projects {
		if _, ok := snapshot.Instructor(p.ResponsibleID); !ok {
			return fmt.Errorf("project %d has no resolvable responsible instructor", p.ID)
		}
	}
	return nil
}

func toScheduleRows(assignments []domain.Assignment) []runstore.ScheduleRow {
	rows := make([]runstore.ScheduleRow, 0, len(assignments))
	for _, a := range assignments {
		rows = append(rows, runstore.ScheduleRow{
			ProjectID:     a.ProjectID,
			ClassroomID:   a.ClassroomID,
			TimeslotID:    a.TimeslotID,
			IsMakeup:      a.IsMakeup,
			InstructorIDs: a.InstructorIDs,
		})
	}
	return rows
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
