package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/defense-scheduler/internal/algorithm"
	"github.com/noah-isme/defense-scheduler/internal/orchestrator"
	"github.com/noah-isme/defense-scheduler/internal/runstore"
	"github.com/noah-isme/defense-scheduler/internal/service"
	appErrors "github.com/noah-isme/defense-scheduler/pkg/errors"
	"github.com/noah-isme/defense-scheduler/pkg/response"
)

// RunFinder is the read side of orchestrator.ResultStore the handler
// needs for the result-retrieval RPC; repository.RunRepository
// satisfies it without the handler package importing repository.
type RunFinder interface {
	FindByID(ctx context.Context, id string) (*runstore.RunRecord, error)
}

// AlgorithmHandler exposes the algorithm-execute, result-retrieval and
// algorithm-list RPCs (§6) on top of the orchestrator.
type AlgorithmHandler struct {
	orch        *orchestrator.Service
	runs        RunFinder
	registry    *algorithm.Registry
	descriptors map[string][]algorithm.ParamDescriptor
	metrics     *service.MetricsService
}

// NewAlgorithmHandler constructs an algorithm handler. descriptors is
// the pkg/paramschema.Merge output (registry descriptors overlaid with
// any configs/algorithms.toml|yaml published defaults) so the HTTP
// Algorithm-list RPC and cmd/schedctl's "list" subcommand see the same
// overlay instead of the HTTP side reading the registry's raw,
// un-overlaid descriptors. A nil/empty map falls back to the registry's
// programmatic descriptors per tag, same as paramschema.Merge does when
// no published file exists.
func NewAlgorithmHandler(orch *orchestrator.Service, registry *algorithm.Registry, metrics *service.MetricsService, runs RunFinder, descriptors map[string][]algorithm.ParamDescriptor) *AlgorithmHandler {
	return &AlgorithmHandler{orch: orch, registry: registry, metrics: metrics, runs: runs, descriptors: descriptors}
}

type runAlgorithmRequest struct {
	Parameters map[string]any `json:"parameters"`
}

// Run handles POST /api/v1/algorithms/:tag/run (ValidationError -> 400
// listing available tags from Registry.Tags()).
func (h *AlgorithmHandler) Run(c *gin.Context) {
	tag := c.Param("tag")
	if !h.registry.Has(tag) {
		response.Error(c, appErrors.Wrap(nil, appErrors.ErrUnknownStrategy.Code, appErrors.ErrUnknownStrategy.Status, "unknown tag; available: "+strings.Join(h.registry.Tags(), ", ")))
		return
	}

	var req runAlgorithmRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
			return
		}
	}

	var userID *string
	if claims := claimsFromContext(c); claims != nil {
		id := claims.UserID
		userID = &id
	}

	start := time.Now()
	result, run, err := h.orch.RunAlgorithm(c.Request.Context(), tag, req.Parameters, userID)
	if h.metrics != nil {
		h.metrics.ObserveAlgorithmRun(tag, err == nil, time.Since(start))
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"run": run, "result": result}, nil)
}

// Result handles GET /api/v1/runs/:id.
func (h *AlgorithmHandler) Result(c *gin.Context) {
	run, err := h.runs.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "run not found"))
		return
	}
	response.JSON(c, http.StatusOK, run, nil)
}

// List handles GET /api/v1/algorithms.
func (h *AlgorithmHandler) List(c *gin.Context) {
	tags := h.registry.Tags()
	out := make([]gin.H, 0, len(tags))
	for _, tag := range tags {
		params := h.descriptors[tag]
		if params == nil {
			params = h.registry.Descriptors(tag)
		}
		out = append(out, gin.H{"tag": tag, "parameters": params})
	}
	response.JSON(c, http.StatusOK, out, nil)
}
