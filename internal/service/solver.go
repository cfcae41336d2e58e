// Package service implements the solver service layer: request validation,
// result caching, metrics and tracing around the network simplex core.
package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"mcflow/internal/converter"
	"mcflow/internal/simplex"
	"mcflow/pkg/apperror"
	"mcflow/pkg/cache"
	"mcflow/pkg/config"
	"mcflow/pkg/logger"
	"mcflow/pkg/metrics"
	"mcflow/pkg/telemetry"
)

// SolverService exposes minimum-cost flow solving over request DTOs.
type SolverService struct {
	version     string
	defaultRule simplex.PivotRule
	maxNodes    int
	maxArcs     int
	metrics     *metrics.Metrics
	solverCache *cache.SolverCache
}

// NewSolverService builds the service from the solver configuration.
// The cache may be nil, which disables result caching.
func NewSolverService(cfg *config.Config, m *metrics.Metrics, solverCache *cache.SolverCache) *SolverService {
	defaultRule, err := converter.ParsePivotRule(cfg.Solver.DefaultPivotRule, simplex.BlockSearch)
	if err != nil {
		logger.Warn("Unknown default pivot rule, falling back to block search",
			"rule", cfg.Solver.DefaultPivotRule)
	}
	return &SolverService{
		version:     cfg.App.Version,
		defaultRule: defaultRule,
		maxNodes:    cfg.Solver.MaxNodes,
		maxArcs:     cfg.Solver.MaxArcs,
		metrics:     m,
		solverCache: solverCache,
	}
}

// PivotRules returns the wire names of the supported pivot rules.
func (s *SolverService) PivotRules() []string {
	return []string{
		simplex.FirstEligible.String(),
		simplex.BestEligible.String(),
		simplex.BlockSearch.String(),
		simplex.CandidateList.String(),
		simplex.AlteringList.String(),
	}
}

// Solve validates the request, runs the solver and returns the outcome.
// Infeasible and unbounded classifications are ordinary responses, not
// errors; errors signal invalid input or internal failures.
func (s *SolverService) Solve(ctx context.Context, req *converter.ProblemRequest) (*converter.SolveResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "SolverService.Solve")
	defer span.End()

	if err := s.validate(req); err != nil {
		telemetry.SetError(ctx, err)
		return nil, err
	}

	rule, _ := converter.ParsePivotRule(req.PivotRule, s.defaultRule)
	problemType, _ := converter.ParseProblemType(req.ProblemType)
	telemetry.SetAttributes(ctx, telemetry.ProblemAttributes(problemType.String(), rule.String())...)
	telemetry.SetAttributes(ctx, telemetry.GraphAttributes(req.NodeCount, len(req.Arcs))...)

	// Проверяем кэш
	problemHash := ""
	if s.solverCache != nil {
		problemHash = cache.ProblemHash(converter.Canonical(req))
		cached, found, err := s.solverCache.Get(ctx, problemHash, rule.String())
		if s.metrics != nil {
			s.metrics.RecordCacheLookup(found)
		}
		if err == nil && found {
			telemetry.AddEvent(ctx, "cache_hit",
				attribute.Bool(telemetry.AttrCacheHit, true))
			return cachedResponse(req, cached), nil
		}
		if err != nil {
			logger.Warn("Cache lookup failed, solving from scratch", "error", err)
		}
	}

	// Решение
	start := time.Now()
	problem := converter.ToProblem(req)
	ns := problem.Bind(simplex.NewNetworkSimplex(problem.Graph))
	ns.Run(rule)
	elapsed := time.Since(start)

	resp := converter.FromSolution(ns, problem.Graph)
	resp.ComputationTimeMs = float64(elapsed.Microseconds()) / 1000.0

	telemetry.SetAttributes(ctx,
		telemetry.SolveAttributes(resp.Status, resp.Pivots, float64(resp.TotalCost))...)

	// Записываем метрики
	if s.metrics != nil {
		s.metrics.RecordGraphSize("solve", req.NodeCount, len(req.Arcs))
		s.metrics.RecordSolveOperation(problemType.String(), rule.String(),
			resp.Status, elapsed, resp.Pivots, float64(resp.TotalCost))
	}

	logger.Log.Info("Solve finished",
		"status", resp.Status,
		"problem_type", problemType.String(),
		"pivot_rule", rule.String(),
		"nodes", req.NodeCount,
		"arcs", len(req.Arcs),
		"pivots", resp.Pivots,
		"total_cost", resp.TotalCost,
		"elapsed", elapsed,
	)

	// Сохраняем в кэш только оптимальные решения
	if s.solverCache != nil && resp.Optimal {
		if err := s.solverCache.Set(ctx, problemHash, rule.String(), toCached(resp), 0); err != nil {
			logger.Warn("Failed to cache solve result", "error", err)
		}
	}

	return resp, nil
}

// validate checks the structural integrity of the request.
func (s *SolverService) validate(req *converter.ProblemRequest) error {
	if req == nil {
		return apperror.New(apperror.CodeNilInput, "request body is required")
	}
	if req.NodeCount <= 0 {
		return apperror.NewWithField(apperror.CodeEmptyGraph,
			"the graph needs at least one node", "node_count")
	}
	if s.maxNodes > 0 && req.NodeCount > s.maxNodes {
		return apperror.Newf(apperror.CodeGraphTooLarge,
			"node count %d exceeds the limit %d", req.NodeCount, s.maxNodes).
			WithField("node_count")
	}
	if s.maxArcs > 0 && len(req.Arcs) > s.maxArcs {
		return apperror.Newf(apperror.CodeGraphTooLarge,
			"arc count %d exceeds the limit %d", len(req.Arcs), s.maxArcs).
			WithField("arcs")
	}

	for i, a := range req.Arcs {
		if a.Source < 0 || a.Source >= req.NodeCount || a.Target < 0 || a.Target >= req.NodeCount {
			return apperror.Newf(apperror.CodeDanglingArc,
				"arc %d connects %d and %d, outside the node range", i, a.Source, a.Target).
				WithField("arcs").WithDetails("arc", i)
		}
		if a.Upper != nil && a.Lower > *a.Upper {
			return apperror.Newf(apperror.CodeBoundRange,
				"arc %d has lower bound %d above upper bound %d", i, a.Lower, *a.Upper).
				WithField("arcs").WithDetails("arc", i)
		}
	}

	hasST := req.Source != nil || req.Target != nil
	if hasST {
		if req.Source == nil || req.Target == nil {
			return apperror.New(apperror.CodeInvalidSupply,
				"source and target must be set together").WithField("source")
		}
		if len(req.Supplies) > 0 {
			return apperror.New(apperror.CodeSupplyConflict,
				"supplies and a source-target pair are mutually exclusive").WithField("supplies")
		}
		if *req.Source < 0 || *req.Source >= req.NodeCount {
			return apperror.Newf(apperror.CodeUnknownNode,
				"source node %d is outside the node range", *req.Source).WithField("source")
		}
		if *req.Target < 0 || *req.Target >= req.NodeCount {
			return apperror.Newf(apperror.CodeUnknownNode,
				"target node %d is outside the node range", *req.Target).WithField("target")
		}
		if req.Quantity < 0 {
			return apperror.Newf(apperror.CodeInvalidSupply,
				"quantity must be non-negative, got %d", req.Quantity).WithField("quantity")
		}
	}

	for i, sp := range req.Supplies {
		if sp.Node < 0 || sp.Node >= req.NodeCount {
			return apperror.Newf(apperror.CodeUnknownNode,
				"supply %d references node %d, outside the node range", i, sp.Node).
				WithField("supplies").WithDetails("supply", i)
		}
	}

	if _, err := converter.ParseProblemType(req.ProblemType); err != nil {
		return apperror.Wrap(err, apperror.CodeInvalidForm,
			"problem type must be EQ, GEQ or LEQ").WithField("problem_type")
	}
	if _, err := converter.ParsePivotRule(req.PivotRule, s.defaultRule); err != nil {
		return apperror.Wrap(err, apperror.CodeInvalidPivot,
			"unknown pivot rule").WithField("pivot_rule")
	}

	return nil
}

// toCached converts a response into its cache representation.
func toCached(resp *converter.SolveResponse) *cache.CachedSolveResult {
	cached := &cache.CachedSolveResult{
		Status:     resp.Status,
		TotalCost:  resp.TotalCost,
		Pivots:     resp.Pivots,
		ComputedAt: time.Now().UTC(),
	}
	for _, f := range resp.Flows {
		cached.Flows = append(cached.Flows, cache.CachedArcFlow{Arc: f.Arc, Flow: f.Flow})
	}
	for _, p := range resp.Potentials {
		cached.Potentials = append(cached.Potentials, cache.CachedPotential{
			Node: p.Node, Potential: p.Potential,
		})
	}
	return cached
}

// cachedResponse rebuilds a full response from the cache entry; the arc
// endpoints come from the request, which hashes to the same problem.
func cachedResponse(req *converter.ProblemRequest, cached *cache.CachedSolveResult) *converter.SolveResponse {
	resp := &converter.SolveResponse{
		Status:    cached.Status,
		Optimal:   cached.Status == simplex.StatusOptimal.String(),
		TotalCost: cached.TotalCost,
		Pivots:    cached.Pivots,
		Cached:    true,
	}
	for _, f := range cached.Flows {
		arc := req.Arcs[f.Arc]
		resp.Flows = append(resp.Flows, converter.ArcFlow{
			Arc:    f.Arc,
			Source: arc.Source,
			Target: arc.Target,
			Flow:   f.Flow,
		})
	}
	for _, p := range cached.Potentials {
		resp.Potentials = append(resp.Potentials, converter.NodePotential{
			Node: p.Node, Potential: p.Potential,
		})
	}
	return resp
}
