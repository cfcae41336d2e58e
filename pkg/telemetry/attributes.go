package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Стандартные ключи атрибутов
const (
	// Граф
	AttrGraphNodes = "graph.nodes"
	AttrGraphArcs  = "graph.arcs"

	// Задача
	AttrProblemType = "problem.type"
	AttrPivotRule   = "problem.pivot_rule"

	// Решение
	AttrStatus    = "solve.status"
	AttrPivots    = "solve.pivots"
	AttrTotalCost = "solve.total_cost"
	AttrCacheHit  = "solve.cache_hit"
)

// GraphAttributes возвращает атрибуты графа
func GraphAttributes(nodes, arcs int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(AttrGraphNodes, nodes),
		attribute.Int(AttrGraphArcs, arcs),
	}
}

// ProblemAttributes возвращает атрибуты задачи
func ProblemAttributes(problemType, pivotRule string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrProblemType, problemType),
		attribute.String(AttrPivotRule, pivotRule),
	}
}

// SolveAttributes возвращает атрибуты решения
func SolveAttributes(status string, pivots int, totalCost float64) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrStatus, status),
		attribute.Int(AttrPivots, pivots),
		attribute.Float64(AttrTotalCost, totalCost),
	}
}
