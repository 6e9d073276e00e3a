package zdd

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// engineInstruments holds the OpenTelemetry instruments an Engine
// reports through when constructed with WithMeter. All counters carry
// a zdd.engine_id attribute so metrics from several engines sharing
// one meter don't collide.
type engineInstruments struct {
	engineAttr   attribute.KeyValue
	nodesCreated metric.Int64Counter
	cacheHits    metric.Int64Counter
	cacheMisses  metric.Int64Counter
}

func newEngineInstruments(m metric.Meter, engineID string) *engineInstruments {
	if m == nil {
		return nil
	}
	nodesCreated, err := m.Int64Counter(
		"zdd.nodes_created",
		metric.WithDescription("internal ZDD nodes allocated by this engine"),
	)
	if err != nil {
		panic(err)
	}
	cacheHits, err := m.Int64Counter(
		"zdd.op_cache_hits",
		metric.WithDescription("binary-operation cache hits, by operation"),
	)
	if err != nil {
		panic(err)
	}
	cacheMisses, err := m.Int64Counter(
		"zdd.op_cache_misses",
		metric.WithDescription("binary-operation cache misses, by operation"),
	)
	if err != nil {
		panic(err)
	}
	return &engineInstruments{
		engineAttr:   attribute.String("zdd.engine_id", engineID),
		nodesCreated: nodesCreated,
		cacheHits:    cacheHits,
		cacheMisses:  cacheMisses,
	}
}

// opAttr tags a counter increment with the operation that produced it
// (union, intersection, difference, symmetric_difference).
func opAttr(op string) attribute.KeyValue {
	return attribute.String("zdd.op", op)
}
