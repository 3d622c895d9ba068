package collectors

import (
	"fmt"
	"reflect"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/liftedinit/propchain/internal/models"
)

// StatsSource is the ledger view the collectors read on every scrape.
type StatsSource interface {
	Stats() models.LedgerStats
}

// Factory creates a collector reading from source.
type Factory[S any] func(source S) (prometheus.Collector, error)

// Registry holds the collector factories for one kind of source. Factories
// register themselves from init functions.
type Registry[S any] struct {
	name      string
	factories []Factory[S]
}

func NewRegistry[S any](name string) *Registry[S] {
	return &Registry[S]{name: name}
}

func (r *Registry[S]) Register(factory Factory[S]) {
	r.factories = append(r.factories, factory)
}

func (r *Registry[S]) Len() int {
	return len(r.factories)
}

// CreateCollectors instantiates every registered collector over source, in
// registration order.
func (r *Registry[S]) CreateCollectors(source S) ([]prometheus.Collector, error) {
	if isNil(source) {
		return nil, fmt.Errorf("%s is nil", r.name)
	}

	collectors := make([]prometheus.Collector, 0, len(r.factories))
	for i, factory := range r.factories {
		collector, err := factory(source)
		if err != nil {
			return nil, fmt.Errorf("%s collector %d: %w", r.name, i, err)
		}
		collectors = append(collectors, collector)
	}
	return collectors, nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Func:
		return rv.IsNil()
	}
	return false
}

// CollectorFactory builds a collector over the in-memory ledger.
type CollectorFactory = Factory[StatsSource]

var DefaultRegistry = NewRegistry[StatsSource]("stats source")

func RegisterCollectorFactory(factory CollectorFactory) {
	DefaultRegistry.Register(factory)
}
