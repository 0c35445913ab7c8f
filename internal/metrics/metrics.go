package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics collects counters for the order-composition flow.
type StorefrontMetrics struct {
	ordersComposed     prometheus.Counter
	validationFailures *prometheus.CounterVec
	cartOperations     *prometheus.CounterVec
	orderTotal         prometheus.Histogram
	sessionsStarted    prometheus.Counter
}

// New registers the storefront metrics on the default registerer.
func New() *StorefrontMetrics {
	return newWithRegisterer(prometheus.DefaultRegisterer)
}

func newWithRegisterer(registerer prometheus.Registerer) *StorefrontMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &StorefrontMetrics{
		ordersComposed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "whatsfood_orders_composed_total",
			Help: "Total number of orders composed into deep links",
		}),
		validationFailures: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "whatsfood_validation_failures_total",
			Help: "Total number of order submissions rejected by validation",
		}, []string{"rule"}),
		cartOperations: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "whatsfood_cart_operations_total",
			Help: "Total number of cart add/remove operations",
		}, []string{"op"}),
		orderTotal: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "whatsfood_order_total_amount",
			Help:    "Distribution of composed order totals in currency units",
			Buckets: []float64{5, 10, 25, 50, 100, 250, 500},
		}),
		sessionsStarted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "whatsfood_sessions_started_total",
			Help: "Total number of cart sessions started",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

// RecordOrderComposed counts a composed order and observes its total, given
// in currency units (e.g. 25.98).
func (m *StorefrontMetrics) RecordOrderComposed(totalAmount float64) {
	m.ordersComposed.Inc()
	m.orderTotal.Observe(totalAmount)
}

// RecordValidationFailure counts a rejected submission by rule name.
func (m *StorefrontMetrics) RecordValidationFailure(rule string) {
	m.validationFailures.WithLabelValues(rule).Inc()
}

// RecordCartAdd counts an add-to-cart operation.
func (m *StorefrontMetrics) RecordCartAdd() {
	m.cartOperations.WithLabelValues("add").Inc()
}

// RecordCartRemove counts a remove-from-cart operation.
func (m *StorefrontMetrics) RecordCartRemove() {
	m.cartOperations.WithLabelValues("remove").Inc()
}

// RecordSessionStarted counts a freshly created cart session. Sessions expire
// server-side (Redis TTL) without a hook to observe, so this is a counter of
// starts rather than a gauge of live sessions.
func (m *StorefrontMetrics) RecordSessionStarted() {
	m.sessionsStarted.Inc()
}
