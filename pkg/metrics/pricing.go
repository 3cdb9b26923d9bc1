package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// QuoteMetrics records storefront pricing quotes.
type QuoteMetrics struct {
	quotes  *prometheus.CounterVec
	savings prometheus.Histogram
}

var savingsBuckets = []float64{0, 10, 25, 50, 100, 250, 500, 1000}

// NewQuoteMetrics registers the quote metrics on the provided registerer.
func NewQuoteMetrics(reg prometheus.Registerer, namespace string) *QuoteMetrics {
	if reg == nil {
		return &QuoteMetrics{}
	}
	quotes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pricing_quotes_total",
		Help:      "Pricing quotes by outcome.",
	}, []string{"outcome"})
	savings := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "pricing_quote_savings",
		Help:      "Savings granted by successful quotes, in currency units.",
		Buckets:   savingsBuckets,
	})
	reg.MustRegister(quotes, savings)
	return &QuoteMetrics{quotes: quotes, savings: savings}
}

// RecordQuote counts a quote and, on success, observes its savings.
func (q *QuoteMetrics) RecordQuote(outcome string, savings float64) {
	if q == nil || q.quotes == nil {
		return
	}
	q.quotes.WithLabelValues(normalizeLabel(outcome)).Inc()
	if outcome == "success" {
		q.savings.Observe(savings)
	}
}
