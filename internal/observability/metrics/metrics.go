package metrics

import "github.com/prometheus/client_golang/prometheus"

// ConversationMetrics exposes counters/histograms for the booking chat flow.
type ConversationMetrics struct {
	turnsTotal    *prometheus.CounterVec
	bookingsTotal *prometheus.CounterVec
	llmLatency    *prometheus.HistogramVec
}

func NewConversationMetrics(reg prometheus.Registerer) *ConversationMetrics {
	m := &ConversationMetrics{
		turnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "frontdesk",
			Subsystem: "conversation",
			Name:      "turns_total",
			Help:      "Total conversational turns processed",
		}, []string{"channel", "result"}),
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "frontdesk",
			Subsystem: "conversation",
			Name:      "bookings_total",
			Help:      "Total appointments booked through the chat",
		}, []string{"service", "source"}),
		llmLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "frontdesk",
			Subsystem: "conversation",
			Name:      "llm_latency_seconds",
			Help:      "Latency of external model round-trips",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.turnsTotal, m.bookingsTotal, m.llmLatency)
	return m
}

// ObserveTurn records a processed turn. Result is one of "text",
// "tool_calls" or "fallback".
func (m *ConversationMetrics) ObserveTurn(channel, result string) {
	if m == nil {
		return
	}
	m.turnsTotal.WithLabelValues(channel, result).Inc()
}

func (m *ConversationMetrics) ObserveBooking(service, source string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(service, source).Inc()
}

func (m *ConversationMetrics) ObserveLLMLatency(provider string, seconds float64) {
	if m == nil {
		return
	}
	m.llmLatency.WithLabelValues(provider).Observe(seconds)
}
