package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RepliesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_replies_total",
		Help: "Chat replies sent, by answering path and primary intent.",
	}, []string{"path", "intent"})

	DelegateFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_delegate_failures_total",
		Help: "Failed calls to the intent classifier or language model.",
	}, []string{"delegate"})

	TenantCacheRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_tenant_cache_requests_total",
		Help: "Tenant lookups through the cache, by result.",
	}, []string{"result"})

	ReplyDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chat_reply_duration_seconds",
		Help:    "Time to produce a chat reply.",
		Buckets: prometheus.DefBuckets,
	}, []string{"path"})
)

// ClassifierFailures counts failed classifier delegate calls.
func ClassifierFailures() prometheus.Counter {
	return DelegateFailuresTotal.WithLabelValues("classifier")
}

// ModelFailures counts failed language model calls.
func ModelFailures() prometheus.Counter {
	return DelegateFailuresTotal.WithLabelValues("llm")
}
