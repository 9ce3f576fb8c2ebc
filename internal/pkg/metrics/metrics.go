// Package metrics 提供 Prometheus 指标采集功能
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "myzai"

var (
	// HTTP 请求指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "path"},
	)

	// AI 调用指标，operation: lyrics/art/chat
	AICallTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ai",
			Name:      "call_total",
			Help:      "Total number of generative AI calls",
		},
		[]string{"operation", "status"},
	)

	AICallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ai",
			Name:      "call_duration_seconds",
			Help:      "Generative AI call duration in seconds",
			Buckets:   []float64{.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		},
		[]string{"operation"},
	)

	AITokensUsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ai",
			Name:      "tokens_used_total",
			Help:      "Total tokens used for text generation",
		},
		[]string{"operation", "type"}, // type: prompt/completion
	)

	// 忙碌标记拒绝的请求
	BusyRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "studio",
			Name:      "busy_rejected_total",
			Help:      "Requests rejected because the same action was already in flight",
		},
		[]string{"action"},
	)
)

// RecordAICall 记录一次 AI 调用
func RecordAICall(operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	AICallTotal.WithLabelValues(operation, status).Inc()
	AICallDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// RecordTokens 记录 token 用量
func RecordTokens(operation string, promptTokens, completionTokens int) {
	if promptTokens > 0 {
		AITokensUsed.WithLabelValues(operation, "prompt").Add(float64(promptTokens))
	}
	if completionTokens > 0 {
		AITokensUsed.WithLabelValues(operation, "completion").Add(float64(completionTokens))
	}
}
