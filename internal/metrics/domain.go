package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	siteGenerations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "site_generations_total",
			Help:      "站点生成/重建/修订次数。",
		},
		[]string{"operation", "result"},
	)

	llmRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_requests_total",
			Help:      "LLM 调用次数。",
		},
		[]string{"operation", "result"},
	)
)

// Result 把错误折叠为 "success" / "error" 标签。
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// ObserveGeneration 记录一次站点流水线执行（generate / regenerate / revise / update_cv）。
func ObserveGeneration(operation string, err error) {
	siteGenerations.WithLabelValues(operation, Result(err)).Inc()
}

// ObserveLLM 记录一次 LLM 请求。
func ObserveLLM(operation string, err error) {
	llmRequests.WithLabelValues(operation, Result(err)).Inc()
}
