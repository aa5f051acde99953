package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "flickfusion_chat_rate_limited_total",
			Help: "Chat requests rejected by the per-client rate limiter",
		},
	)

	mcpCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flickfusion_mcp_tool_calls_total",
			Help: "MCP tool calls by tool name",
		},
		[]string{"tool"},
	)
)
