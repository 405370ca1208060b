// Package observability provides metrics and tracing instrumentation.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lifeline_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// MailSendTotal counts outbound notification emails by result.
	MailSendTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lifeline_mail_send_total",
		Help: "Total number of notification email attempts by result",
	}, []string{"kind", "result"})

	// ContactRequestsTotal counts contact-request workflow events by outcome.
	ContactRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lifeline_contact_requests_total",
		Help: "Total number of contact-request operations by outcome",
	}, []string{"operation", "outcome"})
)
