package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	signupsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "auth_signups_total",
		Help: "Total number of successful signups.",
	})

	loginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_logins_total",
			Help: "Total number of login attempts by status.",
		},
		[]string{"status"},
	)

	emailVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_email_verifications_total",
			Help: "Total number of email verification attempts by status.",
		},
		[]string{"status"},
	)

	adminOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_admin_operations_total",
			Help: "Admin lifecycle and site config operations by operation and status.",
		},
		[]string{"operation", "status"},
	)

	tokenVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_token_verifications_total",
			Help: "Total number of session token verification attempts by status.",
		},
		[]string{"status"},
	)
)

func statusLabel(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
