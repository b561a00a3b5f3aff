package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registrationsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_auth_registrations_total",
		Help: "Registrations by result",
	}, []string{"result"})

	loginsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_auth_logins_total",
		Help: "Login attempts by result",
	}, []string{"result"})

	sessionsIssuedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_auth_sessions_issued_total",
		Help: "Sessions created at register and login",
	})

	tokenChecksCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_auth_token_checks_total",
		Help: "Bearer token resolutions by result",
	}, []string{"result"})

	verificationCodesCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_auth_verification_codes_total",
		Help: "Email verification code operations by action and result",
	}, []string{"action", "result"})

	housekeepingDeletedCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_auth_housekeeping_deleted_total",
		Help: "Expired records removed by housekeeping",
	}, []string{"kind"})
)

const (
	resultOK       = "ok"
	resultRejected = "rejected"
	resultError    = "error"
)
