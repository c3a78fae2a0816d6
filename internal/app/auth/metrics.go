package auth

import "github.com/prometheus/client_golang/prometheus"

// Resolution outcomes.
const (
	outcomeResolved     = "resolved"
	outcomeForbidden    = "forbidden"
	outcomeUnauthorized = "unauthorized"
	outcomeError        = "error"
)

// ResolutionsTotal counts credential resolutions by deciding source and outcome.
var ResolutionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "quoteboard_auth_resolutions_total",
		Help: "Credential resolutions",
	},
	[]string{"source", "outcome"},
)

func init() {
	prometheus.MustRegister(ResolutionsTotal)
}
