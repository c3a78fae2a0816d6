package app

import "github.com/prometheus/client_golang/prometheus"

var (
	// QuoteSubmissionsTotal counts accepted submissions by source tag.
	QuoteSubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quoteboard_quote_submissions_total",
			Help: "Accepted quote submissions",
		},
		[]string{"source"},
	)

	// QuoteLikesTotal counts successful likes.
	QuoteLikesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "quoteboard_quote_likes_total",
			Help: "Quote likes",
		},
	)

	// QuoteModerationsTotal counts moderation decisions by resulting status.
	QuoteModerationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quoteboard_quote_moderations_total",
			Help: "Quote moderation decisions",
		},
		[]string{"status"},
	)

	// UserRegistrationsTotal counts self-registrations.
	UserRegistrationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "quoteboard_user_registrations_total",
			Help: "User self-registrations",
		},
	)
)

func init() {
	prometheus.MustRegister(
		QuoteSubmissionsTotal,
		QuoteLikesTotal,
		QuoteModerationsTotal,
		UserRegistrationsTotal,
	)
}
