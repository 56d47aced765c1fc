package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type BusinessMetrics struct {
	MilkSubmissionsTotal  *prometheus.CounterVec
	MilkReviewsTotal      *prometheus.CounterVec
	PaymentsBookedTotal   *prometheus.CounterVec
	LoanDecisionsTotal    *prometheus.CounterVec
	AcceptedLitersTotal   prometheus.Counter
	FarmersRegisteredTotal prometheus.Counter
}

var (
	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dairycollect_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Business = BusinessMetrics{
		MilkSubmissionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dairycollect_milk_submissions_total",
				Help: "Total number of milk submissions recorded.",
			},
			[]string{"status"},
		),
		MilkReviewsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dairycollect_milk_reviews_total",
				Help: "Total number of milk submission reviews by outcome.",
			},
			[]string{"outcome"},
		),
		PaymentsBookedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dairycollect_payments_booked_total",
				Help: "Total number of cycle payments booked by status.",
			},
			[]string{"status"},
		),
		LoanDecisionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dairycollect_loan_decisions_total",
				Help: "Total number of loan status decisions by outcome.",
			},
			[]string{"outcome"},
		),
		AcceptedLitersTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "dairycollect_accepted_liters_total",
				Help: "Total liters of milk accepted across all farmers.",
			},
		),
		FarmersRegisteredTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "dairycollect_farmers_registered_total",
				Help: "Total number of farmers successfully registered.",
			},
		),
	}
)

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

func RecordMilkSubmission(status string) {
	Business.MilkSubmissionsTotal.WithLabelValues(status).Inc()
}

func RecordMilkReview(outcome string) {
	Business.MilkReviewsTotal.WithLabelValues(outcome).Inc()
}

func RecordAcceptedLiters(liters float64) {
	Business.AcceptedLitersTotal.Add(liters)
}

func RecordPaymentBooked(status string) {
	Business.PaymentsBookedTotal.WithLabelValues(status).Inc()
}

func RecordLoanDecision(outcome string) {
	Business.LoanDecisionsTotal.WithLabelValues(outcome).Inc()
}

func RecordFarmerRegistered() {
	Business.FarmersRegisteredTotal.Inc()
}
