package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	LoansCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "loans_created_total",
			Help: "Loans successfully created",
		},
	)
	LoansReturned = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "loans_returned_total",
			Help: "Loans returned",
		},
	)
	LoansRejected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "loans_rejected_total",
			Help: "Borrow attempts rejected for lack of availability",
		},
	)
)

var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(LoansCreated)
	prometheus.MustRegister(LoansReturned)
	prometheus.MustRegister(LoansRejected)
}
