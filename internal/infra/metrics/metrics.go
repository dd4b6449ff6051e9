package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	CyclesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifier_cycles_total",
			Help: "Total number of notification cycles run, by family.",
		},
		[]string{"family"},
	)

	RecordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifier_records_total",
			Help: "Total number of records processed, by family and result.",
		},
		[]string{"family", "result"}, // sent, transient, permanent, conflict, build_failed
	)

	BatchesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notifier_dispatch_batches_total",
			Help: "Total number of dispatch batches sent to the transport.",
		},
	)
)

func MustRegister(reg *prometheus.Registry) {
	reg.MustRegister(CyclesTotal, RecordsTotal, BatchesTotal)
}
