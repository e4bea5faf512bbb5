package provision

import "github.com/prometheus/client_golang/prometheus"

// Outcome label values for provisionTotal.
const (
	outcomeFound  = "found"
	outcomePulled = "pulled"
	outcomeFailed = "failed"
)

var provisionTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "localllmui",
		Subsystem: "provision",
		Name:      "total",
		Help:      "Model provisioning attempts by outcome",
	},
	[]string{"outcome"},
)

func init() {
	prometheus.MustRegister(provisionTotal)
}
