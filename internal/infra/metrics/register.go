package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Collectors are enqueued by init() in the per-concern files of this package
// and registered in one shot by MustRegister from main. This keeps metric
// declarations next to the code they instrument without scattering
// registration calls through the composition root.
var (
	once    sync.Once
	pending []prometheus.Collector
)

func register(cs ...prometheus.Collector) {
	pending = append(pending, cs...)
}

// MustRegister registers every enqueued collector exactly once. Safe to call
// more than once; later calls are no-ops.
func MustRegister() {
	once.Do(func() {
		if len(pending) > 0 {
			prometheus.MustRegister(pending...)
		}
	})
}
