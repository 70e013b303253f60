package resolve

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/funvibe/tower/internal/config"
)

var (
	// resolutionsTotal counts finished resolution passes.
	// Labels: kind (function, variable), outcome (success, ambiguous, inapplicable, unresolved)
	resolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: config.MetricNamespace,
		Subsystem: "resolve",
		Name:      "resolutions_total",
		Help:      "Resolution passes by call kind and outcome",
	}, []string{"kind", "outcome"})

	// candidatesTotal counts candidates judged by collectors.
	// Labels: kind, applicability
	candidatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: config.MetricNamespace,
		Subsystem: "resolve",
		Name:      "candidates_total",
		Help:      "Candidates judged by call kind and computed applicability",
	}, []string{"kind", "applicability"})

	// batchSitesTotal counts call sites resolved through ResolveAll.
	batchSitesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: config.MetricNamespace,
		Subsystem: "resolve",
		Name:      "batch_sites_total",
		Help:      "Call sites resolved in batches",
	})
)

func recordResolution(kind CallKind, outcome Outcome) {
	resolutionsTotal.WithLabelValues(kind.String(), outcome.String()).Inc()
}

func recordCandidate(kind CallKind, a Applicability) {
	candidatesTotal.WithLabelValues(kind.String(), a.String()).Inc()
}
