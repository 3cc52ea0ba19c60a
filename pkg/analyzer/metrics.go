// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package analyzer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Scan metrics, exposed when the CLI serves /metrics (check
// --metrics-addr). Registration is global and idempotent via promauto.
var (
	scansTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scopecheck_scans_total",
		Help: "Number of completed analyzer scans.",
	})

	linesScannedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scopecheck_lines_scanned_total",
		Help: "Number of source lines scanned.",
	})

	diagnosticsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scopecheck_diagnostics_total",
		Help: "Diagnostics emitted, by kind.",
	}, []string{"kind"})
)

// observeScan records one completed scan.
func observeScan(lines int, rep *Report) {
	scansTotal.Inc()
	linesScannedTotal.Add(float64(lines))
	for kind, n := range rep.Summary() {
		diagnosticsTotal.WithLabelValues(kind).Add(float64(n))
	}
}
