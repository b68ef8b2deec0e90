// Copyright 2025 Dhrumil Mistry.
// SPDX-License-Identifier: 	AGPL-3.0-or-later
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "chitragupta_repo_scan_duration_minutes",
	Help:    "Duration of trufflehog repo scans in minutes",
	Buckets: prometheus.DefBuckets,
})

var ScansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "chitragupta_repo_scans_total",
	Help: "Completed repo scan cycles by outcome",
}, []string{"outcome"})

var SecretScanResultsCreated = promauto.NewCounter(prometheus.CounterOpts{
	Name: "chitragupta_secret_scan_results_created_total",
	Help: "Newly persisted secret scan results",
})

var TasksDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "chitragupta_tasks_dispatched_total",
	Help: "Tasks handed to the dispatch boundary by task name",
}, []string{"task"})
