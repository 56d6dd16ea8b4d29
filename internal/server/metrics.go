package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	extractionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "claimform_extractions_total",
		Help: "Extractions processed, by detected language and validity.",
	}, []string{"language", "valid"})

	extractionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "claimform_extraction_duration_seconds",
		Help:    "Wall time of one extraction pipeline run.",
		Buckets: prometheus.DefBuckets,
	})

	validationScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "claimform_validation_score",
		Help:    "Distribution of validation scores.",
		Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
	})
)
