package retrieval

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	indexBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "flickfusion_index_build_duration_seconds",
			Help:    "Time spent vectorizing the corpus and computing the similarity matrix",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
	)

	indexMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "flickfusion_index_movies",
			Help: "Number of movies in the similarity index",
		},
	)

	indexVocabulary = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "flickfusion_index_vocabulary_terms",
			Help: "Number of terms kept by the TF-IDF vectorizer",
		},
	)

	// lookupsTotal counts nearest-neighbor title lookups by outcome (hit, miss).
	lookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flickfusion_similarity_lookups_total",
			Help: "Total number of similar-movie title lookups",
		},
		[]string{"outcome"},
	)
)
