package trivia

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	quizPicks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trivia",
		Name:      "quiz_picks_total",
		Help:      "Next-question requests by outcome (served or exhausted).",
	}, []string{"outcome"})

	writeRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trivia",
		Name:      "write_rejections_total",
		Help:      "Rejected create, delete and quiz requests by reason.",
	}, []string{"reason"})
)
