package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	likeTogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_like_toggles_total",
			Help: "Total number of like toggles by result",
		},
		[]string{"result"},
	)

	postBackupsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "blog_post_backups_total",
			Help: "Total number of post backups written before edits",
		},
	)
)
