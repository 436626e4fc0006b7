package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	filterRecomputations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "collisions_filter_recomputations_total",
		Help: "Total number of filter pipeline recomputations across HTTP and websocket requests.",
	})
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "collisions_cache_hits_total",
		Help: "Total number of responses served from the Redis cache.",
	})
	wsMessages = promauto.NewCounter(prometheus.CounterOpts{
		Name: "collisions_ws_filter_messages_total",
		Help: "Total number of filter messages handled on the live websocket.",
	})
)
