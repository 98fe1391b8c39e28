package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var bannerTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "horeca_banner_transitions_total",
	Help: "Banner lifecycle events by kind",
}, []string{"event"})

func recordTransition(event string) {
	bannerTransitions.WithLabelValues(event).Inc()
}
