package api

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "storefront_client_requests_total",
	Help: "Количество запросов клиента к удалённому API по методам и статусам.",
}, []string{"method", "code"})

func observe(method string, status int) {
	requestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
}
