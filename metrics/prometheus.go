package metrics

import (
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// all metrics and middlewares for the REST API
var (
	// to prevent metrics from being initialized multiple times
	isMetricsInitVar uint32 = 0

	// active REST API connections
	activeRESTConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_rest_connections",
			Help: "Number of active REST API connections",
		},
	)

	// response times for REST APIs
	responseTimeRESTAPI = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "restapi_response_time_milliseconds",
			Help:    "REST API response time distributions",
			Buckets: []float64{1, 10, 50, 100, 200, 300, 400, 500},
		},
		[]string{"method", "endpoint"},
	)

	// Number of requests processed by REST API
	RESTRequestMetricsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rest_requests_processed_total",
		Help: "The total number of processed REST requests",
	}, []string{"method", "endpoint"})

	// Number of addresses accepted by CSV ingestion
	AddressesIngestedMetricsCount = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "addresses_ingested_total",
		Help: "The total number of addresses accepted from CSV imports",
	})

	// Number of CSV rows silently skipped
	AddressesRejectedMetricsCount = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "addresses_rejected_total",
		Help: "The total number of CSV rows skipped during imports",
	})

	// Number of campaign documents written to the document store
	CampaignSavesMetricsCount = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "campaign_saves_total",
		Help: "The total number of campaign writes to the document store",
	})

	// Number of checkout sessions requested
	CheckoutRequestsMetricsCount = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_requests_total",
		Help: "The total number of checkout sessions requested",
	})

	// Number of seal composite images requested
	SealRequestsMetricsCount = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "seal_requests_total",
		Help: "The total number of seal composite images requested",
	})
)

func setIsMetricsInit() {
	atomic.StoreUint32(&isMetricsInitVar, 1)
}

func isMetricsInit() bool {
	return atomic.LoadUint32(&isMetricsInitVar) == 1
}

func InitMetrics() {
	if !isMetricsInit() {
		setIsMetricsInit()

		// Metrics have to be registered to be exposed
		prometheus.MustRegister(activeRESTConnections)
		prometheus.MustRegister(responseTimeRESTAPI)
		prometheus.MustRegister(RESTRequestMetricsTotal)
		prometheus.MustRegister(AddressesIngestedMetricsCount)
		prometheus.MustRegister(AddressesRejectedMetricsCount)
		prometheus.MustRegister(CampaignSavesMetricsCount)
		prometheus.MustRegister(CheckoutRequestsMetricsCount)
		prometheus.MustRegister(SealRequestsMetricsCount)
	}
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Increment the counter for the given endpoint:
		RESTRequestMetricsTotal.WithLabelValues(c.Request.Method, c.FullPath()).Inc()

		// Start timing responseTime histogram
		start := time.Now()

		// Set activeConnections gauge
		activeRESTConnections.Inc()
		defer activeRESTConnections.Dec()

		c.Next()

		// Set responseTime histogram
		latency := time.Since(start)
		// route template, not the raw path, keeps cardinality bounded
		responseTimeRESTAPI.WithLabelValues(c.Request.Method, c.FullPath()).Observe(float64(latency.Milliseconds()))
	}
}
