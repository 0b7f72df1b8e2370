// Package metrics 提供 Prometheus 指标收集
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 指标收集器
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge
	dbQueriesTotal      *prometheus.CounterVec
	dbQueryDuration     *prometheus.HistogramVec
	cacheHitsTotal      *prometheus.CounterVec
	cacheMissesTotal    *prometheus.CounterVec
	reservationsTotal   *prometheus.CounterVec
	billsTotal          *prometheus.CounterVec
	housekeepingTotal   *prometheus.CounterVec
	occupiedRooms       prometheus.Gauge
	lowStockItems       prometheus.Gauge
}

var defaultMetrics *Metrics

// Init 初始化指标收集器
func Init(namespace string) *Metrics {
	if namespace == "" {
		namespace = "hotel_ops"
	}

	m := &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		httpRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "Current number of HTTP requests being processed",
			},
		),
		dbQueriesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "db_queries_total",
				Help:      "Total number of database queries",
			},
			[]string{"operation", "table"},
		),
		dbQueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "db_query_duration_seconds",
				Help:      "Database query duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"operation", "table"},
		),
		cacheHitsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_hits_total",
				Help:      "Total number of cache hits",
			},
			[]string{"cache"},
		),
		cacheMissesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_misses_total",
				Help:      "Total number of cache misses",
			},
			[]string{"cache"},
		),
		reservationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reservations_total",
				Help:      "Total number of reservations",
			},
			[]string{"status"},
		),
		billsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bills_total",
				Help:      "Total number of bills",
			},
			[]string{"status"},
		),
		housekeepingTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "housekeeping_tasks_total",
				Help:      "Total number of housekeeping tasks",
			},
			[]string{"status"},
		),
		occupiedRooms: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "occupied_rooms",
				Help:      "Number of currently occupied rooms",
			},
		),
		lowStockItems: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "low_stock_items",
				Help:      "Number of inventory items at or below their reorder threshold",
			},
		),
	}

	defaultMetrics = m
	return m
}

// GetMetrics 获取默认指标收集器
func GetMetrics() *Metrics {
	if defaultMetrics == nil {
		return Init("")
	}
	return defaultMetrics
}

// Middleware 返回 Gin 中间件
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 跳过 metrics 端点本身
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		m.httpRequestsInFlight.Inc()

		c.Next()

		m.httpRequestsInFlight.Dec()
		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}

		m.httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(duration)
	}
}

// Handler 返回 Prometheus HTTP 处理器
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// RecordDBQuery 记录数据库查询
func (m *Metrics) RecordDBQuery(operation, table string, duration time.Duration) {
	m.dbQueriesTotal.WithLabelValues(operation, table).Inc()
	m.dbQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

// RecordCacheHit 记录缓存命中
func (m *Metrics) RecordCacheHit(cache string) {
	m.cacheHitsTotal.WithLabelValues(cache).Inc()
}

// RecordCacheMiss 记录缓存未命中
func (m *Metrics) RecordCacheMiss(cache string) {
	m.cacheMissesTotal.WithLabelValues(cache).Inc()
}

// RecordReservation 记录预订
func (m *Metrics) RecordReservation(status string) {
	m.reservationsTotal.WithLabelValues(status).Inc()
}

// RecordBill 记录账单
func (m *Metrics) RecordBill(status string) {
	m.billsTotal.WithLabelValues(status).Inc()
}

// RecordHousekeepingTask 记录清洁任务
func (m *Metrics) RecordHousekeepingTask(status string) {
	m.housekeepingTotal.WithLabelValues(status).Inc()
}

// SetOccupiedRooms 设置已入住房间数
func (m *Metrics) SetOccupiedRooms(count float64) {
	m.occupiedRooms.Set(count)
}

// SetLowStockItems 设置低库存物品数
func (m *Metrics) SetLowStockItems(count float64) {
	m.lowStockItems.Set(count)
}

// RecordHTTPRequest 手动记录 HTTP 请求（用于非中间件场景）
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m := GetMetrics()
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordDBQueryGlobal 全局记录数据库查询
func RecordDBQueryGlobal(operation, table string, duration time.Duration) {
	GetMetrics().RecordDBQuery(operation, table, duration)
}

// RecordCacheHitGlobal 全局记录缓存命中
func RecordCacheHitGlobal(cache string) {
	GetMetrics().RecordCacheHit(cache)
}

// RecordCacheMissGlobal 全局记录缓存未命中
func RecordCacheMissGlobal(cache string) {
	GetMetrics().RecordCacheMiss(cache)
}
