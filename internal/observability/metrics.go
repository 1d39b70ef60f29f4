// Package observability provides metrics and tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "social_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "social_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// RegistrationsTotal counts successful sign-ups.
	RegistrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "social_registrations_total",
		Help: "Total number of registered users",
	})

	// LoginAttempts counts login attempts by result (success, failure).
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "social_login_attempts_total",
		Help: "Total number of login attempts by result",
	}, []string{"result"})

	// PostsCreated counts published posts.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "social_posts_created_total",
		Help: "Total number of posts created",
	})

	// GraphEvents counts social graph and interaction writes by kind
	// (follow, unfollow, friend_request, friend_accept, like, unlike, comment).
	GraphEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "social_graph_events_total",
		Help: "Total number of social graph and interaction writes by kind",
	}, []string{"kind"})
)

const queryStartKey = "observability:query_start"

// RegisterQueryMetrics hooks GORM callbacks so every statement's latency
// lands in DatabaseQueryLatency.
func RegisterQueryMetrics(db *gorm.DB) error {
	type registration struct {
		operation string
		before    func(name string, fn func(*gorm.DB)) error
		after     func(name string, fn func(*gorm.DB)) error
	}

	cb := db.Callback()
	regs := []registration{
		{"create", cb.Create().Before("gorm:create").Register, cb.Create().After("gorm:create").Register},
		{"query", cb.Query().Before("gorm:query").Register, cb.Query().After("gorm:query").Register},
		{"update", cb.Update().Before("gorm:update").Register, cb.Update().After("gorm:update").Register},
		{"delete", cb.Delete().Before("gorm:delete").Register, cb.Delete().After("gorm:delete").Register},
		{"row", cb.Row().Before("gorm:row").Register, cb.Row().After("gorm:row").Register},
		{"raw", cb.Raw().Before("gorm:raw").Register, cb.Raw().After("gorm:raw").Register},
	}

	for _, r := range regs {
		operation := r.operation
		if err := r.before("metrics:before_"+operation, func(tx *gorm.DB) {
			tx.InstanceSet(queryStartKey, time.Now())
		}); err != nil {
			return err
		}
		if err := r.after("metrics:after_"+operation, func(tx *gorm.DB) {
			observeQuery(tx, operation)
		}); err != nil {
			return err
		}
	}
	return nil
}

func observeQuery(tx *gorm.DB, operation string) {
	v, ok := tx.InstanceGet(queryStartKey)
	if !ok {
		return
	}
	start, ok := v.(time.Time)
	if !ok {
		return
	}
	table := "unknown"
	if tx.Statement != nil && tx.Statement.Table != "" {
		table = tx.Statement.Table
	}
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}
