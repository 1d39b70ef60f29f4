package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestInitTracing_Disabled(t *testing.T) {
	shutdown, err := InitTracing(TracingConfig{ServiceName: "test", Enabled: false})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))

	span, ctx := NewSpan(context.Background(), "noop", attribute.String("k", "v"))
	assert.NotNil(t, ctx)
	span.SetError(errors.New("boom"))
	span.End()
}

func TestRegisterQueryMetrics(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, RegisterQueryMetrics(db))

	type probe struct {
		ID   uint
		Name string
	}
	require.NoError(t, db.AutoMigrate(&probe{}))

	before := testutil.CollectAndCount(DatabaseQueryLatency)
	require.NoError(t, db.Create(&probe{Name: "x"}).Error)
	var got []probe
	require.NoError(t, db.Find(&got).Error)

	assert.Greater(t, testutil.CollectAndCount(DatabaseQueryLatency), before)
}
