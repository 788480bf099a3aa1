package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordOp(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	start := time.Now()
	c.RecordOp("products", "create", "file", start, nil)
	c.RecordOp("products", "create", "file", start, errors.New("disk full"))

	ops := testutil.ToFloat64(c.storeOps.WithLabelValues("products", "create", "file"))
	assert.Equal(t, 2.0, ops)

	errs := testutil.ToFloat64(c.storeErrors.WithLabelValues("products", "create", "file"))
	assert.Equal(t, 1.0, errs)
}

func TestRecordOp_NilCollector(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.RecordOp("orders", "get", "memory", time.Now(), nil)
	})
}
