package obs

import (
	"context"
	"errors"
	"time"

	"consolidation-planner/internal/domain"
	"consolidation-planner/internal/platform/metrics"

	"github.com/sirupsen/logrus"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// WithRequestID stores a request ID used to correlate timing entries.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// Time starts a timer for op. The returned func logs the duration and the
// error (if any) pointed to by errp, and records it in metrics.OperationDuration.
// A domain.ErrPlanNotFound lookup is a miss, not a failure.
//
//	defer obs.Time(ctx, "solver.Select")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID, _ := ctx.Value(RequestIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start)

		entry := logrus.WithFields(logrus.Fields{
			"req_id": reqID,
			"op":     name,
			"dur_ms": dur.Milliseconds(),
		})

		if errp != nil && errors.Is(*errp, domain.ErrPlanNotFound) {
			metrics.OperationDuration.WithLabelValues(name, "miss").Observe(dur.Seconds())
			entry.Debug("operation missed")
			return
		}
		if errp != nil && *errp != nil {
			metrics.OperationDuration.WithLabelValues(name, "error").Observe(dur.Seconds())
			entry.WithError(*errp).Warn("operation failed")
			return
		}
		metrics.OperationDuration.WithLabelValues(name, "ok").Observe(dur.Seconds())
		entry.Debug("operation done")
	}
}
