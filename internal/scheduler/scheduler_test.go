package scheduler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"volunteerhub/internal/services"
)

type fakeReconciler struct {
	runs   atomic.Int32
	report services.ReconcileReport
	err    error
}

func (f *fakeReconciler) Run(ctx context.Context) (services.ReconcileReport, error) {
	f.runs.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return services.ReconcileReport{}, errors.New("run without deadline")
	}
	return f.report, f.err
}

func TestParseSchedule(t *testing.T) {
	for _, spec := range []string{"*/5 * * * *", "@hourly", "0 3 * * *"} {
		assert.NoError(t, ParseSchedule(spec), spec)
	}
	for _, spec := range []string{"", "every minute", "* * *", "61 * * * *"} {
		assert.Error(t, ParseSchedule(spec), spec)
	}
}

func TestScheduler_RunOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	rec := &fakeReconciler{report: services.ReconcileReport{Added: 2}}
	s := New(rec, logger)
	s.RunOnce()
	assert.Equal(t, int32(1), rec.runs.Load())
	assert.Contains(t, buf.String(), `"added":2`)

	buf.Reset()
	rec.err = errors.New("store down")
	s.RunOnce()
	assert.Contains(t, buf.String(), "reconcile run failed")
}

func TestScheduler_StartStop(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := New(&fakeReconciler{}, logger)

	require.Error(t, s.Start("not a schedule"))

	s = New(&fakeReconciler{}, logger)
	require.NoError(t, s.Start("@every 1h"))
	assert.Len(t, s.cron.Entries(), 1)
	s.Stop()
}
