package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mamadbah2/feedration/internal/catalog"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (r *countingRefresher) Refresh(context.Context) (*catalog.Catalog, error) {
	r.calls.Add(1)
	if r.err != nil {
		return nil, r.err
	}
	return catalog.Default(), nil
}

func TestStartRejectsBadSpec(t *testing.T) {
	s := NewScheduler("not a cron spec", time.UTC, &countingRefresher{}, nil)
	assert.Error(t, s.Start())
}

func TestStartStop(t *testing.T) {
	r := &countingRefresher{}
	s := NewScheduler("0 6 * * *", time.UTC, r, nil)
	require.NoError(t, s.Start())
	s.Stop()
	assert.Zero(t, r.calls.Load())
}

func TestRunNow(t *testing.T) {
	r := &countingRefresher{}
	s := NewScheduler("0 6 * * *", nil, r, nil)
	s.RunNow()
	assert.Equal(t, int32(1), r.calls.Load())

	r.err = errors.New("provider down")
	s.RunNow()
	assert.Equal(t, int32(2), r.calls.Load())
}

func TestScheduledRefreshFires(t *testing.T) {
	r := &countingRefresher{}
	s := NewScheduler("@every 1s", time.UTC, r, nil)
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool { return r.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}
