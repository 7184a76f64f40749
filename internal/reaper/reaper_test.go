package reaper

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"votebox/backend/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSweeper struct {
	calls atomic.Int32
	err   error
}

func (f *fakeSweeper) ReapStale(ctx context.Context) (service.ReapResult, error) {
	f.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return service.ReapResult{}, errors.New("sweep without deadline")
	}
	return service.ReapResult{StaleUsersRemoved: 2, RoomsRemoved: 1}, f.err
}

func TestRunOnce(t *testing.T) {
	sweeper := &fakeSweeper{}
	r := New(sweeper, logrus.New())

	result, err := r.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, service.ReapResult{StaleUsersRemoved: 2, RoomsRemoved: 1}, result)
	assert.Equal(t, int32(1), sweeper.calls.Load())
}

func TestStart_RejectsInvalidSchedule(t *testing.T) {
	r := New(&fakeSweeper{}, logrus.New())
	assert.Error(t, r.Start("every now and then"))
}

func TestStart_RunsOnSchedule(t *testing.T) {
	sweeper := &fakeSweeper{err: errors.New("store unavailable")}
	r := New(sweeper, logrus.New())
	require.NoError(t, r.Start("@every 1s"))
	defer r.Stop()

	assert.Eventually(t, func() bool { return sweeper.calls.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
}
