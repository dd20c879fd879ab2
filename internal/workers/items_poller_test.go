package workers

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/refugiapp/refugiapp/internal/logger"
	"github.com/refugiapp/refugiapp/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	calls [][]models.Item
}

func (r *recorder) onChange(items []models.Item) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, items)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func TestItemsPoller_DeliversFirstReadImmediately(t *testing.T) {
	rec := &recorder{}
	fetch := func(context.Context) ([]models.Item, error) {
		return []models.Item{{ID: "1"}}, nil
	}

	p := NewItemsPoller(fetch, rec.onChange, time.Hour, logger.Nop())
	p.Start(context.Background())
	defer p.Stop()

	require.Eventually(t, func() bool { return rec.count() == 1 }, time.Second, 5*time.Millisecond)
}

func TestItemsPoller_OnlyNotifiesOnChange(t *testing.T) {
	rec := &recorder{}
	var reads atomic.Int32
	fetch := func(context.Context) ([]models.Item, error) {
		n := reads.Add(1)
		if n < 3 {
			return []models.Item{{ID: "1"}}, nil
		}
		return []models.Item{{ID: "1"}, {ID: "2"}}, nil
	}

	p := NewItemsPoller(fetch, rec.onChange, 5*time.Millisecond, logger.Nop())
	p.Start(context.Background())

	require.Eventually(t, func() bool { return reads.Load() >= 5 }, time.Second, 5*time.Millisecond)
	p.Stop()

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.calls, 2)
	assert.Len(t, rec.calls[1], 2)
}

func TestItemsPoller_SkipsFailedReads(t *testing.T) {
	rec := &recorder{}
	var reads atomic.Int32
	fetch := func(context.Context) ([]models.Item, error) {
		if reads.Add(1) == 1 {
			return nil, errors.New("offline")
		}
		return []models.Item{}, nil
	}

	p := NewItemsPoller(fetch, rec.onChange, 5*time.Millisecond, logger.Nop())
	p.Start(context.Background())
	defer p.Stop()

	require.Eventually(t, func() bool { return rec.count() == 1 }, time.Second, 5*time.Millisecond)
}

func TestItemsPoller_StopWaitsAndIsIdempotent(t *testing.T) {
	var reads atomic.Int32
	fetch := func(context.Context) ([]models.Item, error) {
		reads.Add(1)
		return nil, nil
	}

	p := NewItemsPoller(fetch, func([]models.Item) {}, 5*time.Millisecond, logger.Nop())
	p.Start(context.Background())
	require.Eventually(t, func() bool { return reads.Load() >= 2 }, time.Second, 5*time.Millisecond)

	p.Stop()
	after := reads.Load()
	time.Sleep(30 * time.Millisecond)

	assert.Equal(t, after, reads.Load())
	p.Stop()
}

func TestItemsPoller_ContextCancelStopsLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := NewItemsPoller(func(context.Context) ([]models.Item, error) { return nil, nil },
		func([]models.Item) {}, 5*time.Millisecond, logger.Nop())

	p.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not exit after context cancel")
	}
}

func TestNewItemsPoller_DefaultInterval(t *testing.T) {
	p := NewItemsPoller(nil, nil, 0, logger.Nop())
	assert.Equal(t, DefaultItemsPollInterval, p.interval)
}
