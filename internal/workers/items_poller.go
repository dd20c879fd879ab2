// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/refugiapp/refugiapp/internal/logger"
	"github.com/refugiapp/refugiapp/models"
)

// DefaultItemsPollInterval is used when the poller is built with a
// non-positive interval.
const DefaultItemsPollInterval = 5 * time.Second

// ItemsFetcher reads the current item collection.
type ItemsFetcher func(ctx context.Context) ([]models.Item, error)

// ItemsPoller turns periodic reads of the item collection into change
// notifications. The callback runs on the poller goroutine: once right after
// Start with the first successful read, then whenever the collection differs
// from the last one delivered. Failed reads are logged and skipped.
type ItemsPoller struct {
	fetch    ItemsFetcher
	onChange func([]models.Item)
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

func NewItemsPoller(fetch ItemsFetcher, onChange func([]models.Item), interval time.Duration, logger *logger.Logger) *ItemsPoller {
	if interval <= 0 {
		interval = DefaultItemsPollInterval
	}

	return &ItemsPoller{
		fetch:    fetch,
		onChange: onChange,
		interval: interval,
		logger:   logger,
	}
}

// Start implements [Worker]. A running poller is stopped first.
func (p *ItemsPoller) Start(ctx context.Context) {
	p.Stop()

	p.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()
		t := time.NewTicker(p.interval)
		defer t.Stop()

		var (
			last      []models.Item
			delivered bool
		)
		poll := func() {
			items, err := p.fetch(jobCtx)
			if err != nil {
				if jobCtx.Err() == nil {
					p.logger.Err(err).Str("func", "ItemsPoller.poll").Msg("items read failed")
				}
				return
			}
			if delivered && slices.Equal(last, items) {
				return
			}
			last, delivered = items, true
			p.onChange(items)
		}

		poll()
		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				poll()
			}
		}
	}()
}

// Stop implements [Worker]. It cancels the poll loop and waits for it to
// exit. Safe to call more than once.
func (p *ItemsPoller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	p.wg.Wait()
}
