package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/refugiapp/refugiapp/models"
)

// itemFeed hands item snapshots from a subscription callback to the update
// loop. The updates channel is never closed: a gateway may still invoke the
// callback after unsubscribing, so producers check done instead.
type itemFeed struct {
	updates chan []models.Item
	done    chan struct{}
	once    sync.Once
}

func newItemFeed() *itemFeed {
	return &itemFeed{
		updates: make(chan []models.Item, 1),
		done:    make(chan struct{}),
	}
}

// offer keeps only the latest snapshot. It drops items once the feed is
// stopped.
func (f *itemFeed) offer(items []models.Item) {
	for {
		select {
		case <-f.done:
			return
		default:
		}
		select {
		case f.updates <- items:
			return
		default:
		}
		select {
		case <-f.updates:
		default:
		}
	}
}

// stop releases the pending wait. Safe to call more than once.
func (f *itemFeed) stop() {
	f.once.Do(func() { close(f.done) })
}

func (f *itemFeed) stopped() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

func waitForItems(feed *itemFeed) tea.Cmd {
	return func() tea.Msg {
		select {
		case items := <-feed.updates:
			if feed.stopped() {
				return nil
			}
			return itemsMsg{feed: feed, items: items}
		case <-feed.done:
			return nil
		}
	}
}
