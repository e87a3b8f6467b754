package board

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/CharvitZalavadiya/GormishRestaurant/internal/config"
	"github.com/CharvitZalavadiya/GormishRestaurant/internal/orderapi"

	"go.uber.org/zap"
)

var (
	ErrUnknownOrder      = errors.New("unknown order")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Client is the slice of the orders API the board needs.
type Client interface {
	ListOrders(ctx context.Context) ([]orderapi.RawOrder, error)
	UpdateStatus(ctx context.Context, orderID, status string) error
}

// Notifier receives the transient success/error messages the board raises.
// The frontend plugs one in; until then messages go nowhere.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type noopNotifier struct{}

func (noopNotifier) Success(string) {}
func (noopNotifier) Error(string) {}

// Board owns the live order set for one restaurant: the cached snapshot and
// its timestamp, the tombstones for terminally handled orders, the poll loop,
// and the status-transition actions. All state is private to one instance;
// there is no package-level cache.
type Board struct {
	client   Client
	notifier Notifier
	logger   *zap.Logger

	pollInterval time.Duration
	cacheTTL     time.Duration

	mu         sync.Mutex
	orders     []Order
	fetchedAt  time.Time
	removed    map[string]struct{}
	activeTab  Status
	fetchSeq   uint64
	appliedSeq uint64
	closed     bool

	stop chan struct{}
	done chan struct{}
}

func NewBoard(client Client, cfg config.Config, logger *zap.Logger) *Board {
	return &Board{
		client:       client,
		notifier:     noopNotifier{},
		logger:       logger.Named("board"),
		pollInterval: cfg.PollInterval,
		cacheTTL:     cfg.CacheTTL,
		removed:      make(map[string]struct{}),
		activeTab:    StatusPending,
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
	}
}

func (b *Board) SetNotifier(n Notifier) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if n != nil {
		b.notifier = n
	}
}

// Start issues the initial fetch and begins the poll loop. Each tick forces
// a fetch only while the pending tab is active; that is the tab where new
// orders appear and the only one worth the churn.
func (b *Board) Start() {
	go func() {
		defer close(b.done)

		if err := b.Refresh(context.Background(), false); err != nil {
			b.logger.Warn("initial fetch failed", zap.Error(err))
		}

		ticker := time.NewTicker(b.pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-b.stop:
				return
			case <-ticker.C:
				if b.ActiveTab() != StatusPending {
					continue
				}
				if err := b.Refresh(context.Background(), true); err != nil {
					b.logger.Warn("poll fetch failed", zap.Error(err))
				}
			}
		}
	}()
}

// Stop ends the poll loop and closes the board. In-flight requests are not
// aborted; the closed flag makes their late results fall on the floor.
func (b *Board) Stop() {
	close(b.stop)
	<-b.done

	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
}

// Refresh fetches, normalizes and reconciles the order list. Non-forced
// calls are suppressed while the cache is fresh. Every fetch carries a
// sequence number taken before the request goes out; a response older than
// the last applied one is discarded, so a slow poll cannot overwrite newer
// data.
func (b *Board) Refresh(ctx context.Context, force bool) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	if !force && len(b.orders) > 0 && time.Since(b.fetchedAt) < b.cacheTTL {
		b.mu.Unlock()
		return nil
	}
	b.fetchSeq++
	seq := b.fetchSeq
	b.mu.Unlock()

	raw, err := b.client.ListOrders(ctx)
	if err != nil {
		b.notify(false, "Could not refresh orders")
		return fmt.Errorf("refreshing orders: %w", err)
	}

	fetched := make([]Order, 0, len(raw))
	for _, r := range raw {
		fetched = append(fetched, Normalize(r))
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed || seq <= b.appliedSeq {
		b.logger.Debug("stale fetch discarded", zap.Uint64("seq", seq))
		return nil
	}
	b.appliedSeq = seq

	merged, changed := Reconcile(b.orders, fetched, b.removed)
	if !changed {
		return nil
	}

	b.orders = merged
	b.fetchedAt = time.Now()
	b.logger.Info("order list updated",
		zap.Int("orders", len(merged)),
		zap.Uint64("seq", seq),
	)
	return nil
}

// Approve moves a pending order into preparation.
func (b *Board) Approve(ctx context.Context, orderID string) error {
	return b.transition(ctx, orderID, StatusPreparing)
}

// Reject terminally refuses an order and removes it from the board.
func (b *Board) Reject(ctx context.Context, orderID string) error {
	return b.transition(ctx, orderID, StatusRejected)
}

// ChangeStatus moves an order to an arbitrary next status. Dispatch is
// terminal: the order leaves the board and moves to history.
func (b *Board) ChangeStatus(ctx context.Context, orderID string, to Status) error {
	return b.transition(ctx, orderID, to)
}

func (b *Board) transition(ctx context.Context, orderID string, to Status) error {
	b.mu.Lock()
	i := b.indexOf(orderID)
	if i < 0 {
		b.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownOrder, orderID)
	}
	from := b.orders[i].Status
	if !CanTransition(from, to) {
		b.mu.Unlock()
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	b.mu.Unlock()

	if err := b.client.UpdateStatus(ctx, orderID, string(to)); err != nil {
		b.notify(false, fmt.Sprintf("Could not move order %s to %s", orderID, to))
		return fmt.Errorf("updating order %s: %w", orderID, err)
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}

	// Re-locate: a poll may have reordered the slice while the request ran.
	if to.IsTerminal() {
		b.removed[orderID] = struct{}{}
	}
	if i = b.indexOf(orderID); i >= 0 {
		if to.IsTerminal() {
			b.orders = append(b.orders[:i], b.orders[i+1:]...)
		} else {
			b.orders[i].Status = to
		}
	}
	b.mu.Unlock()

	b.logger.Info("order transitioned",
		zap.String("order_id", orderID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	b.notify(true, fmt.Sprintf("Order %s moved to %s", orderID, to))
	return nil
}

// indexOf requires b.mu held.
func (b *Board) indexOf(orderID string) int {
	for i, o := range b.orders {
		if o.ID == orderID {
			return i
		}
	}
	return -1
}

// Orders returns a copy of the full cached set, in insertion order.
func (b *Board) Orders() []Order {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Order, len(b.orders))
	copy(out, b.orders)
	return out
}

// VisibleOrders applies the active tab and a search query to the cached set.
func (b *Board) VisibleOrders(query string) []Order {
	b.mu.Lock()
	orders := make([]Order, len(b.orders))
	copy(orders, b.orders)
	tab := b.activeTab
	b.mu.Unlock()

	return Visible(orders, tab, query)
}

// Find looks an order up by id across all tabs.
func (b *Board) Find(orderID string) (Order, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i := b.indexOf(orderID); i >= 0 {
		return b.orders[i], true
	}
	return Order{}, false
}

func (b *Board) ActiveTab() Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.activeTab
}

// SetTab switches the active status tab. Only non-terminal statuses have a
// tab.
func (b *Board) SetTab(tab Status) error {
	for _, t := range Tabs() {
		if t == tab {
			b.mu.Lock()
			b.activeTab = tab
			b.mu.Unlock()
			return nil
		}
	}
	return fmt.Errorf("no tab for status %q", tab)
}

func (b *Board) notify(ok bool, msg string) {
	b.mu.Lock()
	n := b.notifier
	b.mu.Unlock()

	if ok {
		n.Success(msg)
	} else {
		n.Error(msg)
	}
}
