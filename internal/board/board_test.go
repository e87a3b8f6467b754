package board

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/CharvitZalavadiya/GormishRestaurant/internal/config"
	"github.com/CharvitZalavadiya/GormishRestaurant/internal/orderapi"

	"go.uber.org/zap"
)

type fakeClient struct {
	mu        sync.Mutex
	orders    []orderapi.RawOrder
	listErr   error
	updateErr error
	listCalls int
	updates   []string
}

func (f *fakeClient) ListOrders(_ context.Context) ([]orderapi.RawOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]orderapi.RawOrder, len(f.orders))
	copy(out, f.orders)
	return out, nil
}

func (f *fakeClient) UpdateStatus(_ context.Context, orderID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, orderID+":"+status)
	return nil
}

func (f *fakeClient) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

func (f *fakeClient) serve(orders ...orderapi.RawOrder) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = orders
}

type recordingNotifier struct {
	mu       sync.Mutex
	oks      []string
	failures []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.oks = append(n.oks, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures = append(n.failures, msg)
}

func (n *recordingNotifier) errorCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.failures)
}

func rawOrder(id, status string) orderapi.RawOrder {
	return orderapi.RawOrder{ID: id, CustomerName: "Customer " + id, Status: status}
}

func newTestBoard(client Client) *Board {
	cfg := config.Config{
		PollInterval: time.Hour,
		CacheTTL:     5 * time.Minute,
	}
	return NewBoard(client, cfg, zap.NewNop())
}

func TestRefreshPopulatesAndCacheShortCircuits(t *testing.T) {
	client := &fakeClient{}
	client.serve(rawOrder("o1", "pending"))
	b := newTestBoard(client)

	if err := b.Refresh(context.Background(), false); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}
	if got := b.Orders(); len(got) != 1 || got[0].ID != "o1" {
		t.Fatalf("Orders() = %+v, want one order o1", got)
	}

	// Fresh cache suppresses a non-forced fetch entirely.
	if err := b.Refresh(context.Background(), false); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}
	if client.calls() != 1 {
		t.Errorf("non-forced refresh with fresh cache hit the network (%d calls)", client.calls())
	}

	// Forcing bypasses the freshness check.
	if err := b.Refresh(context.Background(), true); err != nil {
		t.Fatalf("Refresh(force) error: %v", err)
	}
	if client.calls() != 2 {
		t.Errorf("forced refresh did not hit the network (%d calls)", client.calls())
	}
}

func TestApproveSurvivesStalePoll(t *testing.T) {
	client := &fakeClient{}
	client.serve(rawOrder("o1", "pending"))
	b := newTestBoard(client)

	if err := b.Refresh(context.Background(), true); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}
	if err := b.Approve(context.Background(), "o1"); err != nil {
		t.Fatalf("Approve() error: %v", err)
	}

	if got, _ := b.Find("o1"); got.Status != StatusPreparing {
		t.Fatalf("after approve status = %q, want %q", got.Status, StatusPreparing)
	}
	if len(client.updates) != 1 || client.updates[0] != "o1:preparing" {
		t.Fatalf("remote updates = %v, want [o1:preparing]", client.updates)
	}

	// Server has not caught up yet and still reports pending.
	if err := b.Refresh(context.Background(), true); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}
	if got, _ := b.Find("o1"); got.Status != StatusPreparing {
		t.Errorf("stale poll reverted status to %q", got.Status)
	}
}

func TestRejectIsTerminal(t *testing.T) {
	client := &fakeClient{}
	client.serve(rawOrder("o1", "pending"), rawOrder("o2", "pending"))
	b := newTestBoard(client)

	if err := b.Refresh(context.Background(), true); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}
	if err := b.Reject(context.Background(), "o1"); err != nil {
		t.Fatalf("Reject() error: %v", err)
	}

	if _, ok := b.Find("o1"); ok {
		t.Fatal("rejected order still on the board")
	}

	// The server keeps reporting o1 as active; it must not come back.
	if err := b.Refresh(context.Background(), true); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}
	if _, ok := b.Find("o1"); ok {
		t.Error("rejected order resurrected by a later poll")
	}
	if got := b.Orders(); len(got) != 1 || got[0].ID != "o2" {
		t.Errorf("Orders() = %+v, want only o2", got)
	}
}

func TestDispatchMovesToHistory(t *testing.T) {
	client := &fakeClient{}
	client.serve(rawOrder("o1", "ready"))
	b := newTestBoard(client)

	if err := b.Refresh(context.Background(), true); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}
	if err := b.ChangeStatus(context.Background(), "o1", StatusDispatch); err != nil {
		t.Fatalf("ChangeStatus() error: %v", err)
	}

	if _, ok := b.Find("o1"); ok {
		t.Error("dispatched order still on the board")
	}
	if err := b.Refresh(context.Background(), true); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}
	if _, ok := b.Find("o1"); ok {
		t.Error("dispatched order resurrected by a later poll")
	}
}

// gatedClient blocks its first ListOrders call until released, so a test can
// let a later fetch resolve before an earlier one.
type gatedClient struct {
	mu      sync.Mutex
	calls   int
	started chan struct{}
	release chan struct{}
}

func (c *gatedClient) ListOrders(_ context.Context) ([]orderapi.RawOrder, error) {
	c.mu.Lock()
	c.calls++
	n := c.calls
	c.mu.Unlock()

	if n == 1 {
		close(c.started)
		<-c.release
		first := rawOrder("o1", "pending")
		first.Notes = "first response"
		return []orderapi.RawOrder{first}, nil
	}

	second := rawOrder("o1", "preparing")
	second.Notes = "second response"
	return []orderapi.RawOrder{second}, nil
}

func (c *gatedClient) UpdateStatus(_ context.Context, _, _ string) error {
	return nil
}

func TestRefreshDiscardsOutOfOrderResponse(t *testing.T) {
	client := &gatedClient{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	b := newTestBoard(client)

	// First fetch takes its sequence number, then stalls inside the client.
	slow := make(chan error, 1)
	go func() {
		slow <- b.Refresh(context.Background(), true)
	}()
	<-client.started

	// Second fetch overtakes it and publishes newer data.
	if err := b.Refresh(context.Background(), true); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}
	if got, _ := b.Find("o1"); got.Status != StatusPreparing {
		t.Fatalf("newer fetch not applied, status = %q", got.Status)
	}

	// Now the slow fetch resolves with its stale snapshot; it must be dropped.
	close(client.release)
	if err := <-slow; err != nil {
		t.Fatalf("slow Refresh() error: %v", err)
	}

	got, _ := b.Find("o1")
	if got.Status != StatusPreparing {
		t.Errorf("slow poll reverted status to %q", got.Status)
	}
	if got.Notes != "second response" {
		t.Errorf("slow poll overwrote newer data, notes = %q", got.Notes)
	}
}

func TestUpdateFailureLeavesStateUntouched(t *testing.T) {
	client := &fakeClient{updateErr: errors.New("backend down")}
	client.serve(rawOrder("o1", "pending"))
	notifier := &recordingNotifier{}
	b := newTestBoard(client)
	b.SetNotifier(notifier)

	if err := b.Refresh(context.Background(), true); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}
	if err := b.Approve(context.Background(), "o1"); err == nil {
		t.Fatal("Approve() should fail when the remote update fails")
	}

	if got, _ := b.Find("o1"); got.Status != StatusPending {
		t.Errorf("failed update mutated status to %q", got.Status)
	}
	if notifier.errorCount() == 0 {
		t.Error("failed update should raise a transient error notification")
	}
}

func TestInvalidTransitionNeverHitsRemote(t *testing.T) {
	client := &fakeClient{}
	client.serve(rawOrder("o1", "pending"))
	b := newTestBoard(client)

	if err := b.Refresh(context.Background(), true); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}

	err := b.ChangeStatus(context.Background(), "o1", StatusDispatch)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("ChangeStatus() error = %v, want ErrInvalidTransition", err)
	}
	if len(client.updates) != 0 {
		t.Errorf("invalid transition reached the remote: %v", client.updates)
	}
}

func TestTransitionUnknownOrder(t *testing.T) {
	b := newTestBoard(&fakeClient{})
	err := b.Approve(context.Background(), "nope")
	if !errors.Is(err, ErrUnknownOrder) {
		t.Errorf("Approve() error = %v, want ErrUnknownOrder", err)
	}
}

func TestFetchFailureKeepsVisibleState(t *testing.T) {
	client := &fakeClient{}
	client.serve(rawOrder("o1", "pending"))
	notifier := &recordingNotifier{}
	b := newTestBoard(client)
	b.SetNotifier(notifier)

	if err := b.Refresh(context.Background(), true); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}

	client.mu.Lock()
	client.listErr = errors.New("network gone")
	client.mu.Unlock()

	if err := b.Refresh(context.Background(), true); err == nil {
		t.Fatal("Refresh() should surface the fetch failure")
	}
	if got := b.Orders(); len(got) != 1 {
		t.Errorf("fetch failure cleared the visible list: %+v", got)
	}
	if notifier.errorCount() == 0 {
		t.Error("fetch failure should raise a transient error notification")
	}
}

func TestStartStop(t *testing.T) {
	client := &fakeClient{}
	client.serve(rawOrder("o1", "pending"))
	b := newTestBoard(client)

	b.Start()
	b.Stop()

	if got := b.Orders(); len(got) != 1 {
		t.Errorf("initial fetch did not run before stop: %+v", got)
	}

	// A late result after Stop must not mutate anything.
	if err := b.Refresh(context.Background(), true); err != nil {
		t.Fatalf("Refresh() after stop error: %v", err)
	}
	if client.calls() != 1 {
		t.Errorf("closed board still fetching (%d calls)", client.calls())
	}
}

func TestSetTab(t *testing.T) {
	b := newTestBoard(&fakeClient{})

	if err := b.SetTab(StatusPreparing); err != nil {
		t.Fatalf("SetTab(preparing) error: %v", err)
	}
	if b.ActiveTab() != StatusPreparing {
		t.Errorf("ActiveTab() = %q, want preparing", b.ActiveTab())
	}
	if err := b.SetTab(StatusDispatch); err == nil {
		t.Error("SetTab(dispatch) should fail, terminal statuses have no tab")
	}
}

func TestVisibleOrdersUsesActiveTab(t *testing.T) {
	client := &fakeClient{}
	client.serve(rawOrder("o1", "pending"), rawOrder("o2", "preparing"))
	b := newTestBoard(client)

	if err := b.Refresh(context.Background(), true); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}

	if got := b.VisibleOrders(""); len(got) != 1 || got[0].ID != "o1" {
		t.Errorf("pending tab shows %+v, want o1", got)
	}
	if err := b.SetTab(StatusPreparing); err != nil {
		t.Fatalf("SetTab() error: %v", err)
	}
	if got := b.VisibleOrders(""); len(got) != 1 || got[0].ID != "o2" {
		t.Errorf("preparing tab shows %+v, want o2", got)
	}
}
