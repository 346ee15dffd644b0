package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/oggyb/sms-gateway-connector/internal/bus"
	"github.com/oggyb/sms-gateway-connector/internal/cache"
	"github.com/oggyb/sms-gateway-connector/internal/connector"
	domain "github.com/oggyb/sms-gateway-connector/internal/domain/message"
)

const testNumber = "+4916518375921"

// fakeRepo is an in-memory journal.
type fakeRepo struct {
	mu      sync.Mutex
	items   map[uuid.UUID]domain.Message
	updated chan uuid.UUID
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		items:   make(map[uuid.UUID]domain.Message),
		updated: make(chan uuid.UUID, 16),
	}
}

func (r *fakeRepo) Save(ctx context.Context, m *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[m.ID] = *m
	return nil
}

func (r *fakeRepo) UpdateOutcome(ctx context.Context, m *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[m.ID]; !ok {
		return domain.ErrNotFound
	}
	r.items[m.ID] = *m
	r.updated <- m.ID
	return nil
}

func (r *fakeRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &m, nil
}

func (r *fakeRepo) List(ctx context.Context, page, limit int) ([]*domain.Message, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Message, 0, len(r.items))
	for _, m := range r.items {
		m := m
		out = append(out, &m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

// fakeCache keeps counters in a map.
type fakeCache struct {
	mu       sync.Mutex
	counters map[string]int64
}

func newFakeCache() *fakeCache {
	return &fakeCache{counters: make(map[string]int64)}
}

func (c *fakeCache) Ping(ctx context.Context) error { return nil }

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.counters[key]
	if !ok {
		return "", cache.ErrNotFound
	}
	return strconv.FormatInt(n, 10), nil
}

func (c *fakeCache) Incr(ctx context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counters[key]++
	return c.counters[key], nil
}

// gatewayStub serves the SMS gateway address on a local bus with a canned
// reply per recipient. Recipients without an entry get no reply at all.
func gatewayStub(replies map[string]connector.Reply) *connector.GatewayConnector {
	b := bus.NewLocal()
	b.Consume(connector.DefaultServiceID, func(ctx context.Context, req bus.Message) any {
		var r connector.Request
		if err := req.Decode(&r); err != nil {
			return nil
		}
		reply, ok := replies[r.To]
		if !ok {
			return nil
		}
		return reply
	})
	return connector.New(b, "")
}

func strPtr(s string) *string { return &s }

func TestSend_Success(t *testing.T) {
	repo := newFakeRepo()
	c := newFakeCache()
	gw := gatewayStub(map[string]connector.Reply{testNumber: {Status: "ok"}})
	svc := NewMessageService(repo, gw, c, time.Second)

	msg, err := svc.Send(context.Background(), testNumber, "Hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Status != domain.StatusSuccess {
		t.Fatalf("status = %s, want %s", msg.Status, domain.StatusSuccess)
	}

	stored, _ := repo.Get(context.Background(), msg.ID)
	if stored.Status != domain.StatusSuccess {
		t.Fatalf("journal status = %s, want %s", stored.Status, domain.StatusSuccess)
	}

	st, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Sent != 1 || st.Succeeded != 1 || st.Failed != 0 {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestSend_FailureKeepsDetail(t *testing.T) {
	repo := newFakeRepo()
	gw := gatewayStub(map[string]connector.Reply{
		testNumber: {Status: "error", Message: strPtr("invalid number")},
	})
	svc := NewMessageService(repo, gw, newFakeCache(), time.Second)

	msg, err := svc.Send(context.Background(), testNumber, "Hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Status != domain.StatusFailed {
		t.Fatalf("status = %s, want %s", msg.Status, domain.StatusFailed)
	}
	if msg.FailureDetail == nil || *msg.FailureDetail != "invalid number" {
		t.Fatalf("unexpected failure detail %v", msg.FailureDetail)
	}
}

func TestSend_FailureWithoutDetail(t *testing.T) {
	gw := gatewayStub(map[string]connector.Reply{testNumber: {Status: "error"}})
	svc := NewMessageService(newFakeRepo(), gw, nil, time.Second)

	msg, err := svc.Send(context.Background(), testNumber, "Hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Status != domain.StatusFailed || msg.FailureDetail != nil {
		t.Fatalf("want FAILED with absent detail, got %s %v", msg.Status, msg.FailureDetail)
	}
}

func TestSend_EmptyRecipient(t *testing.T) {
	svc := NewMessageService(newFakeRepo(), gatewayStub(nil), nil, time.Second)

	if _, err := svc.Send(context.Background(), " ", "Hello"); !errors.Is(err, domain.ErrEmptyRecipient) {
		t.Fatalf("got %v, want ErrEmptyRecipient", err)
	}
}

func TestSend_NoReplyStaysPending(t *testing.T) {
	repo := newFakeRepo()
	svc := NewMessageService(repo, gatewayStub(nil), newFakeCache(), time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	msg, err := svc.Send(ctx, testNumber, "Hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Status != domain.StatusPending {
		t.Fatalf("status = %s, want %s", msg.Status, domain.StatusPending)
	}

	select {
	case <-repo.updated:
		t.Fatal("outcome recorded without a reply")
	case <-time.After(50 * time.Millisecond):
	}
}

// manualGateway holds the completion so the test decides when the reply lands.
type manualGateway struct {
	handlers chan connector.CompletionHandler
}

func (g *manualGateway) SendMessage(to, text string, onComplete connector.CompletionHandler) {
	g.handlers <- onComplete
}

func TestSend_LateReplyIsStillJournaled(t *testing.T) {
	repo := newFakeRepo()
	gw := &manualGateway{handlers: make(chan connector.CompletionHandler, 1)}
	svc := NewMessageService(repo, gw, nil, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	msg, err := svc.Send(ctx, testNumber, "Hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Status != domain.StatusPending {
		t.Fatalf("status = %s, want %s", msg.Status, domain.StatusPending)
	}

	onComplete := <-gw.handlers
	onComplete(nil)

	select {
	case id := <-repo.updated:
		if id != msg.ID {
			t.Fatalf("updated %s, want %s", id, msg.ID)
		}
	case <-time.After(time.Second):
		t.Fatal("late outcome was not persisted")
	}

	stored, _ := repo.Get(context.Background(), msg.ID)
	if stored.Status != domain.StatusSuccess {
		t.Fatalf("journal status = %s, want %s", stored.Status, domain.StatusSuccess)
	}
	if msg.Status != domain.StatusPending {
		t.Fatal("returned message was mutated after Send returned")
	}
}

func TestStats_EmptyCounters(t *testing.T) {
	svc := NewMessageService(newFakeRepo(), gatewayStub(nil), newFakeCache(), time.Second)

	st, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st != (Stats{}) {
		t.Fatalf("expected zero stats, got %+v", st)
	}
}

func TestGetAndList(t *testing.T) {
	repo := newFakeRepo()
	gw := gatewayStub(map[string]connector.Reply{testNumber: {Status: "ok"}})
	svc := NewMessageService(repo, gw, nil, time.Second)

	msg, err := svc.Send(context.Background(), testNumber, "Hello")
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	got, err := svc.Get(context.Background(), msg.ID)
	if err != nil || got.ID != msg.ID {
		t.Fatalf("get: %v %v", got, err)
	}

	if _, err := svc.Get(context.Background(), uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}

	items, total, err := svc.List(context.Background(), 1, 20)
	if err != nil || total != 1 || len(items) != 1 {
		t.Fatalf("list: %d items, total %d, err %v", len(items), total, err)
	}
}
