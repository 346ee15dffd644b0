package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/oggyb/sms-gateway-connector/internal/cache"
	"github.com/oggyb/sms-gateway-connector/internal/connector"
	domain "github.com/oggyb/sms-gateway-connector/internal/domain/message"
)

// DefaultPersistTimeout bounds writing an outcome to the journal.
const DefaultPersistTimeout = 5 * time.Second

// Gateway is the part of the connector the service needs.
type Gateway interface {
	SendMessage(to, text string, onComplete connector.CompletionHandler)
}

// Stats is a snapshot of the outcome counters.
type Stats struct {
	Sent      int64
	Succeeded int64
	Failed    int64
}

type MessageService interface {
	Send(ctx context.Context, to, text string) (*domain.Message, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Message, error)
	List(ctx context.Context, page, limit int) ([]*domain.Message, int64, error)
	Stats(ctx context.Context) (Stats, error)
}

type messageService struct {
	repo    domain.Repository
	gateway Gateway
	cache   cache.Cache

	persistTimeout time.Duration
}

// NewMessageService creates a message service. cache may be nil, in which
// case no counters are kept.
func NewMessageService(
	repo domain.Repository,
	gateway Gateway,
	cache cache.Cache,
	persistTimeout time.Duration,
) MessageService {
	if persistTimeout <= 0 {
		persistTimeout = DefaultPersistTimeout
	}

	return &messageService{
		repo:           repo,
		gateway:        gateway,
		cache:          cache,
		persistTimeout: persistTimeout,
	}
}

// Send journals the request, forwards it to the gateway and waits for the
// outcome until ctx is done. If ctx ends first the pending message is
// returned; the outcome is still recorded whenever the reply arrives.
func (s *messageService) Send(ctx context.Context, to, text string) (*domain.Message, error) {
	msg, err := domain.NewMessage(to, text)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, msg); err != nil {
		return nil, fmt.Errorf("save message: %w", err)
	}
	s.count(ctx, cache.CounterSent)

	done := make(chan *domain.Message, 1)
	pending := *msg

	s.gateway.SendMessage(msg.To, msg.Text, func(err error) {
		done <- s.complete(pending, err)
	})

	select {
	case completed := <-done:
		return completed, nil
	case <-ctx.Done():
		log.Printf("[Service] No reply yet for %s, leaving it pending.", msg.ID)
		return msg, nil
	}
}

// complete applies the gateway outcome to a copy of the message and
// persists it.
func (s *messageService) complete(msg domain.Message, err error) *domain.Message {
	id := msg.ID.String()

	counter := cache.CounterSucceeded
	if err == nil {
		msg.MarkSucceeded()
	} else {
		counter = cache.CounterFailed
		msg.MarkFailed(failureDetail(err))
		log.Printf("[Service] Gateway rejected %s: %v", id, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.persistTimeout)
	defer cancel()

	if uErr := s.repo.UpdateOutcome(ctx, &msg); uErr != nil {
		log.Printf("[Service] Failed to persist %s status for %s: %v", msg.Status, id, uErr)
	}
	s.count(ctx, counter)

	return &msg
}

// failureDetail extracts the gateway's message, keeping "absent" distinct
// from an empty string.
func failureDetail(err error) *string {
	var gwErr *connector.GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.Detail
	}
	detail := err.Error()
	return &detail
}

func (s *messageService) count(ctx context.Context, counter string) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Incr(ctx, cache.Outcomes.Key(counter)); err != nil {
		log.Printf("[Service] Failed to bump %s counter: %v", counter, err)
	}
}

func (s *messageService) Get(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	return s.repo.Get(ctx, id)
}

func (s *messageService) List(ctx context.Context, page, limit int) ([]*domain.Message, int64, error) {
	return s.repo.List(ctx, page, limit)
}

// Stats reads the outcome counters. Missing counters read as zero.
func (s *messageService) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	if s.cache == nil {
		return st, nil
	}

	for counter, dst := range map[string]*int64{
		cache.CounterSent:      &st.Sent,
		cache.CounterSucceeded: &st.Succeeded,
		cache.CounterFailed:    &st.Failed,
	} {
		v, err := s.cache.Get(ctx, cache.Outcomes.Key(counter))
		if errors.Is(err, cache.ErrNotFound) {
			continue
		}
		if err != nil {
			return Stats{}, fmt.Errorf("read %s counter: %w", counter, err)
		}

		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Stats{}, fmt.Errorf("parse %s counter: %w", counter, err)
		}
		*dst = n
	}

	return st, nil
}
