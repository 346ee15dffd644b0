package messagegorm

import (
	"testing"

	"github.com/oggyb/sms-gateway-connector/internal/domain/message"
)

func TestMapper_AbsentDetailStaysAbsent(t *testing.T) {
	m, _ := message.NewMessage("+4916518375921", "Hello")
	m.MarkFailed(nil)

	got := toDomain(fromDomain(m))
	if got.FailureDetail != nil {
		t.Fatalf("absent detail became %q", *got.FailureDetail)
	}
	if got.Status != message.StatusFailed {
		t.Fatalf("status = %s, want %s", got.Status, message.StatusFailed)
	}
}

func TestMapper_EmptyDetailStaysEmpty(t *testing.T) {
	m, _ := message.NewMessage("+4916518375921", "Hello")
	empty := ""
	m.MarkFailed(&empty)

	got := toDomain(fromDomain(m))
	if got.FailureDetail == nil {
		t.Fatal("empty detail became absent")
	}
	if *got.FailureDetail != "" {
		t.Fatalf("detail = %q, want empty", *got.FailureDetail)
	}
}

func TestMapper_KeepsRequestFields(t *testing.T) {
	m, _ := message.NewMessage("+4916518375921", "")
	m.MarkSucceeded()

	got := toDomain(fromDomain(m))
	if got.ID != m.ID || got.To != m.To || got.Text != "" || got.Status != message.StatusSuccess {
		t.Fatalf("round trip changed the message: %+v", got)
	}
	if got.CompletedAt == nil || !got.CompletedAt.Equal(*m.CompletedAt) {
		t.Fatalf("CompletedAt = %v, want %v", got.CompletedAt, m.CompletedAt)
	}
}
