package cache

import "fmt"

type Prefix string

const (
	Outcomes Prefix = "outcomes"
)

// Counter names under the Outcomes prefix.
const (
	CounterSent      = "sent"
	CounterSucceeded = "succeeded"
	CounterFailed    = "failed"
)

func (p Prefix) Key(id string) string {
	return fmt.Sprintf("%s:%s", p, id)
}
