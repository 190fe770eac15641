package tools

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// Supplies output file names. Implementations are injected so naming stays reproducible in tests.
type NameSource interface {
	Next() string
}

type CounterNames struct {
	mu     sync.Mutex
	prefix string
	next   int
}

// Yields prefix0, prefix1, ...
func NewCounterNames(prefix string) *CounterNames {
	return &CounterNames{prefix: prefix}
}

func (c *CounterNames) Next() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	name := c.prefix + strconv.Itoa(c.next)
	c.next++
	return name
}

type UUIDNames struct {
	prefix   string
	generate func() uuid.UUID
}

// Yields prefix followed by a UUID from generate; a nil generate uses uuid.New
func NewUUIDNames(prefix string, generate func() uuid.UUID) *UUIDNames {
	if generate == nil {
		generate = uuid.New
	}
	return &UUIDNames{prefix: prefix, generate: generate}
}

func (u *UUIDNames) Next() string {
	return u.prefix + u.generate().String()
}
