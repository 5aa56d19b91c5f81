package service

import (
	"time"

	"github.com/google/uuid"
)

// Clock and IDGenerator are injected so submission timestamps and bid ids
// stay deterministic under test.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

type IDGenerator interface {
	NewID() uuid.UUID
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID() uuid.UUID {
	return uuid.New()
}
