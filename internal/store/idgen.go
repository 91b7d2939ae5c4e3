package store

import (
	"math/rand/v2"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IDGenerator produces record identifiers
type IDGenerator interface {
	NewID() string
}

// NewIDGenerator probes the system's secure random source once. When it
// works, ids are random UUIDs; otherwise the weaker pseudo-random generator
// is used. The fallback gives no cryptographic uniqueness guarantee and is
// only acceptable for a single-user, low-volume store.
func NewIDGenerator(logger *zap.Logger) IDGenerator {
	if _, err := uuid.NewRandom(); err != nil {
		logger.Warn("secure random source unavailable, using pseudo-random ids", zap.Error(err))
		return PseudoRandomIDs{}
	}
	return UUIDs{fallback: PseudoRandomIDs{}}
}

// UUIDs generates random (version 4) UUIDs
type UUIDs struct {
	fallback IDGenerator
}

func (g UUIDs) NewID() string {
	id, err := uuid.NewRandom()
	if err != nil && g.fallback != nil {
		return g.fallback.NewID()
	}
	return id.String()
}

const (
	pseudoRandomIDLength = 9
	base36Alphabet       = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// PseudoRandomIDs generates short base36 strings. Not collision-proof.
type PseudoRandomIDs struct{}

func (PseudoRandomIDs) NewID() string {
	b := make([]byte, pseudoRandomIDLength)
	for i := range b {
		b[i] = base36Alphabet[rand.IntN(len(base36Alphabet))]
	}
	return string(b)
}
