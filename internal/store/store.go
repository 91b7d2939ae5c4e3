// Package store owns the canonical client and offer collections. It loads
// them once from a single persisted blob and rewrites the whole blob after
// every mutation.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/straye-as/offer-tracker/internal/domain"
	"github.com/straye-as/offer-tracker/internal/storage"
	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// StateKey is the storage key of the persisted {clients, offers} blob
const StateKey = "offer-tracker-state-v1"

var (
	// ErrNotReady is returned by mutations issued before Initialize completed
	ErrNotReady = errors.New("store is not ready")
	// ErrInvalidRecord is returned when a mutation lacks a required identity field
	ErrInvalidRecord = errors.New("invalid record")
)

// Clock returns the current time
type Clock func() time.Time

// OfferInput holds the fields of a new offer. Range checks on Price and Cost
// are the caller's responsibility.
type OfferInput struct {
	OfferNumber string
	ClientID    string
	Price       float64
	Cost        float64
	// Margin overrides the derived price - cost when set
	Margin     *float64
	Status     string
	CreatedAt  string
	ValidUntil string
}

// Store is safe for concurrent use. All operations are serialized.
type Store struct {
	kv       storage.KV
	ids      IDGenerator
	now      Clock
	logger   *zap.Logger
	collator *collate.Collator

	mu       sync.RWMutex
	ready    bool
	revision uint64
	clients  []domain.Client
	offers   []domain.Offer
}

// New creates a store. Initialize must be called before mutations.
func New(kv storage.KV, ids IDGenerator, clock Clock, logger *zap.Logger) *Store {
	if ids == nil {
		ids = NewIDGenerator(logger)
	}
	if clock == nil {
		clock = time.Now
	}
	return &Store{
		kv:       kv,
		ids:      ids,
		now:      clock,
		logger:   logger,
		collator: collate.New(language.Spanish, collate.IgnoreCase),
		clients:  []domain.Client{},
		offers:   []domain.Offer{},
	}
}

// Initialize reads the persisted blob once. It never fails: an absent,
// unreadable or malformed blob leaves the store empty. The store is ready
// afterwards in every case. Later calls are no-ops.
func (s *Store) Initialize(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return
	}
	defer func() {
		s.ready = true
		s.revision++
	}()

	raw, err := s.kv.Get(ctx, StateKey)
	if errors.Is(err, storage.ErrNotFound) {
		s.logger.Info("No persisted state found, starting empty")
		return
	}
	if err != nil {
		s.logger.Warn("Failed to read persisted state, starting empty", zap.Error(err))
		return
	}

	state, report, err := decodeState(raw)
	if err != nil {
		s.logger.Warn("Persisted state is malformed, starting empty", zap.Error(err))
		return
	}
	for _, problem := range report.problems {
		s.logger.Warn("Persisted state collection ignored", zap.String("problem", problem))
	}
	if report.droppedClients > 0 || report.droppedOffers > 0 {
		s.logger.Debug("Dropped invalid persisted entries",
			zap.Int("clients", report.droppedClients),
			zap.Int("offers", report.droppedOffers))
	}

	s.sortClients(state.Clients)
	s.clients = state.Clients
	s.offers = state.Offers

	s.logger.Info("Persisted state loaded",
		zap.Int("clients", len(s.clients)),
		zap.Int("offers", len(s.offers)))
}

// Ready reports whether Initialize has completed
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Revision increases with every successful change of the collections
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Clients returns the clients ordered alphabetically by name
func (s *Store) Clients() []domain.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Client{}, s.clients...)
}

// Offers returns the offers, most recently added first
func (s *Store) Offers() []domain.Offer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Offer{}, s.offers...)
}

// Snapshot returns both collections and the revision they belong to
func (s *Store) Snapshot() (domain.State, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.State{
		Clients: append([]domain.Client{}, s.clients...),
		Offers:  append([]domain.Offer{}, s.offers...),
	}, s.revision
}

// FindClient looks a client up by id
func (s *Store) FindClient(id string) (domain.Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clients {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Client{}, false
}

// AddClient creates a client, or returns the existing one whose name matches
// case-insensitively. The existing record is returned unchanged and nothing
// is written.
func (s *Store) AddClient(ctx context.Context, name, email string) (domain.Client, error) {
	client, _, err := s.EnsureClient(ctx, name, email)
	return client, err
}

// EnsureClient is AddClient that also reports whether a new client was
// created.
func (s *Store) EnsureClient(ctx context.Context, name, email string) (domain.Client, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return domain.Client{}, false, ErrNotReady
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Client{}, false, fmt.Errorf("%w: client name is empty", ErrInvalidRecord)
	}

	for _, existing := range s.clients {
		if strings.EqualFold(existing.Name, name) {
			return existing, false, nil
		}
	}

	client := domain.Client{
		ID:        s.ids.NewID(),
		Name:      name,
		Email:     normalizeEmail(&email),
		CreatedAt: domain.FormatTimestamp(s.now()),
	}

	clients := make([]domain.Client, 0, len(s.clients)+1)
	clients = append(clients, s.clients...)
	clients = append(clients, client)
	s.sortClients(clients)

	if err := s.persist(ctx, clients, s.offers); err != nil {
		return domain.Client{}, false, err
	}
	s.clients = clients
	s.revision++

	s.logger.Debug("Client created", zap.String("client_id", client.ID))
	return client, true, nil
}

// AddOffer creates an offer and puts it first in the collection
func (s *Store) AddOffer(ctx context.Context, input OfferInput) (domain.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return domain.Offer{}, ErrNotReady
	}

	offerNumber := strings.TrimSpace(input.OfferNumber)
	if offerNumber == "" {
		return domain.Offer{}, fmt.Errorf("%w: offer number is empty", ErrInvalidRecord)
	}
	if input.ClientID == "" {
		return domain.Offer{}, fmt.Errorf("%w: client id is empty", ErrInvalidRecord)
	}

	margin := input.Price - input.Cost
	if input.Margin != nil {
		margin = *input.Margin
	}

	offer := domain.Offer{
		ID:          s.ids.NewID(),
		OfferNumber: offerNumber,
		ClientID:    input.ClientID,
		Price:       input.Price,
		Cost:        input.Cost,
		Margin:      margin,
		Status:      domain.NormalizeStatus(input.Status),
		CreatedAt:   input.CreatedAt,
		ValidUntil:  input.ValidUntil,
	}

	offers := make([]domain.Offer, 0, len(s.offers)+1)
	offers = append(offers, offer)
	offers = append(offers, s.offers...)

	if err := s.persist(ctx, s.clients, offers); err != nil {
		return domain.Offer{}, err
	}
	s.offers = offers
	s.revision++

	s.logger.Debug("Offer created",
		zap.String("offer_id", offer.ID),
		zap.String("offer_number", offer.OfferNumber))
	return offer, nil
}

// persist writes the full state. The caller swaps its in-memory collections
// only after this succeeds.
func (s *Store) persist(ctx context.Context, clients []domain.Client, offers []domain.Offer) error {
	raw, err := json.Marshal(domain.State{Clients: clients, Offers: offers})
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := s.kv.Set(ctx, StateKey, raw); err != nil {
		return fmt.Errorf("failed to persist state: %w", err)
	}
	return nil
}

// sortClients orders by name using Spanish collation, ignoring case.
// Must be called with mu held.
func (s *Store) sortClients(clients []domain.Client) {
	sort.SliceStable(clients, func(i, j int) bool {
		return s.collator.CompareString(clients[i].Name, clients[j].Name) < 0
	})
}
