// Package memstore keeps codes, the ledger and the audit outbox in process
// memory. Every unit of work holds one store-wide lock and runs against a
// private copy of the state that replaces the shared one only on success.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"redemption-service/internal/domain/eligibility"
	"redemption-service/internal/domain/redeemable"
	"redemption-service/internal/domain/redemption"
	"redemption-service/internal/pkg/errs"
	"redemption-service/internal/usecase/queries"
	"redemption-service/internal/usecase/shared"

	"github.com/google/uuid"
)

var errDuplicateCode = errs.New("code already exists")

type Store struct {
	mu    sync.RWMutex
	state *state
}

func New() *Store {
	return &Store{state: newState()}
}

type outboxRow struct {
	event       redemption.AuditEvent
	attempts    int
	publishedAt *time.Time
	lastError   string
}

type state struct {
	codes        map[uuid.UUID]redeemable.Params
	codeIDs      map[string]uuid.UUID
	ledger       map[uuid.UUID]redemption.EntryParams
	attributions map[uuid.UUID]shared.Attribution
	outbox       []outboxRow
}

func newState() *state {
	return &state{
		codes:        make(map[uuid.UUID]redeemable.Params),
		codeIDs:      make(map[string]uuid.UUID),
		ledger:       make(map[uuid.UUID]redemption.EntryParams),
		attributions: make(map[uuid.UUID]shared.Attribution),
	}
}

func (s *state) clone() *state {
	c := &state{
		codes:        make(map[uuid.UUID]redeemable.Params, len(s.codes)),
		codeIDs:      make(map[string]uuid.UUID, len(s.codeIDs)),
		ledger:       make(map[uuid.UUID]redemption.EntryParams, len(s.ledger)),
		attributions: make(map[uuid.UUID]shared.Attribution, len(s.attributions)),
		outbox:       make([]outboxRow, len(s.outbox)),
	}
	for k, v := range s.codes {
		c.codes[k] = v
	}
	for k, v := range s.codeIDs {
		c.codeIDs[k] = v
	}
	for k, v := range s.ledger {
		c.ledger[k] = v
	}
	for k, v := range s.attributions {
		c.attributions[k] = v
	}
	copy(c.outbox, s.outbox)
	return c
}

// Within commits the work copy only when fn returns nil.
func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	if err := fn(ctx, &memTx{st: work}); err != nil {
		return err
	}
	s.state = work
	return nil
}

func (s *Store) Reads() shared.CommandReads {
	return s
}

// CreateCode provisions a code outside of any redemption flow.
func (s *Store) CreateCode(_ context.Context, code *redeemable.Code) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.codeIDs[code.Code()]; ok {
		return errs.Wrapf(errDuplicateCode, "code %s", code.Code())
	}
	s.state.codes[code.ID()] = code.Params()
	s.state.codeIDs[code.Code()] = code.ID()
	return nil
}

// Published returns the relayed audit events in outbox order.
func (s *Store) Published() []redemption.AuditEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var events []redemption.AuditEvent
	for _, row := range s.state.outbox {
		if row.publishedAt != nil {
			events = append(events, row.event)
		}
	}
	return events
}

// Pending returns the audit events not yet relayed.
func (s *Store) Pending() []redemption.AuditEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var events []redemption.AuditEvent
	for _, row := range s.state.outbox {
		if row.publishedAt == nil {
			events = append(events, row.event)
		}
	}
	return events
}

// command reads

func (s *Store) CodeByCode(_ context.Context, code string) (*redeemable.Code, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.codeByCode(redeemable.NormalizeCode(code))
}

func (s *Store) Usage(_ context.Context, codeID, identityID uuid.UUID) (eligibility.Usage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.usage(codeID, identityID), nil
}

func (s *Store) EntryByID(_ context.Context, id uuid.UUID) (*redemption.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.entry(id)
}

func (s *Store) StaleReservations(_ context.Context, cutoff time.Time, after *shared.StaleKey, limit int) ([]shared.StaleKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []shared.StaleKey
	for _, e := range s.state.ledger {
		if e.Status != redemption.StatusReserved || !e.ReservedAt.Before(cutoff) {
			continue
		}
		k := shared.StaleKey{ReservedAt: e.ReservedAt, ID: e.ID}
		if after != nil && !keyAfter(k, *after) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keyAfter(keys[j], keys[i]) })
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}
	return keys, nil
}

func keyAfter(k, pivot shared.StaleKey) bool {
	if !k.ReservedAt.Equal(pivot.ReservedAt) {
		return k.ReservedAt.After(pivot.ReservedAt)
	}
	return k.ID.String() > pivot.ID.String()
}

// read stores

func (s *Store) FindByCode(_ context.Context, code string) (*queries.CodeView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, err := s.state.codeByCode(code)
	if err != nil {
		return nil, err
	}
	return queries.CodeViewFromDomain(c), nil
}

func (s *Store) FindByID(_ context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.state.ledger[id]
	if !ok {
		return nil, errs.Wrapf(errs.ErrReservationNotFound, "reservation %s", id)
	}
	return &queries.ReservationView{
		ID:            e.ID,
		CodeID:        e.CodeID,
		Code:          s.state.codes[e.CodeID].Code,
		Kind:          e.Kind.String(),
		IdentityID:    e.IdentityID,
		ContextID:     e.ContextID,
		Status:        e.Status.String(),
		AmountApplied: e.AmountApplied,
		ReservedAt:    e.ReservedAt,
		DecidedAt:     e.DecidedAt,
	}, nil
}

func (s *Store) ReferralCodesBySeller(_ context.Context, sellerID uuid.UUID) ([]queries.ReferralCodeStat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := make([]queries.ReferralCodeStat, 0)
	for _, p := range s.state.codes {
		if p.Kind != redeemable.KindReferral || p.Referral == nil || p.Referral.OwnerSellerID != sellerID {
			continue
		}
		stats = append(stats, queries.ReferralCodeStat{
			CodeID:      p.ID,
			Code:        p.Code,
			IsActive:    p.IsActive,
			CurrentUses: p.CurrentUses,
			MaxUses:     p.MaxUses,
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Code < stats[j].Code })
	return stats, nil
}

// state helpers shared by reads and transactions

func (s *state) codeByCode(code string) (*redeemable.Code, error) {
	id, ok := s.codeIDs[code]
	if !ok {
		return nil, errs.Wrapf(errs.ErrCodeNotFound, "code %q", code)
	}
	return s.codeByID(id)
}

func (s *state) codeByID(id uuid.UUID) (*redeemable.Code, error) {
	p, ok := s.codes[id]
	if !ok {
		return nil, errs.Wrapf(errs.ErrCodeNotFound, "code %s", id)
	}
	return redeemable.NewCode(p)
}

func (s *state) entry(id uuid.UUID) (*redemption.Entry, error) {
	p, ok := s.ledger[id]
	if !ok {
		return nil, errs.Wrapf(errs.ErrReservationNotFound, "reservation %s", id)
	}
	return redemption.Restore(p), nil
}

// usage counts stale RESERVED entries too, like the SQL store.
func (s *state) usage(codeID, identityID uuid.UUID) eligibility.Usage {
	var u eligibility.Usage
	for _, e := range s.ledger {
		if e.CodeID == codeID && e.Status == redemption.StatusReserved {
			u.ReservedCount++
		}
		if e.IdentityID != identityID || !e.Status.IsActive() {
			continue
		}
		if e.CodeID == codeID {
			u.IdentityActive++
		}
		if e.Kind == redeemable.KindReferral {
			u.IdentityReferred = true
		}
	}
	if _, ok := s.attributions[identityID]; ok {
		u.IdentityReferred = true
	}
	return u
}
