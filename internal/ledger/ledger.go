// Package ledger implements the mutation API over the monthly record store:
// adding, editing and deleting transactions, template application and
// savings goals. Every mutation re-derives the month's aggregates through
// the aggregator and persists the full finance document.
package ledger

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"lifequest/finance-engine/internal/aggregator"
	"lifequest/finance-engine/internal/engineerror"
	"lifequest/finance-engine/internal/events"
	"lifequest/finance-engine/internal/models"
	"lifequest/finance-engine/internal/monthkey"
	"lifequest/finance-engine/internal/store"
)

var log = logrus.New()

// SetLogger allows setting a custom logger for the ledger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Service applies ledger mutations for one user. Mutations are applied to
// the in-memory state first and then persisted; a failed save is surfaced
// as a PersistenceError without rolling the memory copy back. The service
// assumes a single writer per month key — callers running it concurrently
// must serialize mutations against the same month themselves.
type Service struct {
	store    store.Store
	userKey  string
	month    string
	notifier events.Notifier
	now      func() time.Time
	newID    func() string
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides transaction id synthesis, mainly for tests.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// WithNotifier attaches an event notifier.
func WithNotifier(n events.Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithMonth selects the initial active month (normalized).
func WithMonth(raw string) Option {
	return func(s *Service) { s.month = monthkey.Normalize(raw) }
}

// NewService creates a ledger service for one user key. The active month
// defaults to the current calendar month.
func NewService(st store.Store, userKey string, opts ...Option) *Service {
	s := &Service{
		store:    st,
		userKey:  userKey,
		notifier: events.Nop{},
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.month == "" {
		s.month = monthkey.ForTime(s.now())
	}
	return s
}

// Month returns the currently selected canonical month key.
func (s *Service) Month() string {
	return s.month
}

// SelectMonth normalizes and activates a month key, returning the
// canonical form. Input that normalizes to nothing falls back to the
// current calendar month, so mutations can never land under an empty key.
func (s *Service) SelectMonth(raw string) string {
	month := monthkey.Normalize(raw)
	if month == "" {
		month = monthkey.ForTime(s.now())
	}
	s.month = month
	return s.month
}

// AddTransaction validates and appends a new transaction to the active
// month, re-aggregates and persists. It returns the updated record.
func (s *Service) AddTransaction(ctx context.Context, description string, amount decimal.Decimal, category string, kind models.TransactionKind) (models.MonthlyRecord, error) {
	if strings.TrimSpace(description) == "" {
		return models.MonthlyRecord{}, &engineerror.ValidationError{Field: "description", Reason: "must not be empty"}
	}
	if !amount.IsPositive() {
		return models.MonthlyRecord{}, &engineerror.ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	if !kind.IsValid() {
		return models.MonthlyRecord{}, &engineerror.ValidationError{Field: "kind", Reason: "must be income or expense"}
	}

	state, err := s.load(ctx)
	if err != nil {
		return models.MonthlyRecord{}, err
	}

	tx := models.Transaction{
		ID:          s.newID(),
		Date:        s.now(),
		Description: strings.TrimSpace(description),
		Amount:      amount,
		Category:    category,
		Kind:        kind,
		Month:       s.month,
	}

	record := state.Months[s.month]
	record = aggregator.Aggregate(append(record.Transactions, tx))

	log.WithFields(logrus.Fields{
		"user":   s.userKey,
		"month":  s.month,
		"amount": amount.String(),
		"kind":   kind,
	}).Info("Adding transaction")

	return record, s.persistMonth(ctx, state, record)
}

// DeleteTransaction removes a transaction by id from the active month.
// An absent id is a benign no-op, not an error.
func (s *Service) DeleteTransaction(ctx context.Context, id string) (models.MonthlyRecord, error) {
	state, err := s.load(ctx)
	if err != nil {
		return models.MonthlyRecord{}, err
	}

	record := state.Months[s.month]
	idx := record.FindTransaction(id)
	if idx < 0 {
		log.WithFields(logrus.Fields{"user": s.userKey, "id": id}).Debug("Transaction not found, nothing to delete")
		return record, nil
	}

	remaining := make([]models.Transaction, 0, len(record.Transactions)-1)
	remaining = append(remaining, record.Transactions[:idx]...)
	remaining = append(remaining, record.Transactions[idx+1:]...)
	record = aggregator.Aggregate(remaining)

	return record, s.persistMonth(ctx, state, record)
}

// EditTransactionAmount replaces only the amount of the matching
// transaction, re-aggregates and persists. An absent id is a no-op.
func (s *Service) EditTransactionAmount(ctx context.Context, id string, newAmount decimal.Decimal) (models.MonthlyRecord, error) {
	if !newAmount.IsPositive() {
		return models.MonthlyRecord{}, &engineerror.ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}

	state, err := s.load(ctx)
	if err != nil {
		return models.MonthlyRecord{}, err
	}

	record := state.Months[s.month]
	idx := record.FindTransaction(id)
	if idx < 0 {
		log.WithFields(logrus.Fields{"user": s.userKey, "id": id}).Debug("Transaction not found, nothing to edit")
		return record, nil
	}

	edited := append([]models.Transaction{}, record.Transactions...)
	edited[idx].Amount = newAmount
	record = aggregator.Aggregate(edited)

	return record, s.persistMonth(ctx, state, record)
}

// ToggleVerified flips the verified flag of the matching transaction.
// Verification does not affect aggregates but is still re-derived through
// the aggregator so every write path stays uniform.
func (s *Service) ToggleVerified(ctx context.Context, id string) (models.MonthlyRecord, error) {
	state, err := s.load(ctx)
	if err != nil {
		return models.MonthlyRecord{}, err
	}

	record := state.Months[s.month]
	idx := record.FindTransaction(id)
	if idx < 0 {
		return record, &engineerror.NotFoundError{Entity: "transaction", ID: id}
	}

	toggled := append([]models.Transaction{}, record.Transactions...)
	toggled[idx].Verified = !toggled[idx].Verified
	record = aggregator.Aggregate(toggled)

	return record, s.persistMonth(ctx, state, record)
}

// load reads the user's state, starting fresh when no document exists yet.
func (s *Service) load(ctx context.Context) (models.FinanceState, error) {
	state, err := s.store.Load(ctx, s.userKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.NewFinanceState(), nil
		}
		return models.FinanceState{}, &engineerror.PersistenceError{Op: "load", UserKey: s.userKey, Err: err}
	}
	state.EnsureInitialized()
	return state, nil
}

// persistMonth installs the record for the active month, refreshes the
// headline aggregates and writes the full document.
func (s *Service) persistMonth(ctx context.Context, state models.FinanceState, record models.MonthlyRecord) error {
	state.Months[s.month] = record
	state.RefreshHeadline(s.month)
	return s.save(ctx, state)
}

func (s *Service) save(ctx context.Context, state models.FinanceState) error {
	if err := s.store.Save(ctx, s.userKey, state); err != nil {
		return &engineerror.PersistenceError{Op: "save", UserKey: s.userKey, Err: err}
	}
	return nil
}
