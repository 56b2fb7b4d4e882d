// Package rewards wires the ledgers, the progress engine and the catalog
// into the operations exposed to clients: gifting, coin purchases,
// referrals, subscriptions, engagement points and account management.
//
// Ledger failures are returned to the caller. Document writes go through a
// record.Recorder and never fail an operation once money has moved.
package rewards

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"reels_monetization/internal/catalog"
	"reels_monetization/internal/domain"
	"reels_monetization/internal/ledger"
	"reels_monetization/internal/money"
	"reels_monetization/internal/progress"
	"reels_monetization/internal/record"
	"reels_monetization/internal/security"
)

var (
	ErrUnknownItem     = errors.New("unknown catalog item")
	ErrInvalidQuantity = errors.New("invalid gift quantity")
	ErrInvalidActivity = errors.New("invalid activity")
	ErrSuspicious      = errors.New("activity flagged as suspicious")

	ErrAlreadySubscribed = errors.New("subscription already active")
	ErrInvalidConversion = errors.New("coins must be a positive multiple of the conversion block")
)

// Ledger names.
const (
	LedgerCoins = "coins"
	LedgerCash  = "cash"
)

// Deps are the collaborators of a Service.
type Deps struct {
	Catalog  *catalog.Catalog
	Coins    *ledger.Ledger
	Cash     *ledger.Ledger
	Progress *progress.Engine
	Recorder *record.Recorder
	Guard    *security.Guard
	Log      logrus.FieldLogger
}

// Service implements the monetization operations.
type Service struct {
	catalog  *catalog.Catalog
	coins    *ledger.Ledger
	cash     *ledger.Ledger
	progress *progress.Engine
	rec      *record.Recorder
	audit    *security.Auditor
	guard    *security.Guard
	log      logrus.FieldLogger
	now      func() time.Time

	privacyMu sync.Mutex
	privacy   map[string]domain.PrivacySettings

	subsMu sync.Mutex
	subs   map[string]domain.SubscriptionRecord // active by user
}

func New(d Deps) *Service {
	return &Service{
		catalog:  d.Catalog,
		coins:    d.Coins,
		cash:     d.Cash,
		progress: d.Progress,
		rec:      d.Recorder,
		audit:    security.NewAuditor(d.Recorder),
		guard:    d.Guard,
		log:      d.Log,
		now:      time.Now,
		privacy:  make(map[string]domain.PrivacySettings),
		subs:     make(map[string]domain.SubscriptionRecord),
	}
}

func (s *Service) Catalog() *catalog.Catalog { return s.catalog }

// Coins returns the coin ledger.
func (s *Service) Coins() *ledger.Ledger { return s.coins }

// Cash returns the cash ledger.
func (s *Service) Cash() *ledger.Ledger { return s.cash }

func (s *Service) Progress() *progress.Engine { return s.progress }

// journal writes one transaction line for a ledger movement.
func (s *Service) journal(ctx context.Context, l *ledger.Ledger, userID, typ, category string, amount money.Amount, counterparty, transferID, description string) {
	s.rec.Record(ctx, domain.CollectionTransactions, &domain.Transaction{
		TransferID:   transferID,
		UserID:       userID,
		Ledger:       l.Name(),
		Type:         typ,
		Category:     category,
		Amount:       int64(amount),
		Counterparty: counterparty,
		Description:  description,
		Status:       "completed",
	})
}

func (s *Service) millis() int64 {
	return s.now().UnixMilli()
}
