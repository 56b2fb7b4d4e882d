// Package ledger holds per-user balances for one currency and applies
// credits, debits and revenue-split transfers to them.
//
// Every account is guarded by its own mutex. Operations on one account are
// serialised; operations on different accounts proceed in parallel. A
// transfer holds both account locks, taken in lexicographic order, for the
// whole read-modify-write so that no reader observes a half-applied move.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"reels_monetization/internal/money"
)

// Ledger is the in-process authority for balances of a single currency.
type Ledger struct {
	name  string
	store Store
	now   func() time.Time

	mu    sync.Mutex
	locks map[string]*accountLock
}

// accountLock is dropped from the lock table once nobody holds or waits on it.
type accountLock struct {
	sync.Mutex
	refs int
}

// New builds a ledger over store. name labels metrics and errors.
func New(name string, store Store) *Ledger {
	return &Ledger{
		name:  name,
		store: store,
		now:   time.Now,
		locks: make(map[string]*accountLock),
	}
}

// Name returns the ledger label, e.g. "coins".
func (l *Ledger) Name() string { return l.name }

func (l *Ledger) acquire(userID string) *accountLock {
	l.mu.Lock()
	m, ok := l.locks[userID]
	if !ok {
		m = &accountLock{}
		l.locks[userID] = m
	}
	m.refs++
	l.mu.Unlock()

	m.Lock()
	return m
}

func (l *Ledger) release(userID string, m *accountLock) {
	m.Unlock()
	l.mu.Lock()
	defer l.mu.Unlock()
	if m.refs--; m.refs == 0 {
		delete(l.locks, userID)
	}
}

// lock acquires the locks of every distinct id in sorted order and returns
// the matching unlock func.
func (l *Ledger) lock(ids ...string) func() {
	sorted := append([]string(nil), ids...)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	held := make([]*accountLock, len(sorted))
	for i, id := range sorted {
		held[i] = l.acquire(id)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			l.release(sorted[i], held[i])
		}
	}
}

// load returns the stored account or a zero-balance one when absent.
func (l *Ledger) load(ctx context.Context, userID string) (Account, error) {
	a, err := l.store.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return Account{UserID: userID}, nil
	}
	return a, err
}

// CreateAccount opens an account with an initial balance. Opening the same
// account twice fails with ErrAlreadyExists and leaves the first one intact.
func (l *Ledger) CreateAccount(ctx context.Context, userID string, initial money.Amount) (Account, error) {
	if initial < 0 {
		return Account{}, fmt.Errorf("%s: create %s: %w", l.name, userID, ErrInvalidAmount)
	}
	defer l.lock(userID)()

	acct := Account{UserID: userID, Balance: initial}
	if err := l.store.Insert(ctx, acct); err != nil {
		return Account{}, fmt.Errorf("%s: create %s: %w", l.name, userID, err)
	}
	return acct, nil
}

// Credit adds amount to the account, opening it at zero if needed, and
// returns the new balance. source is informational only.
func (l *Ledger) Credit(ctx context.Context, userID string, amount money.Amount, source string) (money.Amount, error) {
	if amount < 0 {
		return 0, fmt.Errorf("%s: credit %s (%s): %w", l.name, userID, source, ErrInvalidAmount)
	}
	defer l.lock(userID)()

	acct, err := l.load(ctx, userID)
	if err != nil {
		return 0, err
	}
	bal, ok := money.Add(acct.Balance, amount)
	if !ok {
		return acct.Balance, fmt.Errorf("%s: credit %s (%s) of %s with balance %s: %w", l.name, userID, source, amount, acct.Balance, ErrInvalidAmount)
	}
	acct.Balance = bal
	if err := l.store.Put(ctx, acct); err != nil {
		return 0, err
	}
	observeMovement(l.name, "credit", amount)
	return acct.Balance, nil
}

// Debit removes amount from the account and returns the new balance. It
// fails with ErrInsufficientBalance, without mutating anything, when the
// balance does not cover amount.
func (l *Ledger) Debit(ctx context.Context, userID string, amount money.Amount) (money.Amount, error) {
	if amount < 0 {
		return 0, fmt.Errorf("%s: debit %s: %w", l.name, userID, ErrInvalidAmount)
	}
	defer l.lock(userID)()

	acct, err := l.load(ctx, userID)
	if err != nil {
		return 0, err
	}
	if acct.Balance < amount {
		observeRejection(l.name)
		return acct.Balance, fmt.Errorf("%s: debit %s of %s with balance %s: %w", l.name, userID, amount, acct.Balance, ErrInsufficientBalance)
	}
	if amount == 0 {
		return acct.Balance, nil
	}
	acct.Balance -= amount
	if err := l.store.Put(ctx, acct); err != nil {
		return 0, err
	}
	observeMovement(l.name, "debit", amount)
	return acct.Balance, nil
}

// TransferWithCut debits gross from sender and credits gross minus the
// platform cut to receiver as one atomic step. The cut leaves the ledger.
func (l *Ledger) TransferWithCut(ctx context.Context, senderID, receiverID string, gross money.Amount, rate money.Rate, kind Kind) (Transfer, error) {
	if gross < 0 {
		return Transfer{}, fmt.Errorf("%s: transfer %s->%s: %w", l.name, senderID, receiverID, ErrInvalidAmount)
	}
	if !rate.Valid() {
		return Transfer{}, fmt.Errorf("%s: transfer %s->%s: %w", l.name, senderID, receiverID, ErrInvalidRate)
	}
	if senderID == receiverID {
		return Transfer{}, fmt.Errorf("%s: transfer %s->%s: %w", l.name, senderID, receiverID, ErrSameAccount)
	}
	defer l.lock(senderID, receiverID)()

	sender, err := l.load(ctx, senderID)
	if err != nil {
		return Transfer{}, err
	}
	if sender.Balance < gross {
		observeRejection(l.name)
		return Transfer{}, fmt.Errorf("%s: transfer %s->%s of %s with balance %s: %w", l.name, senderID, receiverID, gross, sender.Balance, ErrInsufficientBalance)
	}
	receiver, err := l.load(ctx, receiverID)
	if err != nil {
		return Transfer{}, err
	}

	t := l.newTransfer(kind, senderID, receiverID, gross, rate)
	credited, ok := money.Add(receiver.Balance, t.Net)
	if !ok {
		return Transfer{}, fmt.Errorf("%s: transfer %s->%s of %s overflows receiver: %w", l.name, senderID, receiverID, gross, ErrInvalidAmount)
	}
	sender.Balance -= gross
	receiver.Balance = credited
	if err := l.store.Put(ctx, sender, receiver); err != nil {
		return Transfer{}, err
	}
	observeMovement(l.name, "debit", gross)
	observeMovement(l.name, "credit", t.Net)
	observeCut(l.name, kind, t.Cut)
	return t, nil
}

// CreditWithCut credits gross minus the platform cut to receiver, for money
// that arrives from outside the ledger (sponsorships, commissions).
func (l *Ledger) CreditWithCut(ctx context.Context, receiverID string, gross money.Amount, rate money.Rate, kind Kind) (Transfer, error) {
	if gross < 0 {
		return Transfer{}, fmt.Errorf("%s: credit %s (%s): %w", l.name, receiverID, kind, ErrInvalidAmount)
	}
	if !rate.Valid() {
		return Transfer{}, fmt.Errorf("%s: credit %s (%s): %w", l.name, receiverID, kind, ErrInvalidRate)
	}
	defer l.lock(receiverID)()

	receiver, err := l.load(ctx, receiverID)
	if err != nil {
		return Transfer{}, err
	}
	t := l.newTransfer(kind, "", receiverID, gross, rate)
	credited, ok := money.Add(receiver.Balance, t.Net)
	if !ok {
		return Transfer{}, fmt.Errorf("%s: credit %s (%s) of %s overflows balance: %w", l.name, receiverID, kind, gross, ErrInvalidAmount)
	}
	receiver.Balance = credited
	if err := l.store.Put(ctx, receiver); err != nil {
		return Transfer{}, err
	}
	observeMovement(l.name, "credit", t.Net)
	observeCut(l.name, kind, t.Cut)
	return t, nil
}

// BalanceOf returns the current balance, or zero for an unknown account.
func (l *Ledger) BalanceOf(ctx context.Context, userID string) (money.Amount, error) {
	defer l.lock(userID)()
	acct, err := l.load(ctx, userID)
	if err != nil {
		return 0, err
	}
	return acct.Balance, nil
}

// DeleteAccount removes the account. Its balance is discarded.
func (l *Ledger) DeleteAccount(ctx context.Context, userID string) error {
	defer l.lock(userID)()
	if err := l.store.Delete(ctx, userID); err != nil {
		return fmt.Errorf("%s: delete %s: %w", l.name, userID, err)
	}
	return nil
}

func (l *Ledger) newTransfer(kind Kind, senderID, receiverID string, gross money.Amount, rate money.Rate) Transfer {
	net, cut := money.SplitCut(gross, rate)
	return Transfer{
		ID:         uuid.New(),
		Kind:       kind,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Gross:      gross,
		CutRate:    rate,
		Net:        net,
		Cut:        cut,
		CreatedAt:  l.now(),
	}
}

// Exchange debits debit from userID on from and credits credit to userID on
// to, holding the account lock of both ledgers for the whole move. The two
// ledgers keep separate stores, so a credit that cannot be stored restores
// the debited account.
func Exchange(ctx context.Context, from, to *Ledger, userID string, debit, credit money.Amount) (fromBalance, toBalance money.Amount, err error) {
	if debit < 0 || credit < 0 {
		return 0, 0, fmt.Errorf("exchange %s %s->%s: %w", userID, from.name, to.name, ErrInvalidAmount)
	}
	if from.name == to.name {
		return 0, 0, fmt.Errorf("exchange %s %s->%s: %w", userID, from.name, to.name, ErrSameAccount)
	}
	first, second := from, to
	if second.name < first.name {
		first, second = second, first
	}
	defer first.lock(userID)()
	defer second.lock(userID)()

	src, err := from.load(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	if src.Balance < debit {
		observeRejection(from.name)
		return src.Balance, 0, fmt.Errorf("exchange %s %s->%s of %s with balance %s: %w", userID, from.name, to.name, debit, src.Balance, ErrInsufficientBalance)
	}
	dst, err := to.load(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	credited, ok := money.Add(dst.Balance, credit)
	if !ok {
		return src.Balance, dst.Balance, fmt.Errorf("exchange %s %s->%s overflows balance: %w", userID, from.name, to.name, ErrInvalidAmount)
	}

	before := src
	src.Balance -= debit
	if err := from.store.Put(ctx, src); err != nil {
		return 0, 0, err
	}
	dst.Balance = credited
	if err := to.store.Put(ctx, dst); err != nil {
		if rerr := from.store.Put(ctx, before); rerr != nil {
			return 0, 0, errors.Join(err, fmt.Errorf("restore %s/%s: %w", from.name, userID, rerr))
		}
		return 0, 0, err
	}
	observeMovement(from.name, "debit", debit)
	observeMovement(to.name, "credit", credit)
	return src.Balance, dst.Balance, nil
}
