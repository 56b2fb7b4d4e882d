package ledger

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"reels_monetization/internal/domain"
	"reels_monetization/internal/money"
)

// GormStore keeps accounts in the wallets table. Several ledgers share the
// table and are told apart by the ledger column. The gorm.DB must be opened
// with TranslateError so duplicate keys map to gorm.ErrDuplicatedKey.
type GormStore struct {
	db     *gorm.DB
	ledger string
}

func NewGormStore(db *gorm.DB, ledger string) *GormStore {
	return &GormStore{db: db, ledger: ledger}
}

func (s *GormStore) Get(ctx context.Context, userID string) (Account, error) {
	var w domain.Wallet
	err := s.db.WithContext(ctx).Where("ledger = ? AND user_id = ?", s.ledger, userID).First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Account{}, ErrNotFound
	}
	if err != nil {
		return Account{}, fmt.Errorf("load wallet %s/%s: %w", s.ledger, userID, err)
	}
	return Account{UserID: w.UserID, Balance: money.Amount(w.Balance)}, nil
}

func (s *GormStore) Insert(ctx context.Context, acct Account) error {
	w := s.row(acct)
	err := s.db.WithContext(ctx).Create(&w).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("insert wallet %s/%s: %w", s.ledger, acct.UserID, err)
	}
	return nil
}

func (s *GormStore) Put(ctx context.Context, accts ...Account) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, a := range accts {
			w := s.row(a)
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "ledger"}, {Name: "user_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"balance"}),
			}).Create(&w).Error
			if err != nil {
				return fmt.Errorf("save wallet %s/%s: %w", s.ledger, a.UserID, err)
			}
		}
		return nil
	})
}

func (s *GormStore) Delete(ctx context.Context, userID string) error {
	res := s.db.WithContext(ctx).Where("ledger = ? AND user_id = ?", s.ledger, userID).Delete(&domain.Wallet{})
	if res.Error != nil {
		return fmt.Errorf("delete wallet %s/%s: %w", s.ledger, userID, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) row(a Account) domain.Wallet {
	return domain.Wallet{UserID: a.UserID, Ledger: s.ledger, Balance: int64(a.Balance)}
}
