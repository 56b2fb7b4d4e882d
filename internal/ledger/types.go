package ledger

import (
	"time"

	"github.com/google/uuid"

	"reels_monetization/internal/money"
)

// Account is one user's balance within a single-currency ledger.
type Account struct {
	UserID  string       `json:"user_id"`
	Balance money.Amount `json:"balance"`
}

// Kind labels the business reason of a Transfer.
type Kind string

const (
	KindTransfer   Kind = "transfer"
	KindGift       Kind = "gift"
	KindSponsored  Kind = "sponsored"
	KindReferral   Kind = "referral"
	KindCommission Kind = "commission"
)

// Platform cut rates applied to revenue movements.
var (
	GiftCut      = money.Percent(30)
	SponsoredCut = money.Percent(20)
)

// Transfer records a movement with a platform cut. SenderID is empty when the
// gross amount came from outside the ledger.
type Transfer struct {
	ID         uuid.UUID    `json:"id"`
	Kind       Kind         `json:"kind"`
	SenderID   string       `json:"sender_id,omitempty"`
	ReceiverID string       `json:"receiver_id"`
	Gross      money.Amount `json:"gross"`
	CutRate    money.Rate   `json:"cut_rate"`
	Net        money.Amount `json:"net"`
	Cut        money.Amount `json:"cut"`
	CreatedAt  time.Time    `json:"created_at"`
}
