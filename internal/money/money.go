// Package money implements fixed-point amounts in minor units.
//
// Every balance in the service is an integer count of hundredths (cents for
// cash, hundredths of a coin for coins) so revenue splits conserve value
// exactly. Decimal parsing and rounding go through shopspring/decimal.
package money

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits carried by an Amount.
const Scale = 2

// Unit is one whole coin or currency unit expressed in minor units.
const Unit Amount = 100

// MaxUnits is the largest whole-unit count FromUnits converts without overflow.
const MaxUnits = math.MaxInt64 / int64(Unit)

var (
	// ErrInvalidAmount is returned for malformed or out of range amounts.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidRate is returned for rates outside [0, 1].
	ErrInvalidRate = errors.New("invalid rate")
)

var hundred = decimal.NewFromInt(100)

// Amount is a signed count of minor units.
type Amount int64

// FromUnits converts whole units (coins, dollars) to an Amount.
func FromUnits(n int64) Amount {
	return Amount(n) * Unit
}

// Add returns a+b and false when the sum does not fit in an Amount.
func Add(a, b Amount) (Amount, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}
	return sum, true
}

// ParseAmount parses a decimal string such as "4.99" or "-12".
// Values with more than two fractional digits are rejected.
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return FromDecimal(d)
}

// FromDecimal converts an exact decimal to an Amount without rounding.
func FromDecimal(d decimal.Decimal) (Amount, error) {
	if !d.Equal(d.Round(Scale)) {
		return 0, fmt.Errorf("%w: %s has more than %d decimals", ErrInvalidAmount, d, Scale)
	}
	shifted := d.Shift(Scale)
	if shifted.GreaterThan(decimal.NewFromInt(math.MaxInt64)) || shifted.LessThan(decimal.NewFromInt(math.MinInt64)) {
		return 0, fmt.Errorf("%w: %s out of range", ErrInvalidAmount, d)
	}
	return Amount(shifted.IntPart()), nil
}

// ToAmount rounds d to minor units using banker's rounding.
func ToAmount(d decimal.Decimal) Amount {
	return Amount(d.RoundBank(Scale).Shift(Scale).IntPart())
}

// Decimal returns the amount as a decimal in whole units.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -Scale)
}

// Units returns the whole-unit part, truncated toward zero.
func (a Amount) Units() int64 {
	return int64(a / Unit)
}

func (a Amount) String() string {
	return a.Decimal().StringFixed(Scale)
}

func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Amount) UnmarshalText(text []byte) error {
	v, err := ParseAmount(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Rate is a fraction in basis points: 10000 means the whole amount.
type Rate int64

// Full is a rate of 100%.
const Full Rate = 10000

// Percent builds a Rate from whole percent.
func Percent(p int64) Rate {
	return Rate(p * 100)
}

// ParseRate parses a fraction such as "0.3". The value must be representable
// in whole basis points and lie within [0, 1].
func ParseRate(s string) (Rate, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRate, s)
	}
	bp := d.Shift(4)
	if !bp.Equal(bp.Truncate(0)) {
		return 0, fmt.Errorf("%w: %s is finer than a basis point", ErrInvalidRate, s)
	}
	r := Rate(bp.IntPart())
	if !r.Valid() {
		return 0, fmt.Errorf("%w: %s", ErrInvalidRate, s)
	}
	return r, nil
}

// Valid reports whether r lies within [0, Full].
func (r Rate) Valid() bool {
	return r >= 0 && r <= Full
}

// Fraction returns r as a decimal fraction (3000 -> 0.3).
func (r Rate) Fraction() decimal.Decimal {
	return decimal.New(int64(r), -4)
}

func (r Rate) String() string {
	return r.Fraction().String()
}

func (r Rate) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Rate) UnmarshalText(text []byte) error {
	v, err := ParseRate(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// SplitCut divides gross into the part forwarded to the receiver and the part
// retained by the platform. The cut is rounded half-even to a minor unit and
// net is derived by subtraction, so net+cut always equals gross.
func SplitCut(gross Amount, r Rate) (net, cut Amount) {
	cut = Amount(decimal.NewFromInt(int64(gross)).Mul(r.Fraction()).RoundBank(0).IntPart())
	return gross - cut, cut
}

// Discount returns price*(1-percent/100) without rounding.
func Discount(price, percent decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(1).Sub(percent.Div(hundred)))
}
