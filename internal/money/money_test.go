package money

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want Amount
	}{
		{"0", 0},
		{"4.99", 499},
		{"4.990", 499},
		{"100", 10000},
		{"0.01", 1},
		{"-2.5", -250},
	}
	for _, ts := range tests {
		got, err := ParseAmount(ts.in)
		require.NoError(t, err, "in=%s", ts.in)
		require.Equal(t, ts.want, got, "in=%s", ts.in)
	}
}

func TestParseAmountErrors(t *testing.T) {
	for _, in := range []string{"", "abc", "1.001", "NaN", "99999999999999999999"} {
		_, err := ParseAmount(in)
		require.ErrorIs(t, err, ErrInvalidAmount, "in=%s", in)
	}
}

func TestAmountText(t *testing.T) {
	require.Equal(t, "4.99", Amount(499).String())
	require.Equal(t, "0.07", Amount(7).String())
	require.Equal(t, "-1.50", Amount(-150).String())

	b, err := json.Marshal(struct {
		Balance Amount `json:"balance"`
	}{FromUnits(12)})
	require.NoError(t, err)
	require.JSONEq(t, `{"balance":"12.00"}`, string(b))

	var out struct {
		Balance Amount `json:"balance"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"balance":"3.25"}`), &out))
	require.Equal(t, Amount(325), out.Balance)
}

func TestParseRate(t *testing.T) {
	r, err := ParseRate("0.3")
	require.NoError(t, err)
	require.Equal(t, Percent(30), r)

	r, err = ParseRate("1")
	require.NoError(t, err)
	require.Equal(t, Full, r)

	for _, in := range []string{"1.01", "-0.1", "0.00001", "x"} {
		_, err := ParseRate(in)
		require.ErrorIs(t, err, ErrInvalidRate, "in=%s", in)
	}
}

func TestSplitCut(t *testing.T) {
	tests := []struct {
		gross    Amount
		rate     Rate
		net, cut Amount
	}{
		{10000, Percent(30), 7000, 3000},
		{100, Percent(30), 70, 30},
		{100, Percent(20), 80, 20},
		{1, Percent(30), 1, 0},
		{5, Percent(30), 3, 2},
		{15, Percent(10), 13, 2},
		{0, Percent(20), 0, 0},
		{999, 0, 999, 0},
		{999, Full, 0, 999},
	}
	for _, ts := range tests {
		net, cut := SplitCut(ts.gross, ts.rate)
		require.Equal(t, ts.net, net, "gross=%d rate=%d", ts.gross, ts.rate)
		require.Equal(t, ts.cut, cut, "gross=%d rate=%d", ts.gross, ts.rate)
		require.Equal(t, ts.gross, net+cut)
	}
}

func TestSplitCutBankersRounding(t *testing.T) {
	// 25 * 0.1 = 2.5 -> 2, 35 * 0.1 = 3.5 -> 4
	net, cut := SplitCut(25, Percent(10))
	require.Equal(t, Amount(2), cut)
	require.Equal(t, Amount(23), net)

	net, cut = SplitCut(35, Percent(10))
	require.Equal(t, Amount(4), cut)
	require.Equal(t, Amount(31), net)

	net, cut = SplitCut(10000, Percent(30))
	require.Equal(t, Amount(3000), cut)
	require.Equal(t, Amount(7000), net)
}

func TestDiscount(t *testing.T) {
	got := Discount(decimal.RequireFromString("4.99"), decimal.NewFromInt(10))
	require.True(t, got.Equal(decimal.RequireFromString("4.491")), "got %s", got)
	require.Equal(t, Amount(449), ToAmount(got))
}

func TestAddDetectsOverflow(t *testing.T) {
	sum, ok := Add(FromUnits(3), 50)
	require.True(t, ok)
	require.Equal(t, Amount(350), sum)

	_, ok = Add(math.MaxInt64, 1)
	require.False(t, ok)
	_, ok = Add(math.MinInt64, -1)
	require.False(t, ok)

	sum, ok = Add(math.MaxInt64, -1)
	require.True(t, ok)
	require.Equal(t, Amount(math.MaxInt64-1), sum)

	require.Equal(t, Amount(math.MaxInt64-math.MaxInt64%100), FromUnits(MaxUnits))
}
