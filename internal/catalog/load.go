package catalog

import (
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned when a catalog file fails validation.
var ErrInvalid = errors.New("invalid catalog")

// Load reads a YAML catalog from path on top of the built-in defaults.
// Sections missing from the file keep their default values. An empty path
// returns the defaults.
func Load(path string) (*Catalog, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return parse(c, raw)
}

func parse(c *Catalog, raw []byte) (*Catalog, error) {
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	sortBadges(c.Badges)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks ids are unique and values are in range.
func (c *Catalog) Validate() error {
	if err := unique("plan", c.Plans, func(p Plan) string { return p.ID }); err != nil {
		return err
	}
	if err := unique("tier", c.Tiers, func(t Tier) string { return t.ID }); err != nil {
		return err
	}
	if err := unique("coin package", c.CoinPackages, func(p CoinPackage) string { return p.ID }); err != nil {
		return err
	}
	if err := unique("gift", c.Gifts, func(g Gift) string { return g.ID }); err != nil {
		return err
	}
	if err := unique("badge", c.Badges, func(b Badge) string { return b.ID }); err != nil {
		return err
	}
	for _, p := range c.Plans {
		if p.Price < 0 {
			return fmt.Errorf("%w: plan %s has negative price", ErrInvalid, p.ID)
		}
	}
	for _, t := range c.Tiers {
		if t.Price < 0 {
			return fmt.Errorf("%w: tier %s has negative price", ErrInvalid, t.ID)
		}
	}
	for _, p := range c.CoinPackages {
		if p.Price.IsNegative() || p.Coins < 0 || p.Bonus < 0 || p.Discount < 0 || p.Discount > 100 {
			return fmt.Errorf("%w: coin package %s out of range", ErrInvalid, p.ID)
		}
	}
	for _, g := range c.Gifts {
		if g.Price <= 0 {
			return fmt.Errorf("%w: gift %s must cost at least one coin", ErrInvalid, g.ID)
		}
	}
	for _, b := range c.Badges {
		if b.Requirement < 0 {
			return fmt.Errorf("%w: badge %s has negative requirement", ErrInvalid, b.ID)
		}
	}
	if !c.Referral.CommissionRate.Valid() {
		return fmt.Errorf("%w: referral commission rate %s", ErrInvalid, c.Referral.CommissionRate)
	}
	return c.validateConversion()
}

// validateConversion keeps cashing out cheaper than buying, so coins bought
// in any package never convert back to more cash than they cost.
func (c *Catalog) validateConversion() error {
	cv := c.Conversion
	if cv.Coins < 1 || cv.Cash < 1 {
		return fmt.Errorf("%w: conversion needs a positive block and cash value", ErrInvalid)
	}
	perCoin := cv.Cash.Decimal().Div(decimal.NewFromInt(cv.Coins))
	for _, p := range c.CoinPackages {
		price, _ := c.DiscountedPrice(p.ID)
		total := p.Coins + p.Bonus
		if total == 0 {
			continue
		}
		if !perCoin.LessThan(price.Div(decimal.NewFromInt(total))) {
			return fmt.Errorf("%w: converting coins from package %s pays more than they cost", ErrInvalid, p.ID)
		}
	}
	return nil
}

func unique[T any](kind string, items []T, id func(T) string) error {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		k := id(it)
		if k == "" {
			return fmt.Errorf("%w: %s with empty id", ErrInvalid, kind)
		}
		if _, dup := seen[k]; dup {
			return fmt.Errorf("%w: duplicate %s %q", ErrInvalid, kind, k)
		}
		seen[k] = struct{}{}
	}
	return nil
}
