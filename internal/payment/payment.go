// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package payment implements the simulated purchase flow for plan upgrades
// and day passes. There is no real payment gateway; a purchase is a short
// simulated delay followed by a receipt. The caller applies the receipt to
// the usage record through the entitlement engine.
package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stylegenie/stylegenie-tui/internal/entitlement"
)

// =============================================================================
// CATALOG
// =============================================================================

// OptionID identifies a purchasable plan.
type OptionID string

const (
	// OptionDayPass adds extra generations for the current day only.
	OptionDayPass OptionID = "day_pass"

	OptionMonthly  OptionID = "monthly"
	OptionYearly   OptionID = "yearly"
	OptionLifetime OptionID = "lifetime"
)

// Option describes one entry of the plan catalog. Costs are in rupees.
type Option struct {
	ID       OptionID
	Name     string
	Cost     int
	Period   string
	Features []string
}

// Catalog returns the purchasable plans in display order.
func Catalog() []Option {
	return []Option{
		{
			ID:     OptionDayPass,
			Name:   "Day Pass",
			Cost:   10,
			Period: "today",
			Features: []string{
				fmt.Sprintf("%d extra styles for today", entitlement.TopUpAmount),
			},
		},
		{
			ID:     OptionMonthly,
			Name:   "Monthly",
			Cost:   300,
			Period: "mo",
			Features: []string{
				"20 styles per day",
				"Priority generation",
			},
		},
		{
			ID:     OptionYearly,
			Name:   "Yearly",
			Cost:   6000,
			Period: "yr",
			Features: []string{
				"50 styles per day",
				"Save ₹1200/yr",
			},
		},
		{
			ID:     OptionLifetime,
			Name:   "Lifetime",
			Cost:   36000,
			Period: "",
			Features: []string{
				"150 styles per day",
				"Pay once, keep forever",
			},
		},
	}
}

// Lookup returns the catalog entry for id.
func Lookup(id OptionID) (Option, bool) {
	for _, opt := range Catalog() {
		if opt.ID == id {
			return opt, true
		}
	}
	return Option{}, false
}

// Tier returns the subscription tier a plan confers. Day passes do not
// change the tier.
func (o Option) Tier() (entitlement.Tier, bool) {
	switch o.ID {
	case OptionMonthly:
		return entitlement.TierMonthly, true
	case OptionYearly:
		return entitlement.TierYearly, true
	case OptionLifetime:
		return entitlement.TierLifetime, true
	default:
		return "", false
	}
}

// =============================================================================
// PROCESSOR
// =============================================================================

// ErrUnknownOption indicates a purchase for a plan not in the catalog.
var ErrUnknownOption = fmt.Errorf("unknown plan option")

// Receipt is the outcome of a completed purchase.
type Receipt struct {
	ID        string    `json:"id"`
	Option    OptionID  `json:"option"`
	Cost      int       `json:"cost"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// Processor runs simulated purchases.
type Processor struct {
	delay time.Duration
	now   func() time.Time
}

// NewProcessor creates a processor with a short delay standing in for the
// gateway round trip.
func NewProcessor() *Processor {
	return &Processor{delay: 1500 * time.Millisecond, now: time.Now}
}

// WithDelay overrides the simulated gateway delay. Used in tests.
func (p *Processor) WithDelay(d time.Duration) *Processor {
	p.delay = d
	return p
}

// WithClock overrides the receipt timestamp source. Used in tests.
func (p *Processor) WithClock(now func() time.Time) *Processor {
	p.now = now
	return p
}

// Purchase completes a simulated payment for the given plan and returns
// its receipt. It blocks for the simulated gateway delay unless the
// context is cancelled first.
func (p *Processor) Purchase(ctx context.Context, id OptionID) (*Receipt, error) {
	opt, ok := Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOption, id)
	}

	select {
	case <-time.After(p.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	msg := fmt.Sprintf("Payment Successful! You are now on the %s plan.", opt.ID)
	if opt.ID == OptionDayPass {
		msg = fmt.Sprintf("Payment Successful! %d extra styles added for today.", entitlement.TopUpAmount)
	}

	return &Receipt{
		ID:        uuid.NewString(),
		Option:    opt.ID,
		Cost:      opt.Cost,
		Timestamp: p.now(),
		Message:   msg,
	}, nil
}

// Apply returns the usage record updated for a receipt: a day pass tops
// up today's limit, everything else switches the subscription tier.
func Apply(engine *entitlement.Engine, u entitlement.UserUsage, r *Receipt) (entitlement.UserUsage, error) {
	if r.Option == OptionDayPass {
		return engine.ApplyTopUp(u), nil
	}
	opt, ok := Lookup(r.Option)
	if !ok {
		return u, fmt.Errorf("%w: %q", ErrUnknownOption, r.Option)
	}
	tier, _ := opt.Tier()
	return engine.ApplyTierChange(u, tier)
}
