// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package entitlement computes and tracks the daily generation quota.
//
// Every credit-consuming action (try-on, mix try-on, link try-on) passes
// through the gate before it runs; quota exhaustion is a designed outcome
// that surfaces the upgrade prompt, not an error.
package entitlement

import (
	"errors"
	"time"
)

// =============================================================================
// TIERS
// =============================================================================

// Tier is the subscription level determining the daily quota.
type Tier string

const (
	TierFree     Tier = "free"
	TierMonthly  Tier = "monthly"
	TierYearly   Tier = "yearly"
	TierLifetime Tier = "lifetime"
)

// Valid reports whether t is one of the closed set of tiers.
func (t Tier) Valid() bool {
	switch t {
	case TierFree, TierMonthly, TierYearly, TierLifetime:
		return true
	}
	return false
}

// ErrInvalidTier is returned when a tier change names an unknown tier.
var ErrInvalidTier = errors.New("invalid subscription tier")

// Daily quota constants.
const (
	// FreeTrialDays is the window after install during which the free tier
	// has a non-zero quota.
	FreeTrialDays = 30

	freeDailyLimit     = 10
	monthlyDailyLimit  = 20
	yearlyDailyLimit   = 50
	lifetimeDailyLimit = 150

	// TopUpAmount is the number of extra styles a day pass adds for today.
	TopUpAmount = 10
)

// =============================================================================
// USAGE RECORD
// =============================================================================

// UserUsage is the persisted entitlement record.
type UserUsage struct {
	// InstallDate is set at first run and never changes.
	InstallDate time.Time `json:"install_date"`

	// LastUsedDate is the calendar day (see DayKey) the counters belong to.
	LastUsedDate string `json:"last_used_date"`

	// DailyCount is the number of credits consumed today.
	DailyCount int `json:"daily_count"`

	// ExtraDailyLimit is today's purchased top-up allowance. Resets to zero
	// on day rollover along with DailyCount.
	ExtraDailyLimit int `json:"extra_daily_limit"`

	Tier Tier `json:"tier"`
}

// DayKey formats a time as the calendar-day string used for rollover
// detection.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// NewUsage returns the first-run usage record.
func NewUsage(now time.Time) UserUsage {
	return UserUsage{
		InstallDate:  now,
		LastUsedDate: DayKey(now),
		Tier:         TierFree,
	}
}
