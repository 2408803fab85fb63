// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

package entitlement

import "time"

// =============================================================================
// ENTITLEMENT ENGINE
// =============================================================================

// Engine evaluates quota decisions against an injectable clock. All
// operations are pure: they return updated copies of the usage record and
// the caller persists them.
type Engine struct {
	now func() time.Time
}

// NewEngine creates an engine using the wall clock.
func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// NewEngineWithClock creates an engine with a fixed clock function. Tests
// use this to pin "today".
func NewEngineWithClock(now func() time.Time) *Engine {
	return &Engine{now: now}
}

// DailyLimit returns the base quota for the usage record's tier. The free
// tier degrades to zero once the install date is more than FreeTrialDays
// in the past.
func (e *Engine) DailyLimit(u UserUsage) int {
	switch u.Tier {
	case TierLifetime:
		return lifetimeDailyLimit
	case TierYearly:
		return yearlyDailyLimit
	case TierMonthly:
		return monthlyDailyLimit
	default:
		if e.now().Sub(u.InstallDate) > FreeTrialDays*24*time.Hour {
			return 0 // trial expired
		}
		return freeDailyLimit
	}
}

// TotalLimit is the base quota plus today's purchased top-ups.
func (e *Engine) TotalLimit(u UserUsage) int {
	return e.DailyLimit(u) + u.ExtraDailyLimit
}

// Remaining returns how many credits are left today, never negative.
func (e *Engine) Remaining(u UserUsage) int {
	r := e.TotalLimit(u) - u.DailyCount
	if r < 0 {
		return 0
	}
	return r
}

// Gate runs action exactly once if quota remains and returns true.
// When DailyCount has reached TotalLimit the action is not invoked and
// Gate returns false: the caller surfaces the upgrade prompt instead.
func (e *Engine) Gate(u UserUsage, action func()) bool {
	if u.DailyCount >= e.TotalLimit(u) {
		return false
	}
	action()
	return true
}

// Consume records one consumed credit. Call exactly once per gated action,
// after the action succeeded; failed generations must not spend a credit.
func (e *Engine) Consume(u UserUsage) UserUsage {
	u.DailyCount++
	return u
}

// ReconcileDayRollover resets the daily counters when the calendar day has
// changed since the record was last used. Tier and install date survive the
// rollover. Idempotent within a day; must run once at startup before any
// other usage read.
func (e *Engine) ReconcileDayRollover(u UserUsage) UserUsage {
	return reconcile(u, DayKey(e.now()))
}

func reconcile(u UserUsage, today string) UserUsage {
	if u.LastUsedDate == today {
		return u
	}
	u.LastUsedDate = today
	u.DailyCount = 0
	u.ExtraDailyLimit = 0
	return u
}

// ApplyTopUp adds a day pass: TopUpAmount extra styles for today.
func (e *Engine) ApplyTopUp(u UserUsage) UserUsage {
	u.ExtraDailyLimit += TopUpAmount
	return u
}

// ApplyTierChange switches the subscription tier. The tier set is closed;
// unknown values are rejected before any state changes.
func (e *Engine) ApplyTierChange(u UserUsage, tier Tier) (UserUsage, error) {
	if !tier.Valid() {
		return u, ErrInvalidTier
	}
	u.Tier = tier
	return u, nil
}

// TrialExpired reports whether a free-tier record has outlived its trial
// window. Used by the UI to word the upgrade prompt.
func (e *Engine) TrialExpired(u UserUsage) bool {
	return u.Tier == TierFree && e.DailyLimit(u) == 0
}
