// Package srs implements the spaced-repetition scheduler.
//
// The algorithm is deliberately simpler than SM-2: grades map to fixed
// additive interval adjustments rather than multiplicative ease factors.
// Growth is strictly additive, uncapped, and memoryless with respect to
// streak history. The adjustment table is a product constant, not
// configuration.
package srs

import (
	"time"

	"github.com/youbo0129ueno-star/memory-anki/internal/domain"
)

// intervalAdjustment maps each passing grade to the number of days added to
// the current interval. GradeAgain is absent because it resets the interval
// instead of adjusting it.
var intervalAdjustment = map[domain.Grade]int{
	domain.GradeHard: 1,
	domain.GradeGood: 2,
	domain.GradeEasy: 4,
}

// nextInterval computes the new interval in days for a card currently at the
// given interval after a review with the given grade.
//
// An "again" grade resets the interval to exactly 1 day regardless of the
// prior interval: the card is considered forgotten and must be seen again
// almost immediately. Repeated "again" grades therefore pin a card at a
// one-day interval; they never compound. All other grades add their fixed
// adjustment to the previous interval, with no upper bound.
func nextInterval(current int, grade domain.Grade) int {
	if grade == domain.GradeAgain {
		return 1
	}
	return current + intervalAdjustment[grade]
}

// nextReviewDate computes the date at which a card with the given interval
// becomes due again. The interval is added with calendar arithmetic
// (AddDate), not elapsed seconds, so month and year rollover and DST
// transitions cannot drift the schedule off midnight.
func nextReviewDate(interval int, today time.Time) time.Time {
	return domain.StartOfDay(today).AddDate(0, 0, interval)
}

// apply returns a copy of the card with its scheduling state advanced for a
// review graded at the given instant. The input card is not modified.
//
// Beyond the interval and next-review date, a grading event always sets
// LastReviewedAt to the full instant (not date-truncated) and increments
// ReviewCount by exactly one.
func apply(card *domain.Card, grade domain.Grade, now time.Time) *domain.Card {
	updated := card.Clone()

	updated.IntervalDays = nextInterval(card.IntervalDays, grade)
	updated.NextReviewAt = nextReviewDate(updated.IntervalDays, now)

	reviewedAt := now
	updated.LastReviewedAt = &reviewedAt
	updated.ReviewCount++

	return updated
}
