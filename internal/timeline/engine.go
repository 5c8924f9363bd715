// Package timeline turns the catalog of post-marriage procedures into a
// dated, urgency-annotated checklist for one couple.
//
// Everything here is pure: callers pass the marriage date, options, the set
// of completed ids and "today", and get plain values back.
package timeline

import (
	"slices"
	"time"

	"futarinavi/internal/dates"
)

const (
	urgentWithinDays   = 3
	upcomingWithinDays = 14
)

// Generate resolves every applicable definition against marriageDate and
// today. Items keep catalog order. The marriage date is not validated.
func Generate(marriageDate time.Time, opts Options, completed CompletedSet, today time.Time) []Item {
	items := make([]Item, 0, len(definitions))
	for _, def := range definitions {
		if !applies(def, opts) {
			continue
		}
		scheduled := dates.AddDays(marriageDate, def.DaysFromMarriage)
		var deadline *time.Time
		if def.DeadlineDaysFromMarriage != nil {
			d := dates.AddDays(marriageDate, *def.DeadlineDaysFromMarriage)
			deadline = &d
		}

		item := Item{
			Definition:    def,
			ScheduledDate: scheduled,
			DeadlineDate:  deadline,
			Urgency:       classify(scheduled, deadline, today),
			Completed:     completed.Has(def.ID),
		}
		item.RequiredDocuments = slices.Clone(def.RequiredDocuments)
		item.Conditions = slices.Clone(def.Conditions)
		items = append(items, item)
	}
	return items
}

func applies(def Definition, opts Options) bool {
	for _, c := range def.Conditions {
		switch c {
		case ConditionMoving:
			if !opts.IncludeMoving {
				return false
			}
		case ConditionNameChanged:
			if !opts.NameChanged {
				return false
			}
		case ConditionDependent:
			// informational tag, never filtered
		}
	}
	return true
}

// classify checks the deadline first: a near or missed deadline wins over
// a distant scheduled date.
func classify(scheduled time.Time, deadline *time.Time, today time.Time) Urgency {
	if deadline != nil {
		untilDeadline := dates.DiffDays(*deadline, today)
		if untilDeadline < 0 {
			return UrgencyOverdue
		}
		if untilDeadline <= urgentWithinDays {
			return UrgencyUrgent
		}
	}
	untilScheduled := dates.DiffDays(scheduled, today)
	switch {
	case untilScheduled <= 0:
		return UrgencySoon
	case untilScheduled <= upcomingWithinDays:
		return UrgencyUpcoming
	default:
		return UrgencyFuture
	}
}

// ScheduledDate returns the date a definition becomes relevant.
func ScheduledDate(def Definition, marriageDate time.Time) time.Time {
	return dates.AddDays(marriageDate, def.DaysFromMarriage)
}

// DeadlineDate returns the legal deadline of def, if it has one.
func DeadlineDate(def Definition, marriageDate time.Time) (time.Time, bool) {
	if def.DeadlineDaysFromMarriage == nil {
		return time.Time{}, false
	}
	return dates.AddDays(marriageDate, *def.DeadlineDaysFromMarriage), true
}
