package handlers

import (
	"fmt"
	"time"
	"unicode/utf8"

	"futarinavi/internal/config"
	"futarinavi/internal/dates"
	"futarinavi/internal/models"
	"futarinavi/internal/timeline"
)

const (
	minAge         = 18
	maxAge         = 120
	maxDistrictLen = 64
	maxCompleted   = 64
)

// ---------- request validation ----------

func parseDate(field, s string) (time.Time, string, bool) {
	if s == "" {
		return time.Time{}, field + " is required", false
	}
	t, err := dates.ParseLocalDate(s, config.Location())
	if err != nil {
		return time.Time{}, field + " must be YYYY-MM-DD", false
	}
	return t, "", true
}

// resolveToday parses an optional "today" override, defaulting to now.
func resolveToday(s string) (time.Time, string, bool) {
	if s == "" {
		return config.Now(), "", true
	}
	return parseDate("today", s)
}

func validateCompleted(ids []string) (string, bool) {
	if len(ids) > maxCompleted {
		return "too many completed_ids", false
	}
	for _, id := range ids {
		if !timeline.KnownID(id) {
			return fmt.Sprintf("unknown task id %q", id), false
		}
	}
	return "", true
}

func validateSimulatorInput(in models.SimulatorInput) (string, bool) {
	if in.PartnerAAge < minAge || in.PartnerAAge > maxAge {
		return fmt.Sprintf("partner_a_age must be between %d and %d", minAge, maxAge), false
	}
	if in.PartnerBAge < minAge || in.PartnerBAge > maxAge {
		return fmt.Sprintf("partner_b_age must be between %d and %d", minAge, maxAge), false
	}
	if !in.HouseholdIncome.Valid() {
		return "household_income is not a known band", false
	}
	if utf8.RuneCountInString(in.District) > maxDistrictLen {
		return "district is too long", false
	}
	if in.MarriageDate != "" {
		if _, msg, ok := parseDate("marriage_date", in.MarriageDate); !ok {
			return msg, false
		}
	}
	return "", true
}
