// Package simulator estimates which marriage-related programs a couple can
// use and how much money they are likely to receive.
package simulator

import (
	"sort"

	"futarinavi/internal/models"
)

const (
	subsidySlug       = "marriage-subsidy"
	subsidyMaxAge     = 39
	subsidyYoungAge   = 29
	subsidyYoungValue = 600000
	subsidyBaseValue  = 300000
)

// Run evaluates every catalog program against in. Any well-typed input is
// accepted; an unknown income band simply fails the subsidy gate.
func Run(in models.SimulatorInput) models.SimulatorResult {
	return run(programs, in)
}

func run(catalog []models.Program, in models.SimulatorInput) models.SimulatorResult {
	eligible := make([]models.EligibleProgram, 0, len(catalog))
	for _, p := range catalog {
		if !isEligible(p, in) {
			continue
		}
		eligible = append(eligible, models.EligibleProgram{
			Program:         cloneProgram(p),
			EstimatedAmount: estimate(p, in),
			ActionItems:     ActionItems(p.Slug),
		})
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].EstimatedAmount > eligible[j].EstimatedAmount
	})

	total := 0
	for _, ep := range eligible {
		total += ep.EstimatedAmount
	}
	return models.SimulatorResult{TotalAnnualEstimate: total, EligiblePrograms: eligible}
}

func isEligible(p models.Program, in models.SimulatorInput) bool {
	if p.Slug != subsidySlug {
		return true
	}
	bothUnder40 := in.PartnerAAge <= subsidyMaxAge && in.PartnerBAge <= subsidyMaxAge
	return bothUnder40 && isLowIncome(in.HouseholdIncome)
}

func isLowIncome(r models.IncomeRange) bool {
	return r == models.IncomeUnder300 || r == models.Income300To500
}

func estimate(p models.Program, in models.SimulatorInput) int {
	if p.Slug != subsidySlug {
		return 0
	}
	if in.PartnerAAge <= subsidyYoungAge && in.PartnerBAge <= subsidyYoungAge {
		return subsidyYoungValue
	}
	return subsidyBaseValue
}
