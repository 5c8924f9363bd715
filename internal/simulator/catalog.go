package simulator

import (
	_ "embed"
	"fmt"
	"slices"

	"futarinavi/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed programs.yaml
var programsYAML []byte

var (
	programs  = mustLoad(programsYAML)
	slugIndex = indexBySlug(programs)
)

var categoryLabels = map[models.ProgramCategory]string{
	models.ProgramBenefits:  "給付金",
	models.ProgramTax:       "税制優遇",
	models.ProgramInsurance: "社会保険",
	models.ProgramHousing:   "住まい",
	models.ProgramSupport:   "優待・割引",
}

// CategoryOrder is the display order of program categories.
var CategoryOrder = []models.ProgramCategory{
	models.ProgramBenefits,
	models.ProgramTax,
	models.ProgramInsurance,
	models.ProgramHousing,
	models.ProgramSupport,
}

func mustLoad(data []byte) []models.Program {
	ps, err := parsePrograms(data)
	if err != nil {
		panic(fmt.Sprintf("simulator: embedded catalog: %v", err))
	}
	return ps
}

func parsePrograms(data []byte) ([]models.Program, error) {
	var ps []models.Program
	if err := yaml.Unmarshal(data, &ps); err != nil {
		return nil, err
	}
	if err := validate(ps); err != nil {
		return nil, err
	}
	return ps, nil
}

func validate(ps []models.Program) error {
	seen := make(map[string]bool, len(ps))
	for i, p := range ps {
		if p.Slug == "" {
			return fmt.Errorf("program %d: missing slug", i)
		}
		if seen[p.Slug] {
			return fmt.Errorf("duplicate program slug %q", p.Slug)
		}
		seen[p.Slug] = true
		if _, ok := categoryLabels[p.Category]; !ok {
			return fmt.Errorf("program %q: unknown category %q", p.Slug, p.Category)
		}
		switch p.Eligibility.Residency {
		case "minato", "tokyo", "japan":
		default:
			return fmt.Errorf("program %q: unknown residency %q", p.Slug, p.Eligibility.Residency)
		}
		switch p.Amount.Type {
		case "fixed", "variable", "subsidy":
		default:
			return fmt.Errorf("program %q: unknown amount type %q", p.Slug, p.Amount.Type)
		}
	}
	return nil
}

func indexBySlug(ps []models.Program) map[string]int {
	idx := make(map[string]int, len(ps))
	for i, p := range ps {
		idx[p.Slug] = i
	}
	return idx
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// cloneProgram deep-copies p so callers never share memory with the catalog.
func cloneProgram(p models.Program) models.Program {
	p.Eligibility.MaxAge = cloneInt(p.Eligibility.MaxAge)
	p.Eligibility.MinAge = cloneInt(p.Eligibility.MinAge)
	p.Eligibility.IncomeLimit = cloneInt(p.Eligibility.IncomeLimit)
	p.Eligibility.Conditions = slices.Clone(p.Eligibility.Conditions)
	p.Amount.Value = cloneInt(p.Amount.Value)
	if p.Deadline != nil {
		d := *p.Deadline
		p.Deadline = &d
	}
	p.ApplicationSteps = slices.Clone(p.ApplicationSteps)
	p.RequiredDocuments = slices.Clone(p.RequiredDocuments)
	p.ApplicationMethods = slices.Clone(p.ApplicationMethods)
	p.FAQ = slices.Clone(p.FAQ)
	p.RelatedProgramSlugs = slices.Clone(p.RelatedProgramSlugs)
	return p
}

// Programs returns a copy of every program in catalog order.
func Programs() []models.Program {
	out := make([]models.Program, len(programs))
	for i, p := range programs {
		out[i] = cloneProgram(p)
	}
	return out
}

// ProgramBySlug looks up one program. The result is a copy.
func ProgramBySlug(slug string) (models.Program, bool) {
	i, ok := slugIndex[slug]
	if !ok {
		return models.Program{}, false
	}
	return cloneProgram(programs[i]), true
}

// ProgramsByCategory returns copies of the programs in c, in catalog order.
// An unknown category gives nil.
func ProgramsByCategory(c models.ProgramCategory) []models.Program {
	var out []models.Program
	for _, p := range programs {
		if p.Category == c {
			out = append(out, cloneProgram(p))
		}
	}
	return out
}

// CategoryLabel returns the Japanese heading for c, or "" if unknown.
func CategoryLabel(c models.ProgramCategory) string {
	return categoryLabels[c]
}
