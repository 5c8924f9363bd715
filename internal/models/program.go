package models

type ProgramCategory string

const (
	ProgramBenefits  ProgramCategory = "benefits"
	ProgramTax       ProgramCategory = "tax"
	ProgramInsurance ProgramCategory = "insurance"
	ProgramHousing   ProgramCategory = "housing"
	ProgramSupport   ProgramCategory = "support"
)

type Eligibility struct {
	MaxAge      *int     `json:"max_age" yaml:"max_age"`
	MinAge      *int     `json:"min_age" yaml:"min_age"`
	IncomeLimit *int     `json:"income_limit" yaml:"income_limit"`
	Residency   string   `json:"residency" yaml:"residency"`
	Conditions  []string `json:"conditions" yaml:"conditions"`
}

type Amount struct {
	Type        string `json:"type" yaml:"type"`
	Value       *int   `json:"value" yaml:"value"`
	Unit        string `json:"unit" yaml:"unit"`
	Description string `json:"description" yaml:"description"`
}

type ApplicationStep struct {
	Step        int    `json:"step" yaml:"step"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Tip         string `json:"tip,omitempty" yaml:"tip"`
}

type RequiredDocument struct {
	Name        string `json:"name" yaml:"name"`
	ObtainHow   string `json:"obtain_how" yaml:"obtain_how"`
	Notes       string `json:"notes,omitempty" yaml:"notes"`
	DownloadURL string `json:"download_url,omitempty" yaml:"download_url"`
}

type ApplicationMethod struct {
	Method      string `json:"method" yaml:"method"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description" yaml:"description"`
	URL         string `json:"url,omitempty" yaml:"url"`
	Address     string `json:"address,omitempty" yaml:"address"`
	Hours       string `json:"hours,omitempty" yaml:"hours"`
}

type ProgramFAQ struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// Program is one benefit, tax or support scheme. Only the fields above
// ApplicationSteps take part in simulation; the rest are display data.
type Program struct {
	Slug           string          `json:"slug" yaml:"slug"`
	Name           string          `json:"name" yaml:"name"`
	Description    string          `json:"description" yaml:"description"`
	Category       ProgramCategory `json:"category" yaml:"category"`
	Eligibility    Eligibility     `json:"eligibility" yaml:"eligibility"`
	Amount         Amount          `json:"amount" yaml:"amount"`
	ApplicationURL string          `json:"application_url" yaml:"application_url"`
	Deadline       *string         `json:"deadline" yaml:"deadline"`
	Notes          string          `json:"notes" yaml:"notes"`

	ApplicationSteps    []ApplicationStep   `json:"application_steps,omitempty" yaml:"application_steps"`
	RequiredDocuments   []RequiredDocument  `json:"required_documents,omitempty" yaml:"required_documents"`
	ApplicationMethods  []ApplicationMethod `json:"application_methods,omitempty" yaml:"application_methods"`
	FAQ                 []ProgramFAQ        `json:"faq,omitempty" yaml:"faq"`
	RelatedProgramSlugs []string            `json:"related_program_slugs,omitempty" yaml:"related_program_slugs"`
	ProcessingTime      string              `json:"processing_time,omitempty" yaml:"processing_time"`
}

// IncomeRange is the combined household income band.
type IncomeRange string

const (
	IncomeUnder300  IncomeRange = "under-300"
	Income300To500  IncomeRange = "300-500"
	Income500To700  IncomeRange = "500-700"
	Income700To1000 IncomeRange = "700-1000"
	IncomeOver1000  IncomeRange = "over-1000"
)

// IncomeRanges lists the household income bands from lowest to highest.
var IncomeRanges = []IncomeRange{
	IncomeUnder300,
	Income300To500,
	Income500To700,
	Income700To1000,
	IncomeOver1000,
}

func (r IncomeRange) Valid() bool {
	for _, v := range IncomeRanges {
		if r == v {
			return true
		}
	}
	return false
}

// SimulatorInput is what the couple tells the simulator.
type SimulatorInput struct {
	MarriageDate    string      `json:"marriage_date"`
	PartnerAAge     int         `json:"partner_a_age"`
	PartnerBAge     int         `json:"partner_b_age"`
	HouseholdIncome IncomeRange `json:"household_income"`
	IsMoving        bool        `json:"is_moving"`
	NameChanged     bool        `json:"name_changed"`
	District        string      `json:"district"`
}

type EligibleProgram struct {
	Program         Program  `json:"program"`
	EstimatedAmount int      `json:"estimated_amount"`
	ActionItems     []string `json:"action_items"`
}

type SimulatorResult struct {
	TotalAnnualEstimate int               `json:"total_annual_estimate"`
	EligiblePrograms    []EligibleProgram `json:"eligible_programs"`
}
