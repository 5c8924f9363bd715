package timeline

import "time"

// Category groups procedures for display.
type Category string

const (
	CategoryRegistration Category = "registration"
	CategoryNameChange   Category = "name_change"
	CategoryMoving       Category = "moving"
	CategoryWork         Category = "work"
	CategoryTax          Category = "tax"
	CategoryBenefits     Category = "benefits"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryRegistration,
	CategoryNameChange,
	CategoryMoving,
	CategoryWork,
	CategoryTax,
	CategoryBenefits,
}

var categoryLabels = map[Category]string{
	CategoryRegistration: "婚姻届関連",
	CategoryNameChange:   "名義変更",
	CategoryMoving:       "引越し",
	CategoryWork:         "勤務先",
	CategoryTax:          "税金",
	CategoryBenefits:     "給付金・支援",
}

// CategoryLabel returns the Japanese display label of c.
func CategoryLabel(c Category) string {
	return categoryLabels[c]
}

// Urgency is derived from today, the scheduled date and the deadline.
type Urgency string

const (
	UrgencyOverdue  Urgency = "overdue"
	UrgencyUrgent   Urgency = "urgent"
	UrgencySoon     Urgency = "soon"
	UrgencyUpcoming Urgency = "upcoming"
	UrgencyFuture   Urgency = "future"
)

// Urgencies lists every urgency in priority order.
var Urgencies = []Urgency{
	UrgencyOverdue,
	UrgencyUrgent,
	UrgencySoon,
	UrgencyUpcoming,
	UrgencyFuture,
}

var urgencyLabels = map[Urgency]string{
	UrgencyOverdue:  "期限超過",
	UrgencyUrgent:   "至急",
	UrgencySoon:     "もうすぐ",
	UrgencyUpcoming: "近日中",
	UrgencyFuture:   "今後",
}

// UrgencyLabel returns the Japanese display label of u.
func UrgencyLabel(u Urgency) string {
	return urgencyLabels[u]
}

// Condition tags a definition that only applies to some couples.
type Condition string

const (
	ConditionMoving      Condition = "moving"
	ConditionNameChanged Condition = "name_changed"
	ConditionDependent   Condition = "dependent"
)

// Definition is one catalog entry. Offsets are days relative to the
// marriage date and may be negative for tasks done before it.
type Definition struct {
	ID                       string      `json:"id"`
	Category                 Category    `json:"category"`
	Title                    string      `json:"title"`
	Description              string      `json:"description"`
	DaysFromMarriage         int         `json:"days_from_marriage"`
	DeadlineDaysFromMarriage *int        `json:"deadline_days_from_marriage,omitempty"`
	Location                 string      `json:"location"`
	RequiredDocuments        []string    `json:"required_documents"`
	ActionURL                string      `json:"action_url"`
	ActionLabel              string      `json:"action_label"`
	Tip                      string      `json:"tip,omitempty"`
	Conditions               []Condition `json:"applicable_conditions,omitempty"`
}

// HasCondition reports whether d is tagged with c.
func (d Definition) HasCondition(c Condition) bool {
	for _, dc := range d.Conditions {
		if dc == c {
			return true
		}
	}
	return false
}

// Item is a definition resolved against a marriage date and today.
type Item struct {
	Definition
	ScheduledDate time.Time  `json:"scheduled_date"`
	DeadlineDate  *time.Time `json:"deadline_date,omitempty"`
	Urgency       Urgency    `json:"urgency"`
	Completed     bool       `json:"completed"`
}

// Options toggles conditional procedures.
type Options struct {
	IncludeMoving bool `json:"include_moving"`
	NameChanged   bool `json:"name_changed"`
}

// DefaultOptions returns the options used when the caller sets nothing.
func DefaultOptions() Options {
	return Options{IncludeMoving: false, NameChanged: true}
}

// OptionsFrom resolves optional wire values against the defaults.
func OptionsFrom(includeMoving, nameChanged *bool) Options {
	opts := DefaultOptions()
	if includeMoving != nil {
		opts.IncludeMoving = *includeMoving
	}
	if nameChanged != nil {
		opts.NameChanged = *nameChanged
	}
	return opts
}

// CompletedSet holds the ids of procedures the couple has finished.
type CompletedSet map[string]struct{}

// NewCompletedSet builds a set from ids; duplicates collapse.
func NewCompletedSet(ids ...string) CompletedSet {
	s := make(CompletedSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports membership. A nil set contains nothing.
func (s CompletedSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}
