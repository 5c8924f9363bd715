package models

import "time"

type PlanOptions struct {
	IncludeMoving bool `json:"include_moving"`
	NameChanged   bool `json:"name_changed"`
}

// Plan is the persisted state of one couple's checklist. MarriageDate is
// kept in YYYY-MM-DD form so it survives timezone changes of the server.
type Plan struct {
	ID           string      `json:"id"`
	MarriageDate string      `json:"marriage_date"`
	Options      PlanOptions `json:"options"`
	CompletedIDs []string    `json:"completed_ids"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// SetCompleted adds or removes id, keeping the list free of duplicates.
func (p *Plan) SetCompleted(id string, done bool) {
	out := p.CompletedIDs[:0:0]
	for _, c := range p.CompletedIDs {
		if c != id {
			out = append(out, c)
		}
	}
	if done {
		out = append(out, id)
	}
	p.CompletedIDs = out
}
