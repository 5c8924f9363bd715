package timeline

import (
	"fmt"
	"math"
	"time"

	"futarinavi/internal/dates"
)

// Summary is the dashboard view of a generated timeline.
type Summary struct {
	Total             int    `json:"total"`
	Completed         int    `json:"completed"`
	Percent           int    `json:"percent"`
	Overdue           int    `json:"overdue"`
	Urgent            int    `json:"urgent"`
	Soon              int    `json:"soon"`
	NeedsAction       int    `json:"needs_action"`
	DaysUntilMarriage int    `json:"days_until_marriage"`
	Countdown         string `json:"countdown"`
	AllDone           bool   `json:"all_done"`
}

// Summarize counts progress. Urgency counts only include pending items.
// The countdown compares the marriage date with the start of today.
func Summarize(items []Item, marriageDate, today time.Time) Summary {
	s := Summary{Total: len(items)}
	for _, it := range items {
		if it.Completed {
			s.Completed++
			continue
		}
		switch it.Urgency {
		case UrgencyOverdue:
			s.Overdue++
		case UrgencyUrgent:
			s.Urgent++
		case UrgencySoon:
			s.Soon++
		}
	}
	if s.Total > 0 {
		s.Percent = int(math.Floor(float64(s.Completed)*100/float64(s.Total) + 0.5))
	}
	s.NeedsAction = s.Overdue + s.Urgent + s.Soon
	s.AllDone = s.Total > 0 && s.Completed == s.Total

	s.DaysUntilMarriage = dates.DiffDays(marriageDate, dates.StartOfDay(today))
	s.Countdown = countdown(s.DaysUntilMarriage)
	return s
}

func countdown(d int) string {
	switch {
	case d > 0:
		return fmt.Sprintf("結婚日まであと %d 日", d)
	case d == 0:
		return "今日が結婚日です"
	default:
		return fmt.Sprintf("結婚してから %d 日", -d)
	}
}
