package timeline

// CategoryGroup is one non-empty category section.
type CategoryGroup struct {
	Category Category `json:"category"`
	Label    string   `json:"label"`
	Items    []Item   `json:"items"`
}

// UrgencyGroup is one non-empty urgency bucket.
type UrgencyGroup struct {
	Urgency Urgency `json:"urgency"`
	Label   string  `json:"label"`
	Items   []Item  `json:"items"`
}

// GroupByCategory partitions items into the fixed category order,
// preserving input order inside each group and dropping empty groups.
func GroupByCategory(items []Item) []CategoryGroup {
	var groups []CategoryGroup
	for _, c := range Categories {
		var members []Item
		for _, it := range items {
			if it.Category == c {
				members = append(members, it)
			}
		}
		if len(members) == 0 {
			continue
		}
		groups = append(groups, CategoryGroup{Category: c, Label: CategoryLabel(c), Items: members})
	}
	return groups
}

// GroupByUrgency partitions items from most to least pressing.
func GroupByUrgency(items []Item) []UrgencyGroup {
	var groups []UrgencyGroup
	for _, u := range Urgencies {
		var members []Item
		for _, it := range items {
			if it.Urgency == u {
				members = append(members, it)
			}
		}
		if len(members) == 0 {
			continue
		}
		groups = append(groups, UrgencyGroup{Urgency: u, Label: UrgencyLabel(u), Items: members})
	}
	return groups
}

// ThisWeek returns incomplete items that need attention now.
func ThisWeek(items []Item) []Item {
	return pendingWith(items, UrgencyOverdue, UrgencyUrgent, UrgencySoon)
}

// ThisMonth widens ThisWeek to items due within two weeks.
func ThisMonth(items []Item) []Item {
	return pendingWith(items, UrgencyOverdue, UrgencyUrgent, UrgencySoon, UrgencyUpcoming)
}

func pendingWith(items []Item, urgencies ...Urgency) []Item {
	out := []Item{}
	for _, it := range items {
		if it.Completed {
			continue
		}
		for _, u := range urgencies {
			if it.Urgency == u {
				out = append(out, it)
				break
			}
		}
	}
	return out
}
