package timeline

import (
	"fmt"
	"strings"
)

// Slot is one stop of the suggested one-day route.
type Slot struct {
	Time     string `json:"time"`
	Location string `json:"location"`
	Duration string `json:"duration"`
	Items    []Item `json:"items"`
}

var (
	cityHallMarkers = []string{"市区町村", "窓口", "役所", "役場"}
	policeMarkers   = []string{"警察署", "運転免許"}
	bankMarkers     = []string{"銀行", "カード会社", "キャリア"}
	workMarkers     = []string{"勤務先", "人事"}
	remoteMarkers   = []string{"Web", "電話", "アプリ", "プロバイダー", "各事業者"}
)

// ModelSchedule arranges pending items into the order a couple can visit
// counters in a single day. An item whose location matches several
// markers (e.g. city hall for 国保, employer for 社保) appears in each
// matching slot. Items matching nothing are left out.
func ModelSchedule(items []Item) []Slot {
	var pending []Item
	for _, it := range items {
		if !it.Completed {
			pending = append(pending, it)
		}
	}

	cityHall := atLocation(pending, cityHallMarkers)
	police := atLocation(pending, policeMarkers)
	banks := atLocation(pending, bankMarkers)
	work := atLocation(pending, workMarkers)
	remote := atLocation(pending, remoteMarkers)

	var slots []Slot
	if len(cityHall) > 0 {
		slots = append(slots, Slot{
			Time:     "9:00",
			Location: "市区町村の窓口",
			Duration: minutes(max(30, len(cityHall)*20)),
			Items:    cityHall,
		})
	}
	if len(police) > 0 {
		start := "9:00"
		if len(cityHall) > 0 {
			start = "10:30"
		}
		slots = append(slots, Slot{Time: start, Location: "警察署 / 免許センター", Duration: minutes(30), Items: police})
	}
	if len(banks) > 0 {
		start := "9:00"
		switch {
		case len(cityHall) > 0 && len(police) > 0:
			start = "11:30"
		case len(cityHall) > 0:
			start = "10:30"
		}
		slots = append(slots, Slot{Time: start, Location: "銀行・カード会社", Duration: minutes(len(banks) * 20), Items: banks})
	}
	if len(work) > 0 {
		slots = append(slots, Slot{Time: "翌営業日", Location: "勤務先の人事部", Duration: minutes(15), Items: work})
	}
	if len(remote) > 0 {
		slots = append(slots, Slot{Time: "自宅（夜でもOK）", Location: "Web / 電話", Duration: minutes(len(remote) * 10), Items: remote})
	}
	return slots
}

// PendingDocuments lists what to bring for the route, first occurrence
// order, without duplicates.
func PendingDocuments(slots []Slot) []string {
	seen := make(map[string]bool)
	docs := []string{}
	for _, s := range slots {
		for _, it := range s.Items {
			if it.Completed {
				continue
			}
			for _, d := range it.RequiredDocuments {
				if seen[d] {
					continue
				}
				seen[d] = true
				docs = append(docs, d)
			}
		}
	}
	return docs
}

func atLocation(items []Item, markers []string) []Item {
	var out []Item
	for _, it := range items {
		for _, m := range markers {
			if strings.Contains(it.Location, m) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

func minutes(n int) string {
	return fmt.Sprintf("約%d分", n)
}
