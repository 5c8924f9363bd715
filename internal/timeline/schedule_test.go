package timeline

import "testing"

func slotIDs(s Slot) []string {
	ids := make([]string, len(s.Items))
	for i, it := range s.Items {
		ids[i] = it.ID
	}
	return ids
}

func TestModelSchedule_FullDay(t *testing.T) {
	items := Generate(marriageDay(), DefaultOptions(), nil, marriageDay())
	slots := ModelSchedule(items)

	wantTimes := []string{"9:00", "10:30", "11:30", "翌営業日", "自宅（夜でもOK）"}
	if len(slots) != len(wantTimes) {
		t.Fatalf("expected %d slots, got %d", len(wantTimes), len(slots))
	}
	for i, w := range wantTimes {
		if slots[i].Time != w {
			t.Errorf("slot %d time = %q, want %q", i, slots[i].Time, w)
		}
	}

	if got := len(slots[0].Items); got != 8 {
		t.Errorf("city hall slot has %d items, want 8: %v", got, slotIDs(slots[0]))
	}
	if slots[0].Duration != "約160分" {
		t.Errorf("city hall duration = %q", slots[0].Duration)
	}
	if ids := slotIDs(slots[1]); len(ids) != 1 || ids[0] != "drivers-license" {
		t.Errorf("police slot = %v", ids)
	}
	if slots[2].Duration != "約60分" {
		t.Errorf("bank duration = %q", slots[2].Duration)
	}
	if slots[3].Duration != "約15分" {
		t.Errorf("work duration = %q", slots[3].Duration)
	}
}

func TestModelSchedule_ShiftsWhenCityHallDone(t *testing.T) {
	items := Generate(marriageDay(), DefaultOptions(), nil, marriageDay())
	for i := range items {
		for _, m := range cityHallMarkers {
			if containsMarker(items[i].Location, m) {
				items[i].Completed = true
			}
		}
	}
	slots := ModelSchedule(items)
	if slots[0].Location != "警察署 / 免許センター" || slots[0].Time != "9:00" {
		t.Errorf("police should open the day at 9:00, got %+v", slots[0])
	}
	if slots[1].Time != "9:00" {
		t.Errorf("bank slot without city hall should start 9:00, got %q", slots[1].Time)
	}
}

func TestModelSchedule_MinimumCityHallDuration(t *testing.T) {
	def, _ := DefinitionByID("marriage-registration")
	slots := ModelSchedule([]Item{{Definition: def}})
	if len(slots) != 1 || slots[0].Duration != "約30分" {
		t.Fatalf("single city hall item should take 30 minutes, got %+v", slots)
	}
}

func TestModelSchedule_AllDone(t *testing.T) {
	items := Generate(marriageDay(), DefaultOptions(), nil, marriageDay())
	for i := range items {
		items[i].Completed = true
	}
	if slots := ModelSchedule(items); len(slots) != 0 {
		t.Errorf("expected no slots, got %d", len(slots))
	}
}

func TestPendingDocuments_Deduplicates(t *testing.T) {
	items := Generate(marriageDay(), DefaultOptions(), nil, marriageDay())
	docs := PendingDocuments(ModelSchedule(items))
	seen := map[string]bool{}
	for _, d := range docs {
		if seen[d] {
			t.Errorf("duplicate document %q", d)
		}
		seen[d] = true
	}
	if !seen["本人確認書類"] || !seen["婚姻届"] {
		t.Errorf("missing expected documents: %v", docs)
	}
}

func containsMarker(s, m string) bool {
	return len(atLocation([]Item{{Definition: Definition{Location: s}}}, []string{m})) == 1
}
