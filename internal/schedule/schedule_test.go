package schedule

import (
	"testing"

	"leadflow-backend/internal/model"
)

func offsets(items []Item) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.DaysFromNow
	}
	return out
}

func assertOffsets(t *testing.T, items []Item, want []int) {
	t.Helper()
	got := offsets(items)
	if len(got) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item %d: expected offset %d, got %d", i, want[i], got[i])
		}
	}
}

func TestHotSchedule(t *testing.T) {
	items := ForCategory(model.CategoryHot)
	assertOffsets(t, items, []int{0, 1})

	if items[0].Type != model.FollowUpInitial || items[1].Type != model.FollowUpFirst {
		t.Errorf("unexpected types: %s, %s", items[0].Type, items[1].Type)
	}
}

func TestWarmSchedule(t *testing.T) {
	items := ForCategory(model.CategoryWarm)
	assertOffsets(t, items, []int{0, 3, 7})
}

func TestColdSchedule(t *testing.T) {
	items := ForCategory(model.CategoryCold)
	assertOffsets(t, items, []int{0, 7, 14, 30})

	if items[3].Type != model.FollowUpThird {
		t.Errorf("expected THIRD_FOLLOWUP last, got %s", items[3].Type)
	}
}

func TestPendingAndUnknownAreEmpty(t *testing.T) {
	if got := ForCategory(model.CategoryPending); len(got) != 0 {
		t.Errorf("expected empty schedule for PENDING, got %d items", len(got))
	}
	if got := ForCategory(model.Category("whatever")); len(got) != 0 {
		t.Errorf("expected empty schedule for unknown category, got %d items", len(got))
	}
}

// Offsets must be weakly increasing so a sequence never contacts out of order.
func TestOffsetsWeaklyIncreasing(t *testing.T) {
	for _, cat := range []model.Category{model.CategoryHot, model.CategoryWarm, model.CategoryCold} {
		items := ForCategory(cat)
		for i := 1; i < len(items); i++ {
			if items[i].DaysFromNow < items[i-1].DaysFromNow {
				t.Errorf("%s: offset %d before %d", cat, items[i].DaysFromNow, items[i-1].DaysFromNow)
			}
		}
		if len(items) > 0 && items[0].DaysFromNow != 0 {
			t.Errorf("%s: first contact should be immediate, got offset %d", cat, items[0].DaysFromNow)
		}
	}
}

func TestEveryItemHasMessage(t *testing.T) {
	for _, cat := range []model.Category{model.CategoryHot, model.CategoryWarm, model.CategoryCold} {
		for i, item := range ForCategory(cat) {
			if item.Message == "" {
				t.Errorf("%s item %d has no message", cat, i)
			}
		}
	}
}
