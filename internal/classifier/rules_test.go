package classifier

import (
	"strings"
	"testing"

	"leadflow-backend/internal/model"
)

func TestRulesHotSignals(t *testing.T) {
	res := ClassifyByRules("This is urgent, we have a budget approved for a commercial fit-out")

	if res.Category != model.CategoryHot {
		t.Errorf("expected HOT, got %s", res.Category)
	}
	if res.Confidence != 0.75 {
		t.Errorf("expected confidence 0.75, got %v", res.Confidence)
	}
	if !strings.Contains(res.Reasoning, "3") {
		t.Errorf("expected reasoning to cite the signal count, got %q", res.Reasoning)
	}
}

func TestRulesColdSignals(t *testing.T) {
	res := ClassifyByRules("just looking, maybe later")

	if res.Category != model.CategoryCold {
		t.Errorf("expected COLD, got %s", res.Category)
	}
	if res.Confidence != 0.7 {
		t.Errorf("expected confidence 0.7, got %v", res.Confidence)
	}
}

func TestRulesDefaultWarm(t *testing.T) {
	res := ClassifyByRules("Looking for good flooring options")

	if res.Category != model.CategoryWarm {
		t.Errorf("expected WARM, got %s", res.Category)
	}
	if res.Confidence != 0.6 {
		t.Errorf("expected confidence 0.6, got %v", res.Confidence)
	}
}

// HOT is checked first, so it wins even when cold signals are present too.
func TestRulesTieBreakPrefersHot(t *testing.T) {
	res := ClassifyByRules("urgent bulk order, though we were just browsing last month")

	if res.Category != model.CategoryHot {
		t.Errorf("expected HOT on tie-break, got %s", res.Category)
	}
}

func TestRulesCaseInsensitive(t *testing.T) {
	res := ClassifyByRules("URGENT! Need this ASAP")

	if res.Category != model.CategoryHot {
		t.Errorf("expected HOT for upper-case signals, got %s", res.Category)
	}
}

func TestRulesSingleHotSignalIsNotEnough(t *testing.T) {
	res := ClassifyByRules("We have a project coming up")

	if res.Category != model.CategoryWarm {
		t.Errorf("expected WARM for a single hot signal, got %s", res.Category)
	}
}
