// internal/classifier/rules.go
package classifier

import (
	"fmt"
	"strings"

	"leadflow-backend/internal/model"
)

var hotKeywords = []string{"urgent", "asap", "immediately", "budget", "timeline", "commercial", "bulk", "project", "contractor"}

var coldKeywords = []string{"browsing", "just looking", "maybe", "thinking", "someday"}

// ClassifyByRules is the deterministic fallback: keyword containment counts
// over the lowered message. HOT is checked first, so a message carrying both
// hot and cold signals still lands in HOT.
func ClassifyByRules(message string) model.ClassificationResult {
	lower := strings.ToLower(message)

	hotCount := 0
	for _, kw := range hotKeywords {
		if strings.Contains(lower, kw) {
			hotCount++
		}
	}

	coldCount := 0
	for _, kw := range coldKeywords {
		if strings.Contains(lower, kw) {
			coldCount++
		}
	}

	if hotCount >= 2 {
		return model.ClassificationResult{
			Category:   model.CategoryHot,
			Confidence: 0.75,
			Reasoning:  fmt.Sprintf("Message contains %d urgency/commitment signals", hotCount),
		}
	}

	if coldCount >= 1 {
		return model.ClassificationResult{
			Category:   model.CategoryCold,
			Confidence: 0.7,
			Reasoning:  "Message indicates browsing/no immediate need",
		}
	}

	return model.ClassificationResult{
		Category:   model.CategoryWarm,
		Confidence: 0.6,
		Reasoning:  "No strong HOT or COLD signals detected",
	}
}
