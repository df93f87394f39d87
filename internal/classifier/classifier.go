// internal/classifier/classifier.go
package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"leadflow-backend/internal/model"
)

// maxOutputTokens bounds the model answer; the classification JSON is tiny
// and a short ceiling keeps cost and latency predictable.
const maxOutputTokens = 200

// Classifier assigns an urgency tier to an inquiry. It is total over all
// string inputs: every provider failure (missing credential, network, quota,
// unparsable or out-of-enum output) resolves to the rule-based fallback, so
// Classify never returns an error.
type Classifier struct {
	client ChatClient
}

// New builds a Classifier. A nil client disables the model path entirely and
// every call goes straight to the rules.
func New(client ChatClient) *Classifier {
	return &Classifier{client: client}
}

// Classify produces exactly one result per inquiry. One provider call, no
// retries; a single failure is absorbed by the fallback.
func (c *Classifier) Classify(ctx context.Context, inq model.Inquiry) model.ClassificationResult {
	if c == nil || c.client == nil {
		return ClassifyByRules(inq.Message)
	}

	text, err := c.client.Complete(ctx, buildPrompt(inq), maxOutputTokens)
	if err != nil {
		log.Println("classifier: model call failed, using rule-based fallback:", err)
		return ClassifyByRules(inq.Message)
	}

	raw := tryParseClassificationJSON(text)
	if raw == nil || raw.Category == "" {
		log.Println("classifier: model response had no parsable JSON, using rule-based fallback")
		return ClassifyByRules(inq.Message)
	}

	category := model.Category(raw.Category)
	if !category.Valid() {
		log.Printf("classifier: model returned unknown category %q, using rule-based fallback", raw.Category)
		return ClassifyByRules(inq.Message)
	}

	return model.ClassificationResult{
		Category:   category,
		Confidence: coerceConfidence(raw.Confidence),
		Reasoning:  coerceReasoning(raw.Reasoning),
	}
}

func buildPrompt(inq model.Inquiry) string {
	company := "Not provided"
	if inq.Company != nil && *inq.Company != "" {
		company = *inq.Company
	}

	return fmt.Sprintf(`You are an AI assistant helping a material brand (flooring, laminates, lighting) categorize sales leads.

Analyze this inquiry and categorize it as HOT, WARM, or COLD.

Lead Details:
- Name: %s
- Email: %s
- Phone: %s
- Company: %s
- Product Interest: %s
- Message: %s

Categorization Guidelines:
- HOT: Urgent need, mentions budget/timeline, commercial project, bulk order, ready to buy
- WARM: Specific product questions, comparing options, planning phase, genuine interest
- COLD: General browsing, "just looking", vague inquiry, no clear timeline

Output ONLY raw JSON (no backticks, no markdown, no prose):
{
  "category": "HOT" | "WARM" | "COLD",
  "confidence": 0.0-1.0,
  "reasoning": "Brief explanation (max 50 words)"
}`,
		inq.Name, inq.Email, inq.Phone, company, inq.ProductInterest, inq.Message)
}

// rawClassification is the loosely-typed shape parsed out of model text.
// Confidence and Reasoning stay json.RawMessage so a model that emits
// "confidence": "0.8" or omits a field does not kill the parse.
type rawClassification struct {
	Category   string          `json:"category"`
	Confidence json.RawMessage `json:"confidence"`
	Reasoning  json.RawMessage `json:"reasoning"`
}

var (
	fenceJSONRe = regexp.MustCompile("(?i)```json[\\s\\S]*?```")
	fenceAnyRe  = regexp.MustCompile("```[\\s\\S]*?```")
	fenceLabel  = regexp.MustCompile("(?i)^```json")
)

// tryParseClassificationJSON extracts a JSON object from model text using
// successively looser candidates: the raw trimmed text, a ```json fenced
// block, a generic fenced block, then the substring between the first '{'
// and the last '}'. The first candidate that parses wins.
func tryParseClassificationJSON(text string) *rawClassification {
	trimmed := strings.TrimSpace(text)
	candidates := []string{trimmed}

	if m := fenceJSONRe.FindString(trimmed); m != "" {
		m = fenceLabel.ReplaceAllString(m, "")
		m = strings.TrimSuffix(m, "```")
		candidates = append(candidates, strings.TrimSpace(m))
	}
	if m := fenceAnyRe.FindString(trimmed); m != "" {
		m = strings.TrimPrefix(m, "```")
		m = strings.TrimSuffix(m, "```")
		candidates = append(candidates, strings.TrimSpace(m))
	}

	first := strings.Index(trimmed, "{")
	last := strings.LastIndex(trimmed, "}")
	if first != -1 && last > first {
		candidates = append(candidates, trimmed[first:last+1])
	}

	for _, c := range candidates {
		var raw rawClassification
		if err := json.Unmarshal([]byte(c), &raw); err == nil {
			return &raw
		}
	}
	return nil
}

func coerceConfidence(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0.7
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}

	return 0.7
}

func coerceReasoning(raw json.RawMessage) string {
	var s string
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return s
		}
	}
	return "AI reasoning unavailable"
}
