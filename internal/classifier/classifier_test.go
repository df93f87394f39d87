package classifier

import (
	"context"
	"fmt"
	"testing"

	"leadflow-backend/internal/model"
)

type fakeChat struct {
	reply string
	err   error
	calls int
}

func (f *fakeChat) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	f.calls++
	return f.reply, f.err
}

func testInquiry(message string) model.Inquiry {
	return model.Inquiry{
		Name:            "Jane Doe",
		Email:           "jane@example.com",
		Phone:           "+100000000",
		ProductInterest: "flooring",
		Message:         message,
	}
}

func TestClassifyParsesRawJSON(t *testing.T) {
	chat := &fakeChat{reply: `{"category": "HOT", "confidence": 0.9, "reasoning": "ready to buy"}`}
	c := New(chat)

	res := c.Classify(context.Background(), testInquiry("need a quote"))

	if res.Category != model.CategoryHot {
		t.Errorf("expected HOT, got %s", res.Category)
	}
	if res.Confidence != 0.9 {
		t.Errorf("expected confidence 0.9, got %v", res.Confidence)
	}
	if res.Reasoning != "ready to buy" {
		t.Errorf("unexpected reasoning %q", res.Reasoning)
	}
	if chat.calls != 1 {
		t.Errorf("expected exactly one model call, got %d", chat.calls)
	}
}

func TestClassifyParsesLabeledFence(t *testing.T) {
	chat := &fakeChat{reply: "```json\n{\"category\": \"WARM\", \"confidence\": 0.8, \"reasoning\": \"comparing options\"}\n```"}
	c := New(chat)

	res := c.Classify(context.Background(), testInquiry("which laminate is best?"))

	if res.Category != model.CategoryWarm {
		t.Errorf("expected WARM, got %s", res.Category)
	}
	if res.Confidence != 0.8 {
		t.Errorf("expected confidence 0.8, got %v", res.Confidence)
	}
}

func TestClassifyParsesGenericFence(t *testing.T) {
	chat := &fakeChat{reply: "```\n{\"category\": \"COLD\", \"confidence\": 0.6, \"reasoning\": \"vague\"}\n```"}
	c := New(chat)

	res := c.Classify(context.Background(), testInquiry("hello"))

	if res.Category != model.CategoryCold {
		t.Errorf("expected COLD, got %s", res.Category)
	}
}

func TestClassifyParsesBracesInsideProse(t *testing.T) {
	chat := &fakeChat{reply: `Sure, here is my answer: {"category": "HOT", "confidence": 0.85, "reasoning": "bulk order"} hope that helps`}
	c := New(chat)

	res := c.Classify(context.Background(), testInquiry("bulk order"))

	if res.Category != model.CategoryHot {
		t.Errorf("expected HOT, got %s", res.Category)
	}
}

func TestClassifyFallsBackOnProse(t *testing.T) {
	chat := &fakeChat{reply: "I think this lead is quite promising overall."}
	c := New(chat)

	res := c.Classify(context.Background(), testInquiry("just looking around"))

	// rule fallback on the message text
	if res.Category != model.CategoryCold {
		t.Errorf("expected COLD from rule fallback, got %s", res.Category)
	}
}

func TestClassifyFallsBackOnProviderError(t *testing.T) {
	chat := &fakeChat{err: fmt.Errorf("quota exceeded")}
	c := New(chat)

	res := c.Classify(context.Background(), testInquiry("urgent asap please"))

	if res.Category != model.CategoryHot {
		t.Errorf("expected HOT from rule fallback, got %s", res.Category)
	}
	if chat.calls != 1 {
		t.Errorf("expected a single unretried call, got %d", chat.calls)
	}
}

func TestClassifyFallsBackWithoutClient(t *testing.T) {
	c := New(nil)

	res := c.Classify(context.Background(), testInquiry("Looking for good flooring options"))

	if res.Category != model.CategoryWarm {
		t.Errorf("expected WARM, got %s", res.Category)
	}
}

func TestClassifyFallsBackOnMissingCategory(t *testing.T) {
	chat := &fakeChat{reply: `{"confidence": 0.9, "reasoning": "no category here"}`}
	c := New(chat)

	res := c.Classify(context.Background(), testInquiry("urgent budget approved"))

	if res.Category != model.CategoryHot {
		t.Errorf("expected rule fallback HOT, got %s", res.Category)
	}
}

func TestClassifyFallsBackOnUnknownCategory(t *testing.T) {
	chat := &fakeChat{reply: `{"category": "LUKEWARM", "confidence": 0.9, "reasoning": "?"}`}
	c := New(chat)

	res := c.Classify(context.Background(), testInquiry("Looking for good flooring options"))

	if res.Category != model.CategoryWarm {
		t.Errorf("expected rule fallback WARM, got %s", res.Category)
	}
}

func TestClassifyDefaultsConfidenceAndReasoning(t *testing.T) {
	chat := &fakeChat{reply: `{"category": "WARM"}`}
	c := New(chat)

	res := c.Classify(context.Background(), testInquiry("hi"))

	if res.Confidence != 0.7 {
		t.Errorf("expected default confidence 0.7, got %v", res.Confidence)
	}
	if res.Reasoning != "AI reasoning unavailable" {
		t.Errorf("expected placeholder reasoning, got %q", res.Reasoning)
	}
}

func TestClassifyCoercesStringConfidence(t *testing.T) {
	chat := &fakeChat{reply: `{"category": "WARM", "confidence": "0.85", "reasoning": "ok"}`}
	c := New(chat)

	res := c.Classify(context.Background(), testInquiry("hi"))

	if res.Confidence != 0.85 {
		t.Errorf("expected coerced confidence 0.85, got %v", res.Confidence)
	}
}

func TestClassifyNeverReturnsPending(t *testing.T) {
	messages := []string{
		"", "urgent budget", "just looking", "tell me about your lighting range",
	}
	c := New(nil)
	for _, m := range messages {
		res := c.Classify(context.Background(), testInquiry(m))
		if !res.Category.Valid() {
			t.Errorf("message %q produced invalid category %s", m, res.Category)
		}
	}
}
