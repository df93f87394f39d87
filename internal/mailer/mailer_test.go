package mailer

import (
	"testing"

	"leadflow-backend/internal/model"
)

func TestSubject(t *testing.T) {
	lead := &model.Lead{ProductInterest: "flooring"}
	if got := Subject(lead); got != "Following up on your flooring inquiry" {
		t.Errorf("unexpected subject: %q", got)
	}
}

func TestResolveMessage(t *testing.T) {
	lead := &model.Lead{
		Name:            "Brian",
		Category:        model.CategoryWarm,
		ProductInterest: "lighting",
	}

	got := ResolveMessage("Hi {name}, as a {category} lead interested in {product_interest}.", lead)
	want := "Hi Brian, as a WARM lead interested in lighting."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestResolveMessageWithoutPlaceholders(t *testing.T) {
	lead := &model.Lead{Name: "Amina"}
	msg := "Thanks for reaching out! We're here whenever you're ready."
	if got := ResolveMessage(msg, lead); got != msg {
		t.Errorf("message without placeholders must pass through unchanged, got %q", got)
	}
}

func TestSMTPSenderRejectsMissingConfig(t *testing.T) {
	s := &SMTPSender{}
	if err := s.Send("to@example.com", "To", "subject", "body"); err == nil {
		t.Error("expected configuration error from empty sender")
	}
}
