// internal/schedule/schedule.go
package schedule

import "leadflow-backend/internal/model"

// Item is a follow-up template: not yet a durable record, just the type,
// the day offset from classification time, and the message body.
type Item struct {
	Type        model.FollowUpType `json:"type"`
	DaysFromNow int                `json:"days_from_now"`
	Message     string             `json:"message"`
}

// ForCategory expands an urgency tier into its contact sequence. This table
// is the follow-up policy; offsets are weakly increasing so a sequence never
// contacts a lead out of order. PENDING and unknown values get no sequence.
func ForCategory(category model.Category) []Item {
	switch category {
	case model.CategoryHot:
		return []Item{
			{
				Type:        model.FollowUpInitial,
				DaysFromNow: 0,
				Message:     "Thank you for your urgent inquiry! We're excited to help with your project. A senior consultant will contact you within the hour to discuss your requirements.",
			},
			{
				Type:        model.FollowUpFirst,
				DaysFromNow: 1,
				Message:     "Following up on our conversation. Have you had a chance to review the product specifications we discussed? I'd be happy to schedule a site visit or provide samples.",
			},
		}

	case model.CategoryWarm:
		return []Item{
			{
				Type:        model.FollowUpInitial,
				DaysFromNow: 0,
				Message:     "Thank you for your interest! I've attached our product catalog and pricing guide. What specific requirements are you looking for?",
			},
			{
				Type:        model.FollowUpFirst,
				DaysFromNow: 3,
				Message:     "Just checking in! Did you get a chance to review our products? I can help answer any technical questions or arrange a showroom visit.",
			},
			{
				Type:        model.FollowUpSecond,
				DaysFromNow: 7,
				Message:     "I wanted to share some recent projects similar to what you're planning. Many clients find these case studies helpful. Would you like to see them?",
			},
		}

	case model.CategoryCold:
		return []Item{
			{
				Type:        model.FollowUpInitial,
				DaysFromNow: 0,
				Message:     "Thanks for reaching out! We're here whenever you're ready. I've added you to our newsletter for product updates and special offers.",
			},
			{
				Type:        model.FollowUpFirst,
				DaysFromNow: 7,
				Message:     "Hope you're doing well! We have some exciting new arrivals that might interest you. Would you like an updated catalog?",
			},
			{
				Type:        model.FollowUpSecond,
				DaysFromNow: 14,
				Message:     "We're running a limited-time promotion on select products this month. Thought you might want to know!",
			},
			{
				Type:        model.FollowUpThird,
				DaysFromNow: 30,
				Message:     "Final check-in! If you need anything in the future, feel free to reach out. We're always here to help.",
			},
		}

	default:
		return []Item{}
	}
}
