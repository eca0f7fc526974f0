package dto

import (
	"github.com/yukikurage/procms-api/internal/models"
	"github.com/yukikurage/procms-api/internal/services"
	"github.com/yukikurage/procms-api/internal/utils"
)

// SubscriptionDTO is a subscription with its payment progress
type SubscriptionDTO struct {
	models.Subscription
	Outstanding float64 `json:"outstanding"`
	PaidPercent int     `json:"paid_percent"`
}

// SubscriptionListResponse lists subscriptions with their totals
type SubscriptionListResponse struct {
	Subscriptions []SubscriptionDTO             `json:"subscriptions"`
	Summary       services.SubscriptionSummary `json:"summary"`
}

// ReportListResponse represents a paginated list of EOD reports
type ReportListResponse struct {
	Reports    []models.EODReport       `json:"reports"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

func ToSubscriptionDTO(sub models.Subscription) SubscriptionDTO {
	if sub.Milestones == nil {
		sub.Milestones = []models.Milestone{}
	}
	return SubscriptionDTO{
		Subscription: sub,
		Outstanding:  sub.Outstanding(),
		PaidPercent:  services.PaidPercent(sub),
	}
}

// ToSubscriptionListResponse converts subscriptions and their summary
func ToSubscriptionListResponse(subs []models.Subscription, summary services.SubscriptionSummary) SubscriptionListResponse {
	out := make([]SubscriptionDTO, len(subs))
	for i, s := range subs {
		out[i] = ToSubscriptionDTO(s)
	}
	return SubscriptionListResponse{Subscriptions: out, Summary: summary}
}
