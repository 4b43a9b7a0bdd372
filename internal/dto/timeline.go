package dto

import "github.com/SscSPs/inventory_ledger/internal/core/domain"

// TimelineResponse defines the data returned for a product timeline.
type TimelineResponse struct {
	Product   domain.Product         `json:"product"`
	Events    []domain.ProductEvent  `json:"events"`
	Summary   domain.TimelineSummary `json:"summary"`
	Customers []domain.CustomerSales `json:"customers"`
}

// ToTimelineResponse converts a domain.ProductTimeline to TimelineResponse DTO.
func ToTimelineResponse(t *domain.ProductTimeline) TimelineResponse {
	events := t.Events
	if events == nil {
		events = []domain.ProductEvent{}
	}
	customers := t.Customers
	if customers == nil {
		customers = []domain.CustomerSales{}
	}
	return TimelineResponse{
		Product:   t.Product,
		Events:    events,
		Summary:   t.Summary,
		Customers: customers,
	}
}
