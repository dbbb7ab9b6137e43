package service

// EventPublisher pushes realtime notifications to connected dashboards.
type EventPublisher interface {
	Publish(eventType string, data interface{})
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, interface{}) {}

func publisherOrNop(p EventPublisher) EventPublisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}

// stockEvent is the payload of stock_update and low_stock events.
type stockEvent struct {
	ProductID string `json:"productId"`
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	OldStock  int    `json:"oldStock"`
	NewStock  int    `json:"newStock"`
	MinStock  int    `json:"minStock"`
}
