package dto

import (
	"retailhub/internal/core/apperror"
	"retailhub/internal/core/id"
	"retailhub/internal/core/types"
	"retailhub/internal/domain/orders"
)

// OrderLineRequest is one requested order line.
type OrderLineRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"required,gt=0"`

	// PriceOverride replaces the channel price when set (minor units).
	PriceOverride *int64 `json:"priceOverride"`
}

// CreateOrderRequest for creating orders.
type CreateOrderRequest struct {
	StoreID      string             `json:"storeId" binding:"required"`
	Channel      string             `json:"channel" binding:"required"`
	Lines        []OrderLineRequest `json:"lines" binding:"required,min=1"`
	CustomerName string             `json:"customerName"`
	Platform     string             `json:"platform"`
	Discount     int64              `json:"discount"`
	ShippingFee  int64              `json:"shippingFee"`
	Deposit      int64              `json:"deposit"`
	Comment      string             `json:"comment"`
}

// ToServiceRequest converts the request, validating ID formats.
func (r CreateOrderRequest) ToServiceRequest() (orders.CreateRequest, error) {
	storeID, err := id.Parse(r.StoreID)
	if err != nil {
		return orders.CreateRequest{}, apperror.NewValidation("invalid storeId format").
			WithDetail("storeId", r.StoreID)
	}

	lines := make([]orders.CreateLine, 0, len(r.Lines))
	for i, l := range r.Lines {
		productID, err := id.Parse(l.ProductID)
		if err != nil {
			return orders.CreateRequest{}, apperror.NewValidation("invalid productId format").
				WithDetail("lineNo", i+1).
				WithDetail("productId", l.ProductID)
		}
		line := orders.CreateLine{
			ProductID: productID,
			Quantity:  l.Quantity,
		}
		if l.PriceOverride != nil {
			override := types.MinorUnits(*l.PriceOverride)
			line.PriceOverride = &override
		}
		lines = append(lines, line)
	}

	return orders.CreateRequest{
		StoreID:      storeID,
		Channel:      orders.Channel(r.Channel),
		Lines:        lines,
		CustomerName: r.CustomerName,
		Platform:     r.Platform,
		Discount:     r.Discount,
		ShippingFee:  r.ShippingFee,
		Deposit:      r.Deposit,
		Comment:      r.Comment,
	}, nil
}

// RecordPaymentRequest registers a payment (minor units).
type RecordPaymentRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// IngestOrdersRequest imports legacy order records.
type IngestOrdersRequest struct {
	Strategy string           `json:"strategy" binding:"required"`
	Records  []map[string]any `json:"records" binding:"required"`
}

// IngestOrdersResponse reports the import outcome.
type IngestOrdersResponse struct {
	Received int `json:"received"`
	Skipped  int `json:"skipped"`
}

// BulkDeleteRequest deletes several orders.
type BulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// BulkDeleteResponse reports how many orders were deleted.
type BulkDeleteResponse struct {
	Deleted int `json:"deleted"`
}

// ChannelDiagnosisResponse is the classifier disagreement report for one order.
type ChannelDiagnosisResponse struct {
	OrderID   string `json:"orderId"`
	Strict    string `json:"strict"`
	Heuristic string `json:"heuristic"`
	Ambiguous bool   `json:"ambiguous"`
}
