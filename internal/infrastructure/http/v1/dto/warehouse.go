package dto

import (
	"retailhub/internal/core/apperror"
	"retailhub/internal/core/id"
	"retailhub/internal/core/types"
	"retailhub/internal/domain/warehouse"
)

// MovementRequest describes one stock movement. Quantity is in base units:
// a magnitude for in/out, signed for adjustments.
type MovementRequest struct {
	StoreID   string  `json:"storeId" binding:"required"`
	ProductID string  `json:"productId" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"required"`
	UnitPrice int64   `json:"unitPrice"`
	Reason    string  `json:"reason"`
	Notes     string  `json:"notes"`
}

// ToMovement converts the request, validating ID formats. The store name is
// resolved by the handler so ledger rows carry the denormalized snapshot.
func (r MovementRequest) ToMovement(storeName string) (warehouse.Movement, error) {
	storeID, err := id.Parse(r.StoreID)
	if err != nil {
		return warehouse.Movement{}, apperror.NewValidation("invalid storeId format").
			WithDetail("storeId", r.StoreID)
	}
	productID, err := id.Parse(r.ProductID)
	if err != nil {
		return warehouse.Movement{}, apperror.NewValidation("invalid productId format").
			WithDetail("productId", r.ProductID)
	}

	return warehouse.Movement{
		StoreID:   storeID,
		StoreName: storeName,
		ProductID: productID,
		Quantity:  types.NewQuantityFromFloat64(r.Quantity),
		UnitPrice: r.UnitPrice,
		Reason:    r.Reason,
		Notes:     r.Notes,
	}, nil
}
