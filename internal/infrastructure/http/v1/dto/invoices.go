package dto

// CreateInvoiceRequest issues an invoice for an existing order.
type CreateInvoiceRequest struct {
	OrderID string `json:"orderId" binding:"required"`
}
