package models

import "encoding/json"

// CreateInvoiceRequest is the inbound body for the create-invoice endpoint.
type CreateInvoiceRequest struct {
	ClientID     json.RawMessage    `json:"clientId" binding:"required"`
	Items        []InvoiceLineDraft `json:"items" binding:"required,min=1,dive"`
	Observations string             `json:"observations"`
}

// HasClient reports whether clientId carries a real value. An explicit JSON
// null survives required-binding as the literal bytes "null" and must still
// be rejected.
func (r CreateInvoiceRequest) HasClient() bool {
	return !isAbsent(r.ClientID)
}

// InvoiceLineDraft is one requested line, keyed by SKU; price and quantity
// pass through to the upstream invoice as given.
type InvoiceLineDraft struct {
	SKU      string  `json:"sku" binding:"required"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
}

// InvoicePayload is the upstream invoice-creation body.
type InvoicePayload struct {
	Date         string        `json:"date"`
	Client       InvoiceClient `json:"client"`
	Items        []InvoiceLine `json:"items"`
	Observations string        `json:"observations"`
}

// InvoiceClient references the billed contact by id.
type InvoiceClient struct {
	ID json.RawMessage `json:"id"`
}

// InvoiceLine is one resolved line of the upstream payload: the catalog
// item's upstream id plus the caller-provided price and quantity.
type InvoiceLine struct {
	ID       json.RawMessage `json:"id"`
	Price    float64         `json:"price"`
	Quantity float64         `json:"quantity"`
}

// CreatedInvoice is the slice of the upstream creation response surfaced to
// callers.
type CreatedInvoice struct {
	ID     json.RawMessage `json:"id"`
	Number json.RawMessage `json:"number"`
}
