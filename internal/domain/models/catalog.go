package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ItemLookupRequest is the inbound body for the item-by-sku endpoint.
type ItemLookupRequest struct {
	SKU string `json:"sku" binding:"required"`
}

// PriceLookupRequest is the inbound body for the price-for-customer endpoint.
type PriceLookupRequest struct {
	SKU         string `json:"sku" binding:"required"`
	PriceListID string `json:"priceListId" binding:"required"`
}

// PriceEntry is one price assignment on a catalog item. Alegra emits the
// price as a number or a numeric string, and the currency as either a plain
// code or an object carrying a code field; both variants are resolved here.
type PriceEntry struct {
	Price       *float64
	Currency    string
	PriceListID string
}

// DefaultCurrency is assumed whenever the upstream record omits one.
const DefaultCurrency = "MXN"

func (p *PriceEntry) UnmarshalJSON(data []byte) error {
	var aux struct {
		Price     json.RawMessage `json:"price"`
		Currency  json.RawMessage `json:"currency"`
		PriceList struct {
			ID json.RawMessage `json:"id"`
		} `json:"priceList"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if n, ok := numberFrom(aux.Price); ok {
		p.Price = &n
	}
	p.Currency = currencyCode(aux.Currency)
	p.PriceListID = rawScalar(aux.PriceList.ID)
	return nil
}

// CatalogItem is the canonical view of an upstream item record. All shape
// variance in the raw payload (prices as list or object, stock per warehouse
// or flat on the item) is resolved once during unmarshalling.
type CatalogItem struct {
	ID           json.RawMessage
	Name         string
	Reference    string
	Codes        json.RawMessage
	CustomFields json.RawMessage
	Prices       []PriceEntry
	Stock        StockSource
}

func (it *CatalogItem) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID           json.RawMessage `json:"id"`
		Name         string          `json:"name"`
		Reference    string          `json:"reference"`
		Code         json.RawMessage `json:"code"`
		Codes        json.RawMessage `json:"codes"`
		CustomFields json.RawMessage `json:"customFields"`
		Prices       json.RawMessage `json:"prices"`
		Price        json.RawMessage `json:"price"`
		Warehouses   json.RawMessage `json:"warehouses"`
		Inventory    json.RawMessage `json:"inventory"`

		CurrentQuantity   json.RawMessage `json:"currentQuantity"`
		AvailableQuantity json.RawMessage `json:"availableQuantity"`
		Available         json.RawMessage `json:"available"`
		Quantity          json.RawMessage `json:"quantity"`
		Stock             json.RawMessage `json:"stock"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	it.ID = aux.ID
	it.Name = aux.Name
	it.Reference = aux.Reference
	it.CustomFields = aux.CustomFields

	// Some accounts expose "code", others "codes".
	it.Codes = aux.Code
	if isAbsent(it.Codes) {
		it.Codes = aux.Codes
	}

	prices := aux.Prices
	if isAbsent(prices) {
		prices = aux.Price
	}
	it.Prices = parsePriceEntries(prices)

	stock, err := parseStockSource(
		aux.Warehouses,
		aux.Inventory,
		[]json.RawMessage{aux.CurrentQuantity, aux.AvailableQuantity, aux.Available, aux.Quantity, aux.Stock},
	)
	if err != nil {
		return err
	}
	it.Stock = stock
	return nil
}

// BasePrice returns the item's first price entry, with the currency default
// applied. A nil price means the record carried no usable number.
func (it *CatalogItem) BasePrice() (*float64, string) {
	if len(it.Prices) == 0 {
		return nil, DefaultCurrency
	}
	entry := it.Prices[0]
	currency := entry.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	return entry.Price, currency
}

// PriceForList returns the entry whose price list id equals the given id
// stringwise, or nil when the item carries no price for that list.
func (it *CatalogItem) PriceForList(priceListID string) *PriceEntry {
	for i := range it.Prices {
		if it.Prices[i].PriceListID == priceListID {
			return &it.Prices[i]
		}
	}
	return nil
}

// parsePriceEntries resolves the prices field leniently, never failing the
// item: a list keeps its element positions so the base price stays index 0
// (malformed elements become empty entries), a single object wraps to a
// one-element list, and any other shape means no prices.
func parsePriceEntries(raw json.RawMessage) []PriceEntry {
	trimmed := bytes.TrimSpace(raw)
	switch {
	case isAbsent(trimmed):
		return nil
	case trimmed[0] == '[':
		var elems []json.RawMessage
		if err := json.Unmarshal(trimmed, &elems); err != nil {
			return nil
		}
		entries := make([]PriceEntry, len(elems))
		for i, elem := range elems {
			var entry PriceEntry
			if err := json.Unmarshal(elem, &entry); err == nil {
				entries[i] = entry
			}
		}
		return entries
	case trimmed[0] == '{':
		var entry PriceEntry
		if err := json.Unmarshal(trimmed, &entry); err != nil {
			return []PriceEntry{{}}
		}
		return []PriceEntry{entry}
	default:
		return nil
	}
}

func currencyCode(raw json.RawMessage) string {
	if isAbsent(raw) {
		return ""
	}
	var code string
	if err := json.Unmarshal(raw, &code); err == nil {
		return code
	}
	var obj struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Code
	}
	return ""
}

// numberFrom reports the finite numeric value of a raw JSON scalar,
// accepting numbers and numeric strings.
func numberFrom(raw json.RawMessage) (float64, bool) {
	if isAbsent(raw) {
		return 0, false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		// ParseFloat accepts "Infinity" and "NaN"; those are not finite.
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// rawScalar renders a raw JSON scalar as its bare string form, so numeric
// and string ids compare equal ("4" == 4).
func rawScalar(raw json.RawMessage) string {
	if isAbsent(raw) {
		return ""
	}
	s := string(bytes.TrimSpace(raw))
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		var out string
		if err := json.Unmarshal(raw, &out); err == nil {
			return out
		}
	}
	return s
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
