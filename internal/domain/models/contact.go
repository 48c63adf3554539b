package models

import "encoding/json"

// CustomerLookupRequest is the inbound body for the customer-by-phone
// endpoint.
type CustomerLookupRequest struct {
	Phone string `json:"phone"`
}

// Contact is an upstream client-type contact record. Fields whose upstream
// type varies across accounts (ids, identification objects, price list
// references) stay raw and are echoed back untouched.
type Contact struct {
	ID             json.RawMessage `json:"id"`
	Name           json.RawMessage `json:"name"`
	Identification json.RawMessage `json:"identification"`
	PhonePrimary   json.RawMessage `json:"phonePrimary"`
	PhoneSecondary json.RawMessage `json:"phoneSecondary"`
	Mobile         json.RawMessage `json:"mobile"`
	PriceList      json.RawMessage `json:"priceList"`
}

// PhoneFields lists the contact's phone-bearing fields in match order.
func (c *Contact) PhoneFields() []json.RawMessage {
	return []json.RawMessage{c.PhonePrimary, c.PhoneSecondary, c.Mobile}
}
