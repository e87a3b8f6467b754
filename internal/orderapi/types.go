package orderapi

import (
	"encoding/json"
	"strconv"
	"strings"
)

// RawOrder is the wire shape of one order as the backend reports it. Fields
// may be absent, and several of them arrive in more than one historical form;
// decoding never fails on a single bad field.
type RawOrder struct {
	ID            string       `json:"id"`
	CustomerName  string       `json:"customerName"`
	Address       *RawAddress  `json:"address"`
	Customer      *RawCustomer `json:"customer"`
	Items         []RawItem    `json:"items"`
	Status        string       `json:"status"`
	TotalAmount   Amount       `json:"totalAmount"`
	Total         Amount       `json:"total"`
	DeliveryFee   Amount       `json:"deliveryFee"`
	GST           Amount       `json:"gst"`
	PlacedAt      string       `json:"placedAt"`
	PaymentType   string       `json:"paymentType"`
	PaymentStatus string       `json:"paymentStatus"`
	Notes         string       `json:"notes"`
	RestaurantID  string       `json:"restaurantId"`
}

type RawCustomer struct {
	Name    string      `json:"name"`
	Address *RawAddress `json:"address"`
}

type RawItem struct {
	Name       string     `json:"name"`
	Quantity   Amount     `json:"quantity"`
	BasePrice  Amount     `json:"basePrice"`
	Price      Amount     `json:"price"`
	TotalPrice Amount     `json:"totalPrice"`
	AddOns     []RawAddOn `json:"addOns"`
}

type RawAddOn struct {
	Name       string `json:"name"`
	Price      Amount `json:"price"`
	AddOnPrice Amount `json:"addOnPrice"`
}

// Amount decodes a numeric field that the backend serializes either as a
// number or as a numeric string. Invalid values leave the amount unset
// instead of failing the whole order.
type Amount struct {
	Value float64
	Valid bool
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	a.Value = 0
	a.Valid = false

	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil
		}
		a.Value = v
		a.Valid = true
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	a.Value = v
	a.Valid = true
	return nil
}

// RawAddress is either a plain string or an object carrying the address the
// customer typed and the one resolved from the map pin.
type RawAddress struct {
	Text   string
	Typed  string
	Mapped string
	raw    json.RawMessage
}

func (a *RawAddress) UnmarshalJSON(data []byte) error {
	*a = RawAddress{raw: append(json.RawMessage(nil), data...)}

	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		a.Text = s
		return nil
	}

	var obj struct {
		Typed  string `json:"typedAddress"`
		Mapped string `json:"mappedAddress"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil
	}
	a.Typed = obj.Typed
	a.Mapped = obj.Mapped
	return nil
}

// Resolve picks the best display form: the plain string, then the typed
// address, then the mapped one, then the raw JSON as a last resort. Empty
// means nothing usable was present.
func (a *RawAddress) Resolve() string {
	if a == nil {
		return ""
	}
	if s := strings.TrimSpace(a.Text); s != "" {
		return s
	}
	if s := strings.TrimSpace(a.Typed); s != "" {
		return s
	}
	if s := strings.TrimSpace(a.Mapped); s != "" {
		return s
	}
	raw := strings.TrimSpace(string(a.raw))
	if raw == "" || raw == "null" || raw == "{}" || raw == `""` {
		return ""
	}
	return raw
}

type ordersEnvelope struct {
	Data struct {
		Data []RawOrder `json:"data"`
	} `json:"data"`
}

type statusUpdate struct {
	Status string `json:"status"`
}
