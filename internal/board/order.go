package board

// Order is the canonical, fully resolved form every other part of the board
// works with. All ambiguity in the wire format is settled by Normalize; no
// field here needs a fallback chain.
type Order struct {
	ID           string
	CustomerName string
	Address      string
	Items        []LineItem
	Status       Status
	Amount       float64
	DeliveryFee  float64
	GST          float64
	Date         string
	Time         string

	// Opaque passthrough, preserved but never interpreted.
	PaymentType   string
	PaymentStatus string
	Notes         string
	RestaurantID  string
}

type LineItem struct {
	Name      string
	Quantity  int
	BasePrice float64
	AddOns    []AddOn
}

type AddOn struct {
	Name  string
	Price float64
}
