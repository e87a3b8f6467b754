package board

import (
	"strings"
	"time"

	"github.com/CharvitZalavadiya/GormishRestaurant/internal/orderapi"
)

const (
	// Shown when neither the order nor the customer carries a usable address.
	addressUnavailable = "Address not available"

	dateLayout = "Jan 02, 2006"
	timeLayout = "03:04 PM"
)

// Normalize converts one raw order into its canonical form. It is total:
// every malformed or absent field degrades to a safe default, never to an
// error.
func Normalize(raw orderapi.RawOrder) Order {
	order := Order{
		ID:            raw.ID,
		CustomerName:  strings.TrimSpace(raw.CustomerName),
		Address:       resolveAddress(raw),
		Items:         normalizeItems(raw.Items),
		Status:        ParseStatus(raw.Status),
		DeliveryFee:   amountOrZero(raw.DeliveryFee),
		GST:           amountOrZero(raw.GST),
		PaymentType:   raw.PaymentType,
		PaymentStatus: raw.PaymentStatus,
		Notes:         raw.Notes,
		RestaurantID:  raw.RestaurantID,
	}

	if order.CustomerName == "" && raw.Customer != nil {
		order.CustomerName = strings.TrimSpace(raw.Customer.Name)
	}

	order.Amount = resolveAmount(raw)
	order.Date, order.Time = formatPlacedAt(raw.PlacedAt)

	return order
}

// resolveAddress tries the order's own address first, then the customer's.
func resolveAddress(raw orderapi.RawOrder) string {
	if s := raw.Address.Resolve(); s != "" {
		return s
	}
	if raw.Customer != nil {
		if s := raw.Customer.Address.Resolve(); s != "" {
			return s
		}
	}
	return addressUnavailable
}

// resolveAmount settles the server-reported total: the string totalAmount
// wins, then the numeric total, then the sum of per-item totals, then zero.
func resolveAmount(raw orderapi.RawOrder) float64 {
	if raw.TotalAmount.Valid {
		return nonNegative(raw.TotalAmount.Value)
	}
	if raw.Total.Valid {
		return nonNegative(raw.Total.Value)
	}

	sum := 0.0
	summed := false
	for _, item := range raw.Items {
		if item.TotalPrice.Valid {
			sum += nonNegative(item.TotalPrice.Value)
			summed = true
		}
	}
	if summed {
		return sum
	}
	return 0
}

func normalizeItems(raw []orderapi.RawItem) []LineItem {
	if len(raw) == 0 {
		return nil
	}

	items := make([]LineItem, 0, len(raw))
	for _, ri := range raw {
		item := LineItem{
			Name:      strings.TrimSpace(ri.Name),
			Quantity:  quantityOrOne(ri.Quantity),
			BasePrice: unitPrice(ri),
		}
		for _, ra := range ri.AddOns {
			item.AddOns = append(item.AddOns, AddOn{
				Name:  strings.TrimSpace(ra.Name),
				Price: addOnPrice(ra),
			})
		}
		items = append(items, item)
	}
	return items
}

// unitPrice and addOnPrice are the single place the historical field-name
// fallbacks live; everything downstream reads one resolved number.
func unitPrice(item orderapi.RawItem) float64 {
	if item.BasePrice.Valid {
		return nonNegative(item.BasePrice.Value)
	}
	if item.Price.Valid {
		return nonNegative(item.Price.Value)
	}
	return 0
}

func addOnPrice(addOn orderapi.RawAddOn) float64 {
	if addOn.Price.Valid {
		return nonNegative(addOn.Price.Value)
	}
	if addOn.AddOnPrice.Valid {
		return nonNegative(addOn.AddOnPrice.Value)
	}
	return 0
}

// formatPlacedAt derives the display date and time. A missing or unparseable
// timestamp yields empty strings and the renderer skips the lines.
func formatPlacedAt(placedAt string) (string, string) {
	placedAt = strings.TrimSpace(placedAt)
	if placedAt == "" {
		return "", ""
	}
	t, err := time.Parse(time.RFC3339, placedAt)
	if err != nil {
		return "", ""
	}
	return t.Format(dateLayout), t.Format(timeLayout)
}

func amountOrZero(a orderapi.Amount) float64 {
	if !a.Valid {
		return 0
	}
	return nonNegative(a.Value)
}

func quantityOrOne(a orderapi.Amount) int {
	if !a.Valid {
		return 1
	}
	q := int(a.Value)
	if q <= 0 {
		return 1
	}
	return q
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
