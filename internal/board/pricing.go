package board

// Quote is the priced projection of one order. Both the card list and the
// detail view render from the same Quote so the two can never disagree.
type Quote struct {
	Lines       []QuoteLine
	ItemsTotal  float64
	DeliveryFee float64
	GST         float64
	GrandTotal  float64
}

type QuoteLine struct {
	Name      string
	Quantity  int
	UnitPrice float64
	AddOns    []AddOn
	LineTotal float64
}

// PriceOrder computes the display totals for an order. Per line:
// quantity * (unit price + add-on prices); the grand total adds delivery fee
// and GST on top of the items total. All inputs are non-negative after
// normalization, so the result is too.
func PriceOrder(order Order) Quote {
	quote := Quote{
		DeliveryFee: order.DeliveryFee,
		GST:         order.GST,
	}

	for _, item := range order.Items {
		perUnit := item.BasePrice
		for _, addOn := range item.AddOns {
			perUnit += addOn.Price
		}

		line := QuoteLine{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.BasePrice,
			AddOns:    item.AddOns,
			LineTotal: perUnit * float64(item.Quantity),
		}
		quote.Lines = append(quote.Lines, line)
		quote.ItemsTotal += line.LineTotal
	}

	quote.GrandTotal = quote.ItemsTotal + quote.DeliveryFee + quote.GST
	return quote
}
