package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/CharvitZalavadiya/GormishRestaurant/internal/board"
)

// Card and detail rendering both price through board.PriceOrder, so the grid
// and the full view always show the same totals.

func writeCards(w io.Writer, orders []board.Order, tab board.Status, search string) {
	if len(orders) == 0 {
		if strings.TrimSpace(search) != "" {
			fmt.Fprintf(w, "No %s orders match %q.\n", tab, search)
		} else {
			fmt.Fprintf(w, "No %s orders.\n", tab)
		}
		return
	}

	fmt.Fprintf(w, "%d %s order(s):\n", len(orders), tab)
	for i, order := range orders {
		quote := board.PriceOrder(order)
		fmt.Fprintf(w, "%d) #%s  %s  %s  %s\n",
			i+1, order.ID, order.CustomerName, formatMoney(quote.GrandTotal), order.Status)
		for _, line := range quote.Lines {
			fmt.Fprintf(w, "    %dx %s  %s\n", line.Quantity, line.Name, formatMoney(line.LineTotal))
		}
		if placed := placedLine(order); placed != "" {
			fmt.Fprintf(w, "    %s\n", placed)
		}
	}
}

func writeDetail(w io.Writer, order board.Order) {
	quote := board.PriceOrder(order)

	fmt.Fprintf(w, "Order #%s (%s)\n", order.ID, order.Status)
	fmt.Fprintf(w, "Customer: %s\n", order.CustomerName)
	fmt.Fprintf(w, "Address: %s\n", order.Address)
	if placed := placedLine(order); placed != "" {
		fmt.Fprintln(w, placed)
	}
	if order.PaymentType != "" || order.PaymentStatus != "" {
		fmt.Fprintf(w, "Payment: %s %s\n", order.PaymentType, order.PaymentStatus)
	}
	if strings.TrimSpace(order.Notes) != "" {
		fmt.Fprintf(w, "Notes: %s\n", order.Notes)
	}

	fmt.Fprintln(w, "Items:")
	for _, line := range quote.Lines {
		fmt.Fprintf(w, "  %dx %s @ %s", line.Quantity, line.Name, formatMoney(line.UnitPrice))
		for _, addOn := range line.AddOns {
			fmt.Fprintf(w, " + %s %s", addOn.Name, formatMoney(addOn.Price))
		}
		fmt.Fprintf(w, "  = %s\n", formatMoney(line.LineTotal))
	}

	fmt.Fprintf(w, "Items total: %s\n", formatMoney(quote.ItemsTotal))
	fmt.Fprintf(w, "Delivery fee: %s\n", formatMoney(quote.DeliveryFee))
	fmt.Fprintf(w, "GST: %s\n", formatMoney(quote.GST))
	fmt.Fprintf(w, "Grand total: %s\n", formatMoney(quote.GrandTotal))
}

func placedLine(order board.Order) string {
	switch {
	case order.Date != "" && order.Time != "":
		return fmt.Sprintf("Placed: %s %s", order.Date, order.Time)
	case order.Date != "":
		return fmt.Sprintf("Placed: %s", order.Date)
	default:
		return ""
	}
}

func formatMoney(v float64) string {
	return fmt.Sprintf("₹%.2f", v)
}

type jsonCard struct {
	ID           string  `json:"id"`
	CustomerName string  `json:"customer_name"`
	Status       string  `json:"status"`
	Items        int     `json:"items"`
	GrandTotal   float64 `json:"grand_total"`
	Date         string  `json:"date,omitempty"`
	Time         string  `json:"time,omitempty"`
}

type jsonLine struct {
	Name      string        `json:"name"`
	Quantity  int           `json:"quantity"`
	UnitPrice float64       `json:"unit_price"`
	AddOns    []board.AddOn `json:"add_ons,omitempty"`
	LineTotal float64       `json:"line_total"`
}

type jsonDetail struct {
	ID            string     `json:"id"`
	CustomerName  string     `json:"customer_name"`
	Address       string     `json:"address"`
	Status        string     `json:"status"`
	Lines         []jsonLine `json:"lines"`
	ItemsTotal    float64    `json:"items_total"`
	DeliveryFee   float64    `json:"delivery_fee"`
	GST           float64    `json:"gst"`
	GrandTotal    float64    `json:"grand_total"`
	Date          string     `json:"date,omitempty"`
	Time          string     `json:"time,omitempty"`
	PaymentType   string     `json:"payment_type,omitempty"`
	PaymentStatus string     `json:"payment_status,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}

func writeJSONList(w io.Writer, orders []board.Order) error {
	cards := make([]jsonCard, 0, len(orders))
	for _, order := range orders {
		quote := board.PriceOrder(order)
		cards = append(cards, jsonCard{
			ID:           order.ID,
			CustomerName: order.CustomerName,
			Status:       string(order.Status),
			Items:        len(order.Items),
			GrandTotal:   quote.GrandTotal,
			Date:         order.Date,
			Time:         order.Time,
		})
	}
	return json.NewEncoder(w).Encode(cards)
}

func writeJSONDetail(w io.Writer, order board.Order) error {
	quote := board.PriceOrder(order)

	detail := jsonDetail{
		ID:            order.ID,
		CustomerName:  order.CustomerName,
		Address:       order.Address,
		Status:        string(order.Status),
		ItemsTotal:    quote.ItemsTotal,
		DeliveryFee:   quote.DeliveryFee,
		GST:           quote.GST,
		GrandTotal:    quote.GrandTotal,
		Date:          order.Date,
		Time:          order.Time,
		PaymentType:   order.PaymentType,
		PaymentStatus: order.PaymentStatus,
		Notes:         order.Notes,
	}
	for _, line := range quote.Lines {
		detail.Lines = append(detail.Lines, jsonLine{
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			AddOns:    line.AddOns,
			LineTotal: line.LineTotal,
		})
	}
	return json.NewEncoder(w).Encode(detail)
}
