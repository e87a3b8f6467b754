package board

import "strings"

// Visible derives the subset of orders shown for one tab and search query.
// An order is visible when its status matches the tab and, for a non-empty
// query, the query matches the order id, the customer name, or any item name,
// case-insensitively. Input order is preserved.
func Visible(orders []Order, tab Status, query string) []Order {
	needle := strings.ToLower(strings.TrimSpace(query))

	var visible []Order
	for _, order := range orders {
		if order.Status != tab {
			continue
		}
		if needle != "" && !matchesQuery(order, needle) {
			continue
		}
		visible = append(visible, order)
	}
	return visible
}

func matchesQuery(order Order, needle string) bool {
	if strings.Contains(strings.ToLower(order.ID), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(order.CustomerName), needle) {
		return true
	}
	for _, item := range order.Items {
		if strings.Contains(strings.ToLower(item.Name), needle) {
			return true
		}
	}
	return false
}
