package board

import "testing"

func TestVisible(t *testing.T) {
	orders := []Order{
		{ID: "ord-1", CustomerName: "John Smith", Status: StatusPending},
		{ID: "ord-2", CustomerName: "Priya Nair", Status: StatusReady,
			Items: []LineItem{{Name: "Smith Special Burger"}}},
		{ID: "ord-3", CustomerName: "Arjun Mehta", Status: StatusPending,
			Items: []LineItem{{Name: "Masala Dosa"}}},
	}

	tests := []struct {
		name  string
		tab   Status
		query string
		want  []string
	}{
		{
			name:  "tabOnly",
			tab:   StatusPending,
			query: "",
			want:  []string{"ord-1", "ord-3"},
		},
		{
			name:  "caseInsensitiveCustomerName",
			tab:   StatusPending,
			query: "smith",
			want:  []string{"ord-1"},
		},
		{
			name:  "queryMatchOutsideTabIsStillHidden",
			tab:   StatusPending,
			query: "burger",
			want:  nil,
		},
		{
			name:  "itemNameMatch",
			tab:   StatusPending,
			query: "dosa",
			want:  []string{"ord-3"},
		},
		{
			name:  "idMatch",
			tab:   StatusPending,
			query: "ORD-1",
			want:  []string{"ord-1"},
		},
		{
			name:  "readyTab",
			tab:   StatusReady,
			query: "",
			want:  []string{"ord-2"},
		},
		{
			name:  "noMatches",
			tab:   StatusPending,
			query: "pizza",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Visible(orders, tt.tab, tt.query)
			if len(got) != len(tt.want) {
				t.Fatalf("Visible() = %+v, want ids %v", got, tt.want)
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("Visible()[%d].ID = %q, want %q", i, got[i].ID, id)
				}
			}
		})
	}
}
