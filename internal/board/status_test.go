package board

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusPreparing, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusReady, false},
		{StatusPending, StatusDispatch, false},
		{StatusPreparing, StatusReady, true},
		{StatusPreparing, StatusRejected, true},
		{StatusPreparing, StatusPending, false},
		{StatusReady, StatusDispatch, true},
		{StatusReady, StatusRejected, false},
		{StatusDispatch, StatusReady, false},
		{StatusRejected, StatusPending, false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
	}{
		{"pending", StatusPending},
		{"Preparing", StatusPreparing},
		{" READY ", StatusReady},
		{"dispatch", StatusDispatch},
		{"rejected", StatusRejected},
		{"", StatusPending},
		{"shipped", StatusPending},
	}

	for _, tt := range tests {
		if got := ParseStatus(tt.in); got != tt.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusPreparing, StatusReady} {
		if s.IsTerminal() {
			t.Errorf("%q should not be terminal", s)
		}
	}
	for _, s := range []Status{StatusDispatch, StatusRejected} {
		if !s.IsTerminal() {
			t.Errorf("%q should be terminal", s)
		}
	}
}

func TestTabsExcludeTerminalStatuses(t *testing.T) {
	for _, tab := range Tabs() {
		if tab.IsTerminal() {
			t.Errorf("terminal status %q must not have a tab", tab)
		}
	}
}
