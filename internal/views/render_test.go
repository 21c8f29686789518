package views

import (
	"strings"
	"testing"
)

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		name   string
		amount *float64
		want   string
	}{
		{name: "missing", amount: nil, want: "N/A"},
		{name: "simple", amount: ptr(49.99), want: "$49.99"},
		{name: "grouped", amount: ptr(1234.5), want: "$1,234.50"},
		{name: "zero", amount: ptr(0), want: "$0.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatCurrency(tc.amount); got != tc.want {
				t.Fatalf("FormatCurrency() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRenderHomeEmptyState(t *testing.T) {
	out := RenderHome(HomeData{Greeting: "Jane"})
	if !strings.Contains(out, "Hello, Jane") {
		t.Fatalf("expected greeting, got %q", out)
	}
	if !strings.Contains(out, "no properties yet") || !strings.Contains(out, "nothing scheduled") {
		t.Fatalf("expected empty-state hints, got %q", out)
	}
}

func TestRenderDetailsSkipsEmptyCategories(t *testing.T) {
	out := RenderDetails(DetailsData{
		Name:    "Main Residence",
		Address: "123 Main St",
		Counts: []CategoryCountData{
			{Icon: "*", Name: "Plumber", Count: 2},
			{Icon: "*", Name: "Carpenter", Count: 0},
		},
		Empty: true,
	})
	if !strings.Contains(out, "Plumber") || strings.Contains(out, "Carpenter") {
		t.Fatalf("unexpected category counts: %q", out)
	}
	if !strings.Contains(out, "no tasks for this property") {
		t.Fatalf("expected empty table hint")
	}
}

func TestRenderAppStatusAndSidePane(t *testing.T) {
	out := RenderApp(AppData{
		Header:     "Flowo | home",
		MainPane:   "main",
		SidePane:   "help",
		StatusLine: "status: saved",
		Footer:     "keys",
	})
	for _, want := range []string{"Flowo | home", "main", "help", "status: saved", "keys"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output", want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Water Filter Upgrade", 8); got != "Water F~" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("short", 8); got != "short" {
		t.Fatalf("truncate = %q", got)
	}
}

func ptr(v float64) *float64 { return &v }
