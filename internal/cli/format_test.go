package cli

import (
	"testing"
	"time"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{4.5, "$4.50"},
		{99.99, "$99.99"},
		{100, "$100"},
		{999.4, "$999"},
		{1000, "$1,000"},
		{45000.7, "$45,001"},
		{1234567, "$1,234,567"},
		{-250, "-$250"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4500, "-4,500"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"active", "Active"},
		{"on_hold", "On Hold"},
		{"field_employee", "Field Employee"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StatusLabel(tt.in); got != tt.want {
			t.Errorf("StatusLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatQuantity(t *testing.T) {
	if got := FormatQuantity(12); got != "12" {
		t.Errorf("FormatQuantity(12) = %q", got)
	}
	if got := FormatQuantity(2.5); got != "2.50" {
		t.Errorf("FormatQuantity(2.5) = %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(time.Time{}); got != "-" {
		t.Errorf("zero date = %q, want -", got)
	}
	d := time.Date(2026, 4, 7, 0, 0, 0, 0, time.Local)
	if got := FormatDate(d); got != "2026-04-07" {
		t.Errorf("FormatDate = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("construction", 8); got != "constru…" {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("ok", 8); got != "ok" {
		t.Errorf("Truncate short = %q", got)
	}
}
