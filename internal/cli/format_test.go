package cli

import "testing"

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{4.7, "£4.70"},
		{0, "£0.00"},
		{-1.5, "-£1.50"},
		{1234.567, "£1234.57"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatSigned(t *testing.T) {
	if got := FormatSigned(4.7); got != "+£4.70" {
		t.Errorf("positive: got %q", got)
	}
	if got := FormatSigned(-2); got != "-£2.00" {
		t.Errorf("negative: got %q", got)
	}
}

func TestFormatKwh(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{42.5, "42.5 kWh"},
		{42, "42 kWh"},
		{0.25, "0.25 kWh"},
	}
	for _, tt := range tests {
		if got := FormatKwh(tt.in); got != tt.want {
			t.Errorf("FormatKwh(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1234, "1,234"},
		{1234567, "1,234,567"},
		{-5000, "-5,000"},
	}
	for _, tt := range tests {
		if got := FormatCount(tt.in); got != tt.want {
			t.Errorf("FormatCount(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(0.425); got != "42.5%" {
		t.Errorf("got %q", got)
	}
}
