package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestFormatUSD(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"100", "US$ 100"},
		{"100000", "US$ 100,000"},
		{"1234.5", "US$ 1,234.5"},
		{"45123.456", "US$ 45,123.456"},
		{"0", "US$ 0"},
		{"-1234567", "US$ -1,234,567"},
		{"999", "US$ 999"},
		{"1000", "US$ 1,000"},
	}
	for _, c := range cases {
		if got := FormatUSD(dec(c.in)); got != c.want {
			t.Errorf("FormatUSD(%s) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatUSDFixed(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"45123.456", "US$ 45123.46"},
		{"100", "US$ 100.00"},
		{"0.005", "US$ 0.01"},
	}
	for _, c := range cases {
		if got := FormatUSDFixed(dec(c.in)); got != c.want {
			t.Errorf("FormatUSDFixed(%s) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatBTC(t *testing.T) {
	if got := FormatBTC(dec("1")); got != "BTC 1.000" {
		t.Errorf("FormatBTC(1) = %q", got)
	}
	if got := FormatBTC(dec("0.1235")); got != "BTC 0.124" {
		t.Errorf("FormatBTC(0.1235) = %q", got)
	}
	if got := FormatBTCSuffix(dec("1")); got != "1.000 BTC" {
		t.Errorf("FormatBTCSuffix(1) = %q", got)
	}
}

func TestGroupThousands(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1", "1"},
		{"12", "12"},
		{"123", "123"},
		{"1234", "1,234"},
		{"12345", "12,345"},
		{"123456", "123,456"},
		{"1234567", "1,234,567"},
		{"1234.99", "1,234.99"},
		{"-1234", "-1,234"},
	}
	for _, c := range cases {
		if got := groupThousands(c.in); got != c.want {
			t.Errorf("groupThousands(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
