package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateDayFirstBias(t *testing.T) {
	// "10/01/2024" is 10 January, not October 1.
	got, ok := Date("10/01/2024")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC), got)
}

func TestDateFormats(t *testing.T) {
	want := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)

	cases := []string{
		"2024-01-10",
		"2024/01/10",
		"2024.01.10",
		"10-01-2024",
		"10.01.2024",
		"10 January 2024",
		"10 Jan 2024",
		"10-Jan-2024",
		"January 10, 2024",
		"  2024-01-10  ",
	}
	for _, in := range cases {
		got, ok := Date(in)
		assert.True(t, ok, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}
}

func TestDateInvalid(t *testing.T) {
	for _, in := range []string{"", "   ", "not a date", "99/99/9999", "2024-13-40"} {
		_, ok := Date(in)
		assert.False(t, ok, "input %q", in)
	}
}

func TestAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"₹ 1,234.50", 1234.50},
		{"1.234,50", 1234.50},
		{"EUR 1.234.567,89", 1234567.89},
		{"$1,234,567.89", 1234567.89},
		{"1 234,50", 1234.50},
		{"118.03", 118.03},
		{"42", 42},
		{"-50.25", -50.25},
		{"Total: 200", 200},
	}
	for _, tc := range cases {
		got, ok := Amount(tc.in)
		assert.True(t, ok, "input %q", tc.in)
		assert.InDelta(t, tc.want, got, 1e-9, "input %q", tc.in)
	}
}

func TestAmountInvalid(t *testing.T) {
	for _, in := range []string{"", "no digits here", "---", "..."} {
		_, ok := Amount(in)
		assert.False(t, ok, "input %q", in)
	}
}
