package utils

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{
		"2024-01-15",
		"2024-01-15T10:30:00Z",
		"2024-01-15 10:30:00",
		"2024/01/15",
		"01/15/2024",
		" 2024-01-15 ",
	} {
		got, ok := ParseDate(in)
		if !ok || !got.Equal(want) {
			t.Fatalf("ParseDate(%q) = (%v, %v); want (%v, true)", in, got, ok, want)
		}
	}

	for _, in := range []string{"", "yesterday", "2024-13-45"} {
		if _, ok := ParseDate(in); ok {
			t.Fatalf("ParseDate(%q) unexpectedly succeeded", in)
		}
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2024-02-29", FormatDate(time.Date(2024, 2, 29, 18, 0, 0, 0, time.UTC)))
}

func TestRoundInt(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{8.68, 9},
		{2.5, 2},
		{3.5, 4},
		{-0.4, 0},
		{math.NaN(), 0},
	}
	for _, c := range cases {
		if got := RoundInt(c.in); got != c.want {
			t.Fatalf("RoundInt(%v) = %d; want %d", c.in, got, c.want)
		}
	}
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 3.14, Round2(3.14159))
	assert.Equal(t, 0.6, RoundTo(0.6000000001, 1))
	assert.Equal(t, 2.0, RoundTo(2.04, 1))
	assert.True(t, math.IsInf(RoundTo(math.Inf(1), 1), 1))
}
