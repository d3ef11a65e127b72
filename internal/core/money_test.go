package core

import (
	"errors"
	"testing"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"0", 0, true},
		{"-1", -100, true},
		{"-0.5", -50, true},
		{"0.100", 10, true},
		{"12,3", 1230, true},
		{" 2.50 ", 250, true},
		{"3000.01", 300001, true},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
		{"12a", 0, false},
		{"0.004", 0, false},
		{"1.005", 0, false},
		{"-1.005", 0, false},
		{"12,345", 0, false},
		{"1,234,567", 0, false},
		{"1,234.50", 0, false},
		{"1e3", 0, false},
		{"1E-2", 0, false},
		{"99999999999999999999", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseMoney(tc.in)
		if tc.ok {
			if err != nil || got.Cents != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got.Cents, err)
			}
		} else {
			if !errors.Is(err, ErrInvalidAmount) {
				t.Fatalf("%q expected ErrInvalidAmount, got %d (err=%v)", tc.in, got.Cents, err)
			}
		}
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := Units(50)
	b := MustParseMoney("30")
	if a.Add(b) != Units(80) {
		t.Fatalf("expected 80, got %s", a.Add(b))
	}
	if got := b.Sub(a); !got.IsNegative() || got.Cents != -2000 {
		t.Fatalf("expected -20.00, got %s", got)
	}
}

func TestMoneyString(t *testing.T) {
	cases := map[int64]string{
		0:      "0.00",
		5:      "0.05",
		495000: "4950.00",
		-1:     "-0.01",
	}
	for cents, want := range cases {
		if got := (Money{Cents: cents}).String(); got != want {
			t.Fatalf("%d expected %q, got %q", cents, want, got)
		}
	}
}
