package ordernum

import (
	"regexp"
	"testing"
	"time"
)

var numberPattern = regexp.MustCompile(`^(PO|SO)-\d{8}-\d{4}$`)

func TestNext_Format(t *testing.T) {
	g := New()
	date := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		kind Kind
		want string // prefix through date part
	}{
		{"sales", KindSales, "SO-20260829-"},
		{"purchase", KindPurchase, "PO-20260829-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			num := g.Next(tt.kind, date)
			if !numberPattern.MatchString(num) {
				t.Errorf("number %q does not match pattern", num)
			}
			if num[:len(tt.want)] != tt.want {
				t.Errorf("expected prefix %q, got %q", tt.want, num)
			}
		})
	}
}

func TestFormat_SuffixWrapsToFourDigits(t *testing.T) {
	date := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	if got := Format(KindSales, date, 12345); got != "SO-20260102-2345" {
		t.Errorf("expected SO-20260102-2345, got %s", got)
	}
	if got := Format(KindPurchase, date, 7); got != "PO-20260102-0007" {
		t.Errorf("expected PO-20260102-0007, got %s", got)
	}
}

func TestNext_DistinctWithinSameSecond(t *testing.T) {
	g := New()
	date := time.Now()

	// 10k possible suffixes; a handful of draws colliding every run would
	// indicate a broken random source rather than bad luck.
	const draws = 8
	seen := make(map[string]bool, draws)
	for i := 0; i < draws; i++ {
		seen[g.Next(KindSales, date)] = true
	}
	if len(seen) < 2 {
		t.Errorf("expected distinct numbers within one second, got %d unique of %d", len(seen), draws)
	}
}

func TestMockGenerator_Deterministic(t *testing.T) {
	m := &MockGenerator{}
	date := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	if got := m.Next(KindPurchase, date); got != "PO-20260829-0001" {
		t.Errorf("expected PO-20260829-0001, got %s", got)
	}
}
