// Package ordernum generates order numbers for purchase and sales orders.
// Pattern: PREFIX-YYYYMMDD-NNNN (e.g. SO-20260829-0481), where NNNN is a
// random 4-digit suffix. The random suffix keeps numbers distinct with high
// probability when several orders are created in the same second.
package ordernum

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"
)

// Kind identifies the order type being numbered.
type Kind string

const (
	// KindPurchase prefixes purchase order numbers with "PO".
	KindPurchase Kind = "PO"
	// KindSales prefixes sales order numbers with "SO".
	KindSales Kind = "SO"
)

// Generator produces order numbers.
// This is the domain contract; services depend on it so tests can supply
// deterministic numbers.
type Generator interface {
	// Next returns a new order number for the given kind and business date.
	Next(kind Kind, date time.Time) string
}

// RandomGenerator is the production Generator backed by crypto/rand.
type RandomGenerator struct{}

// New creates a RandomGenerator.
func New() *RandomGenerator {
	return &RandomGenerator{}
}

// Next implements Generator.
func (g *RandomGenerator) Next(kind Kind, date time.Time) string {
	return Format(kind, date, randomSuffix())
}

// Format builds an order number from its parts. The suffix is reduced
// modulo 10000 so the result always has exactly four digits.
func Format(kind Kind, date time.Time, suffix uint16) string {
	return fmt.Sprintf("%s-%s-%04d", kind, date.Format("20060102"), suffix%10000)
}

// randomSuffix draws 2 bytes from crypto/rand. A failed read falls back to
// the current nanosecond clock, which still varies between calls.
func randomSuffix() uint16 {
	var buf [2]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return uint16(time.Now().UnixNano())
	}
	return binary.BigEndian.Uint16(buf[:])
}

// MockGenerator is a test implementation of Generator.
type MockGenerator struct {
	NextFunc func(kind Kind, date time.Time) string
}

// Next implements Generator.
func (m *MockGenerator) Next(kind Kind, date time.Time) string {
	if m.NextFunc != nil {
		return m.NextFunc(kind, date)
	}
	return Format(kind, date, 1)
}

// Ensure compile-time interface compliance.
var (
	_ Generator = (*RandomGenerator)(nil)
	_ Generator = (*MockGenerator)(nil)
)
