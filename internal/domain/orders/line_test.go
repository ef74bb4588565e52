package orders

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockyard/internal/core/id"
)

func TestNewLine(t *testing.T) {
	productID := id.New()
	line := NewLine(1, productID, 3, decimal.RequireFromString("10.50"))

	assert.Equal(t, 1, line.LineNo)
	assert.Equal(t, productID, line.ProductID)
	assert.True(t, line.Amount.Equal(decimal.RequireFromString("31.50")), "got %s", line.Amount)
}

func TestValidateLines(t *testing.T) {
	valid := NewLine(1, id.New(), 1, decimal.NewFromInt(1))

	t.Run("ok", func(t *testing.T) {
		require.NoError(t, ValidateLines([]Line{valid}))
	})

	t.Run("empty", func(t *testing.T) {
		require.Error(t, ValidateLines(nil))
	})

	t.Run("missing product", func(t *testing.T) {
		l := valid
		l.ProductID = id.Nil
		require.Error(t, ValidateLines([]Line{l}))
	})

	t.Run("zero quantity", func(t *testing.T) {
		l := valid
		l.Quantity = 0
		require.Error(t, ValidateLines([]Line{l}))
	})

	t.Run("negative price", func(t *testing.T) {
		l := valid
		l.UnitPrice = decimal.NewFromInt(-1)
		require.Error(t, ValidateLines([]Line{l}))
	})

	t.Run("zero price allowed", func(t *testing.T) {
		l := NewLine(1, id.New(), 5, decimal.Zero)
		require.NoError(t, ValidateLines([]Line{l}))
		assert.True(t, l.Amount.IsZero())
	})
}

func TestTotal(t *testing.T) {
	lines := []Line{
		NewLine(1, id.New(), 2, decimal.RequireFromString("1.25")),
		NewLine(2, id.New(), 10, decimal.RequireFromString("0.10")),
	}
	assert.True(t, Total(lines).Equal(decimal.RequireFromString("3.50")), "got %s", Total(lines))
	assert.True(t, Total(nil).IsZero())
}
