package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromInt(1000000), VND)
		require.NoError(t, err)
		assert.Equal(t, VND, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(1000000)))
	})

	t.Run("returns error for empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(100), "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "currency cannot be empty")
	})
}

func TestNewMoneyVND(t *testing.T) {
	m := NewMoneyVND(decimal.NewFromInt(50000))
	assert.Equal(t, VND, m.Currency())
	assert.True(t, m.Amount().Equal(decimal.NewFromInt(50000)))
}

func TestNewMoneyVNDFromString(t *testing.T) {
	t.Run("valid string", func(t *testing.T) {
		m, err := NewMoneyVNDFromString("120000000")
		require.NoError(t, err)
		assert.Equal(t, VND, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(120000000)))
	})

	t.Run("invalid string", func(t *testing.T) {
		_, err := NewMoneyVNDFromString("not-a-number")
		assert.Error(t, err)
	})
}

func TestZeroVND(t *testing.T) {
	m := ZeroVND()
	assert.True(t, m.IsZero())
	assert.Equal(t, VND, m.Currency())
}

func TestMoneyAdd(t *testing.T) {
	t.Run("adds same currency", func(t *testing.T) {
		m1 := NewMoneyVND(decimal.NewFromInt(2000000))
		m2 := NewMoneyVND(decimal.NewFromInt(1500000))
		result, err := m1.Add(m2)
		require.NoError(t, err)
		assert.True(t, result.Amount().Equal(decimal.NewFromInt(3500000)))
	})

	t.Run("fails for different currencies", func(t *testing.T) {
		m1, _ := NewMoney(decimal.NewFromInt(100), VND)
		m2, _ := NewMoney(decimal.NewFromInt(50), USD)
		_, err := m1.Add(m2)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "different currencies")
	})
}

func TestMoneySubtract(t *testing.T) {
	t.Run("subtracts same currency", func(t *testing.T) {
		m1 := NewMoneyVND(decimal.NewFromInt(2000000))
		m2 := NewMoneyVND(decimal.NewFromInt(500000))
		result, err := m1.Subtract(m2)
		require.NoError(t, err)
		assert.True(t, result.Amount().Equal(decimal.NewFromInt(1500000)))
	})

	t.Run("fails for different currencies", func(t *testing.T) {
		m1, _ := NewMoney(decimal.NewFromInt(100), VND)
		m2, _ := NewMoney(decimal.NewFromInt(50), EUR)
		_, err := m1.Subtract(m2)
		assert.Error(t, err)
	})
}

func TestMoneySubtractFloored(t *testing.T) {
	t.Run("returns difference when positive", func(t *testing.T) {
		m1 := NewMoneyVND(decimal.NewFromInt(120000000))
		m2 := NewMoneyVND(decimal.NewFromInt(2000000))
		result, err := m1.SubtractFloored(m2)
		require.NoError(t, err)
		assert.True(t, result.Amount().Equal(decimal.NewFromInt(118000000)))
	})

	t.Run("floors at zero when subtrahend exceeds minuend", func(t *testing.T) {
		m1 := NewMoneyVND(decimal.NewFromInt(1000))
		m2 := NewMoneyVND(decimal.NewFromInt(5000))
		result, err := m1.SubtractFloored(m2)
		require.NoError(t, err)
		assert.True(t, result.IsZero())
		assert.False(t, result.IsNegative())
	})
}

func TestMoneyDivide(t *testing.T) {
	t.Run("divides by integer", func(t *testing.T) {
		m := NewMoneyVND(decimal.NewFromInt(120000000))
		result, err := m.DivideByInt(60)
		require.NoError(t, err)
		assert.True(t, result.Amount().Equal(decimal.NewFromInt(2000000)))
	})

	t.Run("fails on zero divisor", func(t *testing.T) {
		m := NewMoneyVND(decimal.NewFromInt(100))
		_, err := m.Divide(decimal.Zero)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "divide by zero")
	})
}

func TestMoneyEquals(t *testing.T) {
	m1 := NewMoneyVND(decimal.NewFromInt(100))
	m2 := NewMoneyVND(decimal.NewFromInt(100))
	m3 := NewMoneyVND(decimal.NewFromInt(200))
	m4, _ := NewMoney(decimal.NewFromInt(100), USD)

	assert.True(t, m1.Equals(m2))
	assert.False(t, m1.Equals(m3))
	assert.False(t, m1.Equals(m4))
}

func TestMoneyGreaterThan(t *testing.T) {
	m1 := NewMoneyVND(decimal.NewFromInt(200))
	m2 := NewMoneyVND(decimal.NewFromInt(100))

	gt, err := m1.GreaterThan(m2)
	require.NoError(t, err)
	assert.True(t, gt)

	m3, _ := NewMoney(decimal.NewFromInt(100), USD)
	_, err = m1.GreaterThan(m3)
	assert.Error(t, err)
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	m := NewMoneyVND(decimal.NewFromInt(2000000))

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"currency":"VND"`)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoneyScan(t *testing.T) {
	t.Run("scans string value with default currency", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan("2000000"))
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(2000000)))
		assert.Equal(t, DefaultCurrency, m.Currency())
	})

	t.Run("scans nil as zero", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan(nil))
		assert.True(t, m.IsZero())
	})

	t.Run("rejects unsupported type", func(t *testing.T) {
		var m Money
		assert.Error(t, m.Scan(42))
	})
}
