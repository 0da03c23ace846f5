package kernel_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should create money from non-negative decimal", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.NewFromFloat(129.90))

		require.NoError(t, err)
		assert.Equal(t, "129.90", m.String())
	})

	t.Run("should accept zero", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.Zero)

		require.NoError(t, err)
		assert.True(t, m.IsZero())
	})

	t.Run("should fail with negative amount", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.NewFromInt(-5))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "amount is invalid")
		assert.Contains(t, err.Error(), "-5 is negative")
	})
}

func TestNewMoneyFromString(t *testing.T) {
	t.Run("should parse decimal string", func(t *testing.T) {
		m, err := kernel.NewMoneyFromString("15.50")

		require.NoError(t, err)
		assert.Equal(t, "15.50", m.String())
	})

	t.Run("should fail with malformed string", func(t *testing.T) {
		_, err := kernel.NewMoneyFromString("abc")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "amount is invalid")
	})

	t.Run("should fail with negative string", func(t *testing.T) {
		_, err := kernel.NewMoneyFromString("-1.00")

		require.Error(t, err)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	t.Run("should add amounts", func(t *testing.T) {
		a, _ := kernel.NewMoneyFromString("10.25")
		b, _ := kernel.NewMoneyFromString("4.75")

		assert.Equal(t, "15.00", a.Add(b).String())
	})

	t.Run("should multiply by quantity", func(t *testing.T) {
		price, _ := kernel.NewMoneyFromString("19.99")

		assert.Equal(t, "59.97", price.MulInt(3).String())
	})

	t.Run("should compare amounts", func(t *testing.T) {
		a, _ := kernel.NewMoneyFromString("5.00")
		b, _ := kernel.NewMoneyFromString("5.00")
		c, _ := kernel.NewMoneyFromString("7.50")

		assert.True(t, a.IsEqual(b))
		assert.True(t, c.GreaterThan(a))
		assert.False(t, a.GreaterThan(c))
		assert.True(t, c.IsPositive())
	})
}

func TestMoney_SplitEvenly(t *testing.T) {
	t.Run("should split exactly divisible amount", func(t *testing.T) {
		total, _ := kernel.NewMoneyFromString("30.00")

		shares, err := total.SplitEvenly(2)

		require.NoError(t, err)
		require.Len(t, shares, 2)
		assert.Equal(t, "15.00", shares[0].String())
		assert.Equal(t, "15.00", shares[1].String())
	})

	t.Run("should assign rounding remainder to the first share", func(t *testing.T) {
		total, _ := kernel.NewMoneyFromString("10.00")

		shares, err := total.SplitEvenly(3)

		require.NoError(t, err)
		require.Len(t, shares, 3)
		assert.Equal(t, "3.34", shares[0].String())
		assert.Equal(t, "3.33", shares[1].String())
		assert.Equal(t, "3.33", shares[2].String())

		sum := kernel.ZeroMoney()
		for _, s := range shares {
			sum = sum.Add(s)
		}
		assert.True(t, sum.IsEqual(total))
	})

	t.Run("should split single share to itself", func(t *testing.T) {
		total, _ := kernel.NewMoneyFromString("7.77")

		shares, err := total.SplitEvenly(1)

		require.NoError(t, err)
		require.Len(t, shares, 1)
		assert.True(t, shares[0].IsEqual(total))
	})

	t.Run("should fail with zero shares", func(t *testing.T) {
		total, _ := kernel.NewMoneyFromString("10.00")

		_, err := total.SplitEvenly(0)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "split count is invalid")
	})
}
