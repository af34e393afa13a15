package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product successfully", func(t *testing.T) {
		product, err := NewProduct("cm", "Cow Milk", decimal.NewFromInt(75), "liter", decimal.Zero)

		require.NoError(t, err)
		assert.Equal(t, "CM", product.Code)
		assert.Equal(t, "Cow Milk", product.Name)
		assert.Equal(t, "liter", product.UnitOfMeasure)
		assert.True(t, product.GSTInclusive)
		assert.False(t, product.SubscriptionEligible)
		assert.Equal(t, ProductStatusActive, product.Status)
		assert.Len(t, product.GetDomainEvents(), 1)
	})

	t.Run("fails with empty code", func(t *testing.T) {
		_, err := NewProduct("", "Cow Milk", decimal.NewFromInt(75), "liter", decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("fails with invalid code characters", func(t *testing.T) {
		_, err := NewProduct("CM@1", "Cow Milk", decimal.NewFromInt(75), "liter", decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("fails with negative price", func(t *testing.T) {
		_, err := NewProduct("CM", "Cow Milk", decimal.NewFromInt(-1), "liter", decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("fails with invalid gst rate", func(t *testing.T) {
		_, err := NewProduct("GH", "Ghee", decimal.NewFromInt(800), "kg", decimal.NewFromInt(101))
		assert.Error(t, err)
	})
}

func TestProduct_SetPrice(t *testing.T) {
	product, err := NewProduct("BM", "Buffalo Milk", decimal.NewFromInt(80), "liter", decimal.Zero)
	require.NoError(t, err)
	product.ClearDomainEvents()

	t.Run("price change emits event", func(t *testing.T) {
		require.NoError(t, product.SetPrice(decimal.NewFromInt(85)))
		assert.Equal(t, "85", product.CurrentPrice.String())
		assert.Len(t, product.GetDomainEvents(), 1)
	})

	t.Run("same price emits no event", func(t *testing.T) {
		product.ClearDomainEvents()
		require.NoError(t, product.SetPrice(decimal.NewFromInt(85)))
		assert.Empty(t, product.GetDomainEvents())
	})

	t.Run("negative price rejected", func(t *testing.T) {
		assert.Error(t, product.SetPrice(decimal.NewFromInt(-5)))
	})
}

func TestProduct_SetGST(t *testing.T) {
	product, err := NewProduct("GH", "Ghee", decimal.NewFromInt(800), "kg", decimal.Zero)
	require.NoError(t, err)

	require.NoError(t, product.SetGST(decimal.NewFromInt(18), false))
	assert.Equal(t, "18", product.GSTRate.String())
	assert.False(t, product.GSTInclusive)

	assert.Error(t, product.SetGST(decimal.NewFromInt(-1), true))
}

func TestProduct_StatusTransitions(t *testing.T) {
	product, err := NewProduct("PN", "Paneer", decimal.NewFromInt(350), "kg", decimal.NewFromInt(5))
	require.NoError(t, err)

	assert.Error(t, product.Activate())

	require.NoError(t, product.Deactivate())
	assert.False(t, product.IsActive())

	require.NoError(t, product.Activate())
	assert.True(t, product.IsActive())
}
