package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoneyFromCents(t *testing.T) {
	t.Run("valid_amount", func(t *testing.T) {
		m, err := kernel.NewMoneyFromCents(12999)

		require.NoError(t, err)
		assert.Equal(t, int64(12999), m.Cents())
		assert.Equal(t, "129.99", m.String())
	})

	t.Run("zero_is_valid", func(t *testing.T) {
		m, err := kernel.NewMoneyFromCents(0)

		require.NoError(t, err)
		assert.Equal(t, "0.00", m.String())
	})

	t.Run("negative_is_rejected", func(t *testing.T) {
		_, err := kernel.NewMoneyFromCents(-1)

		require.Error(t, err)
		assert.Equal(t, kernel.ErrMoneyIsNegative, err)
	})
}

func TestMoney_IsEqual(t *testing.T) {
	a, _ := kernel.NewMoneyFromCents(500)
	b, _ := kernel.NewMoneyFromCents(500)
	c, _ := kernel.NewMoneyFromCents(501)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}
