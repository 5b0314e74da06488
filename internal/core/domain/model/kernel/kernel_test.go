package kernel_test

import (
	"testing"

	"deliveryops/internal/core/domain/model/kernel"
	"deliveryops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderID(t *testing.T) {
	t.Run("valid id", func(t *testing.T) {
		id, err := kernel.NewOrderID("ORD-1001")
		require.NoError(t, err)
		require.NoError(t, id.Validate())
		assert.Equal(t, "ORD-1001", id.String())
	})

	t.Run("whitespace is trimmed", func(t *testing.T) {
		id, err := kernel.NewOrderID("  ORD-1001  ")
		require.NoError(t, err)
		assert.Equal(t, "ORD-1001", id.String())
	})

	t.Run("empty id is rejected", func(t *testing.T) {
		_, err := kernel.NewOrderID("   ")
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var id kernel.OrderID
		require.Error(t, id.Validate())
	})

	t.Run("IsEqual compares by value", func(t *testing.T) {
		a, _ := kernel.NewOrderID("A1")
		b, _ := kernel.NewOrderID("A1")
		c, _ := kernel.NewOrderID("A2")
		assert.True(t, a.IsEqual(b))
		assert.False(t, a.IsEqual(c))
	})
}

func TestNewEmail(t *testing.T) {
	t.Run("valid address", func(t *testing.T) {
		email, err := kernel.NewEmail("Jane@Example.COM")
		require.NoError(t, err)
		require.NoError(t, email.Validate())
		assert.Equal(t, "jane@example.com", email.String())
	})

	t.Run("empty address is rejected", func(t *testing.T) {
		_, err := kernel.NewEmail("")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("address without at-sign is rejected", func(t *testing.T) {
		_, err := kernel.NewEmail("not-an-address")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var email kernel.Email
		require.Error(t, email.Validate())
	})
}
