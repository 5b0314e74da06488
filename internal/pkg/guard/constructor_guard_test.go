package guard_test

import (
	"errors"
	"testing"

	"deliveryops/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed guard passes validation", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero value guard returns the supplied error", func(t *testing.T) {
		var g guard.ConstructorGuard
		notConstructed := errors.New("command must be created via its constructor")

		err := g.Validate(notConstructed)

		require.Error(t, err)
		assert.Equal(t, notConstructed, err)
	})

	t.Run("zero value guard falls back to the default error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})

	t.Run("guard keeps its state when passed by value", func(t *testing.T) {
		g := guard.NewConstructorGuard()
		copied := g

		require.NoError(t, copied.Validate(errors.New("not constructed")))
	})
}

// The guard is embedded in domain objects so that their Validate methods can
// reject zero-value instances that bypassed the constructor.
func TestConstructorGuard_EmbeddedInDomainObject(t *testing.T) {
	errReceiptNotConstructed := errors.New("DeliveryReceipt must be created via newDeliveryReceipt")

	type DeliveryReceipt struct {
		orderID     string
		deliveredBy string
		guard       guard.ConstructorGuard
	}

	newDeliveryReceipt := func(orderID, deliveredBy string) (DeliveryReceipt, error) {
		if orderID == "" {
			return DeliveryReceipt{}, errors.New("order id is required")
		}
		return DeliveryReceipt{
			orderID:     orderID,
			deliveredBy: deliveredBy,
			guard:       guard.NewConstructorGuard(),
		}, nil
	}

	t.Run("constructed receipt validates", func(t *testing.T) {
		receipt, err := newDeliveryReceipt("ORD-1001", "driver-7")

		require.NoError(t, err)
		require.NoError(t, receipt.guard.Validate(errReceiptNotConstructed))
		assert.Equal(t, "ORD-1001", receipt.orderID)
	})

	t.Run("zero value receipt is rejected", func(t *testing.T) {
		var receipt DeliveryReceipt

		err := receipt.guard.Validate(errReceiptNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errReceiptNotConstructed, err)
	})

	t.Run("constructor rejects missing order id", func(t *testing.T) {
		_, err := newDeliveryReceipt("", "driver-7")
		require.Error(t, err)
	})
}
