package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrdersQuery(t *testing.T) {
	companyID := kernel.NewUUID()

	t.Run("defaults", func(t *testing.T) {
		q, err := queries.NewGetOrdersQuery(companyID, order.Unknown, 0)
		require.NoError(t, err)
		assert.NoError(t, q.Validate())
		assert.Equal(t, companyID, q.CompanyID())
		assert.Zero(t, q.Offset())
		assert.Equal(t, 50, q.Limit())
	})

	t.Run("status filter and paging", func(t *testing.T) {
		q, err := queries.NewGetOrdersQuery(companyID, order.Packing, 3)
		require.NoError(t, err)
		assert.Equal(t, order.Packing, q.Status())
		assert.Equal(t, 100, q.Offset())
	})

	t.Run("page size is clamped", func(t *testing.T) {
		q, err := queries.NewGetOrdersQuery(companyID, order.Unknown, 1)
		require.NoError(t, err)
		assert.Equal(t, 200, q.WithPageSize(10_000).Limit())
		assert.Equal(t, 1, q.WithPageSize(-5).Limit())
	})

	t.Run("empty company id", func(t *testing.T) {
		_, err := queries.NewGetOrdersQuery(kernel.UUID{}, order.Unknown, 1)
		require.Error(t, err)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var q queries.GetOrdersQuery
		require.ErrorIs(t, q.Validate(), queries.ErrGetOrdersQueryIsNotConstructed)
	})
}

func TestNewGetOrderLinesQuery(t *testing.T) {
	orderID := kernel.NewUUID()

	q, err := queries.NewGetOrderLinesQuery(orderID)
	require.NoError(t, err)
	assert.NoError(t, q.Validate())
	assert.Equal(t, orderID, q.OrderID())

	_, err = queries.NewGetOrderLinesQuery(kernel.UUID{})
	require.Error(t, err)

	var zero queries.GetOrderLinesQuery
	require.ErrorIs(t, zero.Validate(), queries.ErrGetOrderLinesQueryIsNotConstructed)
}

func TestNewGetPackingEventsQuery(t *testing.T) {
	orderID := kernel.NewUUID()

	q, err := queries.NewGetPackingEventsQuery(orderID)
	require.NoError(t, err)
	assert.NoError(t, q.Validate())
	assert.Equal(t, orderID, q.OrderID())

	_, err = queries.NewGetPackingEventsQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestNewValidateBarcodeInOrderQuery(t *testing.T) {
	orderID := kernel.NewUUID()

	q, err := queries.NewValidateBarcodeInOrderQuery(orderID, " 4600000000017 ")
	require.NoError(t, err)
	assert.NoError(t, q.Validate())
	assert.Equal(t, "4600000000017", q.Barcode())

	_, err = queries.NewValidateBarcodeInOrderQuery(orderID, "   ")
	require.ErrorIs(t, err, queries.ErrBarcodeIsRequired)

	_, err = queries.NewValidateBarcodeInOrderQuery(kernel.UUID{}, "4600000000017")
	require.Error(t, err)
}
