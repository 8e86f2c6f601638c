package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ordermesh/inventory-api/internal/domains/catalog/domain"
	"github.com/ordermesh/inventory-api/internal/domains/catalog/ports"
)

func seed(t *testing.T, repo *Repository, stock int) int64 {
	t.Helper()
	product, err := domain.NewProduct(0, "Widget", decimal.NewFromInt(10), stock)
	require.NoError(t, err)
	saved, err := repo.Save(context.Background(), product)
	require.NoError(t, err)
	return saved.ID
}

func TestAdjustStock_RefusesToCrossZero(t *testing.T) {
	repo := NewRepository()
	id := seed(t, repo, 3)

	require.NoError(t, repo.AdjustStock(context.Background(), id, -3))
	require.ErrorIs(t, repo.AdjustStock(context.Background(), id, -1), ports.ErrInsufficientStock)
	require.NoError(t, repo.AdjustStock(context.Background(), id, 5))

	product, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, 5, product.QuantityInStock)
}

func TestAdjustStock_UnknownOrDeletedProduct(t *testing.T) {
	repo := NewRepository()
	require.ErrorIs(t, repo.AdjustStock(context.Background(), 99, 1), ports.ErrNotFound)

	id := seed(t, repo, 1)
	require.NoError(t, repo.MarkDeleted(context.Background(), id))
	require.ErrorIs(t, repo.AdjustStock(context.Background(), id, 1), ports.ErrNotFound)
}

// Concurrent decrements must never oversell: with 50 units and 100 callers
// asking for one unit each, exactly 50 succeed.
func TestAdjustStock_ConcurrentDecrements(t *testing.T) {
	repo := NewRepository()
	id := seed(t, repo, 50)

	var sold atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if repo.AdjustStock(context.Background(), id, -1) == nil {
				sold.Add(1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int32(50), sold.Load())
	product, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, 0, product.QuantityInStock)
}
