//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ordermesh/inventory-api/internal/domains/orders/domain"
	"github.com/ordermesh/inventory-api/internal/domains/orders/ports"
	"github.com/ordermesh/inventory-api/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("inventory_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func createOrder(t *testing.T, repo *Repository, customerID int64) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(customerID, time.Now().UTC(), []*domain.OrderItem{
		{ProductID: 1, Quantity: 2, Price: decimal.RequireFromString("10.00")},
		{ProductID: 2, Quantity: 1, Price: decimal.RequireFromString("25.00")},
	})
	require.NoError(t, err)
	created, err := repo.Create(context.Background(), order)
	require.NoError(t, err)
	return created
}

func TestOrdersRepository_CreateAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	created := createOrder(t, repo, 7)
	assert.NotZero(t, created.ID)
	assert.Len(t, created.Items, 2)
	assert.True(t, created.TotalAmount.Equal(decimal.RequireFromString("45.00")))

	retrieved, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), retrieved.CustomerID)
	assert.Len(t, retrieved.Items, 2)
}

func TestOrdersRepository_ListByCustomer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	createOrder(t, repo, 7)
	createOrder(t, repo, 7)
	createOrder(t, repo, 9)

	mine, err := repo.ListByCustomer(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestOrdersRepository_ItemLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	created := createOrder(t, repo, 7)
	itemID := created.Items[0].ID

	item, err := repo.GetItem(ctx, itemID)
	require.NoError(t, err)
	item.Quantity = 5
	saved, err := repo.SaveItem(ctx, item)
	require.NoError(t, err)
	assert.Equal(t, 5, saved.Quantity)

	require.NoError(t, repo.MarkItemDeleted(ctx, itemID))
	_, err = repo.GetItem(ctx, itemID)
	assert.ErrorIs(t, err, ports.ErrItemNotFound)

	// Deleted items drop out of the loaded aggregate.
	retrieved, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, retrieved.Items, 1)
}

func TestOrdersRepository_UpdateTotalAndMarkDeleted(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	created := createOrder(t, repo, 7)

	require.NoError(t, repo.UpdateTotal(ctx, created.ID, decimal.RequireFromString("99.99")))
	retrieved, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, retrieved.TotalAmount.Equal(decimal.RequireFromString("99.99")))

	require.NoError(t, repo.MarkDeleted(ctx, created.ID))
	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ports.ErrOrderNotFound)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, repo.MarkDeleted(ctx, created.ID), ports.ErrOrderNotFound)
}

func TestOrdersRepository_AddItem(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	created := createOrder(t, repo, 7)

	added, err := repo.AddItem(ctx, created.ID, &domain.OrderItem{
		ProductID: 3,
		Quantity:  4,
		Price:     decimal.RequireFromString("2.50"),
	})
	require.NoError(t, err)
	assert.NotZero(t, added.ID)
	assert.Equal(t, created.ID, added.OrderID)
	assert.Equal(t, domain.StateActive, added.State)

	reloaded, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, reloaded.Items, 3)

	_, err = repo.AddItem(ctx, created.ID+1000, &domain.OrderItem{ProductID: 3, Quantity: 1, Price: decimal.RequireFromString("2.50")})
	assert.ErrorIs(t, err, ports.ErrOrderNotFound)
}
