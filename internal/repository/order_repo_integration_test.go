//go:build integration
// +build integration

package repository

import (
	"errors"
	"testing"

	"github.com/adyen/swaglabs/internal/models"
	"github.com/adyen/swaglabs/internal/repository/testutil"
)

func catalogItems(t *testing.T, ids ...int) []models.Item {
	t.Helper()

	catalog := models.DefaultCatalog()
	items := make([]models.Item, 0, len(ids))
	for _, id := range ids {
		item, ok := catalog.ByID(id)
		if !ok {
			t.Fatalf("Unknown catalog id %d", id)
		}
		items = append(items, item)
	}
	return items
}

func buildOrder(t *testing.T, ids ...int) *models.Order {
	t.Helper()

	order, err := models.NewOrder("standard_user", models.Shopper{
		FirstName:  "FirstName",
		LastName:   "LastName",
		PostalCode: "123456",
	}, catalogItems(t, ids...))
	if err != nil {
		t.Fatalf("Failed to build order: %v", err)
	}
	return order
}

func TestOrderRepository_CreateOrder_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewOrderRepositoryWithDB(testDB.DB)

	tests := []struct {
		name  string
		order *models.Order
	}{
		{
			name:  "single item order",
			order: buildOrder(t, 4),
		},
		{
			name:  "multi item order",
			order: buildOrder(t, 4, 0, 3),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := repo.CreateOrder(tt.order); err != nil {
				t.Fatalf("CreateOrder() error = %v", err)
			}

			// Verify timestamps were set
			if tt.order.CreatedAt.IsZero() {
				t.Error("CreatedAt should be set")
			}

			// Verify order can be retrieved with its lines in order
			retrieved, err := repo.GetOrderByReference(tt.order.Reference)
			if err != nil {
				t.Fatalf("Failed to retrieve created order: %v", err)
			}

			if retrieved.ID != tt.order.ID {
				t.Errorf("ID mismatch: got %v, want %v", retrieved.ID, tt.order.ID)
			}
			if retrieved.Total != tt.order.Total || retrieved.Tax != tt.order.Tax {
				t.Errorf("Amount mismatch: got %d/%d, want %d/%d",
					retrieved.Total, retrieved.Tax, tt.order.Total, tt.order.Tax)
			}
			if retrieved.Shopper != tt.order.Shopper {
				t.Errorf("Shopper mismatch: got %+v, want %+v", retrieved.Shopper, tt.order.Shopper)
			}
			if len(retrieved.Lines) != len(tt.order.Lines) {
				t.Fatalf("Lines mismatch: got %d, want %d", len(retrieved.Lines), len(tt.order.Lines))
			}
			for i := range retrieved.Lines {
				if retrieved.Lines[i] != tt.order.Lines[i] {
					t.Errorf("Line %d mismatch: got %+v, want %+v", i, retrieved.Lines[i], tt.order.Lines[i])
				}
			}
		})
	}
}

func TestOrderRepository_CreateOrder_DuplicateReference_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewOrderRepositoryWithDB(testDB.DB)

	order1 := buildOrder(t, 4)
	if err := repo.CreateOrder(order1); err != nil {
		t.Fatalf("Failed to create first order: %v", err)
	}

	order2 := buildOrder(t, 0)
	order2.Reference = order1.Reference

	if err := repo.CreateOrder(order2); err == nil {
		t.Error("Expected error when creating order with duplicate reference, got nil")
	}

	// The failed transaction must not leave orphan lines behind
	var lines int
	if err := testDB.DB.QueryRow("SELECT COUNT(*) FROM order_items WHERE order_id = $1", order2.ID).Scan(&lines); err != nil {
		t.Fatalf("Failed to count lines: %v", err)
	}
	if lines != 0 {
		t.Errorf("Expected no lines for rejected order, got %d", lines)
	}
}

func TestOrderRepository_GetOrderByReference_NotFound_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewOrderRepositoryWithDB(testDB.DB)

	_, err := repo.GetOrderByReference("SWAG-NONE")
	if !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("Expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderRepository_UpdateOrderStatus_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewOrderRepositoryWithDB(testDB.DB)

	order := buildOrder(t, 2)
	if err := repo.CreateOrder(order); err != nil {
		t.Fatalf("Failed to create order: %v", err)
	}

	tests := []struct {
		name      string
		reference string
		status    models.OrderStatus
		wantErr   error
	}{
		{
			name:      "update to completed",
			reference: order.Reference,
			status:    models.OrderStatusCompleted,
		},
		{
			name:      "update non-existent order",
			reference: "SWAG-NONE",
			status:    models.OrderStatusCompleted,
			wantErr:   ErrOrderNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.UpdateOrderStatus(tt.reference, tt.status)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("UpdateOrderStatus() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("UpdateOrderStatus() error = %v", err)
			}

			retrieved, err := repo.GetOrderByReference(tt.reference)
			if err != nil {
				t.Fatalf("Failed to retrieve updated order: %v", err)
			}
			if retrieved.Status != tt.status {
				t.Errorf("Status mismatch: got %v, want %v", retrieved.Status, tt.status)
			}
		})
	}
}

func TestOrderRepository_ConcurrentCreates_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewOrderRepositoryWithDB(testDB.DB)

	const numOrders = 10
	errChan := make(chan error, numOrders)

	for i := 0; i < numOrders; i++ {
		order := buildOrder(t, i%6)
		go func() {
			errChan <- repo.CreateOrder(order)
		}()
	}

	for i := 0; i < numOrders; i++ {
		if err := <-errChan; err != nil {
			t.Errorf("Concurrent create failed: %v", err)
		}
	}
}

func TestOrderRepository_SchemaIsolation_Integration(t *testing.T) {
	testDB1 := testutil.SetupTestDatabase(t)
	testDB2 := testutil.SetupTestDatabase(t)

	repo1 := NewOrderRepositoryWithDB(testDB1.DB)
	repo2 := NewOrderRepositoryWithDB(testDB2.DB)

	order := buildOrder(t, 1)
	if err := repo1.CreateOrder(order); err != nil {
		t.Fatalf("Failed to create order in first database: %v", err)
	}

	if _, err := repo1.GetOrderByReference(order.Reference); err != nil {
		t.Errorf("Order should exist in first database: %v", err)
	}
	if _, err := repo2.GetOrderByReference(order.Reference); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("Order should not exist in second database, got %v", err)
	}
}
