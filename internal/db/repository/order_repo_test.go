package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/biteflow/restaurant-service/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderCols = []string{"id", "user_id", "total_amount", "address", "status", "payment_method", "created_at", "updated_at"}

func TestOrderRepository_CreateFromCart(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)
	userID, cartID, orderID := uuid.New(), uuid.New(), uuid.New()
	pizzaID, colaID := uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM carts WHERE user_id = \\$1 FOR UPDATE").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(cartID.String()))
	mock.ExpectQuery(`SELECT ci.menu_item_id, ci.quantity, mi.price`).
		WithArgs(cartID).
		WillReturnRows(sqlmock.NewRows([]string{"menu_item_id", "quantity", "price"}).
			AddRow(pizzaID.String(), 2, 10.0).
			AddRow(colaID.String(), 3, 5.0))
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(userID, 35.0, "1 Queen St", models.OrderStatusPending, models.DefaultPaymentMethod).
		WillReturnRows(sqlmock.NewRows(orderCols).
			AddRow(orderID.String(), userID.String(), 35.0, "1 Queen St", "Pending", models.DefaultPaymentMethod, now, now))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(orderID, 0, pizzaID, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(orderID, 1, colaID, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM cart_items WHERE cart_id").
		WithArgs(cartID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("UPDATE carts SET updated_at").
		WithArgs(sqlmock.AnyArg(), cartID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	order, err := repo.CreateFromCart(context.Background(), userID, "1 Queen St", models.DefaultPaymentMethod)
	require.NoError(t, err)
	assert.Equal(t, orderID, order.ID)
	assert.Equal(t, 35.0, order.TotalAmount)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 2)
	assert.Equal(t, pizzaID, order.Items[0].MenuItemID)
	assert.Equal(t, 3, order.Items[1].Quantity)
}

func TestOrderRepository_CreateFromCart_Failures(t *testing.T) {
	userID, cartID := uuid.New(), uuid.New()

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "no cart",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FOR UPDATE").WithArgs(userID).WillReturnError(sql.ErrNoRows)
			},
			wantErr: ErrEmptyCart,
		},
		{
			name: "cart without lines",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FOR UPDATE").WithArgs(userID).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(cartID.String()))
				mock.ExpectQuery("SELECT ci.menu_item_id").WithArgs(cartID).
					WillReturnRows(sqlmock.NewRows([]string{"menu_item_id", "quantity", "price"}))
			},
			wantErr: ErrEmptyCart,
		},
		{
			name: "menu item deleted since it was added",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FOR UPDATE").WithArgs(userID).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(cartID.String()))
				mock.ExpectQuery("SELECT ci.menu_item_id").WithArgs(cartID).
					WillReturnRows(sqlmock.NewRows([]string{"menu_item_id", "quantity", "price"}).
						AddRow(uuid.New().String(), 1, nil))
			},
			wantErr: ErrNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			mock.ExpectBegin()
			testCase.setup(mock)
			mock.ExpectRollback()

			_, err := NewOrderRepository(db).CreateFromCart(context.Background(), userID, "addr", models.DefaultPaymentMethod)
			assert.ErrorIs(t, err, testCase.wantErr)
		})
	}
}

func TestOrderRepository_ListAll_JoinsUserAndMenu(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)
	userID, orderID, pizzaID := uuid.New(), uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectQuery(`FROM orders o\s+LEFT JOIN users u`).
		WillReturnRows(sqlmock.NewRows(append(orderCols, "u_id", "u_name", "u_email")).
			AddRow(orderID.String(), userID.String(), 25.0, "addr", "Preparing", "Card", now, now,
				userID.String(), "Ada", "ada@example.com"))
	mock.ExpectQuery(`FROM order_items oi\s+LEFT JOIN menu_items`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "menu_item_id", "quantity", "mi_id", "mi_name", "mi_price"}).
			AddRow(orderID.String(), pizzaID.String(), 2, pizzaID.String(), "Margherita", 12.5))

	orders, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)

	require.NotNil(t, orders[0].User)
	assert.Equal(t, "Ada", orders[0].User.Name)
	require.Len(t, orders[0].Items, 1)
	require.NotNil(t, orders[0].Items[0].MenuItem)
	assert.Equal(t, 12.5, orders[0].Items[0].MenuItem.Price)
}

func TestOrderRepository_ListByUser_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)
	userID := uuid.New()

	mock.ExpectQuery("FROM orders WHERE user_id").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows(orderCols))

	orders, err := repo.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}

func TestOrderRepository_UpdateStatus_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)
	id := uuid.New()

	mock.ExpectQuery("UPDATE orders").
		WithArgs(models.OrderStatusDelivered, sqlmock.AnyArg(), id).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateStatus(context.Background(), id, models.OrderStatusDelivered)
	assert.ErrorIs(t, err, ErrNotFound)
}
