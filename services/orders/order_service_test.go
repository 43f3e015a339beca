package orders

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/models"
	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockCatalog struct {
	m             sync.Mutex
	items         map[primitive.ObjectID]*store.CatalogItem
	resolveCalls  int
	failDecrement map[primitive.ObjectID]error
}

func newMockCatalog(items ...*store.CatalogItem) *mockCatalog {
	m := &mockCatalog{items: make(map[primitive.ObjectID]*store.CatalogItem)}
	for _, item := range items {
		m.items[item.ID] = item
	}
	return m
}

func (m *mockCatalog) Resolve(_ context.Context, id primitive.ObjectID) (*store.CatalogItem, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.resolveCalls++
	item, ok := m.items[id]
	if !ok {
		return nil, store.ErrItemNotFound
	}
	copied := *item
	return &copied, nil
}

func (m *mockCatalog) DecrementStock(_ context.Context, _ string, id primitive.ObjectID, qty int) error {
	// The guard and the decrement happen under one lock, mirroring the
	// single conditional update the Mongo implementation issues.
	m.m.Lock()
	defer m.m.Unlock()
	if err, ok := m.failDecrement[id]; ok {
		return err
	}
	item, ok := m.items[id]
	if !ok || item.StockQuantity < qty {
		return store.ErrInsufficientStock
	}
	item.StockQuantity -= qty
	return nil
}

func (m *mockCatalog) RestoreStock(_ context.Context, _ string, id primitive.ObjectID, qty int) error {
	m.m.Lock()
	defer m.m.Unlock()
	item, ok := m.items[id]
	if !ok {
		return store.ErrItemNotFound
	}
	item.StockQuantity += qty
	return nil
}

func (m *mockCatalog) stock(id primitive.ObjectID) int {
	m.m.Lock()
	defer m.m.Unlock()
	return m.items[id].StockQuantity
}

func (m *mockCatalog) setItem(item *store.CatalogItem) {
	m.m.Lock()
	defer m.m.Unlock()
	m.items[item.ID] = item
}

func (m *mockCatalog) calls() int {
	m.m.Lock()
	defer m.m.Unlock()
	return m.resolveCalls
}

func (m *mockCatalog) ListProducts(context.Context, int64, int64) ([]models.Product, error) {
	return nil, nil
}
func (m *mockCatalog) GetProduct(context.Context, primitive.ObjectID) (*models.Product, error) {
	return nil, store.ErrItemNotFound
}
func (m *mockCatalog) InsertProduct(context.Context, *models.Product) error        { return nil }
func (m *mockCatalog) UpdateProduct(context.Context, *models.Product) error        { return nil }
func (m *mockCatalog) DeleteProduct(context.Context, primitive.ObjectID) error     { return nil }
func (m *mockCatalog) SearchProducts(context.Context, string, string) ([]models.Product, error) {
	return nil, nil
}
func (m *mockCatalog) CountProducts(context.Context) (int64, error) { return 0, nil }
func (m *mockCatalog) ListTools(context.Context) ([]models.Tool, error) { return nil, nil }
func (m *mockCatalog) GetTool(context.Context, primitive.ObjectID) (*models.Tool, error) {
	return nil, store.ErrItemNotFound
}
func (m *mockCatalog) InsertTool(context.Context, *models.Tool) error    { return nil }
func (m *mockCatalog) UpdateTool(context.Context, *models.Tool) error    { return nil }
func (m *mockCatalog) DeleteTool(context.Context, primitive.ObjectID) error { return nil }
func (m *mockCatalog) CountTools(context.Context) (int64, error)         { return 0, nil }

type mockOrders struct {
	m         sync.Mutex
	orders    []models.Order
	insertErr error
	deleteErr error
	listCalls int
}

func (m *mockOrders) InsertOrder(_ context.Context, order *models.Order) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	m.orders = append(m.orders, *order)
	return nil
}

func (m *mockOrders) ListOrders(context.Context) ([]models.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.listCalls++
	out := make([]models.Order, len(m.orders))
	copy(out, m.orders)
	return out, nil
}

func (m *mockOrders) OrdersByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	var out []models.Order
	for _, order := range m.orders {
		if order.UserID == userID {
			out = append(out, order)
		}
	}
	return out, nil
}

func (m *mockOrders) GetOrder(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	m.m.Lock()
	defer m.m.Unlock()
	for i := range m.orders {
		if m.orders[i].ID == id {
			copied := m.orders[i]
			return &copied, nil
		}
	}
	return nil, store.ErrOrderNotFound
}

func (m *mockOrders) SetPayment(_ context.Context, id primitive.ObjectID, paid bool) error {
	m.m.Lock()
	defer m.m.Unlock()
	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders[i].Payment = paid
			return nil
		}
	}
	return store.ErrOrderNotFound
}

func (m *mockOrders) SetStatus(_ context.Context, id primitive.ObjectID, status string) error {
	m.m.Lock()
	defer m.m.Unlock()
	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders[i].Status = status
			return nil
		}
	}
	return store.ErrOrderNotFound
}

func (m *mockOrders) DeleteOrder(_ context.Context, id primitive.ObjectID) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders = append(m.orders[:i], m.orders[i+1:]...)
			return nil
		}
	}
	return store.ErrOrderNotFound
}

func (m *mockOrders) CountOrders(context.Context) (int64, error) {
	m.m.Lock()
	defer m.m.Unlock()
	return int64(len(m.orders)), nil
}

func (m *mockOrders) Revenue(context.Context) (float64, error) { return 0, nil }
func (m *mockOrders) TopSellers(context.Context, int) ([]store.SellerStat, error) {
	return nil, nil
}

func (m *mockOrders) count() int {
	m.m.Lock()
	defer m.m.Unlock()
	return len(m.orders)
}

func (m *mockOrders) get(i int) models.Order {
	m.m.Lock()
	defer m.m.Unlock()
	return m.orders[i]
}

type mockGateway struct {
	m           sync.Mutex
	createErr   error
	gatewayID   string
	acceptSig   bool
	createCalls int
	lastAmount  float64
	lastReceipt string
}

func (g *mockGateway) CreatePaymentOrder(amount float64, receipt string) (string, error) {
	g.m.Lock()
	defer g.m.Unlock()
	g.createCalls++
	g.lastAmount = amount
	g.lastReceipt = receipt
	if g.createErr != nil {
		return "", g.createErr
	}
	return g.gatewayID, nil
}

func (g *mockGateway) VerifySignature(string, string, string) bool {
	g.m.Lock()
	defer g.m.Unlock()
	return g.acceptSig
}

func productItem(stock int, price float64) *store.CatalogItem {
	return &store.CatalogItem{
		ID:            primitive.NewObjectID(),
		Kind:          store.KindProduct,
		Name:          "Fresh Tomatoes",
		Price:         price,
		Category:      "vegetables",
		StockQuantity: stock,
		SellerEmail:   "farmer@example.com",
	}
}

func placeRequest(item *store.CatalogItem, quantity int, total float64) PlaceOrderRequest {
	return PlaceOrderRequest{
		UserID:      primitive.NewObjectID().Hex(),
		Items:       []RequestItem{{ProductID: item.ID.Hex(), Quantity: quantity}},
		TotalAmount: total,
		Address:     "12 Market Road",
	}
}

func TestPlaceOrder_HappyPath(t *testing.T) {
	item := productItem(10, 5)
	catalog := newMockCatalog(item)
	orderStore := &mockOrders{}
	sut := NewService(catalog, orderStore, nil)

	order, err := sut.PlaceOrder(context.Background(), placeRequest(item, 3, 15))
	require.NoError(t, err)
	require.NotNil(t, order)

	require.Len(t, order.Items, 1)
	assert.Equal(t, item.ID, order.Items[0].ProductID)
	assert.Equal(t, 3, order.Items[0].Quantity)
	assert.Equal(t, 5.0, order.Items[0].Price)
	assert.Equal(t, "farmer@example.com", order.Items[0].SellerEmail)
	assert.Equal(t, 15.0, order.TotalAmount)
	assert.Equal(t, models.OrderStatusProcessing, order.Status)
	assert.False(t, order.Payment)
	assert.NotEmpty(t, order.Reference)

	assert.Equal(t, 7, catalog.stock(item.ID))
	assert.Equal(t, 1, orderStore.count())
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	item := productItem(2, 5)
	catalog := newMockCatalog(item)
	orderStore := &mockOrders{}
	sut := NewService(catalog, orderStore, nil)

	_, err := sut.PlaceOrder(context.Background(), placeRequest(item, 5, 25))
	require.Error(t, err)

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Fresh Tomatoes", stockErr.Name)
	assert.Contains(t, err.Error(), "Available: 2, Requested: 5")

	assert.Equal(t, 2, catalog.stock(item.ID), "stock must be untouched")
	assert.Equal(t, 0, orderStore.count(), "no order must be created")
}

func TestPlaceOrder_UnknownProduct(t *testing.T) {
	catalog := newMockCatalog()
	orderStore := &mockOrders{}
	sut := NewService(catalog, orderStore, nil)

	missing := primitive.NewObjectID()
	req := PlaceOrderRequest{
		UserID:      primitive.NewObjectID().Hex(),
		Items:       []RequestItem{{ProductID: missing.Hex(), Quantity: 1}},
		TotalAmount: 10,
		Address:     "12 Market Road",
	}

	_, err := sut.PlaceOrder(context.Background(), req)
	require.Error(t, err)

	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Contains(t, err.Error(), missing.Hex())
	assert.Equal(t, 0, orderStore.count())
}

func TestPlaceOrder_EmptyItems(t *testing.T) {
	catalog := newMockCatalog()
	orderStore := &mockOrders{}
	sut := NewService(catalog, orderStore, nil)

	req := PlaceOrderRequest{
		UserID:      primitive.NewObjectID().Hex(),
		Items:       []RequestItem{},
		TotalAmount: 10,
		Address:     "12 Market Road",
	}

	_, err := sut.PlaceOrder(context.Background(), req)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 0, catalog.calls(), "validation must reject before any store access")
	assert.Equal(t, 0, orderStore.count())
}

func TestPlaceOrder_MissingFields(t *testing.T) {
	item := productItem(10, 5)
	tests := []struct {
		name string
		req  PlaceOrderRequest
	}{
		{"missing user", PlaceOrderRequest{Items: []RequestItem{{ProductID: item.ID.Hex(), Quantity: 1}}, TotalAmount: 5, Address: "a"}},
		{"missing total", PlaceOrderRequest{UserID: primitive.NewObjectID().Hex(), Items: []RequestItem{{ProductID: item.ID.Hex(), Quantity: 1}}, Address: "a"}},
		{"missing address", PlaceOrderRequest{UserID: primitive.NewObjectID().Hex(), Items: []RequestItem{{ProductID: item.ID.Hex(), Quantity: 1}}, TotalAmount: 5}},
		{"zero quantity", PlaceOrderRequest{UserID: primitive.NewObjectID().Hex(), Items: []RequestItem{{ProductID: item.ID.Hex(), Quantity: 0}}, TotalAmount: 5, Address: "a"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			catalog := newMockCatalog(item)
			sut := NewService(catalog, &mockOrders{}, nil)

			_, err := sut.PlaceOrder(context.Background(), tc.req)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestPlaceOrder_ToolFallback(t *testing.T) {
	tool := &store.CatalogItem{
		ID:            primitive.NewObjectID(),
		Kind:          store.KindTool,
		Name:          "Hand Tiller",
		Price:         40,
		Category:      "tools",
		StockQuantity: 4,
		SellerEmail:   "seller@example.com",
	}
	catalog := newMockCatalog(tool)
	orderStore := &mockOrders{}
	sut := NewService(catalog, orderStore, nil)

	order, err := sut.PlaceOrder(context.Background(), placeRequest(tool, 2, 80))
	require.NoError(t, err)

	assert.Equal(t, store.KindTool, order.Items[0].Kind)
	assert.Equal(t, 2, catalog.stock(tool.ID))
}

func TestPlaceOrder_RecomputesTotal(t *testing.T) {
	item := productItem(10, 5)
	catalog := newMockCatalog(item)
	sut := NewService(catalog, &mockOrders{}, nil)

	// Client claims 1; server must charge resolved price * quantity.
	order, err := sut.PlaceOrder(context.Background(), placeRequest(item, 3, 1))
	require.NoError(t, err)
	assert.Equal(t, 15.0, order.TotalAmount)
}

func TestPlaceOrder_ConcurrentOversell(t *testing.T) {
	const stock = 5
	item := productItem(stock, 5)
	catalog := newMockCatalog(item)
	orderStore := &mockOrders{}
	sut := NewService(catalog, orderStore, nil)

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := sut.PlaceOrder(context.Background(), placeRequest(item, stock, 25))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, failed int
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		failed++
		var stockErr *InsufficientStockError
		assert.ErrorAs(t, err, &stockErr)
	}

	assert.Equal(t, 1, succeeded, "exactly one order may take the last units")
	assert.Equal(t, 1, failed)
	assert.Equal(t, 0, catalog.stock(item.ID))
	assert.Equal(t, 1, orderStore.count())
}

func TestPlaceOrder_CompensatesOnInsertFailure(t *testing.T) {
	item := productItem(10, 5)
	catalog := newMockCatalog(item)
	orderStore := &mockOrders{insertErr: fmt.Errorf("write concern failure")}
	sut := NewService(catalog, orderStore, nil)

	_, err := sut.PlaceOrder(context.Background(), placeRequest(item, 3, 15))
	require.Error(t, err)

	var persistenceErr *PersistenceError
	require.ErrorAs(t, err, &persistenceErr)
	assert.Equal(t, 10, catalog.stock(item.ID), "decremented stock must be restored")
}

func TestPlaceOrder_CompensatesOnPartialDecrement(t *testing.T) {
	first := productItem(10, 5)
	second := &store.CatalogItem{
		ID:            primitive.NewObjectID(),
		Kind:          store.KindProduct,
		Name:          "Raw Honey",
		Price:         12,
		StockQuantity: 1,
		SellerEmail:   "bees@example.com",
	}
	catalog := newMockCatalog(first, second)
	orderStore := &mockOrders{}
	sut := NewService(catalog, orderStore, nil)

	// The upfront check sees stock for both items; the conditional update on
	// the second then loses to a concurrent buyer.
	catalog.failDecrement = map[primitive.ObjectID]error{second.ID: store.ErrInsufficientStock}

	req := PlaceOrderRequest{
		UserID: primitive.NewObjectID().Hex(),
		Items: []RequestItem{
			{ProductID: first.ID.Hex(), Quantity: 2},
			{ProductID: second.ID.Hex(), Quantity: 1},
		},
		TotalAmount: 22,
		Address:     "12 Market Road",
	}

	_, err := sut.PlaceOrder(context.Background(), req)
	require.Error(t, err)

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Raw Honey", stockErr.Name)
	assert.Equal(t, 10, catalog.stock(first.ID), "first item's decrement must be rolled back")
	assert.Equal(t, 0, orderStore.count())
}

func TestPlaceOrder_SnapshotImmutability(t *testing.T) {
	item := productItem(10, 5)
	catalog := newMockCatalog(item)
	orderStore := &mockOrders{}
	sut := NewService(catalog, orderStore, nil)

	order, err := sut.PlaceOrder(context.Background(), placeRequest(item, 3, 15))
	require.NoError(t, err)

	// Edit the source product after the order was placed.
	edited := *item
	edited.Name = "Renamed Tomatoes"
	edited.Price = 50
	catalog.setItem(&edited)

	stored := orderStore.get(0)
	assert.Equal(t, "Fresh Tomatoes", stored.Items[0].Name)
	assert.Equal(t, 5.0, stored.Items[0].Price)
	assert.Equal(t, "Fresh Tomatoes", order.Items[0].Name)
}

func TestPlaceOrder_OnlineStoresGatewayID(t *testing.T) {
	item := productItem(10, 5)
	catalog := newMockCatalog(item)
	orderStore := &mockOrders{}
	gateway := &mockGateway{gatewayID: "pay_abc123"}
	sut := NewService(catalog, orderStore, gateway)

	req := placeRequest(item, 3, 15)
	req.PaymentMethod = PaymentMethodOnline

	order, err := sut.PlaceOrder(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "pay_abc123", order.GatewayID)
	assert.Equal(t, PaymentMethodOnline, order.PaymentMethod)
	assert.Equal(t, 1, gateway.createCalls)
	assert.Equal(t, 15.0, gateway.lastAmount)
	assert.Equal(t, order.Reference, gateway.lastReceipt)
	assert.Equal(t, 7, catalog.stock(item.ID))
}

func TestPlaceOrder_GatewayFailureRestoresStock(t *testing.T) {
	item := productItem(10, 5)
	catalog := newMockCatalog(item)
	orderStore := &mockOrders{}
	gateway := &mockGateway{createErr: fmt.Errorf("gateway unreachable")}
	sut := NewService(catalog, orderStore, gateway)

	req := placeRequest(item, 3, 15)
	req.PaymentMethod = PaymentMethodOnline

	_, err := sut.PlaceOrder(context.Background(), req)
	require.Error(t, err)

	var persistenceErr *PersistenceError
	require.ErrorAs(t, err, &persistenceErr)
	assert.Equal(t, 10, catalog.stock(item.ID), "taken stock must be returned")
	assert.Equal(t, 0, orderStore.count(), "no order may survive a failed payment setup")
}

func TestPlaceOrder_CODSkipsGateway(t *testing.T) {
	item := productItem(10, 5)
	catalog := newMockCatalog(item)
	gateway := &mockGateway{gatewayID: "pay_abc123"}
	sut := NewService(catalog, &mockOrders{}, gateway)

	order, err := sut.PlaceOrder(context.Background(), placeRequest(item, 1, 5))
	require.NoError(t, err)

	assert.Equal(t, PaymentMethodCOD, order.PaymentMethod)
	assert.Empty(t, order.GatewayID)
	assert.Equal(t, 0, gateway.createCalls)
}

func TestVerifyPayment_BadSignatureRejected(t *testing.T) {
	item := productItem(10, 5)
	catalog := newMockCatalog(item)
	orderStore := &mockOrders{}
	gateway := &mockGateway{gatewayID: "pay_abc123", acceptSig: false}
	sut := NewService(catalog, orderStore, gateway)

	req := placeRequest(item, 3, 15)
	req.PaymentMethod = PaymentMethodOnline
	order, err := sut.PlaceOrder(context.Background(), req)
	require.NoError(t, err)

	err = sut.VerifyPayment(context.Background(), VerifyRequest{
		OrderID:   order.ID.Hex(),
		Success:   true,
		PaymentID: "pay_id_1",
		Signature: "forged",
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	stored, err := orderStore.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.False(t, stored.Payment, "a rejected signature must not mark the order paid")
}

func TestVerifyPayment_GoodSignatureMarksPaid(t *testing.T) {
	item := productItem(10, 5)
	catalog := newMockCatalog(item)
	orderStore := &mockOrders{}
	gateway := &mockGateway{gatewayID: "pay_abc123", acceptSig: true}
	sut := NewService(catalog, orderStore, gateway)

	req := placeRequest(item, 3, 15)
	req.PaymentMethod = PaymentMethodOnline
	order, err := sut.PlaceOrder(context.Background(), req)
	require.NoError(t, err)

	err = sut.VerifyPayment(context.Background(), VerifyRequest{
		OrderID:   order.ID.Hex(),
		Success:   true,
		PaymentID: "pay_id_1",
		Signature: "valid",
	})
	require.NoError(t, err)

	stored, err := orderStore.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, stored.Payment)
}

func TestVerifyPayment_Success(t *testing.T) {
	item := productItem(10, 5)
	catalog := newMockCatalog(item)
	orderStore := &mockOrders{}
	sut := NewService(catalog, orderStore, nil)

	order, err := sut.PlaceOrder(context.Background(), placeRequest(item, 3, 15))
	require.NoError(t, err)

	err = sut.VerifyPayment(context.Background(), VerifyRequest{OrderID: order.ID.Hex(), Success: true})
	require.NoError(t, err)

	stored, err := orderStore.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, stored.Payment)
}

func TestVerifyPayment_FailureDeletesAndRestores(t *testing.T) {
	item := productItem(10, 5)
	catalog := newMockCatalog(item)
	orderStore := &mockOrders{}
	sut := NewService(catalog, orderStore, nil)

	order, err := sut.PlaceOrder(context.Background(), placeRequest(item, 3, 15))
	require.NoError(t, err)
	require.Equal(t, 7, catalog.stock(item.ID))

	err = sut.VerifyPayment(context.Background(), VerifyRequest{OrderID: order.ID.Hex(), Success: false})
	require.NoError(t, err)

	assert.Equal(t, 0, orderStore.count())
	assert.Equal(t, 10, catalog.stock(item.ID))
}

func TestVerifyPayment_FailedDeleteSkipsRestore(t *testing.T) {
	item := productItem(10, 5)
	catalog := newMockCatalog(item)
	orderStore := &mockOrders{}
	sut := NewService(catalog, orderStore, nil)

	order, err := sut.PlaceOrder(context.Background(), placeRequest(item, 3, 15))
	require.NoError(t, err)
	require.Equal(t, 7, catalog.stock(item.ID))

	orderStore.deleteErr = fmt.Errorf("write conflict")

	err = sut.VerifyPayment(context.Background(), VerifyRequest{OrderID: order.ID.Hex(), Success: false})
	var persistenceErr *PersistenceError
	require.ErrorAs(t, err, &persistenceErr)

	// The order still exists, so its stock must stay taken. A retry after
	// the delete succeeds restores it exactly once.
	assert.Equal(t, 7, catalog.stock(item.ID))
	assert.Equal(t, 1, orderStore.count())
}

func TestVerifyPayment_UnknownOrder(t *testing.T) {
	sut := NewService(newMockCatalog(), &mockOrders{}, nil)

	err := sut.VerifyPayment(context.Background(), VerifyRequest{
		OrderID: primitive.NewObjectID().Hex(),
		Success: true,
	})

	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
}

func TestUpdateStatus(t *testing.T) {
	item := productItem(10, 5)
	catalog := newMockCatalog(item)
	orderStore := &mockOrders{}
	sut := NewService(catalog, orderStore, nil)

	order, err := sut.PlaceOrder(context.Background(), placeRequest(item, 1, 5))
	require.NoError(t, err)

	require.NoError(t, sut.UpdateStatus(context.Background(), order.ID.Hex(), models.OrderStatusShipped))
	stored, err := orderStore.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, stored.Status)

	err = sut.UpdateStatus(context.Background(), order.ID.Hex(), "teleported")
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func seedOrder(userID primitive.ObjectID, age time.Duration, amount float64, qty int) models.Order {
	return models.Order{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		Items:       []models.OrderItem{{ProductID: primitive.NewObjectID(), Quantity: qty, Price: amount / float64(qty)}},
		TotalAmount: amount,
		Status:      models.OrderStatusProcessing,
		CreatedAt:   time.Now().Add(-age),
	}
}

func TestListOrders_WindowMetrics(t *testing.T) {
	userID := primitive.NewObjectID()
	orderStore := &mockOrders{orders: []models.Order{
		seedOrder(userID, 10*time.Minute, 10, 1),
		seedOrder(userID, 90*time.Minute, 20, 2),
		seedOrder(userID, 10*time.Hour, 30, 3),
		seedOrder(userID, 3*24*time.Hour, 40, 4),
		seedOrder(userID, 30*24*time.Hour, 50, 5),
	}}
	sut := NewService(newMockCatalog(), orderStore, nil)

	result, err := sut.ListOrders(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, result.AllMetrics.Orders)
	assert.Equal(t, 150.0, result.AllMetrics.Amount)
	assert.Equal(t, 15, result.AllMetrics.Quantity)

	assert.Equal(t, 1, result.Metrics["last30min"].Orders)
	assert.Equal(t, 2, result.Metrics["last2hours"].Orders)
	assert.Equal(t, 3, result.Metrics["last1day"].Orders)
	assert.Equal(t, 4, result.Metrics["last1week"].Orders)
	assert.Equal(t, 30.0, result.Metrics["last2hours"].Amount)
}

func TestListOrders_LegacyAmountFallback(t *testing.T) {
	legacy := models.Order{
		ID:        primitive.NewObjectID(),
		UserID:    primitive.NewObjectID(),
		Amount:    25,
		CreatedAt: time.Now().Add(-5 * time.Minute),
	}
	orderStore := &mockOrders{orders: []models.Order{legacy}}
	sut := NewService(newMockCatalog(), orderStore, nil)

	result, err := sut.ListOrders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 25.0, result.AllMetrics.Amount)
	assert.Equal(t, 25.0, result.Metrics["last30min"].Amount)
}

func TestListOrders_Idempotent(t *testing.T) {
	userID := primitive.NewObjectID()
	orderStore := &mockOrders{orders: []models.Order{
		seedOrder(userID, 10*time.Minute, 10, 1),
		seedOrder(userID, 2*24*time.Hour, 20, 2),
	}}
	sut := NewService(newMockCatalog(), orderStore, nil)

	first, err := sut.ListOrders(context.Background())
	require.NoError(t, err)
	second, err := sut.ListOrders(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.AllOrders, second.AllOrders)
	assert.Equal(t, first.AllMetrics, second.AllMetrics)
	assert.Equal(t, first.Metrics, second.Metrics)
}

func TestUserOrders(t *testing.T) {
	userID := primitive.NewObjectID()
	otherID := primitive.NewObjectID()
	orderStore := &mockOrders{orders: []models.Order{
		seedOrder(userID, 30*time.Minute, 10, 1),
		seedOrder(userID, 25*time.Hour, 20, 2),
		seedOrder(userID, 6*24*time.Hour, 30, 3),
		seedOrder(userID, 20*24*time.Hour, 40, 4),
		seedOrder(otherID, 5*time.Minute, 99, 1),
	}}
	sut := NewService(newMockCatalog(), orderStore, nil)

	result, err := sut.UserOrders(context.Background(), userID.Hex())
	require.NoError(t, err)

	assert.Equal(t, 4, result.TotalOrders)
	assert.Equal(t, 1, result.CountLast60Min)
	assert.Equal(t, 2, result.CountLast2Days)
	assert.Equal(t, 3, result.CountLast1Week)
}

func TestUserOrders_EmptyHistoryIsSuccess(t *testing.T) {
	sut := NewService(newMockCatalog(), &mockOrders{}, nil)

	result, err := sut.UserOrders(context.Background(), primitive.NewObjectID().Hex())
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalOrders)
	assert.Empty(t, result.Orders)
}

func TestUserOrders_MissingUserID(t *testing.T) {
	sut := NewService(newMockCatalog(), &mockOrders{}, nil)

	_, err := sut.UserOrders(context.Background(), "")
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestVerifyPayment_InvalidOrderID(t *testing.T) {
	sut := NewService(newMockCatalog(), &mockOrders{}, nil)

	err := sut.VerifyPayment(context.Background(), VerifyRequest{OrderID: "not-an-id", Success: true})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.False(t, errors.Is(err, store.ErrOrderNotFound))
}
