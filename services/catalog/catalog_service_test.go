package catalog

import (
	"context"
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

type mockCatalogStore struct {
	m         sync.Mutex
	products  map[primitive.ObjectID]*models.Product
	getCalls  int
	getDelay  time.Duration
	getErr    error
	listPage  int64
	listLimit int64
}

func newMockCatalogStore(products ...*models.Product) *mockCatalogStore {
	m := &mockCatalogStore{products: make(map[primitive.ObjectID]*models.Product)}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *mockCatalogStore) GetProduct(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	m.m.Lock()
	m.getCalls++
	delay := m.getDelay
	m.m.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	m.m.Lock()
	defer m.m.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	p, ok := m.products[id]
	if !ok {
		return nil, store.ErrItemNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *mockCatalogStore) UpdateProduct(_ context.Context, product *models.Product) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.products[product.ID] = product
	return nil
}

func (m *mockCatalogStore) DeleteProduct(_ context.Context, id primitive.ObjectID) error {
	m.m.Lock()
	defer m.m.Unlock()
	delete(m.products, id)
	return nil
}

func (m *mockCatalogStore) calls() int {
	m.m.Lock()
	defer m.m.Unlock()
	return m.getCalls
}

func (m *mockCatalogStore) Resolve(context.Context, primitive.ObjectID) (*store.CatalogItem, error) {
	return nil, store.ErrItemNotFound
}
func (m *mockCatalogStore) DecrementStock(context.Context, string, primitive.ObjectID, int) error {
	return nil
}
func (m *mockCatalogStore) RestoreStock(context.Context, string, primitive.ObjectID, int) error {
	return nil
}
func (m *mockCatalogStore) ListProducts(_ context.Context, page, limit int64) ([]models.Product, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.listPage = page
	m.listLimit = limit
	out := make([]models.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, nil
}
func (m *mockCatalogStore) InsertProduct(context.Context, *models.Product) error   { return nil }
func (m *mockCatalogStore) SearchProducts(context.Context, string, string) ([]models.Product, error) {
	return nil, nil
}
func (m *mockCatalogStore) CountProducts(context.Context) (int64, error)  { return 0, nil }
func (m *mockCatalogStore) ListTools(context.Context) ([]models.Tool, error) { return nil, nil }
func (m *mockCatalogStore) GetTool(context.Context, primitive.ObjectID) (*models.Tool, error) {
	return nil, store.ErrItemNotFound
}
func (m *mockCatalogStore) InsertTool(context.Context, *models.Tool) error    { return nil }
func (m *mockCatalogStore) UpdateTool(context.Context, *models.Tool) error    { return nil }
func (m *mockCatalogStore) DeleteTool(context.Context, primitive.ObjectID) error { return nil }
func (m *mockCatalogStore) CountTools(context.Context) (int64, error)         { return 0, nil }

type mockCache struct {
	m       sync.Mutex
	entries map[string]models.Product
	getErr  error
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string]models.Product)}
}

func (m *mockCache) Get(_ context.Context, key string, dest interface{}) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.getErr != nil {
		return m.getErr
	}
	entry, ok := m.entries[key]
	if !ok {
		return store.ErrCacheMiss
	}
	*dest.(*models.Product) = entry
	return nil
}

func (m *mockCache) Set(_ context.Context, key string, value interface{}) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.entries[key] = *value.(*models.Product)
	return nil
}

func (m *mockCache) Invalidate(_ context.Context, key string) error {
	m.m.Lock()
	defer m.m.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *mockCache) has(key string) bool {
	m.m.Lock()
	defer m.m.Unlock()
	_, ok := m.entries[key]
	return ok
}

func sampleProduct() *models.Product {
	return &models.Product{
		ID:            primitive.NewObjectID(),
		Name:          "Organic Spinach",
		Price:         3.5,
		Category:      "vegetables",
		StockQuantity: 20,
		Email:         "farmer@example.com",
	}
}

func TestGetProduct_MissThenHit(t *testing.T) {
	product := sampleProduct()
	catalogStore := newMockCatalogStore(product)
	cache := newMockCache()
	sut := NewService(catalogStore, cache)

	got, err := sut.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.Name, got.Name)
	assert.Equal(t, 1, catalogStore.calls())

	// The cache fill is asynchronous.
	require.Eventually(t, func() bool {
		return cache.has(productKey(product.ID))
	}, time.Second, 5*time.Millisecond)

	got, err = sut.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.Name, got.Name)
	assert.Equal(t, 1, catalogStore.calls(), "second read must be served from cache")
}

func TestGetProduct_NilCacheReadsStore(t *testing.T) {
	product := sampleProduct()
	catalogStore := newMockCatalogStore(product)
	sut := NewService(catalogStore, nil)

	for i := 0; i < 3; i++ {
		_, err := sut.GetProduct(context.Background(), product.ID)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, catalogStore.calls())
}

func TestGetProduct_StoreErrorNotCached(t *testing.T) {
	catalogStore := newMockCatalogStore()
	cache := newMockCache()
	sut := NewService(catalogStore, cache)

	missing := primitive.NewObjectID()
	_, err := sut.GetProduct(context.Background(), missing)
	require.ErrorIs(t, err, store.ErrItemNotFound)
	assert.False(t, cache.has(productKey(missing)))
}

func TestGetProduct_CacheErrorFallsThrough(t *testing.T) {
	product := sampleProduct()
	catalogStore := newMockCatalogStore(product)
	cache := newMockCache()
	cache.getErr = fmt.Errorf("connection refused")
	sut := NewService(catalogStore, cache)

	got, err := sut.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.Name, got.Name)
	assert.Equal(t, 1, catalogStore.calls())
}

func TestGetProduct_ConcurrentReadsCollapse(t *testing.T) {
	product := sampleProduct()
	catalogStore := newMockCatalogStore(product)
	catalogStore.getDelay = 50 * time.Millisecond
	cache := newMockCache()
	sut := NewService(catalogStore, cache)

	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			got, err := sut.GetProduct(context.Background(), product.ID)
			assert.NoError(t, err)
			assert.Equal(t, product.Name, got.Name)
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, catalogStore.calls(), "concurrent cold reads must share one store fetch")
}

func TestListProducts_ForwardsPagination(t *testing.T) {
	product := sampleProduct()
	catalogStore := newMockCatalogStore(product)
	sut := NewService(catalogStore, newMockCache())

	got, err := sut.ListProducts(context.Background(), 3, 25)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, int64(3), catalogStore.listPage)
	assert.Equal(t, int64(25), catalogStore.listLimit)
}

func TestUpdateProduct_InvalidatesCache(t *testing.T) {
	product := sampleProduct()
	catalogStore := newMockCatalogStore(product)
	cache := newMockCache()
	sut := NewService(catalogStore, cache)

	_, err := sut.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return cache.has(productKey(product.ID))
	}, time.Second, 5*time.Millisecond)

	updated := *product
	updated.Price = 4.25
	require.NoError(t, sut.UpdateProduct(context.Background(), &updated))
	assert.False(t, cache.has(productKey(product.ID)))

	got, err := sut.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.25, got.Price)
}

func TestDeleteProduct_InvalidatesCache(t *testing.T) {
	product := sampleProduct()
	catalogStore := newMockCatalogStore(product)
	cache := newMockCache()
	sut := NewService(catalogStore, cache)

	_, err := sut.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return cache.has(productKey(product.ID))
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, sut.DeleteProduct(context.Background(), product.ID))
	assert.False(t, cache.has(productKey(product.ID)))

	_, err = sut.GetProduct(context.Background(), product.ID)
	assert.ErrorIs(t, err, store.ErrItemNotFound)
}
