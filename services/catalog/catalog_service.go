package catalog

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/models"
	"github.com/Harshavardhanreddy02/Harvesting-Hub-sub000/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/singleflight"
)

// Service fronts product reads with an optional cache. Writes go straight to
// the store and invalidate the affected key. A nil cache disables caching:
// every read then hits Mongo.
type Service struct {
	catalog store.CatalogStore
	cache   store.CatalogCache
	sfg     singleflight.Group // prevents cache stampede on hot products
}

func NewService(catalog store.CatalogStore, cache store.CatalogCache) *Service {
	return &Service{
		catalog: catalog,
		cache:   cache,
	}
}

func productKey(id primitive.ObjectID) string {
	return "product:" + id.Hex()
}

func (s *Service) GetProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	if s.cache == nil {
		return s.catalog.GetProduct(ctx, id)
	}

	v, err, _ := s.sfg.Do(id.Hex(), func() (interface{}, error) {
		var cached models.Product
		err := s.cache.Get(ctx, productKey(id), &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, store.ErrCacheMiss) {
			log.Printf("cache get error: %v", err)
		}

		product, err := s.catalog.GetProduct(ctx, id)
		if err != nil {
			return nil, err
		}

		go func() {
			if err := s.cache.Set(context.Background(), productKey(id), product); err != nil {
				log.Printf("cache set error: %v", err)
			}
		}()

		return product, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*models.Product), nil
}

func (s *Service) ListProducts(ctx context.Context, page, limit int64) ([]models.Product, error) {
	return s.catalog.ListProducts(ctx, page, limit)
}

func (s *Service) CountProducts(ctx context.Context) (int64, error) {
	return s.catalog.CountProducts(ctx)
}

func (s *Service) SearchProducts(ctx context.Context, name, category string) ([]models.Product, error) {
	return s.catalog.SearchProducts(ctx, name, category)
}

func (s *Service) AddProduct(ctx context.Context, product *models.Product) error {
	return s.catalog.InsertProduct(ctx, product)
}

func (s *Service) UpdateProduct(ctx context.Context, product *models.Product) error {
	if err := s.catalog.UpdateProduct(ctx, product); err != nil {
		return err
	}
	s.invalidate(product.ID)
	return nil
}

func (s *Service) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	if err := s.catalog.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.invalidate(id)
	return nil
}

func (s *Service) invalidate(id primitive.ObjectID) {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Invalidate(ctx, productKey(id)); err != nil {
		log.Printf("cache invalidate error: %v", err)
	}
}
