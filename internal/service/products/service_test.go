package products

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FMP-BookingService/internal/domain"
	productRepo "github.com/m04kA/FMP-BookingService/internal/infra/storage/product"
	"github.com/m04kA/FMP-BookingService/internal/service/products/models"
	"github.com/m04kA/FMP-BookingService/pkg/ptr"
)

// fakeProductRepo репозиторий товаров в памяти
type fakeProductRepo struct {
	nextID   int64
	products map[int64]*domain.Product
}

func newFakeRepo(products ...*domain.Product) *fakeProductRepo {
	repo := &fakeProductRepo{nextID: 1, products: map[int64]*domain.Product{}}
	for _, p := range products {
		repo.products[p.ID] = p
		if p.ID >= repo.nextID {
			repo.nextID = p.ID + 1
		}
	}
	return repo
}

func (f *fakeProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	created := *p
	created.ID = f.nextID
	f.nextID++
	f.products[created.ID] = &created
	return &created, nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, productRepo.ErrProductNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProductRepo) List(_ context.Context, filter domain.ProductsFilter) ([]*domain.Product, error) {
	var result []*domain.Product
	for _, p := range f.products {
		if !p.IsActive {
			continue
		}
		if filter.Category != nil && (p.Category == nil || *p.Category != *filter.Category) {
			continue
		}
		if filter.MinPrice != nil && p.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && p.Price > *filter.MaxPrice {
			continue
		}
		if filter.Search != nil && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(*filter.Search)) {
			continue
		}
		copied := *p
		result = append(result, &copied)
	}
	return result, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *domain.Product) error {
	if _, ok := f.products[p.ID]; !ok {
		return productRepo.ErrProductNotFound
	}
	copied := *p
	f.products[p.ID] = &copied
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	admin    = domain.Principal{ID: 1, Role: domain.RoleAdmin}
	customer = domain.Principal{ID: 10, Role: domain.RoleCustomer}
)

func TestCreateProduct(t *testing.T) {
	t.Run("admin creates active product", func(t *testing.T) {
		svc := NewService(newFakeRepo(), nopLogger{})

		resp, err := svc.Create(context.Background(), &models.CreateProductRequest{
			Principal: admin,
			Name:      "Goat cheese",
			Price:     12.5,
			Category:  ptr.Ptr("dairy"),
		})
		require.NoError(t, err)
		assert.True(t, resp.IsActive)
		assert.Equal(t, admin.ID, resp.UserID)
	})

	t.Run("customer denied", func(t *testing.T) {
		svc := NewService(newFakeRepo(), nopLogger{})

		_, err := svc.Create(context.Background(), &models.CreateProductRequest{
			Principal: customer, Name: "Goat cheese", Price: 12.5,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("negative price rejected", func(t *testing.T) {
		svc := NewService(newFakeRepo(), nopLogger{})

		_, err := svc.Create(context.Background(), &models.CreateProductRequest{
			Principal: admin, Name: "Goat cheese", Price: -1,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGetProduct(t *testing.T) {
	repo := newFakeRepo(
		&domain.Product{ID: 1, Name: "Goat cheese", Price: 12.5, IsActive: true},
		&domain.Product{ID: 2, Name: "Retired", Price: 5, IsActive: false},
	)
	svc := NewService(repo, nopLogger{})

	t.Run("active product visible", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "Goat cheese", resp.Name)
	})

	t.Run("inactive product hidden", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 2)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 42)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestListProducts(t *testing.T) {
	repo := newFakeRepo(
		&domain.Product{ID: 1, Name: "Goat cheese", Price: 12.5, Category: ptr.Ptr("dairy"), IsActive: true},
		&domain.Product{ID: 2, Name: "Honey", Price: 8, Category: ptr.Ptr("sweets"), IsActive: true},
		&domain.Product{ID: 3, Name: "Retired", Price: 5, IsActive: false},
	)
	svc := NewService(repo, nopLogger{})

	t.Run("lists only active", func(t *testing.T) {
		resp, err := svc.List(context.Background(), &models.ListProductsRequest{})
		require.NoError(t, err)
		assert.Len(t, resp.Products, 2)
	})

	t.Run("category filter", func(t *testing.T) {
		resp, err := svc.List(context.Background(), &models.ListProductsRequest{Category: ptr.Ptr("dairy")})
		require.NoError(t, err)
		require.Len(t, resp.Products, 1)
		assert.Equal(t, "Goat cheese", resp.Products[0].Name)
	})

	t.Run("price range filter", func(t *testing.T) {
		resp, err := svc.List(context.Background(), &models.ListProductsRequest{
			MinPrice: ptr.Ptr(10.0),
		})
		require.NoError(t, err)
		require.Len(t, resp.Products, 1)
		assert.Equal(t, "Goat cheese", resp.Products[0].Name)
	})
}

func TestUpdateProduct(t *testing.T) {
	base := func() *domain.Product {
		return &domain.Product{ID: 1, Name: "Goat cheese", Price: 12.5, IsActive: true, UserID: 1}
	}

	t.Run("partial update keeps untouched fields", func(t *testing.T) {
		svc := NewService(newFakeRepo(base()), nopLogger{})

		resp, err := svc.Update(context.Background(), &models.UpdateProductRequest{
			Principal: admin, ProductID: 1, Price: ptr.Ptr(15.0),
		})
		require.NoError(t, err)
		assert.Equal(t, 15.0, resp.Price)
		assert.Equal(t, "Goat cheese", resp.Name)
	})

	t.Run("customer denied", func(t *testing.T) {
		svc := NewService(newFakeRepo(base()), nopLogger{})

		_, err := svc.Update(context.Background(), &models.UpdateProductRequest{
			Principal: customer, ProductID: 1, Price: ptr.Ptr(15.0),
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("blank name rejected", func(t *testing.T) {
		svc := NewService(newFakeRepo(base()), nopLogger{})

		_, err := svc.Update(context.Background(), &models.UpdateProductRequest{
			Principal: admin, ProductID: 1, Name: ptr.Ptr("  "),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestDeleteAndRestoreProduct(t *testing.T) {
	t.Run("delete hides product, restore brings it back", func(t *testing.T) {
		repo := newFakeRepo(&domain.Product{ID: 1, Name: "Goat cheese", Price: 12.5, IsActive: true})
		svc := NewService(repo, nopLogger{})

		require.NoError(t, svc.Delete(context.Background(), admin, 1))
		assert.False(t, repo.products[1].IsActive)

		_, err := svc.GetByID(context.Background(), 1)
		assert.ErrorIs(t, err, ErrProductNotFound)

		resp, err := svc.Restore(context.Background(), admin, 1)
		require.NoError(t, err)
		assert.True(t, resp.IsActive)
	})

	t.Run("delete denied for customer", func(t *testing.T) {
		repo := newFakeRepo(&domain.Product{ID: 1, Name: "Goat cheese", IsActive: true})
		svc := NewService(repo, nopLogger{})

		err := svc.Delete(context.Background(), customer, 1)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}
