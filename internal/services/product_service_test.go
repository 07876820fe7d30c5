package services_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"teslo/internal/models"
	"teslo/internal/repositories"
	"teslo/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context, limit, offset int) ([]models.Product, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByTitleOrSlug(ctx context.Context, title, slug string) (*models.Product, error) {
	args := m.Called(ctx, title, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateWithImages(ctx context.Context, product *models.Product, images []string, replaceImages bool) error {
	args := m.Called(ctx, product, images, replaceImages)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockPublisher is a mock implementation of services.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(routingKey string, body []byte) error {
	args := m.Called(routingKey, body)
	return args.Error(0)
}

const productID = "6f1c2a3b-4d5e-4f60-8a71-92b3c4d5e6f7"

func storedProduct() *models.Product {
	return &models.Product{
		ID:     productID,
		Title:  "Men's Chill Tee",
		Slug:   "mens_chill_tee",
		Price:  20,
		Sizes:  models.StringArray{"S"},
		Gender: "men",
		Tags:   models.StringArray{},
		Images: []models.ProductImage{{ID: 1, URL: "a.jpg"}, {ID: 2, URL: "b.jpg"}},
	}
}

func notFoundProduct() error {
	return fmt.Errorf("product with ID %s: %w", productID, repositories.ErrNotFound)
}

func ptr[T any](v T) *T { return &v }

func TestProductService_Create(t *testing.T) {
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	service := services.NewProductService(mockRepo, publisher, zap.NewNop())
	ctx := context.Background()
	owner := &models.User{ID: "user-1", FullName: "Owner"}

	input := services.CreateProductInput{
		Title:  "Kids' Racing Tee",
		Price:  15,
		Sizes:  []string{"XS"},
		Gender: "kid",
		Images: []string{"x.jpg", "y.jpg"},
	}

	mockRepo.On("Create", ctx, mock.MatchedBy(func(p *models.Product) bool {
		return p.Slug == "kids_racing_tee" &&
			*p.UserID == "user-1" &&
			len(p.Images) == 2 && p.Images[0].URL == "x.jpg" &&
			p.Tags != nil
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Product).ID = productID
	}).Return(nil).Once()
	publisher.On("Publish", services.EventProductCreated, mock.MatchedBy(func(body []byte) bool {
		var event services.ProductEvent
		return json.Unmarshal(body, &event) == nil && event.ProductID == productID && event.UserID == "user-1"
	})).Return(nil).Once()

	resp, err := service.Create(ctx, input, owner)
	require.NoError(t, err)
	assert.Equal(t, productID, resp.ID)
	assert.Equal(t, []string{"x.jpg", "y.jpg"}, resp.Images)
	assert.Equal(t, []string{}, resp.Tags)
	assert.Same(t, owner, resp.User)
	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)

	// Duplicate title surfaces the store detail
	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Product")).
		Return(&repositories.ConflictError{Detail: "Key (title)=(Kids' Racing Tee) already exists."}).Once()
	_, err = service.Create(ctx, input, owner)
	assert.Equal(t, services.KindConflict, services.KindOf(err))
	assert.Contains(t, err.Error(), "already exists")
	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestProductService_CreateKeepsExplicitSlug(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, zap.NewNop())
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.MatchedBy(func(p *models.Product) bool {
		return p.Slug == "custom_slug" && p.UserID == nil
	})).Return(nil).Once()

	_, err := service.Create(ctx, services.CreateProductInput{
		Title: "Anything", Slug: "Custom Slug", Sizes: []string{"M"}, Gender: "unisex",
	}, nil)
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestProductService_FindAll(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, zap.NewNop())
	ctx := context.Background()

	mockRepo.On("List", ctx, 10, 0).Return([]models.Product{*storedProduct()}, nil).Once()
	products, err := service.FindAll(ctx, services.Pagination{})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, products[0].Images)

	mockRepo.On("List", ctx, 5, 20).Return([]models.Product{}, nil).Once()
	products, err = service.FindAll(ctx, services.Pagination{Limit: 5, Offset: 20})
	require.NoError(t, err)
	assert.Empty(t, products)

	mockRepo.On("List", ctx, 10, 0).Return(nil, fmt.Errorf("failed to list products: boom")).Once()
	_, err = service.FindAll(ctx, services.Pagination{})
	assert.Equal(t, services.KindInternal, services.KindOf(err))
	mockRepo.AssertExpectations(t)
}

func TestProductService_FindOne(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, zap.NewNop())
	ctx := context.Background()

	// UUID terms resolve by id
	mockRepo.On("GetByID", ctx, productID).Return(storedProduct(), nil).Once()
	product, err := service.FindOne(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, productID, product.ID)

	// Other terms resolve by title or slug
	mockRepo.On("GetByTitleOrSlug", ctx, "My Product", "my product").Return(storedProduct(), nil).Once()
	_, err = service.FindOne(ctx, "My Product")
	require.NoError(t, err)

	mockRepo.On("GetByTitleOrSlug", ctx, "no-such-thing", "no-such-thing").
		Return(nil, fmt.Errorf("product with title or slug no-such-thing: %w", repositories.ErrNotFound)).Once()
	_, err = service.FindOne(ctx, "no-such-thing")
	assert.Equal(t, services.KindNotFound, services.KindOf(err))

	mockRepo.On("GetByID", ctx, productID).Return(storedProduct(), nil).Once()
	plain, err := service.FindOnePlain(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, plain.Images)
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateReplacesImages(t *testing.T) {
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	service := services.NewProductService(mockRepo, publisher, zap.NewNop())
	ctx := context.Background()
	admin := &models.User{ID: "admin-1"}

	after := storedProduct()
	after.Title = "Women's Tee"
	after.Slug = "womens_tee"
	after.Images = []models.ProductImage{{ID: 3, URL: "c.jpg"}, {ID: 4, URL: "d.jpg"}}

	mockRepo.On("GetByID", ctx, productID).Return(storedProduct(), nil).Once()
	mockRepo.On("UpdateWithImages", ctx, mock.MatchedBy(func(p *models.Product) bool {
		return p.Title == "Women's Tee" && p.Slug == "womens_tee" && p.Price == 20 && *p.UserID == "admin-1"
	}), []string{"c.jpg", "d.jpg"}, true).Return(nil).Once()
	mockRepo.On("GetByID", ctx, productID).Return(after, nil).Once()
	publisher.On("Publish", services.EventProductUpdated, mock.Anything).Return(nil).Once()

	resp, err := service.Update(ctx, productID, services.UpdateProductInput{
		Title:  ptr("Women's Tee"),
		Images: []string{"c.jpg", "d.jpg"},
	}, admin)
	require.NoError(t, err)
	assert.Equal(t, []string{"c.jpg", "d.jpg"}, resp.Images)
	assert.Equal(t, "womens_tee", resp.Slug)
	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestProductService_UpdateWithoutImages(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, zap.NewNop())
	ctx := context.Background()

	mockRepo.On("GetByID", ctx, productID).Return(storedProduct(), nil).Twice()
	mockRepo.On("UpdateWithImages", ctx, mock.MatchedBy(func(p *models.Product) bool {
		return p.Stock == 3 && p.Slug == "mens_chill_tee"
	}), []string(nil), false).Return(nil).Once()

	resp, err := service.Update(ctx, productID, services.UpdateProductInput{Stock: ptr(3)}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, resp.Images)
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateExplicitSlug(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil, zap.NewNop())
	ctx := context.Background()

	mockRepo.On("GetByID", ctx, productID).Return(storedProduct(), nil).Twice()
	mockRepo.On("UpdateWithImages", ctx, mock.MatchedBy(func(p *models.Product) bool {
		return p.Slug == "the_new_slug"
	}), []string(nil), false).Return(nil).Once()

	_, err := service.Update(ctx, productID, services.UpdateProductInput{Slug: ptr("The New Slug")}, nil)
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateErrors(t *testing.T) {
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	service := services.NewProductService(mockRepo, publisher, zap.NewNop())
	ctx := context.Background()

	// Missing product: no write attempted
	mockRepo.On("GetByID", ctx, productID).Return(nil, notFoundProduct()).Once()
	_, err := service.Update(ctx, productID, services.UpdateProductInput{Title: ptr("x")}, nil)
	assert.Equal(t, services.KindNotFound, services.KindOf(err))
	mockRepo.AssertNotCalled(t, "UpdateWithImages", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	// Conflict keeps the detail
	mockRepo.On("GetByID", ctx, productID).Return(storedProduct(), nil).Once()
	mockRepo.On("UpdateWithImages", ctx, mock.Anything, []string{"c.jpg"}, true).
		Return(&repositories.ConflictError{Detail: "Key (title)=(Taken) already exists."}).Once()
	_, err = service.Update(ctx, productID, services.UpdateProductInput{Title: ptr("Taken"), Images: []string{"c.jpg"}}, nil)
	assert.Equal(t, services.KindConflict, services.KindOf(err))
	assert.Equal(t, "Key (title)=(Taken) already exists.", err.Error())

	// Other failures are opaque
	mockRepo.On("GetByID", ctx, productID).Return(storedProduct(), nil).Once()
	mockRepo.On("UpdateWithImages", ctx, mock.Anything, []string(nil), false).
		Return(fmt.Errorf("failed to update product: driver: bad connection")).Once()
	_, err = service.Update(ctx, productID, services.UpdateProductInput{Stock: ptr(1)}, nil)
	assert.Equal(t, services.KindInternal, services.KindOf(err))
	assert.NotContains(t, err.Error(), "bad connection")

	mockRepo.AssertExpectations(t)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestProductService_Remove(t *testing.T) {
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	service := services.NewProductService(mockRepo, publisher, zap.NewNop())
	ctx := context.Background()

	mockRepo.On("GetByID", ctx, productID).Return(storedProduct(), nil).Once()
	mockRepo.On("Delete", ctx, productID).Return(nil).Once()
	// A broker failure does not fail the delete.
	publisher.On("Publish", services.EventProductDeleted, mock.Anything).Return(fmt.Errorf("broker down")).Once()

	require.NoError(t, service.Remove(ctx, productID))

	mockRepo.On("GetByID", ctx, productID).Return(nil, notFoundProduct()).Once()
	err := service.Remove(ctx, productID)
	assert.Equal(t, services.KindNotFound, services.KindOf(err))

	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}
