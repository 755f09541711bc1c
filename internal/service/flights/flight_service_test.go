package flights

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/skybook/internal/catalog"
	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/Domenick1991/skybook/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	args := m.Called(ctx, flights)
	return args.Error(0)
}

var rows = []domain.Flight{
	{FlightNumber: "IA101", Origin: "Delhi", Destination: "Mumbai", DepartureTime: "8:00 AM"},
	{FlightNumber: "IA102", Origin: "Mumbai", Destination: "Bangalore", DepartureTime: "9:30 AM"},
}

func TestFlightService_List_CacheMiss(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache, nil)
	ctx := context.Background()

	mockCache.On("GetFlights", ctx).Return(nil, nil).Once()
	mockRepo.On("List", ctx).Return(rows, nil).Once()
	mockCache.On("SetFlights", ctx, rows).Return(nil).Once()

	result, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, rows, result)
	mockCache.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestFlightService_List_CacheHit(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache, nil)
	ctx := context.Background()

	mockCache.On("GetFlights", ctx).Return(rows, nil).Once()

	result, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, rows, result)
	mockRepo.AssertNotCalled(t, "List", mock.Anything)
	mockCache.AssertExpectations(t)
}

func TestFlightService_List_CacheErrorsFallThrough(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockRepo, mockCache, nil)
	ctx := context.Background()

	mockCache.On("GetFlights", ctx).Return(nil, errors.New("redis down")).Once()
	mockRepo.On("List", ctx).Return(rows, nil).Once()
	mockCache.On("SetFlights", ctx, rows).Return(errors.New("redis down")).Once()

	result, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, rows, result)
	mockCache.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestFlightService_List_RepositoryError(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	service := NewFlightService(mockRepo, nil, nil)
	ctx := context.Background()

	mockRepo.On("List", ctx).Return(nil, errors.New("db down")).Once()

	_, err := service.List(ctx)

	assert.Error(t, err)
	mockRepo.AssertExpectations(t)
}

func TestFlightService_LoadCatalog_Seed(t *testing.T) {
	service := NewFlightService(repository.NewStaticFlightRepository(catalog.Seed()), nil, nil)

	c, err := service.LoadCatalog(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 10, c.Len())
	_, ok := c.Find("IA105")
	assert.True(t, ok)
}

func TestFlightService_LoadCatalog_RejectsDuplicates(t *testing.T) {
	dup := append(append([]domain.Flight(nil), rows...), rows[0])
	service := NewFlightService(repository.NewStaticFlightRepository(dup), nil, nil)

	_, err := service.LoadCatalog(context.Background())

	assert.Error(t, err)
}
