package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockFlightSearcher is a mock implementation of FlightSearcher
type MockFlightSearcher struct {
	mock.Mock
}

func (m *MockFlightSearcher) SearchFlights(ctx context.Context, origin, destination string) ([]domain.Flight, error) {
	args := m.Called(ctx, origin, destination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func TestFlightHandler_search(t *testing.T) {
	mockService := &MockFlightSearcher{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/v1/flights?origin=delhi&destination=mumbai", nil)

	flights := []domain.Flight{
		{FlightNumber: "IA101", Origin: "Delhi", Destination: "Mumbai", DepartureTime: "8:00 AM"},
	}
	mockService.On("SearchFlights", c.Request.Context(), "delhi", "mumbai").Return(flights, nil)

	handler.search(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var got []domain.Flight
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, flights, got)
	mockService.AssertExpectations(t)
}

func TestFlightHandler_search_EmptyResultIsArray(t *testing.T) {
	mockService := &MockFlightSearcher{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/v1/flights?origin=Delhi&destination=Goa", nil)

	mockService.On("SearchFlights", c.Request.Context(), "Delhi", "Goa").Return([]domain.Flight{}, nil)

	handler.search(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestFlightHandler_search_InvalidInput(t *testing.T) {
	mockService := &MockFlightSearcher{}
	handler := NewFlightHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/v1/flights?origin=Delhi", nil)

	mockService.On("SearchFlights", c.Request.Context(), "Delhi", "").
		Return(nil, fmt.Errorf("%w: origin and destination are required", domain.ErrInvalidInput))

	handler.search(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
