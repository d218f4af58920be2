package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"stayspot/internal/http-api/dto"
	"stayspot/internal/http-api/handler"
	"stayspot/internal/http-api/models"
	"stayspot/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- MOCK SERVICE ---

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) GetSpotReviews(ctx context.Context, spotID int64) ([]dto.ReviewResponse, error) {
	args := m.Called(ctx, spotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) CreateReview(ctx context.Context, userID string, spotID int64, in dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	args := m.Called(ctx, userID, spotID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) AddImage(ctx context.Context, reviewID int64, userID string, url string) (*models.Image, error) {
	args := m.Called(ctx, reviewID, userID, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Image), args.Error(1)
}

func setupReviewRouter(mockService *MockReviewService, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	h := handler.NewReviewHandler(mockService)
	auth := mockAuthMiddleware(userID)
	h.RegisterRoutes(r.Group("/api/spots"), auth)
	h.RegisterImageRoutes(r.Group("/api/reviews"), auth)
	return r
}

// --- TESTS ---

func TestReviewHandler_List(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockReviewService)
		r := setupReviewRouter(mockService, "user-1")

		expected := []dto.ReviewResponse{
			{ID: 1, UserID: "user-2", SpotID: 1, Review: "Great place", Stars: 5},
			{ID: 2, UserID: "user-3", SpotID: 1, Review: "Decent", Stars: 3},
		}
		mockService.On("GetSpotReviews", mock.Anything, int64(1)).Return(expected, nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/spots/1/reviews", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Reviews []dto.ReviewResponse `json:"Reviews"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Len(t, body.Reviews, 2)
		assert.Equal(t, 5, body.Reviews[0].Stars)
		mockService.AssertExpectations(t)
	})

	t.Run("SpotNotFound", func(t *testing.T) {
		mockService := new(MockReviewService)
		r := setupReviewRouter(mockService, "user-1")

		mockService.On("GetSpotReviews", mock.Anything, int64(99)).Return(nil, service.ErrSpotNotFound).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/spots/99/reviews", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Spot couldn't be found")
	})
}

func TestReviewHandler_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockReviewService)
		r := setupReviewRouter(mockService, "user-1")

		created := &dto.ReviewResponse{ID: 1, UserID: "user-1", SpotID: 1, Review: "Loved it", Stars: 5}
		mockService.On("CreateReview", mock.Anything, "user-1", int64(1), dto.CreateReviewDTO{Review: "Loved it", Stars: 5}).
			Return(created, nil).Once()

		req, _ := http.NewRequest(http.MethodPost, "/api/spots/1/reviews",
			bytes.NewBufferString(`{"review":"Loved it","stars":5}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "user-1", body["userId"])
		mockService.AssertExpectations(t)
	})

	t.Run("SecondReviewForbidden", func(t *testing.T) {
		mockService := new(MockReviewService)
		r := setupReviewRouter(mockService, "user-1")

		created := &dto.ReviewResponse{ID: 1, UserID: "user-1", SpotID: 1, Review: "Loved it", Stars: 5}
		mockService.On("CreateReview", mock.Anything, "user-1", int64(1), mock.AnythingOfType("dto.CreateReviewDTO")).
			Return(created, nil).Once()
		mockService.On("CreateReview", mock.Anything, "user-1", int64(1), mock.AnythingOfType("dto.CreateReviewDTO")).
			Return(nil, service.ErrDuplicateReview).Once()

		// First review succeeds
		req, _ := http.NewRequest(http.MethodPost, "/api/spots/1/reviews",
			bytes.NewBufferString(`{"review":"Loved it","stars":5}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		// Second attempt by the same user is rejected
		req, _ = http.NewRequest(http.MethodPost, "/api/spots/1/reviews",
			bytes.NewBufferString(`{"review":"Changed my mind","stars":1}`))
		req.Header.Set("Content-Type", "application/json")
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "User already has a review for this spot")
	})

	t.Run("SpotNotFound", func(t *testing.T) {
		mockService := new(MockReviewService)
		r := setupReviewRouter(mockService, "user-1")

		mockService.On("CreateReview", mock.Anything, "user-1", int64(99), mock.AnythingOfType("dto.CreateReviewDTO")).
			Return(nil, service.ErrSpotNotFound).Once()

		req, _ := http.NewRequest(http.MethodPost, "/api/spots/99/reviews",
			bytes.NewBufferString(`{"review":"ok","stars":4}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("StarsOutOfRange", func(t *testing.T) {
		mockService := new(MockReviewService)
		r := setupReviewRouter(mockService, "user-1")

		req, _ := http.NewRequest(http.MethodPost, "/api/spots/1/reviews",
			bytes.NewBufferString(`{"review":"ok","stars":7}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body struct {
			Errors map[string]string `json:"errors"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Stars must be an integer from 1 to 5", body.Errors["stars"])
		mockService.AssertNotCalled(t, "CreateReview")
	})

	t.Run("StarsNotAnInteger", func(t *testing.T) {
		mockService := new(MockReviewService)
		r := setupReviewRouter(mockService, "user-1")

		req, _ := http.NewRequest(http.MethodPost, "/api/spots/1/reviews",
			bytes.NewBufferString(`{"review":"ok","stars":4.5}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body struct {
			Message string            `json:"message"`
			Errors  map[string]string `json:"errors"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Validation error", body.Message)
		assert.Equal(t, "Stars must be an integer from 1 to 5", body.Errors["stars"])
		mockService.AssertNotCalled(t, "CreateReview")
	})

	t.Run("MissingReviewText", func(t *testing.T) {
		mockService := new(MockReviewService)
		r := setupReviewRouter(mockService, "user-1")

		req, _ := http.NewRequest(http.MethodPost, "/api/spots/1/reviews",
			bytes.NewBufferString(`{"stars":3}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Review text is required")
	})
}

func TestReviewHandler_AddImage(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockReviewService)
		r := setupReviewRouter(mockService, "user-1")

		image := &models.Image{ID: 9, ImageableID: 2, ImageableType: "Review", URL: "https://example.com/r.jpg"}
		mockService.On("AddImage", mock.Anything, int64(2), "user-1", "https://example.com/r.jpg").
			Return(image, nil).Once()

		req, _ := http.NewRequest(http.MethodPost, "/api/reviews/2/images",
			bytes.NewBufferString(`{"url":"https://example.com/r.jpg"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Review", body["imageableType"])
	})

	t.Run("NotAuthor", func(t *testing.T) {
		mockService := new(MockReviewService)
		r := setupReviewRouter(mockService, "user-1")

		mockService.On("AddImage", mock.Anything, int64(2), "user-1", "https://example.com/r.jpg").
			Return(nil, service.ErrNotReviewAuthor).Once()

		req, _ := http.NewRequest(http.MethodPost, "/api/reviews/2/images",
			bytes.NewBufferString(`{"url":"https://example.com/r.jpg"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("ReviewNotFound", func(t *testing.T) {
		mockService := new(MockReviewService)
		r := setupReviewRouter(mockService, "user-1")

		mockService.On("AddImage", mock.Anything, int64(50), "user-1", "https://example.com/r.jpg").
			Return(nil, service.ErrReviewNotFound).Once()

		req, _ := http.NewRequest(http.MethodPost, "/api/reviews/50/images",
			bytes.NewBufferString(`{"url":"https://example.com/r.jpg"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Review couldn't be found")
	})
}
