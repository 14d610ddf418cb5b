package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/geek-edu/courseledger/internal/apperrors"
	"github.com/geek-edu/courseledger/internal/core/domain"
	portssvc "github.com/geek-edu/courseledger/internal/core/ports/services"
	"github.com/geek-edu/courseledger/internal/core/services"
	"github.com/geek-edu/courseledger/internal/dto"
	"github.com/geek-edu/courseledger/internal/handlers"
	"github.com/geek-edu/courseledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CourseMarketService ---
type MockCourseMarketService struct {
	mock.Mock
}

func (m *MockCourseMarketService) GetCourseByExternalID(ctx context.Context, externalID string) (*domain.Course, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

func (m *MockCourseMarketService) ListCourses(ctx context.Context) []domain.Course {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.Course)
}

func (m *MockCourseMarketService) HasPurchased(ctx context.Context, account domain.AccountID, externalID string) bool {
	args := m.Called(ctx, account, externalID)
	return args.Bool(0)
}

func (m *MockCourseMarketService) IsOwner(ctx context.Context, account domain.AccountID) bool {
	args := m.Called(ctx, account)
	return args.Bool(0)
}

func (m *MockCourseMarketService) AddCourse(ctx context.Context, caller domain.AccountID, req dto.AddCourseRequest) (*domain.Course, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

func (m *MockCourseMarketService) UpdateCourse(ctx context.Context, caller domain.AccountID, req dto.UpdateCourseRequest) (*domain.Course, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

func (m *MockCourseMarketService) PurchaseCourse(ctx context.Context, caller domain.AccountID, externalID string) (*domain.Certificate, error) {
	args := m.Called(ctx, caller, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Certificate), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.CourseMarketSvcFacade = (*MockCourseMarketService)(nil)

// --- Test Suite ---
type CourseHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockMarketService *MockCourseMarketService
	jwtSecret         string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *CourseHandlerTestSuite) generateTestToken(accountID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "courseledger-test",
		Subject:   accountID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *CourseHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	dto.RegisterCustomValidators()
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockMarketService = new(MockCourseMarketService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterCourseRoutes(v1, suite.mockMarketService)
}

func (suite *CourseHandlerTestSuite) doJSON(method, url, caller string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(caller))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *CourseHandlerTestSuite) TestAddCourse_Success() {
	owner := "market-owner"
	reqBody := dto.AddCourseRequest{
		ExternalID: "web3-basics",
		Name:       "Web3 Basics",
		Price:      decimal.NewFromInt(100),
	}
	now := time.Now().UTC()
	expected := &domain.Course{
		CourseID:   1,
		ExternalID: reqBody.ExternalID,
		Name:       reqBody.Name,
		Price:      reqBody.Price,
		IsActive:   true,
		Creator:    domain.AccountID(owner),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	suite.mockMarketService.On("AddCourse",
		mock.Anything,
		domain.AccountID(owner),
		mock.MatchedBy(func(r dto.AddCourseRequest) bool {
			return r.ExternalID == reqBody.ExternalID && r.Price.Equal(reqBody.Price)
		}),
	).Return(expected, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/courses", owner, reqBody)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.CourseResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(uint64(1), resp.CourseID)
	suite.Equal("web3-basics", resp.ExternalID)
	suite.mockMarketService.AssertExpectations(suite.T())
}

func (suite *CourseHandlerTestSuite) TestAddCourse_OwnerRequired() {
	reqBody := dto.AddCourseRequest{
		ExternalID: "web3-basics",
		Name:       "Web3 Basics",
		Price:      decimal.NewFromInt(100),
	}

	suite.mockMarketService.On("AddCourse", mock.Anything, domain.AccountID("someone"), mock.Anything).
		Return(nil, fmt.Errorf("%w: market owner required", apperrors.ErrUnauthorized)).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/courses", "someone", reqBody)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockMarketService.AssertExpectations(suite.T())
}

func (suite *CourseHandlerTestSuite) TestAddCourse_FractionalPriceRejectedByBinding() {
	reqBody := map[string]any{
		"externalId": "web3-basics",
		"name":       "Web3 Basics",
		"price":      "10.5",
	}

	w := suite.doJSON(http.MethodPost, "/api/v1/courses", "market-owner", reqBody)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockMarketService.AssertNotCalled(suite.T(), "AddCourse")
}

func (suite *CourseHandlerTestSuite) TestGetCourse_NotFound() {
	suite.mockMarketService.On("GetCourseByExternalID", mock.Anything, "missing").
		Return(nil, services.ErrCourseNotFound).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/courses/missing", "anyone", nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockMarketService.AssertExpectations(suite.T())
}

func (suite *CourseHandlerTestSuite) TestUpdateCourse_FillsOldExternalIDFromPath() {
	owner := "market-owner"
	active := true
	expected := &domain.Course{CourseID: 1, ExternalID: "new-id", Name: "N", Price: decimal.NewFromInt(5), IsActive: true}

	suite.mockMarketService.On("UpdateCourse",
		mock.Anything,
		domain.AccountID(owner),
		mock.MatchedBy(func(r dto.UpdateCourseRequest) bool {
			return r.OldExternalID == "old-id" && r.NewExternalID == "new-id"
		}),
	).Return(expected, nil).Once()

	w := suite.doJSON(http.MethodPut, "/api/v1/courses/old-id", owner, dto.UpdateCourseRequest{
		NewExternalID: "new-id",
		Name:          "N",
		Price:         decimal.NewFromInt(5),
		IsActive:      &active,
	})

	suite.Equal(http.StatusOK, w.Code)
	suite.mockMarketService.AssertExpectations(suite.T())
}

func (suite *CourseHandlerTestSuite) TestPurchaseCourse_Success() {
	buyer := "student"
	cert := &domain.Certificate{
		CertificateID: 7,
		CourseID:      "web3-basics",
		Owner:         domain.AccountID(buyer),
		MetadataRef:   "ipfs://certs/web3-basics",
		MintedAt:      time.Now().UTC(),
	}
	course := &domain.Course{CourseID: 1, ExternalID: "web3-basics", Name: "Web3 Basics", Price: decimal.NewFromInt(100), IsActive: true}

	suite.mockMarketService.On("PurchaseCourse", mock.Anything, domain.AccountID(buyer), "web3-basics").
		Return(cert, nil).Once()
	suite.mockMarketService.On("GetCourseByExternalID", mock.Anything, "web3-basics").
		Return(course, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/courses/web3-basics/purchase", buyer, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.PurchaseCourseResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(uint64(7), resp.Certificate.CertificateID)
	suite.Equal("web3-basics", resp.Course.ExternalID)
	suite.mockMarketService.AssertExpectations(suite.T())
}

func (suite *CourseHandlerTestSuite) TestPurchaseCourse_InactiveConflict() {
	suite.mockMarketService.On("PurchaseCourse", mock.Anything, domain.AccountID("student"), "web3-basics").
		Return(nil, services.ErrCourseInactive).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/courses/web3-basics/purchase", "student", nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockMarketService.AssertExpectations(suite.T())
}

func (suite *CourseHandlerTestSuite) TestRoutes_RequireAuth() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/courses", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func TestCourseHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(CourseHandlerTestSuite))
}
