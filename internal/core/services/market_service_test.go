package services_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/geek-edu/courseledger/internal/apperrors"
	"github.com/geek-edu/courseledger/internal/core/domain"
	"github.com/geek-edu/courseledger/internal/core/services"
	"github.com/geek-edu/courseledger/internal/dto"
	"github.com/geek-edu/courseledger/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	marketOwner  = domain.AccountID("market-owner")
	treasuryAcct = domain.AccountID("treasury")
	studentBuyer = domain.AccountID("student")
)

// --- Mock CertificateSvcFacade ---
type MockCertificateService struct {
	mock.Mock
}

func (m *MockCertificateService) HasRole(ctx context.Context, role domain.Role, account domain.AccountID) bool {
	args := m.Called(ctx, role, account)
	return args.Bool(0)
}

func (m *MockCertificateService) HasCertificate(ctx context.Context, account domain.AccountID, courseID string) bool {
	args := m.Called(ctx, account, courseID)
	return args.Bool(0)
}

func (m *MockCertificateService) GetCertificatesFor(ctx context.Context, account domain.AccountID, courseID string) []uint64 {
	args := m.Called(ctx, account, courseID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]uint64)
}

func (m *MockCertificateService) MetadataOf(ctx context.Context, certificateID uint64) (string, error) {
	args := m.Called(ctx, certificateID)
	return args.String(0), args.Error(1)
}

func (m *MockCertificateService) GetCertificate(ctx context.Context, certificateID uint64) (*domain.Certificate, error) {
	args := m.Called(ctx, certificateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Certificate), args.Error(1)
}

func (m *MockCertificateService) MintCertificate(ctx context.Context, caller, target domain.AccountID, courseID, metadataRef string) (*domain.Certificate, error) {
	args := m.Called(ctx, caller, target, courseID, metadataRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Certificate), args.Error(1)
}

func (m *MockCertificateService) GrantRole(ctx context.Context, caller domain.AccountID, role domain.Role, target domain.AccountID) error {
	args := m.Called(ctx, caller, role, target)
	return args.Error(0)
}

func (m *MockCertificateService) RevokeRole(ctx context.Context, caller domain.AccountID, role domain.Role, target domain.AccountID) error {
	args := m.Called(ctx, caller, role, target)
	return args.Error(0)
}

// --- Test Suite ---
type CourseMarketServiceTestSuite struct {
	suite.Suite
	events  *memory.EventRepository
	ledger  *services.LedgerService
	certs   *services.CertificateService
	service *services.CourseMarketService
}

func (suite *CourseMarketServiceTestSuite) SetupTest() {
	suite.events = memory.NewEventRepository()
	recorder := services.NewEventRecorder(suite.events, slog.Default())
	suite.ledger = services.NewLedgerService(adminAccount, recorder)
	suite.certs = services.NewCertificateService(adminAccount, recorder)
	suite.service = services.NewCourseMarketService(marketOwner, treasuryAcct, "ipfs://certs", suite.ledger, suite.certs, recorder)

	suite.Require().NoError(suite.certs.GrantRole(context.Background(), adminAccount, domain.RoleMinter, treasuryAcct))
}

func (suite *CourseMarketServiceTestSuite) addCourse(externalID string, price int64) *domain.Course {
	course, err := suite.service.AddCourse(context.Background(), marketOwner, dto.AddCourseRequest{
		ExternalID: externalID,
		Name:       "Course " + externalID,
		Price:      decimal.NewFromInt(price),
	})
	suite.Require().NoError(err)
	return course
}

func (suite *CourseMarketServiceTestSuite) fundBuyer(tokens int64) {
	_, err := suite.ledger.BuyWithReserve(context.Background(), studentBuyer, buyReserve(tokens))
	suite.Require().NoError(err)
}

func (suite *CourseMarketServiceTestSuite) TestAddCourse_Success() {
	course := suite.addCourse("web3-basics", 100)

	suite.Equal(uint64(1), course.CourseID)
	suite.Equal("web3-basics", course.ExternalID)
	suite.True(course.IsActive)
	suite.Equal(marketOwner, course.Creator)

	got, err := suite.service.GetCourseByExternalID(context.Background(), "web3-basics")
	suite.Require().NoError(err)
	suite.Equal(course.CourseID, got.CourseID)
}

func (suite *CourseMarketServiceTestSuite) TestAddCourse_OwnerOnly() {
	_, err := suite.service.AddCourse(context.Background(), studentBuyer, dto.AddCourseRequest{
		ExternalID: "x", Name: "X", Price: decimal.NewFromInt(1),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *CourseMarketServiceTestSuite) TestAddCourse_DuplicateExternalID() {
	suite.addCourse("web3-basics", 100)

	_, err := suite.service.AddCourse(context.Background(), marketOwner, dto.AddCourseRequest{
		ExternalID: "web3-basics", Name: "Again", Price: decimal.NewFromInt(1),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrDuplicateCourse)
}

func (suite *CourseMarketServiceTestSuite) TestAddCourse_EmptyExternalID() {
	_, err := suite.service.AddCourse(context.Background(), marketOwner, dto.AddCourseRequest{
		ExternalID: "", Name: "X", Price: decimal.NewFromInt(1),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEmptyExternalID)
}

func (suite *CourseMarketServiceTestSuite) TestUpdateCourse_RemapsExternalID() {
	ctx := context.Background()
	course := suite.addCourse("old-id", 100)

	active := false
	updated, err := suite.service.UpdateCourse(ctx, marketOwner, dto.UpdateCourseRequest{
		OldExternalID: "old-id",
		NewExternalID: "new-id",
		Name:          "Renamed",
		Price:         decimal.NewFromInt(250),
		IsActive:      &active,
	})

	suite.Require().NoError(err)
	suite.Equal(course.CourseID, updated.CourseID)
	suite.Equal("new-id", updated.ExternalID)
	suite.False(updated.IsActive)

	// The old key no longer resolves, the new one does.
	_, err = suite.service.GetCourseByExternalID(ctx, "old-id")
	suite.ErrorIs(err, services.ErrCourseNotFound)
	got, err := suite.service.GetCourseByExternalID(ctx, "new-id")
	suite.Require().NoError(err)
	suite.Equal(course.CourseID, got.CourseID)
}

func (suite *CourseMarketServiceTestSuite) TestUpdateCourse_OverwritesExistingMapping() {
	// Remapping onto a key held by another course silently steals it; the
	// displaced course becomes unreachable by external ID. Pinned behavior.
	ctx := context.Background()
	first := suite.addCourse("course-a", 100)
	second := suite.addCourse("course-b", 200)

	active := true
	_, err := suite.service.UpdateCourse(ctx, marketOwner, dto.UpdateCourseRequest{
		OldExternalID: "course-a",
		NewExternalID: "course-b",
		Name:          "A over B",
		Price:         decimal.NewFromInt(100),
		IsActive:      &active,
	})
	suite.Require().NoError(err)

	got, err := suite.service.GetCourseByExternalID(ctx, "course-b")
	suite.Require().NoError(err)
	suite.Equal(first.CourseID, got.CourseID)
	suite.NotEqual(second.CourseID, got.CourseID)
}

func (suite *CourseMarketServiceTestSuite) TestUpdateCourse_NotFound() {
	active := true
	_, err := suite.service.UpdateCourse(context.Background(), marketOwner, dto.UpdateCourseRequest{
		OldExternalID: "missing",
		NewExternalID: "whatever",
		Name:          "X",
		Price:         decimal.NewFromInt(1),
		IsActive:      &active,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrCourseNotFound)
}

func (suite *CourseMarketServiceTestSuite) TestListCourses_CourseIDOrder() {
	suite.addCourse("a", 1)
	suite.addCourse("b", 2)
	suite.addCourse("c", 3)

	courses := suite.service.ListCourses(context.Background())

	suite.Require().Len(courses, 3)
	suite.Equal(uint64(1), courses[0].CourseID)
	suite.Equal(uint64(2), courses[1].CourseID)
	suite.Equal(uint64(3), courses[2].CourseID)
}

func (suite *CourseMarketServiceTestSuite) TestPurchaseCourse_Success() {
	ctx := context.Background()
	suite.addCourse("web3-basics", 100)
	suite.fundBuyer(1000)

	cert, err := suite.service.PurchaseCourse(ctx, studentBuyer, "web3-basics")

	suite.Require().NoError(err)
	suite.Require().NotNil(cert)
	suite.Equal(studentBuyer, cert.Owner)
	suite.Equal("web3-basics", cert.CourseID)
	suite.Equal("ipfs://certs/web3-basics", cert.MetadataRef)

	// Buyer debited, treasury credited, purchase and certificate recorded.
	suite.True(suite.ledger.BalanceOf(ctx, studentBuyer).Equal(decimal.NewFromInt(900)))
	suite.True(suite.ledger.BalanceOf(ctx, treasuryAcct).Equal(decimal.NewFromInt(100)))
	suite.True(suite.service.HasPurchased(ctx, studentBuyer, "web3-basics"))
	suite.True(suite.certs.HasCertificate(ctx, studentBuyer, "web3-basics"))
}

func (suite *CourseMarketServiceTestSuite) TestPurchaseCourse_NotFoundDebitsNothing() {
	ctx := context.Background()
	suite.fundBuyer(1000)

	cert, err := suite.service.PurchaseCourse(ctx, studentBuyer, "missing")

	suite.Require().Error(err)
	suite.Nil(cert)
	suite.ErrorIs(err, services.ErrCourseNotFound)
	suite.True(suite.ledger.BalanceOf(ctx, studentBuyer).Equal(decimal.NewFromInt(1000)))
}

func (suite *CourseMarketServiceTestSuite) TestPurchaseCourse_InactiveDebitsNothing() {
	ctx := context.Background()
	suite.addCourse("web3-basics", 100)
	suite.fundBuyer(1000)

	active := false
	_, err := suite.service.UpdateCourse(ctx, marketOwner, dto.UpdateCourseRequest{
		OldExternalID: "web3-basics",
		NewExternalID: "web3-basics",
		Name:          "Course web3-basics",
		Price:         decimal.NewFromInt(100),
		IsActive:      &active,
	})
	suite.Require().NoError(err)

	cert, err := suite.service.PurchaseCourse(ctx, studentBuyer, "web3-basics")

	suite.Require().Error(err)
	suite.Nil(cert)
	suite.ErrorIs(err, services.ErrCourseInactive)
	suite.True(suite.ledger.BalanceOf(ctx, studentBuyer).Equal(decimal.NewFromInt(1000)))
}

func (suite *CourseMarketServiceTestSuite) TestPurchaseCourse_InsufficientBalanceMintsNothing() {
	ctx := context.Background()
	suite.addCourse("web3-basics", 100)
	suite.fundBuyer(50)

	cert, err := suite.service.PurchaseCourse(ctx, studentBuyer, "web3-basics")

	suite.Require().Error(err)
	suite.Nil(cert)
	suite.ErrorIs(err, services.ErrInsufficientBalance)
	suite.False(suite.certs.HasCertificate(ctx, studentBuyer, "web3-basics"))
	suite.False(suite.service.HasPurchased(ctx, studentBuyer, "web3-basics"))
}

func (suite *CourseMarketServiceTestSuite) TestPurchaseCourse_TreasuryWithoutMinterDebitsNothing() {
	ctx := context.Background()
	suite.addCourse("web3-basics", 100)
	suite.fundBuyer(1000)

	suite.Require().NoError(suite.certs.RevokeRole(ctx, adminAccount, domain.RoleMinter, treasuryAcct))

	cert, err := suite.service.PurchaseCourse(ctx, studentBuyer, "web3-basics")

	suite.Require().Error(err)
	suite.Nil(cert)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.True(suite.ledger.BalanceOf(ctx, studentBuyer).Equal(decimal.NewFromInt(1000)))
}

func (suite *CourseMarketServiceTestSuite) TestPurchaseCourse_RefundsDebitOnMintFailure() {
	ctx := context.Background()
	recorder := services.NewEventRecorder(suite.events, slog.Default())
	mockCerts := new(MockCertificateService)
	market := services.NewCourseMarketService(marketOwner, treasuryAcct, "ipfs://certs", suite.ledger, mockCerts, recorder)

	_, err := market.AddCourse(ctx, marketOwner, dto.AddCourseRequest{
		ExternalID: "web3-basics", Name: "X", Price: decimal.NewFromInt(100),
	})
	suite.Require().NoError(err)
	suite.fundBuyer(1000)

	mockCerts.On("HasRole", ctx, domain.RoleMinter, treasuryAcct).Return(true).Once()
	mockCerts.On("MintCertificate", ctx, treasuryAcct, studentBuyer, "web3-basics", "ipfs://certs/web3-basics").
		Return(nil, services.ErrInvalidTarget).Once()

	cert, err := market.PurchaseCourse(ctx, studentBuyer, "web3-basics")

	suite.Require().Error(err)
	suite.Nil(cert)
	suite.ErrorIs(err, services.ErrInvalidTarget)
	// The debit was rolled back in full.
	suite.True(suite.ledger.BalanceOf(ctx, studentBuyer).Equal(decimal.NewFromInt(1000)))
	suite.True(suite.ledger.BalanceOf(ctx, treasuryAcct).IsZero())
	suite.False(market.HasPurchased(ctx, studentBuyer, "web3-basics"))
	mockCerts.AssertExpectations(suite.T())
}

func (suite *CourseMarketServiceTestSuite) TestIsOwner() {
	ctx := context.Background()
	suite.True(suite.service.IsOwner(ctx, marketOwner))
	suite.False(suite.service.IsOwner(ctx, studentBuyer))
	suite.False(suite.service.IsOwner(ctx, domain.NilAccount))
}

func TestCourseMarketServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CourseMarketServiceTestSuite))
}
