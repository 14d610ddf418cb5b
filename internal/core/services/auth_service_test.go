package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/geek-edu/courseledger/internal/apperrors"
	"github.com/geek-edu/courseledger/internal/core/services"
	"github.com/geek-edu/courseledger/internal/dto"
	"github.com/geek-edu/courseledger/internal/utils"
	"github.com/stretchr/testify/suite"
)

const testJWTSecret = "test-jwt-secret"

type AuthServiceTestSuite struct {
	suite.Suite
	service *services.AuthService
}

func (suite *AuthServiceTestSuite) SetupTest() {
	service, err := services.NewAuthService(adminAccount, "s3cret", testJWTSecret, time.Hour, "courseledger-test")
	suite.Require().NoError(err)
	suite.service = service
}

func (suite *AuthServiceTestSuite) TestIssueToken_RegularAccount() {
	resp, err := suite.service.IssueToken(context.Background(), dto.TokenRequest{AccountID: string(buyerAccount)})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.NotEmpty(resp.Token)
	suite.True(resp.ExpiresAt.After(time.Now()))

	claims, err := utils.ParseAndValidateJWT(resp.Token, testJWTSecret)
	suite.Require().NoError(err)
	subject, err := claims.GetSubject()
	suite.Require().NoError(err)
	suite.Equal(string(buyerAccount), subject)
}

func (suite *AuthServiceTestSuite) TestIssueToken_AdminWithSecret() {
	resp, err := suite.service.IssueToken(context.Background(), dto.TokenRequest{
		AccountID:   string(adminAccount),
		AdminSecret: "s3cret",
	})

	suite.Require().NoError(err)
	suite.NotEmpty(resp.Token)
}

func (suite *AuthServiceTestSuite) TestIssueToken_AdminWrongSecret() {
	resp, err := suite.service.IssueToken(context.Background(), dto.TokenRequest{
		AccountID:   string(adminAccount),
		AdminSecret: "wrong",
	})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, services.ErrInvalidCredentials)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestIssueToken_EmptyAccountID() {
	resp, err := suite.service.IssueToken(context.Background(), dto.TokenRequest{AccountID: ""})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
