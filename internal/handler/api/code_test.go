//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"redemption-service/internal/domain/auth"
	"redemption-service/internal/domain/eligibility"
	"redemption-service/internal/handler/api"
	reqdto "redemption-service/internal/handler/dto/request"
	resdto "redemption-service/internal/handler/dto/response"
	"redemption-service/internal/handler/middleware"
	"redemption-service/internal/pkg/errs"
	"redemption-service/internal/pkg/ptr"
	"redemption-service/internal/usecase/commands"
	"redemption-service/internal/usecase/queries"
	"redemption-service/tests/common/builder"
	"redemption-service/tests/common/httptest"
	"redemption-service/tests/common/testutil"
	commandsmock "redemption-service/tests/mock/commands"
	queriesmock "redemption-service/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CodeHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockCtrl        *gomock.Controller
	mockCodes       *queriesmock.MockCodeQueries
	mockAttribution *queriesmock.MockAttributionQueries
	mockReaper      *commandsmock.MockReaperCommands
}

func (s *CodeHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCodes = queriesmock.NewMockCodeQueries(s.mockCtrl)
	s.mockAttribution = queriesmock.NewMockAttributionQueries(s.mockCtrl)
	s.mockReaper = commandsmock.NewMockReaperCommands(s.mockCtrl)

	codes := api.NewCodeHandler(s.mockCodes)
	sellers := api.NewSellerHandler(s.mockAttribution)
	admin := api.NewAdminHandler(s.mockReaper)

	s.router.POST("/codes/validate", authStub(auth.RoleService), codes.Validate)
	s.router.GET("/codes/:code", authStub(auth.RoleService), codes.Get)
	s.router.GET("/sellers/:id/referral-stats", authStub(auth.RoleService), sellers.ReferralStats)

	// role comes from a header so one router covers both sides of the check
	s.router.POST("/admin/reaper/sweep", func(c *gin.Context) {
		authStub(auth.Role(c.GetHeader("X-Test-Role")))(c)
	}, middleware.NewAuthMiddleware(nil).RequireRoleAtLeast(auth.RoleOperator), admin.Sweep)
}

func (s *CodeHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCodeHandlerSuite(t *testing.T) {
	suite.Run(t, new(CodeHandlerTestSuite))
}

// ================================================================================
// TestValidate
// ================================================================================

func (s *CodeHandlerTestSuite) TestValidate() {
	url := "/codes/validate"
	reqBody := reqdto.ValidateCodeRequest{Code: "SAVE10", IdentityID: uuid.New(), OrderAmount: ptr.Of(int64(100000))}
	view := queries.CodeViewFromDomain(builder.NewCouponBuilder().MustBuild())

	s.Run("success: eligible verdict with the code", func() {
		s.mockCodes.EXPECT().Validate(gomock.Any(), reqBody.ToInput()).
			Return(&queries.ValidateResult{Verdict: eligibility.Eligible(5000), Code: view}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.ValidateResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Eligible)
		s.Equal(int64(5000), body.Discount)
		s.Require().NotNil(body.Code)
		s.Equal("SAVE10", body.Code.Code)
		s.Equal(view.MaxUses, body.Code.MaxUses)
	})

	s.Run("success: ineligible verdicts are still 200", func() {
		s.mockCodes.EXPECT().Validate(gomock.Any(), gomock.Any()).
			Return(&queries.ValidateResult{Verdict: eligibility.Ineligible(eligibility.ReasonNotFound)}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.ValidateResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.False(body.Eligible)
		s.Equal("NOT_FOUND", body.Reason)
		s.Nil(body.Code)
	})

	s.Run("error: 400 without identity", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("identityId", nil))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

func (s *CodeHandlerTestSuite) TestGet() {
	view := queries.CodeViewFromDomain(builder.NewReferralBuilder().MustBuild())

	s.Run("success", func() {
		s.mockCodes.EXPECT().Lookup(gomock.Any(), "welcome10").Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/codes/welcome10", nil, "bearer-token")

		var body resdto.CodeResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("REFERRAL", body.Kind)
		s.Equal(view.OwnerSellerID, body.OwnerSellerID)
		s.Nil(body.DiscountType)
	})

	s.Run("error: 404", func() {
		s.mockCodes.EXPECT().Lookup(gomock.Any(), "missing").Return(nil, errs.ErrCodeNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/codes/missing", nil, "bearer-token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Code not found")
	})
}

// ================================================================================
// TestReferralStats
// ================================================================================

func (s *CodeHandlerTestSuite) TestReferralStats() {
	seller := uuid.New()

	s.Run("success", func() {
		s.mockAttribution.EXPECT().ReferralStats(gomock.Any(), seller).Return(&queries.ReferralStats{
			SellerID:          seller,
			TotalReferralUses: 4,
			Codes:             []queries.ReferralCodeStat{{Code: "WELCOME10", IsActive: true, CurrentUses: 4}},
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sellers/"+seller.String()+"/referral-stats", nil, "bearer-token")

		var body resdto.ReferralStatsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(int64(4), body.TotalReferralUses)
		s.Require().Len(body.Codes, 1)
		s.Equal("WELCOME10", body.Codes[0].Code)
	})

	s.Run("success: seller without codes", func() {
		s.mockAttribution.EXPECT().ReferralStats(gomock.Any(), seller).
			Return(&queries.ReferralStats{SellerID: seller, Codes: []queries.ReferralCodeStat{}}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sellers/"+seller.String()+"/referral-stats", nil, "bearer-token")

		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`{"sellerId":"`+seller.String()+`","totalReferralUses":0,"codes":[]}`, rec.Body.String())
	})
}

// ================================================================================
// TestSweep
// ================================================================================

func (s *CodeHandlerTestSuite) TestSweep() {
	s.Run("operator may trigger a sweep", func() {
		s.mockReaper.EXPECT().Sweep(gomock.Any()).Return(commands.SweepReport{Scanned: 3, Expired: 2, Skipped: 1}, nil)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/admin/reaper/sweep", nil, "bearer-token",
			map[string]string{"X-Test-Role": string(auth.RoleOperator)})

		var body resdto.SweepResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(resdto.SweepResponse{Scanned: 3, Expired: 2, Skipped: 1}, body)
	})

	s.Run("service callers are forbidden", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, "/admin/reaper/sweep", nil, "bearer-token",
			map[string]string{"X-Test-Role": string(auth.RoleService)})

		s.Equal(http.StatusForbidden, rec.Code)
	})
}
