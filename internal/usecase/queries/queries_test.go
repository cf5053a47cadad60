//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"redemption-service/internal/domain/eligibility"
	"redemption-service/internal/pkg/clock"
	"redemption-service/internal/pkg/errs"
	"redemption-service/internal/pkg/ptr"
	"redemption-service/internal/usecase/queries"
	"redemption-service/tests/common/builder"
	queriesmock "redemption-service/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type QueriesTestSuite struct {
	suite.Suite
	ctx        context.Context
	mockCtrl   *gomock.Controller
	codeStore  *queriesmock.MockCodeReadStore
	codeCache  *queriesmock.MockCodeCache
	resStore   *queriesmock.MockReservationReadStore
	refStore   *queriesmock.MockReferralReadStore
	statsCache *queriesmock.MockStatsCache
	clock      *clock.MockClock
}

func (s *QueriesTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.mockCtrl = gomock.NewController(s.T())
	s.codeStore = queriesmock.NewMockCodeReadStore(s.mockCtrl)
	s.codeCache = queriesmock.NewMockCodeCache(s.mockCtrl)
	s.resStore = queriesmock.NewMockReservationReadStore(s.mockCtrl)
	s.refStore = queriesmock.NewMockReferralReadStore(s.mockCtrl)
	s.statsCache = queriesmock.NewMockStatsCache(s.mockCtrl)
	s.clock = clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
}

func (s *QueriesTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestQueriesSuite(t *testing.T) {
	suite.Run(t, new(QueriesTestSuite))
}

// ================================================================================
// CodeQueries
// ================================================================================

func (s *QueriesTestSuite) TestLookup() {
	view := queries.CodeViewFromDomain(builder.NewCouponBuilder().MustBuild())

	s.Run("cache hit skips the store", func() {
		s.SetupTest()
		q := queries.NewCodeQueries(s.codeStore, s.codeCache, s.clock)
		s.codeCache.EXPECT().GetCode(gomock.Any(), "SAVE10").Return(view, true, nil)

		got, err := q.Lookup(s.ctx, "  save10 ")

		s.Require().NoError(err)
		s.Equal(view, got)
	})

	s.Run("miss reads through and fills the cache", func() {
		s.SetupTest()
		q := queries.NewCodeQueries(s.codeStore, s.codeCache, s.clock)
		gomock.InOrder(
			s.codeCache.EXPECT().GetCode(gomock.Any(), "SAVE10").Return(nil, false, nil),
			s.codeStore.EXPECT().FindByCode(gomock.Any(), "SAVE10").Return(view, nil),
			s.codeCache.EXPECT().SetCode(gomock.Any(), view).Return(nil),
		)

		got, err := q.Lookup(s.ctx, "SAVE10")

		s.Require().NoError(err)
		s.Equal(view, got)
	})

	s.Run("cache failures degrade to the store", func() {
		s.SetupTest()
		q := queries.NewCodeQueries(s.codeStore, s.codeCache, s.clock)
		s.codeCache.EXPECT().GetCode(gomock.Any(), "SAVE10").Return(nil, false, errors.New("redis down"))
		s.codeStore.EXPECT().FindByCode(gomock.Any(), "SAVE10").Return(view, nil)
		s.codeCache.EXPECT().SetCode(gomock.Any(), view).Return(errors.New("redis down"))

		got, err := q.Lookup(s.ctx, "SAVE10")

		s.Require().NoError(err)
		s.Equal(view, got)
	})

	s.Run("blank code is not found without a lookup", func() {
		s.SetupTest()
		q := queries.NewCodeQueries(s.codeStore, nil, s.clock)

		_, err := q.Lookup(s.ctx, "   ")

		s.True(errs.Is(err, errs.ErrCodeNotFound))
	})
}

func (s *QueriesTestSuite) TestValidate() {
	code := builder.NewCouponBuilder().MustBuild()
	view := queries.CodeViewFromDomain(code)
	identity := uuid.New()

	s.Run("eligible with discount", func() {
		s.SetupTest()
		q := queries.NewCodeQueries(s.codeStore, nil, s.clock)
		s.codeStore.EXPECT().FindByCode(gomock.Any(), "SAVE10").Return(view, nil)
		s.codeStore.EXPECT().Usage(gomock.Any(), code.ID(), identity).Return(eligibility.Usage{}, nil)

		res, err := q.Validate(s.ctx, queries.ValidateInput{Code: "SAVE10", IdentityID: identity, OrderAmount: ptr.Of(int64(30000))})

		s.Require().NoError(err)
		s.Equal(eligibility.Eligible(3000), res.Verdict)
		s.Equal(view, res.Code)
	})

	s.Run("held capacity exhausts the code", func() {
		s.SetupTest()
		q := queries.NewCodeQueries(s.codeStore, nil, s.clock)
		s.codeStore.EXPECT().FindByCode(gomock.Any(), "SAVE10").Return(view, nil)
		s.codeStore.EXPECT().Usage(gomock.Any(), code.ID(), identity).Return(eligibility.Usage{ReservedCount: 1}, nil)

		res, err := q.Validate(s.ctx, queries.ValidateInput{Code: "SAVE10", IdentityID: identity, OrderAmount: ptr.Of(int64(30000))})

		s.Require().NoError(err)
		s.Equal(eligibility.ReasonGloballyExhausted, res.Verdict.Reason)
	})

	s.Run("verdict ignores a cached view", func() {
		s.SetupTest()
		q := queries.NewCodeQueries(s.codeStore, s.codeCache, s.clock)
		s.codeCache.EXPECT().GetCode(gomock.Any(), gomock.Any()).Times(0)
		s.codeCache.EXPECT().SetCode(gomock.Any(), gomock.Any()).Times(0)
		s.codeStore.EXPECT().FindByCode(gomock.Any(), "SAVE10").Return(view, nil)
		s.codeStore.EXPECT().Usage(gomock.Any(), code.ID(), identity).Return(eligibility.Usage{}, nil)

		res, err := q.Validate(s.ctx, queries.ValidateInput{Code: " save10", IdentityID: identity, OrderAmount: ptr.Of(int64(30000))})

		s.Require().NoError(err)
		s.Equal(eligibility.Eligible(3000), res.Verdict)
	})

	s.Run("unknown code", func() {
		s.SetupTest()
		q := queries.NewCodeQueries(s.codeStore, nil, s.clock)
		s.codeStore.EXPECT().FindByCode(gomock.Any(), "MISSING").Return(nil, errs.ErrCodeNotFound)

		res, err := q.Validate(s.ctx, queries.ValidateInput{Code: "missing", IdentityID: identity})

		s.Require().NoError(err)
		s.Equal(eligibility.Ineligible(eligibility.ReasonNotFound), res.Verdict)
		s.Nil(res.Code)
	})

	s.Run("storage faults propagate", func() {
		s.SetupTest()
		q := queries.NewCodeQueries(s.codeStore, nil, s.clock)
		s.codeStore.EXPECT().FindByCode(gomock.Any(), "SAVE10").Return(nil, errs.ErrStorageUnavailable)

		_, err := q.Validate(s.ctx, queries.ValidateInput{Code: "SAVE10", IdentityID: identity})

		s.True(errs.Is(err, errs.ErrStorageUnavailable))
	})

	s.Run("missing identity", func() {
		s.SetupTest()
		q := queries.NewCodeQueries(s.codeStore, nil, s.clock)

		_, err := q.Validate(s.ctx, queries.ValidateInput{Code: "SAVE10"})

		s.True(errs.Is(err, errs.ErrInvalidInput))
	})
}

// ================================================================================
// RedemptionQueries
// ================================================================================

func (s *QueriesTestSuite) TestGetByID() {
	s.Run("derives the expiry from the ttl", func() {
		s.SetupTest()
		q := queries.NewRedemptionQueries(s.resStore, 15*time.Minute)
		id := uuid.New()
		reservedAt := s.clock.Now()
		s.resStore.EXPECT().FindByID(gomock.Any(), id).Return(&queries.ReservationView{ID: id, ReservedAt: reservedAt}, nil)

		v, err := q.GetByID(s.ctx, id)

		s.Require().NoError(err)
		s.Equal(reservedAt.Add(15*time.Minute), v.ExpiresAt)
	})

	s.Run("not found", func() {
		s.SetupTest()
		q := queries.NewRedemptionQueries(s.resStore, 15*time.Minute)
		s.resStore.EXPECT().FindByID(gomock.Any(), gomock.Any()).Return(nil, errs.ErrReservationNotFound)

		_, err := q.GetByID(s.ctx, uuid.New())

		s.True(errs.Is(err, errs.ErrReservationNotFound))
	})
}

// ================================================================================
// AttributionQueries
// ================================================================================

func (s *QueriesTestSuite) TestReferralStats() {
	seller := uuid.New()

	s.Run("sums uses over the seller's codes", func() {
		s.SetupTest()
		q := queries.NewAttributionQueries(s.refStore, s.statsCache)
		s.statsCache.EXPECT().GetStats(gomock.Any(), seller).Return(nil, false, nil)
		s.refStore.EXPECT().ReferralCodesBySeller(gomock.Any(), seller).Return([]queries.ReferralCodeStat{
			{Code: "OTHER5", CurrentUses: 2},
			{Code: "WELCOME10", CurrentUses: 3},
		}, nil)
		s.statsCache.EXPECT().SetStats(gomock.Any(), gomock.Any()).Return(nil)

		total, err := q.TotalReferralUses(s.ctx, seller)

		s.Require().NoError(err)
		s.Equal(int64(5), total)
	})

	s.Run("seller without codes has zero", func() {
		s.SetupTest()
		q := queries.NewAttributionQueries(s.refStore, nil)
		s.refStore.EXPECT().ReferralCodesBySeller(gomock.Any(), seller).Return(nil, nil)

		stats, err := q.ReferralStats(s.ctx, seller)

		s.Require().NoError(err)
		s.Equal(int64(0), stats.TotalReferralUses)
		s.NotNil(stats.Codes)
		s.Empty(stats.Codes)
	})

	s.Run("cached aggregate is returned as is", func() {
		s.SetupTest()
		q := queries.NewAttributionQueries(s.refStore, s.statsCache)
		cached := &queries.ReferralStats{SellerID: seller, TotalReferralUses: 7, Codes: []queries.ReferralCodeStat{}}
		s.statsCache.EXPECT().GetStats(gomock.Any(), seller).Return(cached, true, nil)

		stats, err := q.ReferralStats(s.ctx, seller)

		s.Require().NoError(err)
		s.Equal(cached, stats)
	})
}
