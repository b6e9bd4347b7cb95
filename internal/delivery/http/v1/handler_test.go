package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-recruitment-scheduler/internal/delivery/http/middleware"
	v1 "go-recruitment-scheduler/internal/delivery/http/v1"
	"go-recruitment-scheduler/internal/domain"
	"go-recruitment-scheduler/pkg/apperror"
	"go-recruitment-scheduler/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMatchingUC struct {
	mock.Mock
}

func (m *MockMatchingUC) RankCandidates(ctx context.Context, jobID int64, minScore int) ([]domain.RankedCandidate, error) {
	args := m.Called(ctx, jobID, minScore)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RankedCandidate), args.Error(1)
}

func (m *MockMatchingUC) MatchCandidate(ctx context.Context, jobID int64, candidateID string) (*domain.RankedCandidate, error) {
	args := m.Called(ctx, jobID, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RankedCandidate), args.Error(1)
}

type MockAvailabilityUC struct {
	mock.Mock
}

func (m *MockAvailabilityUC) AddWindow(ctx context.Context, window *domain.AvailabilityWindow) error {
	return m.Called(ctx, window).Error(0)
}

func (m *MockAvailabilityUC) GetAvailableSlots(ctx context.Context, q domain.SlotQuery) ([]domain.TimeSlot, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimeSlot), args.Error(1)
}

func (m *MockAvailabilityUC) GetMutualSlots(ctx context.Context, candidateID, recruiterID string, duration time.Duration, from, to time.Time) ([]domain.TimeSlot, error) {
	args := m.Called(ctx, candidateID, recruiterID, duration, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimeSlot), args.Error(1)
}

type MockBookingUC struct {
	mock.Mock
}

func (m *MockBookingUC) ScheduleInterview(ctx context.Context, req domain.ScheduleRequest) (*domain.BookingResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingResult), args.Error(1)
}

func (m *MockBookingUC) GetInterview(ctx context.Context, id string) (*domain.ScheduledInterview, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduledInterview), args.Error(1)
}

func (m *MockBookingUC) CancelInterview(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBookingUC) RescheduleInterview(ctx context.Context, id string, preferredSlots []domain.TimeSlot) (*domain.BookingResult, error) {
	args := m.Called(ctx, id, preferredSlots)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingResult), args.Error(1)
}

func (m *MockBookingUC) ExpireStalePending(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

type fixture struct {
	router       *gin.Engine
	matching     *MockMatchingUC
	availability *MockAvailabilityUC
	booking      *MockBookingUC
}

func newFixture(limit int) *fixture {
	gin.SetMode(gin.TestMode)
	f := &fixture{
		matching:     new(MockMatchingUC),
		availability: new(MockAvailabilityUC),
		booking:      new(MockBookingUC),
	}
	f.router = v1.NewRouter(v1.RouterDeps{
		MatchingUC:        f.matching,
		AvailabilityUC:    f.availability,
		BookingUC:         f.booking,
		ScheduleRateLimit: middleware.ScheduleRateLimitConfig(limit, time.Minute),
		Logger:            logger.Nop(),
	})
	return f
}

func (f *fixture) do(t *testing.T, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func TestRankCandidatesHandler(t *testing.T) {
	f := newFixture(10)
	ranked := []domain.RankedCandidate{{
		Candidate: domain.CandidateProfile{ID: "c-1"},
		Match:     domain.MatchResult{Score: 70, FitTier: domain.FitGood},
	}}
	f.matching.On("RankCandidates", mock.Anything, int64(7), 50).Return(ranked, nil)

	w, env := f.do(t, http.MethodGet, "/v1/jobs/7/ranked-candidates?min_score=50", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Contains(t, string(env.Data), `"score":70`)

	w, _ = f.do(t, http.MethodGet, "/v1/jobs/abc/ranked-candidates", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMatchCandidateHandlerNotFound(t *testing.T) {
	f := newFixture(10)
	f.matching.On("MatchCandidate", mock.Anything, int64(7), "ghost").Return(nil, apperror.NotFound("Candidate not found"))

	w, env := f.do(t, http.MethodGet, "/v1/jobs/7/candidates/ghost/match", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Candidate not found", env.Message)
}

func TestAvailableSlotsHandler(t *testing.T) {
	f := newFixture(10)
	from := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	to := from.Add(8 * time.Hour)
	f.availability.On("GetAvailableSlots", mock.Anything, domain.SlotQuery{
		OwnerID: "rec-1", Duration: time.Hour, From: from, To: to,
	}).Return([]domain.TimeSlot{{Start: from, End: from.Add(time.Hour)}}, nil)

	w, env := f.do(t, http.MethodGet, "/v1/owners/rec-1/slots?duration=60&from=2026-03-02T09:00:00Z&to=2026-03-02T17:00:00Z", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"total":1`)

	w, _ = f.do(t, http.MethodGet, "/v1/owners/rec-1/slots?duration=0&from=2026-03-02T09:00:00Z&to=2026-03-02T17:00:00Z", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleHandler(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	req := domain.ScheduleRequest{
		JobID:           42,
		CandidateID:     "cand-1",
		RecruiterID:     "rec-1",
		DurationMinutes: 60,
		PreferredSlots:  []domain.TimeSlot{{Start: start, End: start.Add(time.Hour), Timezone: "UTC"}},
	}

	t.Run("Created on success", func(t *testing.T) {
		f := newFixture(10)
		f.booking.On("ScheduleInterview", mock.Anything, mock.AnythingOfType("domain.ScheduleRequest")).Return(&domain.BookingResult{
			Success:   true,
			Interview: &domain.ScheduledInterview{ID: "it-1", Status: domain.InterviewConfirmed},
		}, nil)

		w, env := f.do(t, http.MethodPost, "/v1/interviews", req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, string(env.Data), `"it-1"`)
	})

	t.Run("Conflict when no slot is free", func(t *testing.T) {
		f := newFixture(10)
		f.booking.On("ScheduleInterview", mock.Anything, mock.Anything).Return(&domain.BookingResult{
			Success:   false,
			Conflicts: []domain.ConflictReport{{Reason: domain.ConflictExistingInterview, ExistingInterviewID: "it-0"}},
		}, nil)

		w, env := f.do(t, http.MethodPost, "/v1/interviews", req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.False(t, env.Success)
		assert.Contains(t, string(env.Error), `"it-0"`)
	})

	t.Run("External failure is a bad gateway", func(t *testing.T) {
		f := newFixture(10)
		f.booking.On("ScheduleInterview", mock.Anything, mock.Anything).Return(nil, apperror.External(true, assert.AnError))

		w, env := f.do(t, http.MethodPost, "/v1/interviews", req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, string(env.Error), `"retryable":true`)
	})

	t.Run("Rate limited after the configured budget", func(t *testing.T) {
		f := newFixture(1)
		f.booking.On("ScheduleInterview", mock.Anything, mock.Anything).Return(&domain.BookingResult{Success: true}, nil)

		w, _ := f.do(t, http.MethodPost, "/v1/interviews", req)
		assert.Equal(t, http.StatusCreated, w.Code)
		w, _ = f.do(t, http.MethodPost, "/v1/interviews", req)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		f.booking.AssertNumberOfCalls(t, "ScheduleInterview", 1)
	})

	t.Run("Malformed body is rejected", func(t *testing.T) {
		f := newFixture(10)
		w, _ := f.do(t, http.MethodPost, "/v1/interviews", "not an object")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		f.booking.AssertNotCalled(t, "ScheduleInterview", mock.Anything, mock.Anything)
	})
}

func TestCancelAndRescheduleHandlers(t *testing.T) {
	f := newFixture(10)
	f.booking.On("CancelInterview", mock.Anything, "it-1").Return(nil)
	f.booking.On("CancelInterview", mock.Anything, "it-2").Return(apperror.Conflict("Interview in status failed cannot be cancelled", nil))
	f.booking.On("RescheduleInterview", mock.Anything, "it-3", mock.Anything).Return(&domain.BookingResult{
		Success:   true,
		Interview: &domain.ScheduledInterview{ID: "it-4"},
	}, nil)

	w, _ := f.do(t, http.MethodPost, "/v1/interviews/it-1/cancel", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = f.do(t, http.MethodPost, "/v1/interviews/it-2/cancel", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	start := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)
	w, env := f.do(t, http.MethodPost, "/v1/interviews/it-3/reschedule", v1.RescheduleRequest{
		PreferredSlots: []domain.TimeSlot{{Start: start, End: start.Add(time.Hour)}},
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, string(env.Data), `"it-4"`)
}
