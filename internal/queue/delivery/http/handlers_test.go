package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrinkarr/shrinkarr/internal/config"
	"github.com/shrinkarr/shrinkarr/internal/models"
	"github.com/shrinkarr/shrinkarr/internal/queue"
	"github.com/shrinkarr/shrinkarr/pkg/logger"
)

type stubUseCase struct {
	queue.UseCase

	job        *models.Job
	enqueueErr error
	getErr     error
	deleteErr  error
	retryErr   error
	reprioErr  error
}

func (s *stubUseCase) EnqueueJob(ctx context.Context, input *models.JobCreateInput) (*models.Job, error) {
	if s.enqueueErr != nil {
		return nil, s.enqueueErr
	}
	return s.job, nil
}

func (s *stubUseCase) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.job, nil
}

func (s *stubUseCase) DeleteJob(ctx context.Context, jobID string) error {
	return s.deleteErr
}

func (s *stubUseCase) RetryJob(ctx context.Context, jobID string) (*models.Job, error) {
	if s.retryErr != nil {
		return nil, s.retryErr
	}
	return s.job, nil
}

func (s *stubUseCase) Reprioritize(ctx context.Context, strategy models.SortStrategy) (int64, error) {
	if s.reprioErr != nil {
		return 0, s.reprioErr
	}
	return 3, nil
}

func handlerTestLogger() logger.Logger {
	l := logger.NewApiLogger(&config.Config{
		Logger: config.Logger{Development: true, Encoding: "console", Level: "error"},
	})
	l.InitLogger()
	return l
}

func jsonContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestEnqueueJobHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		uc := &stubUseCase{job: &models.Job{JobID: "job-1", Status: models.JobStatusPending}}
		h := NewQueueHandlers(uc, handlerTestLogger())

		c, rec := jsonContext(t, http.MethodPost, "/api/v1/queue",
			`{"source_path":"/media/show.mkv","profile_id":"profile-1"}`)
		require.NoError(t, h.EnqueueJob()(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), "job-1")
	})

	t.Run("duplicate maps to conflict", func(t *testing.T) {
		uc := &stubUseCase{enqueueErr: queue.ErrDuplicateJob}
		h := NewQueueHandlers(uc, handlerTestLogger())

		c, rec := jsonContext(t, http.MethodPost, "/api/v1/queue",
			`{"source_path":"/media/show.mkv","profile_id":"profile-1"}`)
		require.NoError(t, h.EnqueueJob()(c))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestGetJobHandler_NotFound(t *testing.T) {
	uc := &stubUseCase{getErr: queue.ErrJobNotFound}
	h := NewQueueHandlers(uc, handlerTestLogger())

	c, rec := jsonContext(t, http.MethodGet, "/api/v1/queue/job-1", "")
	c.SetParamNames("job_id")
	c.SetParamValues("job-1")
	require.NoError(t, h.GetJob()(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteJobHandler_LockedWhileProcessing(t *testing.T) {
	uc := &stubUseCase{deleteErr: queue.ErrJobLocked}
	h := NewQueueHandlers(uc, handlerTestLogger())

	c, rec := jsonContext(t, http.MethodDelete, "/api/v1/queue/job-1", "")
	c.SetParamNames("job_id")
	c.SetParamValues("job-1")
	require.NoError(t, h.DeleteJob()(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRetryJobHandler_NotPending(t *testing.T) {
	uc := &stubUseCase{retryErr: queue.ErrNotPending}
	h := NewQueueHandlers(uc, handlerTestLogger())

	c, rec := jsonContext(t, http.MethodPost, "/api/v1/queue/job-1/retry", "")
	c.SetParamNames("job_id")
	c.SetParamValues("job-1")
	require.NoError(t, h.RetryJob()(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestReprioritizeHandler(t *testing.T) {
	t.Run("rewrites priorities", func(t *testing.T) {
		uc := &stubUseCase{}
		h := NewQueueHandlers(uc, handlerTestLogger())

		c, rec := jsonContext(t, http.MethodPost, "/api/v1/queue/prioritize", `{"strategy":"size"}`)
		require.NoError(t, h.Reprioritize()(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"reprioritized":3`)
	})

	t.Run("unknown strategy maps to bad request", func(t *testing.T) {
		uc := &stubUseCase{reprioErr: queue.ErrInvalidStrategy}
		h := NewQueueHandlers(uc, handlerTestLogger())

		c, rec := jsonContext(t, http.MethodPost, "/api/v1/queue/prioritize", `{"strategy":"bogus"}`)
		require.NoError(t, h.Reprioritize()(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
