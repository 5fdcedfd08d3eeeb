package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/shrinkarr/shrinkarr/internal/config"
	"github.com/shrinkarr/shrinkarr/internal/encoder"
	"github.com/shrinkarr/shrinkarr/internal/models"
	"github.com/shrinkarr/shrinkarr/internal/profiles"
	"github.com/shrinkarr/shrinkarr/internal/queue"
	"github.com/shrinkarr/shrinkarr/internal/resources"
	"github.com/shrinkarr/shrinkarr/internal/schedule"
	"github.com/shrinkarr/shrinkarr/pkg/logger"
)

const defaultTickInterval = 5 * time.Second

// EngineRunner executes one admitted job to its terminal state.
type EngineRunner interface {
	Run(ctx context.Context, job *models.Job, profile *models.EncodingProfile, niceLevel int) encoder.Outcome
}

// Scheduler is the admission control loop: each tick it checks the concurrency
// budget, the schedule window and the resource headroom, then admits at most
// one job and hands it to an execution engine.
type Scheduler struct {
	cfg            *config.Config
	queueRepo      queue.Repository
	queueUC        queue.UseCase
	scheduleRepo   schedule.Repository
	thresholdsRepo resources.Repository
	profilesRepo   profiles.Repository
	evaluator      *schedule.Evaluator
	sampler        resources.Sampler
	engine         EngineRunner
	logger         logger.Logger

	mu      sync.Mutex
	active  int
	cancels map[string]context.CancelFunc
	wg      sync.WaitGroup
}

func NewScheduler(
	cfg *config.Config,
	queueRepo queue.Repository,
	queueUC queue.UseCase,
	scheduleRepo schedule.Repository,
	thresholdsRepo resources.Repository,
	profilesRepo profiles.Repository,
	evaluator *schedule.Evaluator,
	sampler resources.Sampler,
	engine EngineRunner,
	log logger.Logger,
) *Scheduler {
	return &Scheduler{
		cfg:            cfg,
		queueRepo:      queueRepo,
		queueUC:        queueUC,
		scheduleRepo:   scheduleRepo,
		thresholdsRepo: thresholdsRepo,
		profilesRepo:   profilesRepo,
		evaluator:      evaluator,
		sampler:        sampler,
		engine:         engine,
		logger:         log,
		cancels:        make(map[string]context.CancelFunc),
	}
}

// Run ticks until ctx is cancelled, then waits for live engines to wind down.
// Jobs already running are not pre-empted by a closing window; only new
// admissions are blocked.
func (s *Scheduler) Run(ctx context.Context) {
	interval := s.cfg.Scheduler.TickInterval
	if interval <= 0 {
		interval = defaultTickInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Infof("scheduler: started, tick interval %s", interval)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler: stopping, cancelling active jobs")
			s.cancelAll()
			s.wg.Wait()
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick performs one admission decision. Any infrastructure failure degrades to
// "do not admit this tick"; the loop itself never dies.
func (s *Scheduler) Tick(ctx context.Context) {
	scheduleCfg, err := s.scheduleRepo.GetSchedule(ctx)
	if err != nil {
		s.logger.Errorf("scheduler: load schedule: %v", err)
		return
	}

	maxJobs := scheduleCfg.MaxConcurrentJobs
	if maxJobs < 1 {
		maxJobs = 1
	}
	if s.activeCount() >= maxJobs {
		return
	}

	if !s.evaluator.WithinWindow(scheduleCfg, time.Now()) {
		s.logger.Debug("scheduler: outside encoding window")
		return
	}

	thresholds, err := s.thresholdsRepo.GetThresholds(ctx)
	if err != nil {
		s.logger.Errorf("scheduler: load thresholds: %v", err)
		return
	}

	sampleCtx, cancel := context.WithTimeout(ctx, s.sampleTimeout())
	snapshot, err := s.sampler.Sample(sampleCtx)
	cancel()
	if err != nil {
		s.logger.Errorf("scheduler: resource sample: %v", err)
		return
	}
	if resources.IsThrottled(snapshot, thresholds) {
		s.logger.Infof("scheduler: throttled (cpu %.1f%%, mem %.1f%%)", snapshot.CPUPct, snapshot.MemoryPct)
		return
	}

	strategy := models.SortStrategy(s.cfg.Scheduler.DefaultStrategy)
	if !strategy.Valid() {
		strategy = models.SortByPriority
	}
	job, err := s.queueRepo.NextEligible(ctx, strategy)
	if err != nil {
		s.logger.Errorf("scheduler: next eligible: %v", err)
		return
	}
	if job == nil {
		return
	}

	if !s.reserveSlot(maxJobs) {
		return
	}

	admitted, err := s.queueUC.Admit(ctx, job.JobID)
	if err != nil {
		s.releaseSlot(job.JobID)
		if errors.Is(err, queue.ErrNotPending) {
			// Lost the race to a concurrent admission; next tick will retry.
			return
		}
		s.logger.Errorf("scheduler: admit %s: %v", job.JobID, err)
		return
	}

	profile, err := s.profilesRepo.GetProfile(ctx, admitted.ProfileID)
	if err != nil {
		s.releaseSlot(job.JobID)
		if failErr := s.queueUC.Fail(ctx, admitted.JobID, "encoding profile unavailable: "+err.Error()); failErr != nil {
			s.logger.Errorf("scheduler: fail %s: %v", admitted.JobID, failErr)
		}
		return
	}

	s.launch(admitted, profile, thresholds.NiceLevel)
}

func (s *Scheduler) launch(job *models.Job, profile *models.EncodingProfile, niceLevel int) {
	jobCtx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	s.cancels[job.JobID] = cancel
	s.mu.Unlock()

	s.logger.Infof("scheduler: admitted job %s (priority %d, profile %s)", job.JobID, job.Priority, profile.Name)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.releaseSlot(job.JobID)
		outcome := s.engine.Run(jobCtx, job, profile, niceLevel)
		s.logger.Infof("scheduler: job %s finished with outcome %s", job.JobID, outcome)
	}()
}

// Cancel requests cancellation of a running job. It returns ErrNotRunning when
// no live engine holds the job.
func (s *Scheduler) Cancel(jobID string) error {
	s.mu.Lock()
	cancel, ok := s.cancels[jobID]
	s.mu.Unlock()
	if !ok {
		return queue.ErrNotRunning
	}
	cancel()
	return nil
}

func (s *Scheduler) activeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// reserveSlot claims a concurrency slot before the admit CAS so concurrent
// ticks can never exceed the budget.
func (s *Scheduler) reserveSlot(maxJobs int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active >= maxJobs {
		return false
	}
	s.active++
	return true
}

func (s *Scheduler) releaseSlot(jobID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active > 0 {
		s.active--
	}
	delete(s.cancels, jobID)
}

func (s *Scheduler) cancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cancel := range s.cancels {
		cancel()
	}
}

func (s *Scheduler) sampleTimeout() time.Duration {
	if s.cfg.Resources.SampleTimeout > 0 {
		return s.cfg.Resources.SampleTimeout
	}
	return 3 * time.Second
}
