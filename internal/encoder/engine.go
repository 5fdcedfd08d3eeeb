package encoder

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/shrinkarr/shrinkarr/internal/config"
	"github.com/shrinkarr/shrinkarr/internal/models"
	"github.com/shrinkarr/shrinkarr/internal/queue"
	"github.com/shrinkarr/shrinkarr/pkg/logger"
)

type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeFailed    Outcome = "failed"
	OutcomeCancelled Outcome = "cancelled"
)

const defaultGracePeriod = 10 * time.Second

// Engine executes one admitted job as an external transcode subprocess and
// reconciles its outcome back into the queue.
type Engine struct {
	cfg     *config.Config
	queueUC queue.UseCase
	logger  logger.Logger

	// commandFor is swappable in tests.
	commandFor func(profile *models.EncodingProfile, inputPath, outputPath string) (string, []string)
}

func NewEngine(cfg *config.Config, queueUC queue.UseCase, log logger.Logger) *Engine {
	e := &Engine{
		cfg:     cfg,
		queueUC: queueUC,
		logger:  log,
	}
	e.commandFor = func(profile *models.EncodingProfile, inputPath, outputPath string) (string, []string) {
		bin := cfg.Encoder.FFmpegPath
		if bin == "" {
			bin = "ffmpeg"
		}
		return bin, BuildArgs(profile, inputPath, outputPath)
	}
	return e
}

// Run transcodes job.SourcePath with the given profile and replaces the source
// atomically on success. On any non-success path the source file is left
// untouched and the partial temp output is discarded. Cancellation via ctx
// transitions the job to paused, never to failed.
func (e *Engine) Run(ctx context.Context, job *models.Job, profile *models.EncodingProfile, niceLevel int) Outcome {
	started := time.Now()
	// State reporting must outlive the job context: a cancelled job still has
	// to record its paused transition.
	reportCtx := context.WithoutCancel(ctx)

	srcInfo, err := os.Stat(job.SourcePath)
	if err != nil {
		return e.failJob(reportCtx, job, fmt.Sprintf("source file unavailable: %v", err))
	}

	duration := e.probeDuration(ctx, job.SourcePath)

	tempPath := tempOutputPath(job)
	defer os.Remove(tempPath)

	bin, args := e.commandFor(profile, job.SourcePath, tempPath)
	cmd := exec.Command(bin, args...)
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return e.failJob(reportCtx, job, fmt.Sprintf("failed to open encoder stderr: %v", err))
	}
	if err := cmd.Start(); err != nil {
		return e.failJob(reportCtx, job, fmt.Sprintf("failed to start encoder: %v", err))
	}
	e.applyNice(cmd.Process.Pid, niceLevel)

	waitDone := make(chan struct{})
	go e.watchCancellation(ctx, cmd, waitDone)

	e.consumeProgress(reportCtx, job, stderr, duration)

	waitErr := cmd.Wait()
	close(waitDone)

	if ctx.Err() != nil {
		if err := e.queueUC.Pause(reportCtx, job.JobID); err != nil {
			e.logger.Errorf("engine: pause job %s: %v", job.JobID, err)
		}
		e.logger.Infof("engine: job %s cancelled, source untouched", job.JobID)
		return OutcomeCancelled
	}
	if waitErr != nil {
		return e.failJob(reportCtx, job, fmt.Sprintf("encoder exited abnormally: %v", waitErr))
	}

	outInfo, err := os.Stat(tempPath)
	if err != nil || outInfo.Size() == 0 {
		return e.failJob(reportCtx, job, "output verification failed: file missing or empty")
	}

	// Same-filesystem rename: the one operation that must not be interrupted.
	if err := os.Rename(tempPath, job.SourcePath); err != nil {
		return e.failJob(reportCtx, job, fmt.Sprintf("failed to replace source file: %v", err))
	}

	record := &models.HistoryRecord{
		JobID:         job.JobID,
		SourcePath:    job.SourcePath,
		OriginalSize:  srcInfo.Size(),
		NewSize:       outInfo.Size(),
		SavingsBytes:  srcInfo.Size() - outInfo.Size(),
		EncodeSeconds: time.Since(started).Seconds(),
		Codec:         profile.VideoCodec,
		Container:     profile.Container,
	}
	if err := e.queueUC.Complete(reportCtx, job.JobID, record); err != nil {
		e.logger.Errorf("engine: complete job %s: %v", job.JobID, err)
		return OutcomeFailed
	}
	e.logger.Infof("engine: job %s completed, saved %d bytes in %.1fs",
		job.JobID, record.SavingsBytes, record.EncodeSeconds)
	return OutcomeCompleted
}

// watchCancellation sends SIGTERM on context cancellation and escalates to
// SIGKILL after the grace period.
func (e *Engine) watchCancellation(ctx context.Context, cmd *exec.Cmd, waitDone <-chan struct{}) {
	select {
	case <-waitDone:
		return
	case <-ctx.Done():
	}
	grace := e.cfg.Encoder.GracePeriod
	if grace <= 0 {
		grace = defaultGracePeriod
	}
	if err := cmd.Process.Signal(syscall.SIGTERM); err != nil {
		return
	}
	select {
	case <-waitDone:
	case <-time.After(grace):
		_ = cmd.Process.Kill()
	}
}

func (e *Engine) consumeProgress(reportCtx context.Context, job *models.Job, stderr io.Reader, duration float64) {
	scanner := bufio.NewScanner(stderr)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var lastPct float64
	for scanner.Scan() {
		line := scanner.Text()
		secs, ok := ParseProgressTime(line)
		if !ok || duration <= 0 {
			continue
		}
		pct := ClampProgress(secs / duration * 100)
		if pct <= lastPct {
			continue
		}
		lastPct = pct
		if err := e.queueUC.UpdateProgress(reportCtx, job.JobID, pct); err != nil {
			e.logger.Warnf("engine: update progress for %s: %v", job.JobID, err)
		}
	}
}

func (e *Engine) probeDuration(ctx context.Context, path string) float64 {
	bin := e.cfg.Encoder.FFprobePath
	if bin == "" {
		bin = "ffprobe"
	}
	probe, err := exec.LookPath(bin)
	if err != nil {
		e.logger.Warnf("engine: ffprobe unavailable, progress disabled: %v", err)
		return 0
	}
	out, err := exec.CommandContext(ctx, probe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "csv=p=0",
		path,
	).Output()
	if err != nil {
		e.logger.Warnf("engine: probe duration for %s: %v", path, err)
		return 0
	}
	duration, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		e.logger.Warnf("engine: invalid probe output for %s: %v", path, err)
		return 0
	}
	return duration
}

func (e *Engine) failJob(reportCtx context.Context, job *models.Job, message string) Outcome {
	if err := e.queueUC.Fail(reportCtx, job.JobID, message); err != nil {
		e.logger.Errorf("engine: fail job %s: %v", job.JobID, err)
	}
	e.logger.Warnf("engine: job %s failed: %s", job.JobID, message)
	return OutcomeFailed
}

func (e *Engine) applyNice(pid, niceLevel int) {
	if niceLevel == 0 {
		return
	}
	if err := syscall.Setpriority(syscall.PRIO_PROCESS, pid, niceLevel); err != nil {
		e.logger.Warnf("engine: set nice level %d on pid %d: %v", niceLevel, pid, err)
	}
}

// tempOutputPath places the intermediate output alongside the source so the
// final replacement is a single same-filesystem rename.
func tempOutputPath(job *models.Job) string {
	dir := filepath.Dir(job.SourcePath)
	base := filepath.Base(job.SourcePath)
	suffix := job.JobID
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return filepath.Join(dir, "."+base+"."+suffix+".tmp")
}
