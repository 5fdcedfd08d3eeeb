package resources

import (
	"context"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"

	"github.com/shrinkarr/shrinkarr/internal/config"
	"github.com/shrinkarr/shrinkarr/internal/models"
	"github.com/shrinkarr/shrinkarr/pkg/logger"
)

// Sampler produces point-in-time host readings.
type Sampler interface {
	Sample(ctx context.Context) (*models.ResourceSnapshot, error)
}

type hostSampler struct {
	cfg    *config.Config
	logger logger.Logger
}

func NewHostSampler(cfg *config.Config, log logger.Logger) Sampler {
	return &hostSampler{
		cfg:    cfg,
		logger: log,
	}
}

// Sample reads CPU, memory and GPU utilization. A failed axis is logged and
// left at its zero value so the throttle check never trips on it; missing GPU
// hardware yields an empty GPU list, not an error.
func (s *hostSampler) Sample(ctx context.Context) (*models.ResourceSnapshot, error) {
	snapshot := &models.ResourceSnapshot{
		SampledAt: time.Now(),
		GPUs:      make([]models.GPUStat, 0),
	}

	if usage, err := cpu.Percent(0, false); err != nil {
		s.logger.Warnf("resource sample: cpu unavailable: %v", err)
	} else if len(usage) > 0 {
		snapshot.CPUPct = usage[0]
	}

	if vm, err := mem.VirtualMemory(); err != nil {
		s.logger.Warnf("resource sample: memory unavailable: %v", err)
	} else {
		snapshot.MemoryPct = vm.UsedPercent
		snapshot.MemoryUsedMB = int64(vm.Used / 1024 / 1024)
		snapshot.MemoryTotalMB = int64(vm.Total / 1024 / 1024)
	}

	snapshot.GPUs = s.sampleGPUs(ctx)

	return snapshot, nil
}

func (s *hostSampler) sampleGPUs(ctx context.Context) []models.GPUStat {
	smiPath := s.cfg.Resources.NvidiaSmiPath
	if smiPath == "" {
		smiPath = "nvidia-smi"
	}
	bin, err := exec.LookPath(smiPath)
	if err != nil {
		// No NVIDIA tooling on this host; that is not a sampling failure.
		return nil
	}

	timeout := s.cfg.Resources.SampleTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, bin,
		"--query-gpu=utilization.gpu,name",
		"--format=csv,noheader,nounits",
	).Output()
	if err != nil {
		s.logger.Warnf("resource sample: gpu unavailable: %v", err)
		return nil
	}

	var gpus []models.GPUStat
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		parts := strings.SplitN(line, ",", 2)
		if len(parts) != 2 {
			continue
		}
		pct, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			continue
		}
		gpus = append(gpus, models.GPUStat{
			GPUPct: pct,
			Name:   strings.TrimSpace(parts[1]),
		})
	}
	return gpus
}
