package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/unelmacoin/greencoder/internal/contract"
	"github.com/unelmacoin/greencoder/internal/outwriter"
	"github.com/unelmacoin/greencoder/schema"
)

// ErrCheckFailed signals that the scan violated the configured policy
// thresholds. The CLI maps it to a non-zero exit code for CI gating.
var ErrCheckFailed = errors.New("policy check failed")

// CheckResultBuilder assembles a CheckResult step by step: run the scan,
// evaluate thresholds, build the result.
type CheckResultBuilder struct {
	ctx     context.Context
	cfg     *contract.Config
	mgr     contract.CacheManager
	summary *schema.ScanSummary
	result  *schema.CheckResult
}

// NewCheckResultBuilder creates a builder for the check workflow.
func NewCheckResultBuilder(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) *CheckResultBuilder {
	return &CheckResultBuilder{ctx: ctx, cfg: cfg, mgr: mgr}
}

// RunScan performs the workspace scan that the check evaluates.
func (b *CheckResultBuilder) RunScan() error {
	registry := NewDefaultRegistry(b.cfg.ComputedWeights, contract.StderrLogger())
	summary, err := ScanWorkspace(b.ctx, b.cfg, b.mgr, registry)
	if err != nil {
		return err
	}
	b.summary = summary
	return nil
}

// BuildResult evaluates the scan against the configured thresholds:
// every file must reach MinScore, and high-severity issues across the
// whole scan must not exceed MaxHighSev.
func (b *CheckResultBuilder) BuildResult() {
	result := &schema.CheckResult{
		Passed:     true,
		MinScore:   b.cfg.MinScore,
		MaxHighSev: b.cfg.MaxHighSev,
		TotalFiles: b.summary.TotalFiles,
	}

	for _, fr := range b.summary.Files {
		if fr.Result == nil {
			continue
		}
		high := schema.CountBySeverity(fr.Result.Issues).High
		result.HighSevSeen += high
		if fr.Result.Score < b.cfg.MinScore {
			result.FailedFiles = append(result.FailedFiles, schema.CheckViolation{
				Path:     fr.Path,
				Language: fr.Language,
				Score:    fr.Result.Score,
				HighSev:  high,
			})
		}
	}

	if len(result.FailedFiles) > 0 || result.HighSevSeen > b.cfg.MaxHighSev {
		result.Passed = false
	}
	b.result = result
}

// GetResult returns the built result, or nil before BuildResult.
func (b *CheckResultBuilder) GetResult() *schema.CheckResult {
	return b.result
}

// ExecuteCheck runs the check command for CI/CD gating. It scans the
// workspace, checks scores against thresholds, and returns ErrCheckFailed
// when any violation is found.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()

	builder := NewCheckResultBuilder(ctx, cfg, mgr)
	if err := builder.RunScan(); err != nil {
		return err
	}
	builder.BuildResult()

	result := builder.GetResult()
	if err := outwriter.WriteCheckResult(result, cfg, time.Since(start)); err != nil {
		return err
	}

	if !result.Passed {
		return fmt.Errorf("%w: %d violation(s), %d high-severity issue(s)",
			ErrCheckFailed, len(result.FailedFiles), result.HighSevSeen)
	}
	return nil
}
