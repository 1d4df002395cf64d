package app

import (
	"context"
	"path/filepath"
	"time"

	"imgcopy/internal/domain"
	"imgcopy/internal/logging"

	"gitlab.com/tozd/go/errors"
)

// OutcomeFunc is called after every copy attempt, before the next one starts.
type OutcomeFunc func(outcome domain.CopyOutcome, current, total int)

// Copier copies a batch file by file and then lists the target directory.
type Copier struct {
	FS        FileSystem
	Exif      ExifReader
	ReadExif  bool
	Logger    logging.Logger
	OnOutcome OutcomeFunc
}

// Run plans, copies and then lists the target directory. Copy failures are
// reported per file and never stop the run. A listing failure is returned
// as-is together with every outcome gathered before it.
func (c *Copier) Run(ctx context.Context, batch domain.CopyBatch) (domain.CopyReport, error) {
	planner := Planner{FS: c.FS, Logger: c.Logger}
	plan, err := planner.Plan(ctx, batch)
	if err != nil {
		return domain.CopyReport{}, err
	}

	report := domain.CopyReport{Plan: plan}
	report.Outcomes, err = c.Copy(ctx, plan)
	if err != nil {
		return report, err
	}
	c.Logger.Infof("Copied %d of %d files, %d failed", report.Copied(), len(report.Outcomes), report.Failed())

	report.Listing, err = c.List(ctx, plan.TargetDir)
	if err != nil {
		return report, err
	}
	return report, nil
}

// Copy attempts every item in order. The returned error is only ever a
// context error; per-file failures live in the outcomes.
func (c *Copier) Copy(ctx context.Context, plan domain.CopyPlan) ([]domain.CopyOutcome, error) {
	if c.FS == nil {
		return nil, errors.New("copier requires FS")
	}

	stop := c.Logger.Measure("Copying files")
	defer stop()

	total := len(plan.Items)
	outcomes := make([]domain.CopyOutcome, 0, total)
	written := make(map[string]bool, total)
	for i, item := range plan.Items {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}

		// A name listed twice overwrites its own earlier copy.
		outcome := domain.CopyOutcome{Item: item, Replaced: plan.Overrides(item) || written[item.TargetPath]}
		if outcome.Replaced {
			c.Logger.Verbosef("Overwriting %s", item.TargetPath)
		}
		if err := c.FS.CopyFile(item.SourcePath, item.TargetPath); err != nil {
			outcome.Err = err
			c.Logger.Infof("Copy of %s failed: %v", item.Name, err)
		} else {
			written[item.TargetPath] = true
			outcome.TakenAt = c.takenAt(ctx, item)
		}

		outcomes = append(outcomes, outcome)
		if c.OnOutcome != nil {
			c.OnOutcome(outcome, i+1, total)
		}
	}
	return outcomes, nil
}

// List returns the target directory entries in filesystem order.
func (c *Copier) List(ctx context.Context, dir string) ([]string, error) {
	if c.FS == nil {
		return nil, errors.New("copier requires FS")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.FS.ReadDirNames(dir)
}

func (c *Copier) takenAt(ctx context.Context, item domain.CopyItem) *time.Time {
	if !c.ReadExif || c.Exif == nil || !domain.IsJpegExtension(filepath.Ext(item.Name)) {
		return nil
	}
	ts, err := c.Exif.DateTimeOriginal(ctx, item.TargetPath)
	if err != nil {
		c.Logger.Verbosef("No capture time for %s: %v", item.Name, err)
		return nil
	}
	return &ts
}
