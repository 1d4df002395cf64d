package app

import (
	"context"
	"path/filepath"

	"imgcopy/internal/domain"
	"imgcopy/internal/logging"

	"gitlab.com/tozd/go/errors"
)

// Planner turns a batch into an ordered copy plan.
type Planner struct {
	FS     FileSystem
	Logger logging.Logger
}

// Plan resolves every name against both directories, in list order, and
// records which targets already exist and will be overwritten. A failing
// existence check only costs the override notice; the copy decides the
// outcome.
func (p *Planner) Plan(ctx context.Context, batch domain.CopyBatch) (domain.CopyPlan, error) {
	if p.FS == nil {
		return domain.CopyPlan{}, errors.New("planner requires FS")
	}
	if err := ctx.Err(); err != nil {
		return domain.CopyPlan{}, err
	}

	stop := p.Logger.Measure("Planning copy")
	defer stop()

	plan := domain.CopyPlan{
		TargetDir: batch.TargetDir,
		Items:     batch.Items(),
	}

	seen := make(map[string]bool, len(plan.Items))
	for _, item := range plan.Items {
		if domain.IsImageExtension(filepath.Ext(item.Name)) {
			plan.ImageCount++
		}
		if seen[item.TargetPath] {
			continue
		}
		seen[item.TargetPath] = true

		exists, err := p.FS.Exists(item.TargetPath)
		if err != nil {
			p.Logger.Warnf("Checking %s: %v", item.TargetPath, err)
			continue
		}
		if exists {
			plan.OverrideItems = append(plan.OverrideItems, item)
		}
	}

	p.Logger.Verbosef("Planned %d items (%d images), %d existing targets will be overwritten", len(plan.Items), plan.ImageCount, len(plan.OverrideItems))
	return plan, nil
}
