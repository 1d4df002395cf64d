package domain

import "time"

type CopyItem struct {
	Name       string
	SourcePath string
	TargetPath string
}

type CopyPlan struct {
	TargetDir     string
	Items         []CopyItem
	OverrideItems []CopyItem
	ImageCount    int
}

func (p CopyPlan) Overrides(item CopyItem) bool {
	for _, o := range p.OverrideItems {
		if o.TargetPath == item.TargetPath {
			return true
		}
	}
	return false
}

type CopyOutcome struct {
	Item     CopyItem
	Err      error
	Replaced bool
	TakenAt  *time.Time
}

func (o CopyOutcome) Ok() bool {
	return o.Err == nil
}

type CopyReport struct {
	Plan     CopyPlan
	Outcomes []CopyOutcome
	Listing  []string
}

func (r CopyReport) Copied() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Ok() {
			n++
		}
	}
	return n
}

func (r CopyReport) Failed() int {
	return len(r.Outcomes) - r.Copied()
}
