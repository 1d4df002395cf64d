package app

import (
	"context"
	"io/fs"
	"sort"
	"testing"
	"time"

	"imgcopy/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sourceWith(names ...string) *mockFS {
	mock := newMockFS("/src", "/dst")
	for _, name := range names {
		mock.files["/src/"+name] = "content of " + name
	}
	return mock
}

var abc = domain.CopyBatch{SourceDir: "/src", TargetDir: "/dst", Files: []string{"a.jpg", "b.jpg", "c.jpg"}}

func TestRunCopiesEverything(t *testing.T) {
	mock := sourceWith("a.jpg", "b.jpg", "c.jpg")
	copier := Copier{FS: mock}

	report, err := copier.Run(context.Background(), abc)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Copied())
	assert.Zero(t, report.Failed())
	for _, name := range abc.Files {
		assert.Equal(t, mock.files["/src/"+name], mock.files["/dst/"+name])
	}

	listing := append([]string(nil), report.Listing...)
	sort.Strings(listing)
	assert.Equal(t, []string{"a.jpg", "b.jpg", "c.jpg"}, listing)
}

func TestRunContinuesAfterFailure(t *testing.T) {
	mock := sourceWith("a.jpg", "c.jpg")
	var seen []string
	copier := Copier{
		FS: mock,
		OnOutcome: func(o domain.CopyOutcome, current, total int) {
			assert.Equal(t, 3, total)
			assert.Equal(t, len(seen)+1, current)
			seen = append(seen, o.Item.Name)
		},
	}

	report, err := copier.Run(context.Background(), abc)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.jpg", "c.jpg"}, seen)
	require.Len(t, report.Outcomes, 3)
	assert.True(t, report.Outcomes[0].Ok())
	assert.False(t, report.Outcomes[1].Ok())
	assert.ErrorIs(t, report.Outcomes[1].Err, fs.ErrNotExist)
	assert.True(t, report.Outcomes[2].Ok())
	assert.Equal(t, []string{"a.jpg", "c.jpg"}, mock.copied)
}

func TestFailureAtAnyPositionLeavesOthersAlone(t *testing.T) {
	for i := range abc.Files {
		mock := sourceWith(abc.Files...)
		mock.failCopy["/src/"+abc.Files[i]] = fs.ErrPermission

		copier := Copier{FS: mock}
		report, err := copier.Run(context.Background(), abc)
		require.NoError(t, err)
		for j, outcome := range report.Outcomes {
			assert.Equal(t, j != i, outcome.Ok(), "position %d with failure at %d", j, i)
		}
	}
}

func TestRunIsIdempotent(t *testing.T) {
	mock := sourceWith("a.jpg", "b.jpg", "c.jpg")
	copier := Copier{FS: mock}

	first, err := copier.Run(context.Background(), abc)
	require.NoError(t, err)
	second, err := copier.Run(context.Background(), abc)
	require.NoError(t, err)

	assert.ElementsMatch(t, first.Listing, second.Listing)
	assert.Len(t, second.Plan.OverrideItems, 3)
}

func TestRunReturnsListingErrorAfterCopies(t *testing.T) {
	mock := sourceWith("a.jpg")
	delete(mock.dirs, "/dst")

	calls := 0
	copier := Copier{FS: mock, OnOutcome: func(domain.CopyOutcome, int, int) { calls++ }}

	report, err := copier.Run(context.Background(), abc)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, 3, calls)
	assert.Len(t, report.Outcomes, 3)
	assert.Zero(t, report.Copied())
	assert.Nil(t, report.Listing)
}

func TestCopyStopsOnCancel(t *testing.T) {
	mock := sourceWith("a.jpg", "b.jpg", "c.jpg")
	ctx, cancel := context.WithCancel(context.Background())
	copier := Copier{
		FS: mock,
		OnOutcome: func(o domain.CopyOutcome, current, total int) {
			if current == 1 {
				cancel()
			}
		},
	}

	plan := domain.CopyPlan{Items: abc.Items(), TargetDir: "/dst"}
	outcomes, err := copier.Copy(ctx, plan)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, outcomes, 1)
}

func TestCopyAnnotatesCaptureTime(t *testing.T) {
	taken := time.Date(2023, 6, 1, 9, 30, 0, 0, time.Local)
	mock := sourceWith("a.jpg", "b.png")
	copier := Copier{
		FS:       mock,
		Exif:     mockExif{timestamps: map[string]time.Time{"/dst/a.jpg": taken}},
		ReadExif: true,
	}

	batch := domain.CopyBatch{SourceDir: "/src", TargetDir: "/dst", Files: []string{"a.jpg", "b.png"}}
	report, err := copier.Run(context.Background(), batch)
	require.NoError(t, err)
	require.NotNil(t, report.Outcomes[0].TakenAt)
	assert.True(t, report.Outcomes[0].TakenAt.Equal(taken))
	assert.Nil(t, report.Outcomes[1].TakenAt)
}

func TestCopyIgnoresMissingExif(t *testing.T) {
	mock := sourceWith("a.jpg")
	copier := Copier{FS: mock, Exif: mockExif{}, ReadExif: true}

	batch := domain.CopyBatch{SourceDir: "/src", TargetDir: "/dst", Files: []string{"a.jpg"}}
	report, err := copier.Run(context.Background(), batch)
	require.NoError(t, err)
	assert.True(t, report.Outcomes[0].Ok())
	assert.Nil(t, report.Outcomes[0].TakenAt)
}

func TestCopierRequiresFS(t *testing.T) {
	copier := Copier{}
	_, err := copier.Copy(context.Background(), domain.CopyPlan{})
	assert.Error(t, err)
	_, err = copier.List(context.Background(), "/dst")
	assert.Error(t, err)
}

func TestRepeatedNameIsMarkedReplaced(t *testing.T) {
	mock := sourceWith("a.jpg")
	copier := Copier{FS: mock}

	batch := domain.CopyBatch{SourceDir: "/src", TargetDir: "/dst", Files: []string{"a.jpg", "a.jpg"}}
	report, err := copier.Run(context.Background(), batch)
	require.NoError(t, err)
	require.Len(t, report.Outcomes, 2)
	assert.False(t, report.Outcomes[0].Replaced)
	assert.True(t, report.Outcomes[1].Replaced)
}

func TestFailedCopyDoesNotCountAsWritten(t *testing.T) {
	mock := sourceWith("a.jpg")
	mock.failCopy["/src/a.jpg"] = fs.ErrPermission
	copier := Copier{FS: mock}

	batch := domain.CopyBatch{SourceDir: "/src", TargetDir: "/dst", Files: []string{"a.jpg", "a.jpg"}}
	report, err := copier.Run(context.Background(), batch)
	require.NoError(t, err)
	for _, outcome := range report.Outcomes {
		assert.False(t, outcome.Replaced)
	}
}
