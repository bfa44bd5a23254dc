package summary

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruchira-b/ETL-pipeline/internal/common"
	"github.com/ruchira-b/ETL-pipeline/internal/logging"
	"github.com/ruchira-b/ETL-pipeline/internal/models"
)

// -------- test fakes --------

type fakeImagesRepo struct {
	daily    []models.DailyCount
	dailyErr error
	types    []models.TypeCount
	typesErr error
}

func (f *fakeImagesRepo) ProcessedCount(ctx context.Context, userID string) (int64, error) {
	return 0, errors.New("not implemented")
}

func (f *fakeImagesRepo) DailyCounts(ctx context.Context, userID string) ([]models.DailyCount, error) {
	return f.daily, f.dailyErr
}

func (f *fakeImagesRepo) TypeCounts(ctx context.Context, userID string) ([]models.TypeCount, error) {
	return f.types, f.typesErr
}

type fakeSummariesRepo struct {
	summary *models.Summary
	err     error
}

func (f *fakeSummariesRepo) Exists(ctx context.Context, userID string) (bool, error) {
	return f.summary != nil, nil
}

func (f *fakeSummariesRepo) Get(ctx context.Context, userID string) (*models.Summary, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.summary == nil {
		return nil, common.ErrorNotFound
	}
	return f.summary, nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testSummary() *models.Summary {
	return &models.Summary{
		UserID:          "admin",
		TotalPhotos:     120,
		FirstDate:       time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		LastDate:        time.Date(2025, 4, 12, 0, 0, 0, 0, time.UTC),
		BusiestDay:      time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC),
		BusiestDayCount: 14,
		AvgPhotosPerDay: 8.57,
	}
}

// -------- tests --------

func TestFetch_AssemblesReport(t *testing.T) {
	img := &fakeImagesRepo{
		daily: []models.DailyCount{
			{Day: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), Count: 3},
			{Day: time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC), Count: 14},
		},
		types: []models.TypeCount{
			{ContentType: "image/jpeg", Count: 100},
			{ContentType: "image/png", Count: 20},
		},
	}
	agg := NewAggregator(img, &fakeSummariesRepo{summary: testSummary()}, testLogger())

	report, err := agg.Fetch(context.Background(), "admin")
	require.NoError(t, err)

	assert.Equal(t, int64(120), report.Summary.TotalPhotos)
	assert.Equal(t, 8.57, report.Summary.AvgPhotosPerDay)
	require.Len(t, report.DailyCounts, 2)
	require.Len(t, report.TypeCounts, 2)
	assert.Equal(t, "image/jpeg", report.TypeCounts[0].ContentType)
}

func TestFetch_AbsentSummary(t *testing.T) {
	agg := NewAggregator(&fakeImagesRepo{}, &fakeSummariesRepo{}, testLogger())

	report, err := agg.Fetch(context.Background(), "admin")

	// Never a partially populated structure.
	assert.Nil(t, report)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestFetch_BreakdownErrorPropagates(t *testing.T) {
	img := &fakeImagesRepo{dailyErr: errors.New("timeout")}
	agg := NewAggregator(img, &fakeSummariesRepo{summary: testSummary()}, testLogger())

	report, err := agg.Fetch(context.Background(), "admin")

	assert.Nil(t, report)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
}
