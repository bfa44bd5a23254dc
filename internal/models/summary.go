package models

import "time"

// Summary is the per-user precomputed aggregate record maintained by the
// external analysis worker. Read-only from this system's perspective.
type Summary struct {
	UserID          string
	TotalPhotos     int64
	FirstDate       time.Time
	LastDate        time.Time
	BusiestDay      time.Time
	BusiestDayCount int64
	AvgPhotosPerDay float64
}

// DailyCount is one point of the per-day upload time series.
type DailyCount struct {
	Day   time.Time
	Count int64
}

// TypeCount is one slice of the content-type distribution.
type TypeCount struct {
	ContentType string
	Count       int64
}

// Report assembles the summary row and its two breakdowns into the single
// structure handed to the presentation layer. Numeric fields keep full
// precision; rounding happens only in the export views.
type Report struct {
	Summary     Summary
	DailyCounts []DailyCount
	TypeCounts  []TypeCount
}
