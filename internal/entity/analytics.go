package entity

import "time"

// RangeQuery is the date-range selector shared by the analytics endpoints.
// Precedence: StartDate+EndDate, then Period, then Days (default 30).
type RangeQuery struct {
	StartDate string `form:"startDate" json:"startDate,omitempty"`
	EndDate   string `form:"endDate" json:"endDate,omitempty"`
	Period    string `form:"period" json:"period,omitempty"`
	Days      *int   `form:"days" json:"days,omitempty"`
}

type SeriesPoint struct {
	Date           string  `json:"date"`
	Day            string  `json:"day"`
	Label          string  `json:"label"`
	Views          int     `json:"views"`
	Clicks         int     `json:"clicks"`
	UniqueSessions int     `json:"unique_sessions"`
	CTR            float64 `json:"ctr"`
}

type Totals struct {
	Views          int     `json:"views"`
	Clicks         int     `json:"clicks"`
	UniqueSessions int     `json:"unique_sessions"`
	CTR            float64 `json:"ctr"`
}

type Changes struct {
	Views          string `json:"views_change"`
	Clicks         string `json:"clicks_change"`
	UniqueSessions string `json:"sessions_change"`
}

type ComparisonSummary struct {
	PreviousStart time.Time `json:"previous_start"`
	PreviousEnd   time.Time `json:"previous_end"`
	Previous      Totals    `json:"previous"`
	Changes       Changes   `json:"changes"`
}

type TopProduct struct {
	ProductID    string   `json:"product_id"`
	Name         string   `json:"name"`
	ImageURL     *string  `json:"image_url,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	CategoryID   *string  `json:"category_id,omitempty"`
	CategoryName string   `json:"category_name,omitempty"`
	Views        int      `json:"views"`
	Clicks       int      `json:"clicks"`
	CTR          float64  `json:"ctr"`
}

type TopCategory struct {
	CategoryID string  `json:"category_id"`
	Name       string  `json:"name"`
	Views      int     `json:"views"`
	Clicks     int     `json:"clicks"`
	Products   int     `json:"products"`
	CTR        float64 `json:"ctr"`
}

type TopUnit struct {
	UnitID string `json:"unit_id"`
	Name   string `json:"name"`
	Views  int    `json:"views"`
	Clicks int    `json:"clicks"`
}

type TopPage struct {
	PageURL string `json:"page_url"`
	Views   int    `json:"views"`
	Clicks  int    `json:"clicks"`
}

type DashboardResponse struct {
	PeriodDays    int               `json:"period_days"`
	GeneratedAt   time.Time         `json:"generated_at"`
	StartDate     time.Time         `json:"start_date"`
	EndDate       time.Time         `json:"end_date"`
	Granularity   string            `json:"granularity"`
	Totals        Totals            `json:"totals"`
	Comparison    ComparisonSummary `json:"comparison"`
	Series        []SeriesPoint     `json:"series"`
	TopProducts   []TopProduct      `json:"top_products"`
	TopCategories []TopCategory     `json:"top_categories"`
	TopUnits      []TopUnit         `json:"top_units"`
	Slides        Totals            `json:"slides"`
}

type TrafficResponse struct {
	PeriodDays  int               `json:"period_days"`
	GeneratedAt time.Time         `json:"generated_at"`
	StartDate   time.Time         `json:"start_date"`
	EndDate     time.Time         `json:"end_date"`
	Granularity string            `json:"granularity"`
	Totals      Totals            `json:"totals"`
	Comparison  ComparisonSummary `json:"comparison"`
	Series      []SeriesPoint     `json:"series"`
	TopPages    []TopPage         `json:"top_pages"`
}

type ProductAnalyticsResponse struct {
	PeriodDays  int               `json:"period_days"`
	GeneratedAt time.Time         `json:"generated_at"`
	StartDate   time.Time         `json:"start_date"`
	EndDate     time.Time         `json:"end_date"`
	Granularity string            `json:"granularity"`
	Totals      Totals            `json:"totals"`
	Comparison  ComparisonSummary `json:"comparison"`
	Series      []SeriesPoint     `json:"series"`
	TopProducts []TopProduct      `json:"top_products"`
	Categories  []TopCategory     `json:"categories"`
}

type PurgeResult struct {
	Deleted int64     `json:"deleted"`
	Cutoff  time.Time `json:"cutoff"`
}
