package models

import "time"

// Persona is a fictitious author identity. Personas are caller-supplied and
// never created or mutated by the scheduler.
type Persona struct {
	Name         string   `json:"name" yaml:"name"`
	Username     string   `json:"username" yaml:"username"`
	Role         string   `json:"role" yaml:"role"`
	Voice        string   `json:"voice" yaml:"voice"`
	Interests    []string `json:"interests" yaml:"interests"`
	PostingStyle string   `json:"posting_style" yaml:"posting_style"`
	Backstory    string   `json:"backstory,omitempty" yaml:"backstory,omitempty"`
}

// CompanyInfo carries the marketing context used when generating content.
type CompanyInfo struct {
	Name           string   `json:"name" yaml:"name"`
	Website        string   `json:"website" yaml:"website"`
	Description    string   `json:"description" yaml:"description"`
	TargetAudience []string `json:"target_audience" yaml:"target_audience"`
	KeyFeatures    []string `json:"key_features" yaml:"key_features"`
	Domain         string   `json:"domain" yaml:"domain"`
}

// Keyword is a targeting keyword, e.g. K1 = "best ai presentation maker".
type Keyword struct {
	ID      string `json:"keyword_id" yaml:"keyword_id"`
	Keyword string `json:"keyword" yaml:"keyword"`
}

// CalendarRequest is the input for one calendar generation run.
type CalendarRequest struct {
	CompanyInfo  CompanyInfo `json:"company_info" yaml:"company_info"`
	Personas     []Persona   `json:"personas" yaml:"personas"`
	Subreddits   []string    `json:"subreddits" yaml:"subreddits"`
	Keywords     []Keyword   `json:"keywords" yaml:"keywords"`
	PostsPerWeek int         `json:"posts_per_week" yaml:"posts_per_week"`
	// WeekStart defaults to the next Monday when omitted.
	WeekStart *time.Time `json:"week_start,omitempty" yaml:"week_start,omitempty"`
	// Seed makes a run reproducible. When nil the scheduler seeds itself
	// from the clock.
	Seed *int64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// CalendarResponse pairs a generated calendar with its quality assessment.
type CalendarResponse struct {
	Calendar     Calendar `json:"calendar"`
	QualityScore float64  `json:"quality_score"`
	Warnings     []string `json:"warnings"`
}
