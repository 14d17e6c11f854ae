package domain

import "time"

// Severity grades a weakness finding.
type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// StrengthFinding is a positive observation included in an audit report.
type StrengthFinding struct {
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// WeaknessFinding is a negative observation with a remediation hint.
type WeaknessFinding struct {
	Severity       Severity `json:"severity"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Recommendation string   `json:"recommendation"`
}

// ScanResult is the structured output of one audit invocation. A fresh value is
// produced per scan; nothing here is shared or retained beyond the score.
type ScanResult struct {
	URL        string            `json:"url"`
	PageTitle  string            `json:"page_title,omitempty"`
	Timestamp  string            `json:"timestamp"`
	Score      int               `json:"score"`
	Categories map[string]int    `json:"categories"`
	Summary    string            `json:"summary"`
	Strengths  []StrengthFinding `json:"strengths"`
	Weaknesses []WeaknessFinding `json:"weaknesses"`
}

// FixSuggestion is the advisory code-fix payload. Status is always "success";
// fix generation never surfaces an error to the caller.
type FixSuggestion struct {
	Status string `json:"status"`
	Fix    string `json:"fix"`
}

// CheckRecord is one scheduled-check observation appended to the history archive.
type CheckRecord struct {
	URL       string
	Score     int
	Status    SiteStatus
	CheckedAt time.Time
}
