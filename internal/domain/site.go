package domain

import "errors"

// Sentinel used in LastCheck before the first successful scheduled check.
const NeverChecked = "Never"

// SiteStatus enumerates health states of a monitored site.
type SiteStatus string

const (
	StatusPending  SiteStatus = "Pending"
	StatusHealthy  SiteStatus = "Healthy"
	StatusWarning  SiteStatus = "Warning"
	StatusCritical SiteStatus = "Critical"
	StatusError    SiteStatus = "Error"
)

// MonitoredSite is a registered URL tracked by the background monitor with its
// latest known score and status. Score stays 0 until the first successful check.
type MonitoredSite struct {
	URL       string     `json:"url"`
	Score     int        `json:"score"`
	Status    SiteStatus `json:"status"`
	LastCheck string     `json:"last_check"`
}

var (
	// ErrEmptyURL rejects scan and monitor operations with a missing URL.
	ErrEmptyURL = errors.New("url is required")
	// ErrAlreadyMonitored rejects adding a URL that is already registered.
	ErrAlreadyMonitored = errors.New("already monitored")
)
