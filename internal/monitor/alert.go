package monitor

import "UXTester/internal/domain"

const (
	criticalBelow = 50
	warningBelow  = 70
	alertDrop     = 10
)

// Evaluate maps a new score to a health status and decides whether the change
// from the previous score warrants a regression alert. The status is derived
// from the new score alone; the Error status is reserved for failed checks and
// is never produced here. The alert fires only on a drop of strictly more than
// alertDrop points and does not influence the status.
func Evaluate(oldScore, newScore int) (domain.SiteStatus, bool) {
	status := domain.StatusHealthy
	switch {
	case newScore < criticalBelow:
		status = domain.StatusCritical
	case newScore < warningBelow:
		status = domain.StatusWarning
	}

	return status, newScore < oldScore-alertDrop
}
