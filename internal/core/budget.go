package core

// Budget derivations are pure reads over the list; they never mutate and
// never fail. The no-budget case (Budget == 0) is reported through an
// explicit ok flag instead of a NaN that would leak into the caller.

const dangerAt = 90.0

const (
	SeverityWarning AlertSeverity = "warning"
	SeverityDanger  AlertSeverity = "danger"
)

type (
	AlertSeverity string

	// Alert marks a budget threshold that the current spend has reached.
	Alert struct {
		Threshold float64       `json:"threshold"`
		Severity  AlertSeverity `json:"severity"`
	}
)

// DefaultThresholds is the stock ascending threshold ladder.
var DefaultThresholds = []float64{50, 80, 95}

// SpentPercent returns spend as a percentage of the budget. When no budget
// is set the percentage is undefined and ok is false.
func (l *List) SpentPercent() (pct float64, ok bool) {
	if l.Budget.Cents <= 0 {
		return 0, false
	}
	return float64(l.TotalCents) / float64(l.Budget.Cents) * 100, true
}

// Remaining returns budget minus spend. Negative means over budget, which
// is a state, not an error.
func (l *List) Remaining() Money {
	return Money{Cents: l.Budget.Cents - l.TotalCents}
}

// Alerts returns the thresholds currently met or exceeded, each tagged with
// a severity: danger at or above 90 percent, warning below. Thresholds must
// be ascending. With no budget set there is nothing to alert on.
//
// Alerts reports the full met set on every call; deduplication across
// recomputations belongs to AlertTracker.
func (l *List) Alerts(thresholds []float64) []Alert {
	pct, ok := l.SpentPercent()
	if !ok {
		return nil
	}
	var out []Alert
	for _, th := range thresholds {
		if pct < th {
			break
		}
		sev := SeverityWarning
		if th >= dangerAt {
			sev = SeverityDanger
		}
		out = append(out, Alert{Threshold: th, Severity: sev})
	}
	return out
}

// AlertTracker remembers which thresholds were already surfaced for the
// current list, so repeated recomputation does not re-fire the same alert.
// Reset it whenever the list is replaced or the budget changes.
type AlertTracker struct {
	seen map[float64]bool
}

func NewAlertTracker() *AlertTracker {
	return &AlertTracker{seen: make(map[float64]bool)}
}

// Surface filters alerts down to the ones not yet shown and marks them shown.
func (t *AlertTracker) Surface(alerts []Alert) []Alert {
	var fresh []Alert
	for _, a := range alerts {
		if t.seen[a.Threshold] {
			continue
		}
		t.seen[a.Threshold] = true
		fresh = append(fresh, a)
	}
	return fresh
}

// Reset forgets all surfaced thresholds.
func (t *AlertTracker) Reset() {
	t.seen = make(map[float64]bool)
}
