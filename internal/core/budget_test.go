package core

import "testing"

func TestSpentPercentNoBudget(t *testing.T) {
	l := NewList("l1", "")
	l.AddItem("Arroz", 1, Money{Cents: 500})

	if pct, ok := l.SpentPercent(); ok {
		t.Fatalf("budget 0 must report not-applicable, got %v", pct)
	}
	if alerts := l.Alerts(DefaultThresholds); alerts != nil {
		t.Fatalf("budget 0 must produce no alerts, got %+v", alerts)
	}
}

func TestSpentPercentHalf(t *testing.T) {
	l := NewList("l1", "")
	l.SetBudget(Money{Cents: 20000})
	l.AddItem("Carne", 1, Money{Cents: 10000})

	pct, ok := l.SpentPercent()
	if !ok || pct != 50.0 {
		t.Fatalf("spent percent = %v (ok=%v), want 50.0", pct, ok)
	}
}

func TestAlerts(t *testing.T) {
	cases := []struct {
		name       string
		spentCents int64
		want       []Alert
	}{
		{"below all", 4000, nil},
		{"first met", 5000, []Alert{{50, SeverityWarning}}},
		{"two met", 8500, []Alert{{50, SeverityWarning}, {80, SeverityWarning}}},
		{"all met", 9500, []Alert{{50, SeverityWarning}, {80, SeverityWarning}, {95, SeverityDanger}}},
		{"over budget", 12000, []Alert{{50, SeverityWarning}, {80, SeverityWarning}, {95, SeverityDanger}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := NewList("l1", "")
			l.SetBudget(Money{Cents: 10000})
			l.AddItem("Compra", 1, Money{Cents: tc.spentCents})

			got := l.Alerts(DefaultThresholds)
			if len(got) != len(tc.want) {
				t.Fatalf("alerts = %+v, want %+v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("alert[%d] = %+v, want %+v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestAlertTrackerDeduplicates(t *testing.T) {
	l := NewList("l1", "")
	l.SetBudget(Money{Cents: 10000})
	l.AddItem("Compra", 1, Money{Cents: 8500})

	tracker := NewAlertTracker()
	first := tracker.Surface(l.Alerts(DefaultThresholds))
	if len(first) != 2 {
		t.Fatalf("first surface = %+v, want 2 alerts", first)
	}
	// Same state recomputed: nothing new to show.
	if again := tracker.Surface(l.Alerts(DefaultThresholds)); len(again) != 0 {
		t.Fatalf("repeat surface = %+v, want none", again)
	}

	// Crossing a further threshold surfaces only the new one.
	l.AddItem("Mais", 1, Money{Cents: 1200})
	next := tracker.Surface(l.Alerts(DefaultThresholds))
	if len(next) != 1 || next[0].Threshold != 95 {
		t.Fatalf("next surface = %+v, want the 95 threshold only", next)
	}

	tracker.Reset()
	if after := tracker.Surface(l.Alerts(DefaultThresholds)); len(after) != 3 {
		t.Fatalf("after reset = %+v, want all 3", after)
	}
}
