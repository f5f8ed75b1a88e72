package mood

import (
	"strings"
	"testing"

	model "github.com/zhouzirui/mindshift/backend/internal/model/mood"
)

func entries(moods ...int) []model.Entry {
	out := make([]model.Entry, len(moods))
	for i, m := range moods {
		out[i] = model.Entry{Mood: m}
	}
	return out
}

func TestAnalyzeTrendStrictDecline(t *testing.T) {
	trend := AnalyzeTrend(entries(9, 8, 7, 6, 5))
	if !trend.HasDeclineAlert || !trend.ConsecutiveDecline {
		t.Fatalf("expected consecutive decline alert, got %+v", trend)
	}
}

func TestAnalyzeTrendFlat(t *testing.T) {
	if trend := AnalyzeTrend(entries(5, 5, 5, 5, 5)); trend.HasDeclineAlert {
		t.Fatalf("expected no alert, got %+v", trend)
	}
}

func TestAnalyzeTrendZigZag(t *testing.T) {
	if trend := AnalyzeTrend(entries(9, 4, 8, 3, 9)); trend.HasDeclineAlert {
		t.Fatalf("expected no alert, got %+v", trend)
	}
}

func TestAnalyzeTrendAggregateDropOnly(t *testing.T) {
	trend := AnalyzeTrend(entries(9, 9, 9, 9, 5))
	if !trend.HasDeclineAlert {
		t.Fatalf("expected alert, got %+v", trend)
	}
	if trend.ConsecutiveDecline || !trend.AggregateDrop {
		t.Fatalf("expected aggregate drop path only, got %+v", trend)
	}
}

func TestAnalyzeTrendUsesLastFive(t *testing.T) {
	// the early decline falls outside the window.
	if trend := AnalyzeTrend(entries(10, 9, 8, 7, 6, 6, 6, 6, 6)); trend.HasDeclineAlert {
		t.Fatalf("expected no alert for flat window, got %+v", trend)
	}
}

func TestAnalyzeTrendNeedsFiveEntries(t *testing.T) {
	if trend := AnalyzeTrend(entries(10, 1, 1, 1)); trend.HasDeclineAlert {
		t.Fatalf("expected no alert below window size, got %+v", trend)
	}
}

func TestAlertMessage(t *testing.T) {
	if msg := AlertMessage(nil); msg != "" {
		t.Fatalf("expected empty message, got %q", msg)
	}
	if msg := AlertMessage(&model.Pattern{HasConcerningPattern: false, DaysWithoutEntry: 4}); msg != "" {
		t.Fatalf("expected empty message for non concerning pattern, got %q", msg)
	}
	msg := AlertMessage(&model.Pattern{HasConcerningPattern: true, DaysWithoutEntry: 4})
	if !strings.Contains(msg, "4 days") {
		t.Fatalf("expected days in message, got %q", msg)
	}
	msg = AlertMessage(&model.Pattern{HasConcerningPattern: true, NegativeMoodCount: 3})
	if !strings.Contains(msg, "challenging emotions") {
		t.Fatalf("unexpected message %q", msg)
	}
}
