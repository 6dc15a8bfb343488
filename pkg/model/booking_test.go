package model

import (
	"testing"
	"time"
)

func TestParsePreferredDate(t *testing.T) {
	// Late in the day on March 10th; time of day must not matter.
	now := time.Date(2026, time.March, 10, 23, 45, 0, 0, time.UTC)

	tests := []struct {
		name    string
		value   string
		wantOK  bool
		wantErr bool
	}{
		{"future date", "2026-03-15", true, false},
		{"today", "2026-03-10", true, false},
		{"yesterday", "2026-03-09", false, false},
		{"far past", "2020-01-01", false, false},
		{"wrong layout", "15-03-2026", false, true},
		{"not a date", "soon", false, true},
		{"empty", "", false, true},
		{"impossible day", "2026-02-30", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok, err := ParsePreferredDate(tt.value, now)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePreferredDate(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err == nil && ok != tt.wantOK {
				t.Fatalf("ParsePreferredDate(%q) ok = %v, want %v", tt.value, ok, tt.wantOK)
			}
		})
	}
}

func TestContains(t *testing.T) {
	if !Contains(Services, "visa-processing") {
		t.Fatal("expected visa-processing to be a known service")
	}
	if Contains(Services, "time-travel") {
		t.Fatal("unexpected service accepted")
	}
	if Contains(nil, "anything") {
		t.Fatal("nil options must contain nothing")
	}
}
