package repository

import (
	"testing"

	"qrt-tracker/internal/models"
)

func TestQRTFilterStatuses(t *testing.T) {
	if got := (QRTFilter{}).Statuses(); len(got) != 1 || got[0] != models.StatusInProgress {
		t.Fatalf("default statuses = %v", got)
	}
	if got := (QRTFilter{ShowComplete: true}).Statuses(); len(got) != 2 {
		t.Fatalf("showComplete statuses = %v", got)
	}
}

func TestQRTFilterLikePattern(t *testing.T) {
	cases := map[string]string{
		"42":      "%42%",
		"  jn  ":  "%jn%",
		"50%":     `%50\%%`,
		"a_b":     `%a\_b%`,
		`back\sl`: `%back\\sl%`,
	}
	for in, want := range cases {
		if got := (QRTFilter{Keyword: in}).LikePattern(); got != want {
			t.Fatalf("LikePattern(%q) = %q, want %q", in, got, want)
		}
	}
}
