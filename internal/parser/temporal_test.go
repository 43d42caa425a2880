package parser

import (
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func TestParseTemporalYear(t *testing.T) {
	filter, errs := parseTemporal("photos from 2023", testNow)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if filter == nil || filter.Year != 2023 {
		t.Fatalf("filter = %+v, want Year 2023", filter)
	}
}

func TestParseTemporalSeason(t *testing.T) {
	filter, _ := parseTemporal("summer pictures", testNow)
	if filter == nil || filter.Period != "summer" {
		t.Fatalf("filter = %+v, want Period summer", filter)
	}
}

func TestParseTemporalRange(t *testing.T) {
	filter, _ := parseTemporal("between 2020 and 2022", testNow)
	if filter == nil || filter.Start == nil || filter.End == nil {
		t.Fatalf("filter = %+v, want explicit range", filter)
	}
	if filter.Start.Year() != 2020 || filter.End.Year() != 2022 {
		t.Errorf("range = %v..%v, want 2020..2022", filter.Start, filter.End)
	}
}

func TestParseTemporalMonthYear(t *testing.T) {
	filter, _ := parseTemporal("photos taken in June 2023", testNow)
	if filter == nil || filter.Start == nil || filter.End == nil {
		t.Fatalf("filter = %+v, want month range", filter)
	}
	if filter.Start.Month() != time.June || filter.Start.Year() != 2023 {
		t.Errorf("start = %v, want June 2023", filter.Start)
	}
	if filter.End.Month() != time.June {
		t.Errorf("end = %v, want within June", filter.End)
	}
}

func TestParseTemporalRelative(t *testing.T) {
	t.Run("last year resolves to calendar year", func(t *testing.T) {
		filter, _ := parseTemporal("pictures from last year", testNow)
		if filter == nil || filter.Year != 2023 {
			t.Fatalf("filter = %+v, want Year 2023", filter)
		}
	})
	t.Run("last month is a range ending now", func(t *testing.T) {
		filter, _ := parseTemporal("photos from last month", testNow)
		if filter == nil || filter.Start == nil || filter.End == nil {
			t.Fatalf("filter = %+v, want range", filter)
		}
		if !filter.End.Equal(testNow) {
			t.Errorf("end = %v, want now", filter.End)
		}
	})
}

func TestParseTemporalMalformed(t *testing.T) {
	t.Run("impossible slash date", func(t *testing.T) {
		_, errs := parseTemporal("photos from 13/45/2023", testNow)
		if len(errs) == 0 {
			t.Fatal("expected error for impossible date")
		}
		if !strings.Contains(errs[0], "13/45/2023") {
			t.Errorf("error must name the offending token: %q", errs[0])
		}
	})
	t.Run("bad year after date cue", func(t *testing.T) {
		_, errs := parseTemporal("photos from 20233", testNow)
		if len(errs) == 0 {
			t.Fatal("expected error for 5-digit year")
		}
		if !strings.Contains(errs[0], "20233") {
			t.Errorf("error must name the offending token: %q", errs[0])
		}
	})
	t.Run("well-formed parts survive alongside errors", func(t *testing.T) {
		filter, errs := parseTemporal("summer photos from 13/45/2023", testNow)
		if len(errs) == 0 {
			t.Fatal("expected error")
		}
		if filter == nil || filter.Period != "summer" {
			t.Errorf("filter = %+v, want summer period extracted", filter)
		}
	})
}

func TestParseTemporalNone(t *testing.T) {
	filter, errs := parseTemporal("dog pictures", testNow)
	if filter != nil {
		t.Errorf("filter = %+v, want nil for atemporal query", filter)
	}
	if len(errs) != 0 {
		t.Errorf("unexpected errors: %v", errs)
	}
}
