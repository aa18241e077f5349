package models

import (
	"strings"
	"testing"
	"time"
)

func TestParseTimestampZuluAndExplicitOffsetAgree(t *testing.T) {
	a, err := ParseTimestamp("1977-09-05T17:24:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := ParseTimestamp("1977-09-05T17:24:00+00:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.Equal(b) {
		t.Fatalf("Z and +00:00 parsed differently: %v vs %v", a, b)
	}
}

func TestParseTimestampNaiveIsUTC(t *testing.T) {
	got, err := ParseTimestamp("2000-01-01T12:00:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestParseTimestampMinutePrecision(t *testing.T) {
	if _, err := ParseTimestamp("2024-03-20T06:30"); err != nil {
		t.Fatalf("minute-precision timestamp rejected: %v", err)
	}
}

func TestParseTimestampRejectsNonUTCOffset(t *testing.T) {
	_, err := ParseTimestamp("1977-09-05T17:24:00+05:30")
	if err == nil {
		t.Fatal("expected error for non-UTC offset")
	}
	if !strings.Contains(err.Error(), "UTC") {
		t.Fatalf("error %q should mention UTC", err)
	}
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "not-a-date", "05/09/1977", "1977-09-05 17:24:00Z"} {
		if _, err := ParseTimestamp(s); err == nil {
			t.Fatalf("expected error for %q", s)
		}
	}
}

func TestChartInputValidate(t *testing.T) {
	ayanamsa := "lahiri"
	cases := []struct {
		name    string
		in      ChartInput
		wantErr bool
	}{
		{"valid minimal", ChartInput{DatetimeUTC: "1977-09-05T17:24:00Z", Latitude: 37.82, Longitude: -79.82}, false},
		{"valid explicit", ChartInput{DatetimeUTC: "1977-09-05T17:24:00Z", Latitude: 37.82, Longitude: -79.82, HouseSystem: "W", Zodiac: "tropical"}, false},
		{"latitude too high", ChartInput{DatetimeUTC: "1977-09-05T17:24:00Z", Latitude: 90.0001, Longitude: 0}, true},
		{"latitude too low", ChartInput{DatetimeUTC: "1977-09-05T17:24:00Z", Latitude: -91, Longitude: 0}, true},
		{"longitude too high", ChartInput{DatetimeUTC: "1977-09-05T17:24:00Z", Latitude: 0, Longitude: 180.5}, true},
		{"bad house system", ChartInput{DatetimeUTC: "1977-09-05T17:24:00Z", Latitude: 0, Longitude: 0, HouseSystem: "P"}, true},
		{"bad zodiac", ChartInput{DatetimeUTC: "1977-09-05T17:24:00Z", Latitude: 0, Longitude: 0, Zodiac: "sidereal"}, true},
		{"ayanamsa set", ChartInput{DatetimeUTC: "1977-09-05T17:24:00Z", Latitude: 0, Longitude: 0, Ayanamsa: &ayanamsa}, true},
		{"bad timestamp", ChartInput{DatetimeUTC: "yesterday", Latitude: 0, Longitude: 0}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.in.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestSignAtWraps(t *testing.T) {
	if got := SignAt(0); got != "Aries" {
		t.Fatalf("SignAt(0) = %s", got)
	}
	if got := SignAt(12); got != "Aries" {
		t.Fatalf("SignAt(12) = %s, want wrap to Aries", got)
	}
	if got := SignAt(14); got != "Gemini" {
		t.Fatalf("SignAt(14) = %s, want Gemini", got)
	}
}

func TestSignIndexRoundTrip(t *testing.T) {
	for i, name := range ZodiacSigns {
		if got := SignIndex(name); got != i {
			t.Fatalf("SignIndex(%s) = %d, want %d", name, got, i)
		}
	}
	if got := SignIndex("Ophiuchus"); got != -1 {
		t.Fatalf("SignIndex(unknown) = %d, want -1", got)
	}
}
