package storage

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestTimeRoundTrip(t *testing.T) {
	in := time.Date(2026, 3, 2, 8, 15, 30, 123000000, time.FixedZone("CST", 8*3600))
	got, err := ParseTime(FormatTime(in))
	if err != nil {
		t.Fatalf("ParseTime() error = %v", err)
	}
	if !got.Equal(in) {
		t.Errorf("round trip = %v, want %v", got, in)
	}

	legacy, err := ParseTime("2026-03-02T08:15:30Z")
	if err != nil || legacy.Hour() != 8 {
		t.Errorf("ParseTime(RFC3339) = %v, %v", legacy, err)
	}
}

func TestFormatTimeSortsLexically(t *testing.T) {
	early := FormatTime(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))
	late := FormatTime(time.Date(2026, 3, 2, 8, 0, 0, 500000000, time.UTC))
	if !(early < late) {
		t.Errorf("%q should sort before %q", early, late)
	}
}

func TestNullTime(t *testing.T) {
	if got := NullString(nil); got.Valid {
		t.Error("NullString(nil).Valid = true")
	}
	now := time.Now().Truncate(time.Millisecond)
	back, err := NullTime(NullString(&now))
	if err != nil || back == nil || !back.Equal(now) {
		t.Errorf("NullTime(NullString(now)) = %v, %v", back, err)
	}
}

func TestIDsCodec(t *testing.T) {
	if got := EncodeIDs(nil); got != "[]" {
		t.Errorf("EncodeIDs(nil) = %q", got)
	}
	ids, err := DecodeIDs(EncodeIDs([]string{"f1", "f2"}))
	if err != nil {
		t.Fatalf("DecodeIDs() error = %v", err)
	}
	if diff := cmp.Diff([]string{"f1", "f2"}, ids); diff != "" {
		t.Errorf("DecodeIDs() mismatch (-want +got):\n%s", diff)
	}
	if _, err := DecodeIDs("not json"); err == nil {
		t.Error("DecodeIDs(garbage) succeeded")
	}
}

func TestSettingsRows(t *testing.T) {
	in := Settings{Timezone: "UTC", NotificationsEnabled: true, WeeklyWindow: 4, ChartWindow: 9, CurrentUserID: "u"}
	got, err := SettingsFromRows(SettingsToRows(in))
	if err != nil {
		t.Fatalf("SettingsFromRows() error = %v", err)
	}
	if diff := cmp.Diff(in, got); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}

	if _, err := SettingsFromRows(nil); err == nil {
		t.Error("SettingsFromRows(nil) succeeded")
	}
	if _, err := SettingsFromRows(map[string]string{"weekly_window": "ten"}); err == nil {
		t.Error("SettingsFromRows() accepted non-numeric window")
	}
}
