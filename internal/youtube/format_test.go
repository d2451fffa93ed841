package youtube

import "testing"

func TestFormatISODuration(t *testing.T) {
	tests := []struct {
		iso  string
		want string
	}{
		{"PT1H2M3S", "1:02:03"},
		{"PT5M9S", "5:09"},
		{"PT10M23S", "10:23"},
		{"PT45S", "0:45"},
		{"PT2H", "2:00:00"},
		{"P1DT1H", "25:00:00"},
		{"garbage", ""},
		{"", ""},
	}
	for _, tc := range tests {
		if got := FormatISODuration(tc.iso); got != tc.want {
			t.Fatalf("FormatISODuration(%q) = %q, want %q", tc.iso, got, tc.want)
		}
	}
}

func TestFormatViewCount(t *testing.T) {
	tests := []struct {
		views uint64
		want  string
	}{
		{0, "0"},
		{999, "999"},
		{1_000, "1K"},
		{15_300, "15.3K"},
		{1_530_000, "1.5M"},
		{2_000_000, "2M"},
	}
	for _, tc := range tests {
		if got := FormatViewCount(tc.views); got != tc.want {
			t.Fatalf("FormatViewCount(%d) = %q, want %q", tc.views, got, tc.want)
		}
	}
}
