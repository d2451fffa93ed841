package answer

import (
	"reflect"
	"testing"
)

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		in      string
		seconds int
		ok      bool
	}{
		{"5:09", 309, true},
		{"1:02:03", 3723, true},
		{"0:00", 0, true},
		{"10:23", 623, true},
		{"00:45", 45, true},
		{"around 5:09", 0, false},
		{"5", 0, false},
		{"", 0, false},
		{"1:2:3:4", 0, false},
		{"ab:cd", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseTimestamp(tc.in)
		if ok != tc.ok || got != tc.seconds {
			t.Errorf("ParseTimestamp(%q) = %d, %v; want %d, %v", tc.in, got, ok, tc.seconds, tc.ok)
		}
	}
}

func TestFilterTimestampsAgainstDuration(t *testing.T) {
	in := []string{"09:59", "10:23", "10:24", "garbage", "0:00"}
	got := FilterTimestamps(in, "10:23")
	want := []string{"09:59", "10:23", "0:00"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FilterTimestamps = %v, want %v", got, want)
	}
}

func TestFilterTimestampsUnknownDuration(t *testing.T) {
	in := []string{"09:59", "99:99:99"}
	got := FilterTimestamps(in, "")
	if !reflect.DeepEqual(got, in) {
		t.Fatalf("unknown duration should keep everything, got %v", got)
	}
}

func TestFilterTimestampsHourForm(t *testing.T) {
	got := FilterTimestamps([]string{"1:02:03", "1:02:04"}, "1:02:03")
	want := []string{"1:02:03"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FilterTimestamps = %v, want %v", got, want)
	}
}
