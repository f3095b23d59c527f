package metadata

import "testing"

func TestParseCount(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"1,234", 1234},
		{"2.5k", 2500},
		{"1.234.567", 1234567},
		{"", 0},
		{"   ", 0},
		{"(42)", 42},
		{"3m", 3000000},
		{"3M", 3000000},
		{"12K", 12000},
		{"7", 7},
		{"1.5", 1},
		{"()", 0},
		{"garbage", 0},
		{"-5", 0},
	}
	for _, tc := range cases {
		if got := ParseCount(tc.in); got != tc.want {
			t.Errorf("ParseCount(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
