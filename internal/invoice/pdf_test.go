package invoice

import "testing"

func TestUSDFormat(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{4999.99, "$4,999.99"},
		{45000, "$45,000.00"},
		{1234567.5, "$1,234,567.50"},
		{-2250, "-$2,250.00"},
	}
	for _, tc := range cases {
		if got := usd(tc.in); got != tc.want {
			t.Errorf("usd(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
