package geom

import "testing"

func TestRoundUpSmoothExamples(t *testing.T) {
	cases := []struct {
		n, c   int
		primes []int
		want   int
	}{
		{101, 1, []int{2, 3, 5}, 108},
		{17, 4, []int{2, 3, 5}, 20},
		{17, 1, []int{2}, 32},
	}
	for _, tc := range cases {
		got := RoundUpSmooth(tc.n, tc.c, tc.primes...)
		if got != tc.want {
			t.Errorf("RoundUpSmooth(%d,%d,%v) = %d, want %d", tc.n, tc.c, tc.primes, got, tc.want)
		}
	}
}

func TestRoundUpSmoothAlreadySatisfied(t *testing.T) {
	if got := RoundUpSmooth(1, 108, 2, 3, 5); got != 108 {
		t.Errorf("expected c returned unchanged when c >= n, got %d", got)
	}
}
