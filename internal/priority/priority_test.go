package priority

import (
	"math"
	"testing"

	"leafcare/internal/tester"
)

func TestMaxIsHigherRank(t *testing.T) {
	for _, a := range All {
		for _, b := range All {
			got := Max(a, b)
			want := a
			if b.Rank() > a.Rank() {
				want = b
			}
			tester.Eq(t, got, want, string(a)+" vs "+string(b))
			tester.Eq(t, Max(b, a), want, "commutative")
		}
	}
}

func TestMaxUnknownLoses(t *testing.T) {
	tester.Eq(t, Max(Priority("bogus"), Low), Low)
	tester.Eq(t, Max(Urgent, Priority("")), Urgent)
}

func TestParse(t *testing.T) {
	p, err := Parse("Urgent")
	tester.NoErr(t, err)
	tester.Eq(t, p, Urgent)

	_, err = Parse("urgent")
	tester.ErrContains(t, err, "invalid value")

	p, err = ParseLoose("  critical ")
	tester.NoErr(t, err)
	tester.Eq(t, p, Critical)
}

func TestFromSeverity(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	cases := []struct {
		name  string
		label string
		score *float64
		want  Priority
	}{
		{"healthy wins over severity", "Healthy", f(90), Low},
		{"normal label", "Leaf Normal", nil, Low},
		{"no segmentation", "Late Blight", nil, Moderate},
		{"nan treated as missing", "Late Blight", f(math.NaN()), Moderate},
		{"low", "Late Blight", f(10), Moderate},
		{"boundary 25", "Late Blight", f(25), Urgent},
		{"mid", "Late Blight", f(60), Urgent},
		{"boundary 75", "Late Blight", f(75), Critical},
		{"high", "Late Blight", f(80), Critical},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tester.Eq(t, FromSeverity(tc.label, tc.score), tc.want)
		})
	}
}
