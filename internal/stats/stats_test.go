package stats

import (
	"errors"
	"testing"
)

func TestComplianceClamped(t *testing.T) {
	percent, tier, err := Compliance(12, 10)
	if err != nil {
		t.Fatal(err)
	}
	if percent != 100 {
		t.Errorf("expected clamp to 100, got %d", percent)
	}
	if tier != TierHigh {
		t.Errorf("expected high tier, got %q", tier)
	}
}

func TestComplianceLow(t *testing.T) {
	percent, tier, err := Compliance(9, 20)
	if err != nil {
		t.Fatal(err)
	}
	if percent != 45 {
		t.Errorf("expected 45%%, got %d", percent)
	}
	if tier != TierLow {
		t.Errorf("expected low tier, got %q", tier)
	}
}

func TestComplianceRounding(t *testing.T) {
	// 100 * 1/3 = 33.33... rounds to 33; 100 * 2/3 = 66.66... rounds to 67.
	if percent, _, _ := Compliance(1, 3); percent != 33 {
		t.Errorf("expected 33, got %d", percent)
	}
	if percent, _, _ := Compliance(2, 3); percent != 67 {
		t.Errorf("expected 67, got %d", percent)
	}
}

func TestComplianceTierThresholds(t *testing.T) {
	cases := []struct {
		count, total int
		percent      int
		tier         string
	}{
		{0, 10, 0, TierLow},
		{49, 100, 49, TierLow},
		{50, 100, 50, TierMedium},
		{79, 100, 79, TierMedium},
		{80, 100, 80, TierHigh},
		{100, 100, 100, TierHigh},
	}

	for _, c := range cases {
		percent, tier, err := Compliance(c.count, c.total)
		if err != nil {
			t.Fatal(err)
		}
		if percent != c.percent || tier != c.tier {
			t.Errorf("Compliance(%d, %d) = (%d, %q), want (%d, %q)",
				c.count, c.total, percent, tier, c.percent, c.tier)
		}
	}
}

func TestComplianceNonPositiveTotal(t *testing.T) {
	for _, total := range []int{0, -5} {
		_, _, err := Compliance(3, total)
		if !errors.Is(err, ErrNonPositiveTotal) {
			t.Errorf("Compliance(3, %d): expected ErrNonPositiveTotal, got %v", total, err)
		}
	}
}
