package plausibility

import "testing"

// TestNoisyInputIsRejected covers spec.md's E6 noisy case.
func TestNoisyInputIsRejected(t *testing.T) {
	got := Filter(" W Y œe ''ii'' ï§ _* ,", 0.7, 0.3)
	if got != "" {
		t.Errorf("Filter(noisy) = %q, want \"\"", got)
	}
}

// TestPlausibleSentenceIsRetained covers spec.md's E6 plausible case.
func TestPlausibleSentenceIsRetained(t *testing.T) {
	in := "The quick brown fox."
	got := Filter(in, 0.7, 0.3)
	if got == "" {
		t.Errorf("Filter(plausible sentence) = \"\", want retained text")
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	inputs := []string{
		"The quick brown fox.",
		" W Y œe ''ii'' ï§ _* ,",
		"",
		"1234567890",
	}
	for _, in := range inputs {
		once := Filter(in, 0.7, 0.3)
		twice := Filter(once, 0.7, 0.3)
		if once != twice {
			t.Errorf("Filter not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}

func TestEmptyInputYieldsEmptyOutput(t *testing.T) {
	if got := Filter("", 0.7, 0.3); got != "" {
		t.Errorf("Filter(\"\") = %q, want \"\"", got)
	}
}
