package expr

import "testing"

func TestCache_Memoizes(t *testing.T) {
	c := NewCache(8)

	first := c.Analyze("a + b")
	second := c.Analyze("a + b")

	if first != second {
		t.Errorf("cache returned different results: %+v vs %+v", first, second)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", c.Len())
	}
}

func TestCache_MatchesAnalyze(t *testing.T) {
	c := NewCache(8)
	for _, input := range []string{"0", "[1, 2", "hash(x)", ""} {
		if got, want := c.Analyze(input), Analyze(input); got != want {
			t.Errorf("Cache.Analyze(%q) = %+v, want %+v", input, got, want)
		}
	}
}

func TestCache_ResetsAtBound(t *testing.T) {
	c := NewCache(2)

	c.Analyze("a")
	c.Analyze("b")
	c.Analyze("c") // exceeds bound, triggers reset

	if c.Len() != 1 {
		t.Errorf("expected reset to 1 entry, got %d", c.Len())
	}
}
