package expr

import "testing"

func TestAnalyze_Literals(t *testing.T) {
	literals := []string{
		"0",
		"123",
		"-5",
		"0x1f",
		"0xDEADBEEF",
		"1_000_000",
		"  42  ",
		"[1, 2, 3]",
		"[0,0,0]",
		"[]",
		"[-1, 2]",
		"[[1, 2], [3, 4]]",
		"[0x01, 0x02]",
	}

	for _, input := range literals {
		a := Analyze(input)
		if a.IsExpression {
			t.Errorf("Analyze(%q).IsExpression = true, want false", input)
		}
		if a.IsPartial {
			t.Errorf("Analyze(%q).IsPartial = true, want false", input)
		}
	}
}

func TestAnalyze_Expressions(t *testing.T) {
	expressions := []string{
		"x",
		"a + b",
		"hash(x)",
		"2 * y",
		"foo.bar",
		"1 + 2",
		"[a, b]",
		"pedersen([x, y])",
		"x as Field",
		"\"hello\"",
	}

	for _, input := range expressions {
		if a := Analyze(input); !a.IsExpression {
			t.Errorf("Analyze(%q).IsExpression = false, want true", input)
		}
	}
}

func TestAnalyze_Partial(t *testing.T) {
	partials := []string{
		"(",
		"[1, 2",
		"foo(",
		"a +",
		"x *",
		"{",
		"(a + b",
		"\"unterminated",
		"1,",
	}

	for _, input := range partials {
		if a := Analyze(input); !a.IsPartial {
			t.Errorf("Analyze(%q).IsPartial = false, want true", input)
		}
	}
}

func TestAnalyze_CompleteExpressionsNotPartial(t *testing.T) {
	complete := []string{
		"(a + b)",
		"hash(x)",
		"[a, b]",
		"\"done\"",
		"x + y",
	}

	for _, input := range complete {
		if a := Analyze(input); a.IsPartial {
			t.Errorf("Analyze(%q).IsPartial = true, want false", input)
		}
	}
}

func TestAnalyze_Empty(t *testing.T) {
	for _, input := range []string{"", "   ", "\t"} {
		a := Analyze(input)
		if a.IsExpression || a.IsPartial {
			t.Errorf("Analyze(%q) = %+v, want zero value", input, a)
		}
	}
}

func TestAnalyze_UnmatchedCloserIsExpressionNotPartial(t *testing.T) {
	// A stray closer is malformed but not "in progress"; evaluation is
	// allowed to try and fail with a real diagnostic.
	a := Analyze("1)")
	if !a.IsExpression {
		t.Error("expected expression")
	}
	if a.IsPartial {
		t.Error("unmatched closer should not be partial")
	}
}
