package types

import "testing"

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"map", "map", 0},
		{"mp", "map", 1},
		{"mapp", "map", 1},
		{"mam", "map", 1},
		{"kitten", "sitting", 3},
	}
	for _, tt := range tests {
		if got := levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSuggestionHintOrdersByDistanceThenName(t *testing.T) {
	hint := suggestionHint("mp", []string{"map", "zp", "amp", "completely_unrelated"})
	want := "did you mean: amp, map, zp?"
	if hint != want {
		t.Errorf("got %q, want %q", hint, want)
	}
}

func TestSuggestionHintCapsAtThree(t *testing.T) {
	hint := suggestionHint("ap", []string{"bp", "cp", "dp", "ep"})
	if hint == "" {
		t.Fatal("expected a non-empty hint")
	}
	count := 0
	for _, r := range hint {
		if r == ',' {
			count++
		}
	}
	if count != 2 {
		t.Errorf("expected exactly 3 suggestions (2 commas), got hint %q", hint)
	}
}

func TestSuggestionHintEmptyWhenNoneClose(t *testing.T) {
	hint := suggestionHint("xyz", []string{"completely", "unrelated", "words"})
	if hint != "" {
		t.Errorf("expected no hint for distant candidates, got %q", hint)
	}
}

func TestDiagnosticErrorFormatsHint(t *testing.T) {
	d := &Diagnostic{
		Code:     UndefinedVariable,
		Location: Position{Line: 1, Column: 2},
		Message:  "undefined variable: mp",
		Hint:     "did you mean: map?",
	}
	want := "1:2: undefined variable: mp (did you mean: map?)"
	if d.Error() != want {
		t.Errorf("got %q, want %q", d.Error(), want)
	}
}

func TestDiagnosticErrorWithoutHint(t *testing.T) {
	d := &Diagnostic{Code: TypeMismatch, Location: Position{Line: 3, Column: 4}, Message: "expected Int, found Bool"}
	want := "3:4: expected Int, found Bool"
	if d.Error() != want {
		t.Errorf("got %q, want %q", d.Error(), want)
	}
}

func TestNewUndefinedVariableAttachesHint(t *testing.T) {
	d := newUndefinedVariable("mp", Position{}, []string{"map", "filter"})
	if d.Code != UndefinedVariable {
		t.Errorf("expected UndefinedVariable code, got %v", d.Code)
	}
	if d.Hint == "" {
		t.Error("expected a suggestion hint for a close candidate")
	}
}
