package source

import "testing"

func TestSpan_ToRange(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		take       int
		wantStart  int
		wantEnd    int
		wantSubstr string
	}{
		{name: "whole span", input: "hello world", take: 11, wantStart: 0, wantEnd: 11, wantSubstr: "hello world"},
		{name: "prefix", input: "hello world", take: 5, wantStart: 0, wantEnd: 5, wantSubstr: "hello"},
		{name: "empty prefix", input: "hello", take: 0, wantStart: 0, wantEnd: 0, wantSubstr: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span := New(tt.input)
			taken := span.Take(tt.take)
			start, end := taken.ToRange()
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("ToRange() = (%d, %d), want (%d, %d)", start, end, tt.wantStart, tt.wantEnd)
			}
			if taken.Text != tt.wantSubstr {
				t.Errorf("Text = %q, want %q", taken.Text, tt.wantSubstr)
			}
		})
	}
}

func TestSpan_RoundTripsIntoOriginalSubstring(t *testing.T) {
	input := "let x = 1 + 2\nlet y = 3"
	full := New(input)
	_, mid := full.SplitAt(4)
	inner := mid.Take(5)
	start, end := inner.ToRange()
	if got := input[start:end]; got != inner.Text {
		t.Errorf("source[%d:%d] = %q, want %q", start, end, got, inner.Text)
	}
}

func TestSpan_SplitAt_PreservesLineAndColumn(t *testing.T) {
	full := New("ab\ncd")
	left, right := full.SplitAt(3)
	if left.Text != "ab\n" {
		t.Fatalf("left.Text = %q", left.Text)
	}
	if right.Line != 2 || right.Column != 1 {
		t.Errorf("right position = line %d col %d, want line 2 col 1", right.Line, right.Column)
	}
}

func TestSpan_End_TracksNewlines(t *testing.T) {
	span := New("ab\ncd").Take(5)
	end := span.End()
	if end.Line != 2 || end.Column != 3 {
		t.Errorf("End() = line %d col %d, want line 2 col 3", end.Line, end.Column)
	}
}

func TestSpan_HasPrefixFold(t *testing.T) {
	span := New("ImportFoo")
	if !span.HasPrefixFold("import") {
		t.Error("expected case-insensitive prefix match")
	}
	if span.HasPrefixFold("export") {
		t.Error("unexpected prefix match")
	}
}

func TestSpan_Index(t *testing.T) {
	span := New("a -- comment\nb")
	if idx := span.Index("--"); idx != 2 {
		t.Errorf("Index(\"--\") = %d, want 2", idx)
	}
	if idx := span.Index("zzz"); idx != -1 {
		t.Errorf("Index(\"zzz\") = %d, want -1", idx)
	}
}
