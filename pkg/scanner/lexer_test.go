package scanner

import (
	"strings"
	"testing"
)

func concatSpans(input string, spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text(input))
	}
	return b.String()
}

func TestSpanPartitionInvariant(t *testing.T) {
	inputs := []string{
		"",
		"int a;",
		"// just a comment",
		"/* block */ int a; // tail",
		"const char* s = \"struct { } // /* \\\" \";",
		"#define A 1\nint a;\n",
		"#define LONG \\\n  1\nint a;\n",
		"namespace a { struct b { int c; }; }",
		"'x' '\\'' '\\\\'",
		"int a; /* multi\nline\ncomment */ int b;\n",
	}

	for _, input := range inputs {
		spans, derr := lex(input)
		if derr != nil {
			t.Fatalf("lex(%q) failed: %v", input, derr)
		}
		if got := concatSpans(input, spans); got != input {
			t.Errorf("span concatenation mismatch:\n got: %q\nwant: %q", got, input)
		}
		for i := 1; i < len(spans); i++ {
			if spans[i].Start != spans[i-1].End {
				t.Errorf("gap or overlap between spans %d and %d in %q", i-1, i, input)
			}
		}
	}
}

func TestSpanKinds(t *testing.T) {
	input := "int a; // c\n\"s\" '\\n' /* b */\n#define X\n"
	spans, derr := lex(input)
	if derr != nil {
		t.Fatalf("lex failed: %v", derr)
	}

	var kinds []SpanKind
	for _, s := range spans {
		kinds = append(kinds, s.Kind)
	}

	want := []SpanKind{
		SpanCode, SpanLineComment, SpanCode, SpanString, SpanCode,
		SpanChar, SpanCode, SpanBlockComment, SpanCode, SpanDirective, SpanCode,
	}
	if len(kinds) != len(want) {
		t.Fatalf("expected %d spans, got %d: %v", len(want), len(kinds), kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("span %d: expected %v, got %v", i, want[i], kinds[i])
		}
	}
}

func TestLineCommentPrecedenceOverString(t *testing.T) {
	// The // wins at its position, so the quote inside it opens nothing.
	input := "// \"not a string\nint a;"
	spans, derr := lex(input)
	if derr != nil {
		t.Fatalf("lex failed: %v", derr)
	}
	for _, s := range spans {
		if s.Kind == SpanString {
			t.Errorf("comment interior was re-scanned as a string literal")
		}
	}
}

func TestStringSwallowsCommentMarkers(t *testing.T) {
	input := "const char* s = \"// /* } { \";\nint a;"
	spans, derr := lex(input)
	if derr != nil {
		t.Fatalf("lex failed: %v", derr)
	}
	var strCount, commentCount int
	for _, s := range spans {
		switch s.Kind {
		case SpanString:
			strCount++
		case SpanLineComment, SpanBlockComment:
			commentCount++
		}
	}
	if strCount != 1 {
		t.Errorf("expected 1 string span, got %d", strCount)
	}
	if commentCount != 0 {
		t.Errorf("expected no comment spans, got %d", commentCount)
	}
}

func TestEscapedQuoteDoesNotTerminate(t *testing.T) {
	input := `"a\"b\\" int`
	spans, derr := lex(input)
	if derr != nil {
		t.Fatalf("lex failed: %v", derr)
	}
	if spans[0].Kind != SpanString {
		t.Fatalf("expected leading string span, got %v", spans[0].Kind)
	}
	if got := spans[0].Text(input); got != `"a\"b\\"` {
		t.Errorf("string span mismatch: %q", got)
	}
}

func TestUnterminatedLineCommentAtEOFIsValid(t *testing.T) {
	spans, derr := lex("int a; // trailing")
	if derr != nil {
		t.Fatalf("line comment at EOF must be valid, got %v", derr)
	}
	last := spans[len(spans)-1]
	if last.Kind != SpanLineComment {
		t.Errorf("expected trailing line comment span, got %v", last.Kind)
	}
}

func TestUnterminatedBlockCommentIsFatal(t *testing.T) {
	_, derr := lex("int a; /* never closed")
	if derr == nil || derr.Kind != UnterminatedComment {
		t.Fatalf("expected UnterminatedComment, got %v", derr)
	}
	if derr.Line != 1 {
		t.Errorf("expected line 1, got %d", derr.Line)
	}
}

func TestUnterminatedStringIsFatal(t *testing.T) {
	_, derr := lex("int a;\nconst char* s = \"oops")
	if derr == nil || derr.Kind != UnterminatedString {
		t.Fatalf("expected UnterminatedString, got %v", derr)
	}
	if derr.Line != 2 {
		t.Errorf("expected line 2, got %d", derr.Line)
	}
}

func TestNestedBlockCommentDoesNotNest(t *testing.T) {
	input := "/* outer /* inner */ int a;"
	spans, derr := lex(input)
	if derr != nil {
		t.Fatalf("lex failed: %v", derr)
	}
	if spans[0].Kind != SpanBlockComment {
		t.Fatalf("expected block comment first, got %v", spans[0].Kind)
	}
	if got := spans[0].Text(input); got != "/* outer /* inner */" {
		t.Errorf("block comment must end at the first */: %q", got)
	}
}

func TestDirectiveRequiresLineStart(t *testing.T) {
	input := "int a; #not_a_directive\n#define REAL\n"
	spans, derr := lex(input)
	if derr != nil {
		t.Fatalf("lex failed: %v", derr)
	}
	var directives []string
	for _, s := range spans {
		if s.Kind == SpanDirective {
			directives = append(directives, s.Text(input))
		}
	}
	if len(directives) != 1 || directives[0] != "#define REAL" {
		t.Errorf("expected exactly the #define directive, got %v", directives)
	}
}

func TestDirectiveBackslashContinuation(t *testing.T) {
	input := "#define MULTI \\\n  line2\nint a;"
	spans, derr := lex(input)
	if derr != nil {
		t.Fatalf("lex failed: %v", derr)
	}
	if spans[0].Kind != SpanDirective {
		t.Fatalf("expected directive span first, got %v", spans[0].Kind)
	}
	if got := spans[0].Text(input); got != "#define MULTI \\\n  line2" {
		t.Errorf("continuation must stay in one span: %q", got)
	}
}

func TestSpanLineNumbers(t *testing.T) {
	input := "int a;\n\n// comment\nint b;\n"
	spans, derr := lex(input)
	if derr != nil {
		t.Fatalf("lex failed: %v", derr)
	}
	for _, s := range spans {
		if s.Kind == SpanLineComment && s.Line != 3 {
			t.Errorf("expected comment on line 3, got %d", s.Line)
		}
	}
}
