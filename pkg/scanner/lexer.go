// Package scanner implements the header-metadata scanning pipeline: a span
// lexer, a brace-tagged scope tracker and a declaration recognizer.
package scanner

// SpanKind classifies a lexed slice of the input buffer.
type SpanKind int

const (
	SpanCode SpanKind = iota
	SpanLineComment
	SpanBlockComment
	SpanString
	SpanChar
	SpanDirective
)

func (k SpanKind) String() string {
	switch k {
	case SpanCode:
		return "code"
	case SpanLineComment:
		return "line-comment"
	case SpanBlockComment:
		return "block-comment"
	case SpanString:
		return "string"
	case SpanChar:
		return "char"
	case SpanDirective:
		return "directive"
	default:
		return "unknown"
	}
}

// Span is a contiguous classified slice of the buffer. Spans partition the
// input: concatenating the text of all spans in order reproduces it exactly.
type Span struct {
	Kind  SpanKind
	Start int // byte offset, inclusive
	End   int // byte offset, exclusive
	Line  int // 1-based line of Start
}

// Text returns the slice of input covered by the span.
func (s Span) Text(input string) string {
	return input[s.Start:s.End]
}

type lexer struct {
	input     string
	pos       int
	line      int
	start     int // start offset of the span being built
	startLine int
	lineStart bool // only whitespace seen since the last newline
	spans     []Span
}

// lex partitions the buffer into spans. Classification is decided by a strict
// priority order evaluated at each position: line comment, block comment,
// string, char, directive, code. Interiors of non-code spans are opaque and
// never re-scanned.
func lex(input string) ([]Span, *Diagnostic) {
	l := &lexer{input: input, line: 1, startLine: 1, lineStart: true}

	for l.pos < len(l.input) {
		c := l.input[l.pos]
		switch {
		case c == '/' && l.peek(1) == '/':
			l.flushCode()
			l.scanLineComment()
		case c == '/' && l.peek(1) == '*':
			l.flushCode()
			if d := l.scanBlockComment(); d != nil {
				return nil, d
			}
		case c == '"':
			l.flushCode()
			if d := l.scanQuoted('"', SpanString); d != nil {
				return nil, d
			}
		case c == '\'':
			l.flushCode()
			if d := l.scanQuoted('\'', SpanChar); d != nil {
				return nil, d
			}
		case c == '#' && l.lineStart:
			l.flushCode()
			l.scanDirective()
		default:
			if c == '\n' {
				l.line++
				l.lineStart = true
			} else if c != ' ' && c != '\t' && c != '\r' {
				l.lineStart = false
			}
			l.pos++
		}
	}
	l.flushCode()

	return l.spans, nil
}

// peek returns the byte n positions ahead, or 0 at end of input.
func (l *lexer) peek(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

// flushCode emits the pending code span, if any.
func (l *lexer) flushCode() {
	if l.pos > l.start {
		l.spans = append(l.spans, Span{Kind: SpanCode, Start: l.start, End: l.pos, Line: l.startLine})
	}
	l.start = l.pos
	l.startLine = l.line
}

func (l *lexer) emit(kind SpanKind) {
	l.spans = append(l.spans, Span{Kind: kind, Start: l.start, End: l.pos, Line: l.startLine})
	l.start = l.pos
	l.startLine = l.line
}

// scanLineComment consumes "//" to the next newline. The newline itself is
// not part of the comment. Ending at EOF is valid.
func (l *lexer) scanLineComment() {
	l.pos += 2
	l.lineStart = false
	for l.pos < len(l.input) && l.input[l.pos] != '\n' {
		l.pos++
	}
	l.emit(SpanLineComment)
}

// scanBlockComment consumes "/*" to the first "*/". Block comments do not
// nest. Reaching EOF before the close is fatal.
func (l *lexer) scanBlockComment() *Diagnostic {
	l.pos += 2
	l.lineStart = false
	for l.pos < len(l.input) {
		if l.input[l.pos] == '*' && l.peek(1) == '/' {
			l.pos += 2
			l.emit(SpanBlockComment)
			return nil
		}
		if l.input[l.pos] == '\n' {
			l.line++
		}
		l.pos++
	}
	return errorf(UnterminatedComment, l.startLine, "block comment is never closed")
}

// scanQuoted consumes a string or char literal. Backslash escapes the next
// byte, so \" and \\ do not terminate. Reaching EOF before the closing quote
// is fatal.
func (l *lexer) scanQuoted(quote byte, kind SpanKind) *Diagnostic {
	l.pos++ // opening quote
	l.lineStart = false
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		switch c {
		case '\\':
			l.pos++ // skip the escaped byte as well
			if l.pos < len(l.input) && l.input[l.pos] == '\n' {
				l.line++
			}
		case quote:
			l.pos++
			l.emit(kind)
			return nil
		case '\n':
			l.line++
		}
		l.pos++
	}
	return errorf(UnterminatedString, l.startLine, "literal is never closed")
}

// scanDirective consumes a preprocessor line. A trailing backslash continues
// the directive onto the next line within the same span.
func (l *lexer) scanDirective() {
	l.lineStart = false
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c == '\\' && l.peek(1) == '\n' {
			l.pos += 2
			l.line++
			continue
		}
		if c == '\n' {
			break
		}
		l.pos++
	}
	l.emit(SpanDirective)
}
