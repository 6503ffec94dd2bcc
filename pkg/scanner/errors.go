package scanner

import "fmt"

// ErrorKind classifies scan diagnostics.
type ErrorKind int

const (
	// Fatal: no reliable span or scope boundaries exist past the error.
	UnterminatedComment ErrorKind = iota
	UnterminatedString
	StrayCloseBrace
	UnclosedScope

	// Non-fatal: the offending item is skipped and scanning continues.
	UnrecognizedDeclaration
	DuplicateEnumeratorName
	DuplicateMemberName
)

func (k ErrorKind) String() string {
	switch k {
	case UnterminatedComment:
		return "unterminated comment"
	case UnterminatedString:
		return "unterminated string"
	case StrayCloseBrace:
		return "stray closing brace"
	case UnclosedScope:
		return "unclosed scope"
	case UnrecognizedDeclaration:
		return "unrecognized declaration"
	case DuplicateEnumeratorName:
		return "duplicate enumerator name"
	case DuplicateMemberName:
		return "duplicate member name"
	default:
		return "unknown"
	}
}

// Fatal reports whether a diagnostic of this kind aborts the scan.
func (k ErrorKind) Fatal() bool {
	return k <= UnclosedScope
}

// Diagnostic is one scan error or warning. Line is 1-based and comes from
// the span that produced the problem.
type Diagnostic struct {
	Kind    ErrorKind
	Line    int
	Message string
}

func (d *Diagnostic) Error() string {
	if d.Message == "" {
		return fmt.Sprintf("line %d: %s", d.Line, d.Kind)
	}
	return fmt.Sprintf("line %d: %s: %s", d.Line, d.Kind, d.Message)
}

func errorf(kind ErrorKind, line int, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{Kind: kind, Line: line, Message: fmt.Sprintf(format, args...)}
}
