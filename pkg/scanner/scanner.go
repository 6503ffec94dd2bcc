package scanner

import (
	"hdrmeta/pkg/meta"
)

// Scanner drives one scan: spans from the lexer feed the scope stack and the
// recognizer. A Scanner is used for a single buffer and holds no state across
// scans; independent buffers may be scanned concurrently.
type Scanner struct {
	input    string
	file     *meta.File
	stack    []*frame
	warnings []Diagnostic
}

// Scan extracts the declaration tree from one source buffer. The filename is
// used for the result only. On a fatal diagnostic (unterminated comment or
// string, unbalanced braces) the returned file is nil and err carries the
// diagnostic; recognition warnings are returned alongside a valid file.
func Scan(filename, content string) (*meta.File, []Diagnostic, error) {
	spans, derr := lex(content)
	if derr != nil {
		return nil, nil, derr
	}

	s := &Scanner{
		input: content,
		file:  &meta.File{Filename: filename},
		stack: []*frame{{kind: frameFileRoot}},
	}

	for _, sp := range spans {
		switch sp.Kind {
		case SpanCode:
			for _, tok := range tokenizeCode(sp.Text(content), sp.Line) {
				if d := s.consume(tok); d != nil {
					return nil, s.warnings, d
				}
			}
		case SpanDirective:
			s.recognizeDirective(sp.Text(content), sp.Line)
		case SpanString, SpanChar:
			// Literals are opaque: a single token that can never open or
			// close a scope, so embedded braces, quotes and keywords are
			// inert. Comments contribute nothing at all.
			s.consumeOpaque(token{text: sp.Text(content), line: sp.Line})
		}
	}

	if len(s.stack) > 1 {
		f := s.top()
		return nil, s.warnings, errorf(UnclosedScope, f.openLine, "scope opened here is never closed")
	}

	return s.file, s.warnings, nil
}

// consume feeds one code token to the scope tracker.
func (s *Scanner) consume(tok token) *Diagnostic {
	top := s.top()

	// Function and block frames are tracked for brace balance only; their
	// content is never scanned as declarations.
	if top.kind == frameFunction || top.kind == frameBlock {
		switch tok.text {
		case "{":
			s.push(&frame{kind: frameBlock, openLine: tok.line})
		case "}":
			return s.closeBrace(tok)
		}
		return nil
	}

	// Attribute capture: [[...]] content is kept as opaque attached text.
	if top.inAttr {
		if tok.text == "]]" {
			top.attrs = append(top.attrs, joinTokens(top.attrToks))
			top.attrToks = nil
			top.inAttr = false
		} else {
			top.attrToks = append(top.attrToks, tok)
		}
		return nil
	}
	if tok.text == "[[" && top.kind != frameEnum && top.initDepth == 0 {
		top.inAttr = true
		return nil
	}

	// Raw capture of a brace initializer already under way.
	if top.initDepth > 0 {
		switch tok.text {
		case "{":
			top.initDepth++
		case "}":
			top.initDepth--
		}
		top.pending = append(top.pending, tok)
		return nil
	}

	switch tok.text {
	case "{":
		if top.kind != frameEnum && topLevelIndex(top.pending, "=") >= 0 {
			// Default initializer brace, e.g. "= {}": part of the member
			// statement, not a new scope.
			top.initDepth = 1
			top.pending = append(top.pending, tok)
			return nil
		}
		s.openBrace(tok)
	case "}":
		return s.closeBrace(tok)
	case ";":
		if top.kind == frameEnum {
			top.pending = append(top.pending, tok)
			return nil
		}
		s.endStatement(top)
	default:
		top.pending = append(top.pending, tok)
	}
	return nil
}

// consumeOpaque appends a literal span as a single inert token to whichever
// frame is accumulating a statement.
func (s *Scanner) consumeOpaque(tok token) {
	top := s.top()
	switch top.kind {
	case frameFunction, frameBlock:
		// ignored entirely
	default:
		if top.inAttr {
			top.attrToks = append(top.attrToks, tok)
			return
		}
		top.pending = append(top.pending, tok)
	}
}

// warn records a non-fatal diagnostic and lets the scan continue.
func (s *Scanner) warn(kind ErrorKind, line int, format string, args ...interface{}) {
	s.warnings = append(s.warnings, *errorf(kind, line, format, args...))
}
