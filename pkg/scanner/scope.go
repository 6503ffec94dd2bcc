package scanner

import (
	"hdrmeta/pkg/meta"
)

// frameKind tags one open brace-delimited construct on the scope stack.
type frameKind int

const (
	frameFileRoot frameKind = iota
	frameNamespace
	frameStruct
	frameEnum
	frameFunction
	frameBlock
)

// frame is one scope-stack entry. Namespace/Struct/Enum frames carry the
// declaration being materialized; Function and Block frames exist only for
// brace balance and never collect declarations.
type frame struct {
	kind     frameKind
	decl     *meta.Decl
	openLine int

	pending []token // statement tokens accumulated at this depth

	attrs    []string // captured [[...]] texts awaiting attachment
	inAttr   bool
	attrToks []token

	initDepth int // >0 while a brace initializer is being captured raw

	names map[string]bool // duplicate member/enumerator detection
}

func (s *Scanner) top() *frame {
	return s.stack[len(s.stack)-1]
}

func (s *Scanner) push(f *frame) {
	s.stack = append(s.stack, f)
}

func (s *Scanner) pop() *frame {
	f := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return f
}

// namespacePath returns the "::"-joined names of the open namespace frames.
func (s *Scanner) namespacePath() string {
	path := ""
	for _, f := range s.stack {
		if f.kind == frameNamespace && f.decl != nil && f.decl.Name != "" {
			if path != "" {
				path += "::"
			}
			path += f.decl.Name
		}
	}
	return path
}

// attach hands a finished declaration to the innermost frame that can own
// declarations.
func (s *Scanner) attach(d *meta.Decl) {
	for i := len(s.stack) - 1; i >= 0; i-- {
		f := s.stack[i]
		switch f.kind {
		case frameFileRoot:
			s.file.Decls = append(s.file.Decls, d)
			return
		case frameNamespace, frameStruct, frameEnum:
			f.decl.Children = append(f.decl.Children, d)
			return
		}
	}
}

// openBrace classifies a '{' by the statement tokens that preceded it and
// pushes the matching frame. The pending statement is consumed.
func (s *Scanner) openBrace(tok token) {
	top := s.top()
	p := top.pending
	top.pending = nil

	if len(p) > 0 {
		switch p[0].text {
		case "namespace":
			s.push(&frame{
				kind:     frameNamespace,
				openLine: tok.line,
				decl:     &meta.Decl{Kind: meta.DeclNamespace, Name: namespaceName(p[1:]), Line: p[0].line},
			})
			top.attrs = nil
			return
		case "struct", "class":
			kind := meta.DeclStruct
			if p[0].text == "class" {
				kind = meta.DeclClass
			}
			name := ""
			if len(p) > 1 && isIdent(p[1].text) {
				name = p[1].text
			}
			s.push(&frame{
				kind:     frameStruct,
				openLine: tok.line,
				decl:     &meta.Decl{Kind: kind, Name: name, Line: p[0].line, Attributes: top.attrs},
				names:    make(map[string]bool),
			})
			top.attrs = nil
			return
		case "enum":
			rest := p[1:]
			if len(rest) > 0 && (rest[0].text == "class" || rest[0].text == "struct") {
				rest = rest[1:]
			}
			name := ""
			if len(rest) > 0 && isIdent(rest[0].text) {
				name = rest[0].text
			}
			s.push(&frame{
				kind:     frameEnum,
				openLine: tok.line,
				decl:     &meta.Decl{Kind: meta.DeclEnum, Name: name, Line: p[0].line, Attributes: top.attrs},
				names:    make(map[string]bool),
			})
			top.attrs = nil
			return
		}

		// A brace after a parameter-list close starts a function body. Inside
		// a record this finishes the method first; the body itself is tracked
		// for brace balance only.
		if parenIndex(p) >= 0 {
			if top.kind == frameStruct {
				s.addMethod(top, p, true)
			}
			s.push(&frame{kind: frameFunction, openLine: tok.line})
			return
		}
	}

	s.push(&frame{kind: frameBlock, openLine: tok.line})
}

// closeBrace pops one frame, finalizing its declaration if it carries one.
func (s *Scanner) closeBrace(tok token) *Diagnostic {
	if len(s.stack) == 1 {
		return errorf(StrayCloseBrace, tok.line, "no open scope to close")
	}

	f := s.pop()
	switch f.kind {
	case frameEnum:
		s.finishEnum(f)
		s.attach(f.decl)
	case frameNamespace, frameStruct:
		s.attach(f.decl)
	}
	return nil
}

// namespaceName joins the tokens naming a namespace; anonymous namespaces
// yield "". Qualified names like a::b are kept whole.
func namespaceName(toks []token) string {
	for _, t := range toks {
		if !isIdent(t.text) && t.text != "::" {
			return ""
		}
	}
	return joinTokens(toks)
}

// parenIndex returns the index of the first '(' token, or -1.
func parenIndex(toks []token) int {
	for i, t := range toks {
		if t.text == "(" {
			return i
		}
	}
	return -1
}
