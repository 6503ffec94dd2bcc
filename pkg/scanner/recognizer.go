package scanner

import (
	"strings"

	"hdrmeta/pkg/meta"
)

// endStatement classifies the pending tokens of the top frame when a ';' is
// reached. Statements that cannot be classified inside a record are reported
// and skipped; scanning always continues.
func (s *Scanner) endStatement(f *frame) {
	p := f.pending
	f.pending = nil
	if len(p) == 0 {
		return
	}

	switch f.kind {
	case frameStruct:
		s.recognizeMember(f, p)
	case frameNamespace, frameFileRoot:
		s.recognizeScopeStatement(p)
		f.attrs = nil
	}
}

// recognizeScopeStatement handles ';'-terminated statements at file or
// namespace scope. Only type aliases produce declarations; free-function
// prototypes, variables and forward declarations are passed over.
func (s *Scanner) recognizeScopeStatement(p []token) {
	switch p[0].text {
	case "typedef":
		if len(p) < 3 {
			return
		}
		name := p[len(p)-1].text
		if !isIdent(name) {
			return
		}
		s.attach(&meta.Decl{
			Kind:   meta.DeclAlias,
			Name:   name,
			Line:   p[0].line,
			Target: joinTokens(p[1 : len(p)-1]),
			Scope:  s.namespacePath(),
		})
	case "using":
		// using Alias = Target;
		if len(p) < 4 || !isIdent(p[1].text) || p[2].text != "=" {
			return
		}
		s.attach(&meta.Decl{
			Kind:   meta.DeclAlias,
			Name:   p[1].text,
			Line:   p[0].line,
			Target: joinTokens(p[3:]),
			Scope:  s.namespacePath(),
		})
	}
}

// recognizeMember classifies one ';'-terminated record member as a field or
// a method declaration.
func (s *Scanner) recognizeMember(f *frame, p []token) {
	if parenIndex(p) >= 0 {
		s.addMethod(f, p, false)
		return
	}
	s.addField(f, p)
}

// addField records a field member: [type tokens] name [array suffix] [= default].
func (s *Scanner) addField(f *frame, p []token) {
	attrs := f.attrs
	f.attrs = nil

	left := p
	def := ""
	if eq := topLevelIndex(p, "="); eq >= 0 {
		left = p[:eq]
		def = joinTokens(p[eq+1:])
	}

	// Fold a trailing array suffix into the type text.
	var suffix []token
	for len(left) > 0 && left[len(left)-1].text == "]" {
		open := matchOpenBracket(left)
		if open <= 0 {
			break
		}
		suffix = append(left[open:len(left):len(left)], suffix...)
		left = left[:open]
	}

	if len(left) < 2 || !isIdent(left[len(left)-1].text) {
		s.warn(UnrecognizedDeclaration, p[0].line, "cannot classify record member %q", joinTokens(p))
		return
	}

	name := left[len(left)-1].text
	if f.names[name] {
		s.warn(DuplicateMemberName, p[0].line, "member %q already declared", name)
		return
	}
	f.names[name] = true

	typeToks := append(append([]token{}, left[:len(left)-1]...), suffix...)
	f.decl.Members = append(f.decl.Members, meta.Member{
		Kind:       meta.MemberField,
		Name:       name,
		Line:       p[0].line,
		Type:       joinTokens(typeToks),
		Default:    def,
		Attributes: attrs,
	})
}

// addMethod records a method member. inlineBody is set when the statement
// ended at a '{' rather than ';'.
func (s *Scanner) addMethod(f *frame, p []token, inlineBody bool) {
	attrs := f.attrs
	f.attrs = nil

	open := parenIndex(p)
	if open == 0 || !isIdent(p[open-1].text) {
		s.warn(UnrecognizedDeclaration, p[0].line, "cannot classify record member %q", joinTokens(p))
		return
	}
	name := p[open-1].text

	end := matchCloseParen(p, open)
	if end < 0 {
		s.warn(UnrecognizedDeclaration, p[0].line, "unbalanced parameter list in %q", joinTokens(p))
		return
	}

	if f.names[name] {
		s.warn(DuplicateMemberName, p[0].line, "member %q already declared", name)
		return
	}
	f.names[name] = true

	isConst := false
	for _, t := range p[end+1:] {
		if t.text == "const" {
			isConst = true
		}
	}

	f.decl.Members = append(f.decl.Members, meta.Member{
		Kind:          meta.MemberMethod,
		Name:          name,
		Line:          p[0].line,
		Params:        parseParams(p[open+1 : end]),
		Attributes:    attrs,
		IsConst:       isConst,
		HasInlineBody: inlineBody,
	})
}

// parseParams splits a parameter list on top-level commas. Each parameter is
// raw type text plus a trailing name when one is present; default arguments
// are dropped. A lone "void" means an empty list.
func parseParams(toks []token) []meta.Param {
	if len(toks) == 0 || (len(toks) == 1 && toks[0].text == "void") {
		return nil
	}

	var params []meta.Param
	for _, group := range splitTopLevel(toks, ",") {
		if len(group) == 0 {
			continue
		}
		if eq := topLevelIndex(group, "="); eq >= 0 {
			group = group[:eq]
		}
		last := len(group) - 1
		if last > 0 && isIdent(group[last].text) {
			params = append(params, meta.Param{
				Type: joinTokens(group[:last]),
				Name: group[last].text,
			})
		} else {
			params = append(params, meta.Param{Type: joinTokens(group)})
		}
	}
	return params
}

// finishEnum splits the accumulated enum body on commas and records the
// enumerators. A trailing comma produces no extra enumerator.
func (s *Scanner) finishEnum(f *frame) {
	for _, group := range splitTopLevel(f.pending, ",") {
		if len(group) == 0 {
			continue
		}
		name := group[0].text
		if !isIdent(name) {
			s.warn(UnrecognizedDeclaration, group[0].line, "cannot classify enumerator %q", joinTokens(group))
			continue
		}

		value := ""
		if len(group) > 1 {
			if group[1].text != "=" || len(group) < 3 {
				s.warn(UnrecognizedDeclaration, group[0].line, "cannot classify enumerator %q", joinTokens(group))
				continue
			}
			value = joinTokens(group[2:])
		}

		if f.names[name] {
			s.warn(DuplicateEnumeratorName, group[0].line, "enumerator %q already declared", name)
			continue
		}
		f.names[name] = true

		f.decl.Enumerators = append(f.decl.Enumerators, meta.Enumerator{Name: name, Value: value})
	}
	f.pending = nil
}

// recognizeDirective records #define macros and collects #include lines.
// Macro names are matched per whole token, never by substring, so names
// sharing a prefix stay distinct.
func (s *Scanner) recognizeDirective(text string, line int) {
	text = strings.ReplaceAll(text, "\\\n", " ")
	if i := strings.Index(text, "//"); i >= 0 {
		text = text[:i]
	}
	if i := strings.Index(text, "/*"); i >= 0 {
		text = text[:i]
	}

	fields := strings.Fields(text)
	if len(fields) == 0 {
		return
	}
	// "#define" and "# define" are both valid spellings.
	if fields[0] == "#" {
		fields = fields[1:]
	} else {
		fields[0] = strings.TrimPrefix(fields[0], "#")
	}
	if len(fields) == 0 {
		return
	}

	switch fields[0] {
	case "define":
		if len(fields) < 2 {
			return
		}
		name := fields[1]
		hasValue := len(fields) > 2
		if i := strings.IndexByte(name, '('); i >= 0 {
			// Function-like macro: the parameter list counts as a value.
			name = name[:i]
			hasValue = true
		}
		if !isIdent(name) {
			return
		}
		s.attach(&meta.Decl{Kind: meta.DeclMacro, Name: name, Line: line, HasValue: hasValue})
	case "include":
		s.file.Includes = append(s.file.Includes, strings.Join(fields[1:], " "))
	}
}

// splitTopLevel splits tokens on a separator, ignoring occurrences nested in
// (), [] or {} pairs.
func splitTopLevel(toks []token, sep string) [][]token {
	var groups [][]token
	depth := 0
	start := 0
	for i, t := range toks {
		switch t.text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
		case sep:
			if depth == 0 {
				groups = append(groups, toks[start:i])
				start = i + 1
			}
		}
	}
	return append(groups, toks[start:])
}

// topLevelIndex returns the index of the first top-level occurrence of text.
func topLevelIndex(toks []token, text string) int {
	depth := 0
	for i, t := range toks {
		switch t.text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
		default:
			if depth == 0 && t.text == text {
				return i
			}
		}
	}
	return -1
}

// matchOpenBracket finds the '[' matching the trailing ']' of toks.
func matchOpenBracket(toks []token) int {
	depth := 0
	for i := len(toks) - 1; i >= 0; i-- {
		switch toks[i].text {
		case "]":
			depth++
		case "[":
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// matchCloseParen finds the ')' matching the '(' at open.
func matchCloseParen(toks []token, open int) int {
	depth := 0
	for i := open; i < len(toks); i++ {
		switch toks[i].text {
		case "(":
			depth++
		case ")":
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
