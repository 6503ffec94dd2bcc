package scanner

// token is one code token fed to the scope tracker. Tokens are identifiers,
// numbers or punctuation; whitespace never produces a token.
type token struct {
	text string
	line int
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isIdent reports whether s is a plausible identifier token.
func isIdent(s string) bool {
	if s == "" || !isIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentByte(s[i]) {
			return false
		}
	}
	return true
}

// wordish reports whether a token needs a space when joined with another
// wordish token to reproduce readable raw text.
func wordish(s string) bool {
	return s != "" && isIdentByte(s[0])
}

// joinTokens reconstructs raw declaration text from tokens: punctuation
// binds tightly, adjacent words are separated by one space. "1", "<<", "0"
// becomes "1<<0"; "unsigned", "int" becomes "unsigned int".
func joinTokens(toks []token) string {
	n := 0
	for _, t := range toks {
		n += len(t.text) + 1
	}
	buf := make([]byte, 0, n)
	for i, t := range toks {
		if i > 0 && wordish(toks[i-1].text) && wordish(t.text) {
			buf = append(buf, ' ')
		}
		buf = append(buf, t.text...)
	}
	return string(buf)
}

// two-byte punctuation kept as single tokens so qualified names, attribute
// brackets and shift operators survive as units.
func doubleToken(a, b byte) bool {
	switch {
	case a == ':' && b == ':':
		return true
	case a == '[' && b == '[':
		return true
	case a == ']' && b == ']':
		return true
	case a == '<' && b == '<':
		return true
	case a == '>' && b == '>':
		return true
	}
	return false
}

// tokenizeCode splits one code span into tokens, tracking line numbers from
// the span's starting line.
func tokenizeCode(text string, line int) []token {
	var toks []token
	pos := 0
	for pos < len(text) {
		c := text[pos]
		switch {
		case c == '\n':
			line++
			pos++
		case c == ' ' || c == '\t' || c == '\r':
			pos++
		case isIdentStart(c) || (c >= '0' && c <= '9'):
			start := pos
			for pos < len(text) && isIdentByte(text[pos]) {
				pos++
			}
			toks = append(toks, token{text: text[start:pos], line: line})
		default:
			if pos+1 < len(text) && doubleToken(c, text[pos+1]) {
				toks = append(toks, token{text: text[pos : pos+2], line: line})
				pos += 2
			} else {
				toks = append(toks, token{text: text[pos : pos+1], line: line})
				pos++
			}
		}
	}
	return toks
}
