// internal/formula/scan.go
// Lexical scanners over the text left of the caret. Each returns the start
// offset of the trailing pattern it recognises.
package formula

func isIdentChar(c byte) bool {
	return isAlpha(c) || isDigit(c) || c == '_'
}

func isIdentStart(c byte) bool {
	return isAlpha(c) || c == '_'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isArithmetic(c byte) bool {
	switch c {
	case '+', '-', '*', '/', '%', '^':
		return true
	}
	return false
}

func isOperator(c byte) bool {
	switch c {
	case '=', '<', '!', '>':
		return true
	}
	return isArithmetic(c)
}

// identStart walks back over identifier characters ending at end
func identStart(s string, end int) int {
	i := end
	for i > 0 && isIdentChar(s[i-1]) {
		i--
	}
	return i
}

// scanField matches "<identifier>.<partial>" at the end of before. partial
// may be empty; the identifier has to start with a letter or underscore.
func scanField(before string) (qualifier string, partialStart int, ok bool) {
	partialStart = identStart(before, len(before))
	dot := partialStart - 1
	if dot < 0 || before[dot] != '.' {
		return "", 0, false
	}
	qStart := identStart(before, dot)
	if qStart == dot || !isIdentStart(before[qStart]) {
		return "", 0, false
	}
	return before[qStart:dot], partialStart, true
}

// scanIdent matches a bare trailing identifier fragment not preceded by a dot
func scanIdent(before string) (start int, ok bool) {
	start = identStart(before, len(before))
	if start == len(before) {
		return 0, false
	}
	if start > 0 && before[start-1] == '.' {
		return 0, false
	}
	return start, true
}

// scanIf matches the bare word "if" at start of text or after whitespace
func scanIf(before string) (start int, ok bool) {
	n := len(before)
	if n < 2 || before[n-2:] != "if" {
		return 0, false
	}
	start = n - 2
	if start > 0 && !isSpace(before[start-1]) {
		return 0, false
	}
	return start, true
}

// scanOperator matches one or two trailing operator characters
func scanOperator(before string) (start int, ok bool) {
	n := len(before)
	if n == 0 || !isOperator(before[n-1]) {
		return 0, false
	}
	start = n - 1
	if n >= 2 && isOperator(before[n-2]) {
		start = n - 2
	}
	return start, true
}

// scanAlpha matches a trailing run of letters not preceded by a dot
func scanAlpha(before string) (start int, ok bool) {
	start = len(before)
	for start > 0 && isAlpha(before[start-1]) {
		start--
	}
	if start == len(before) {
		return 0, false
	}
	if start > 0 && before[start-1] == '.' {
		return 0, false
	}
	return start, true
}
