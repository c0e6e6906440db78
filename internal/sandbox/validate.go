package sandbox

import (
	"fmt"
	"strings"
)

// blacklistImports are module roots user code may not import.
var blacklistImports = map[string]bool{
	"os":         true,
	"sys":        true,
	"subprocess": true,
	"shutil":     true,
	"builtins":   true,
	"importlib":  true,
	"socket":     true,
	"requests":   true,
	"urllib":     true,
	"ftplib":     true,
	"smtplib":    true,
	"telnetlib":  true,
	"http":       true,
}

// blacklistCalls are builtins user code may not call directly.
var blacklistCalls = map[string]bool{
	"eval":       true,
	"exec":       true,
	"open":       true,
	"compile":    true,
	"globals":    true,
	"locals":     true,
	"super":      true,
	"getattr":    true,
	"setattr":    true,
	"delattr":    true,
	"input":      true,
	"breakpoint": true,
	"help":       true,
	"exit":       true,
	"quit":       true,
}

// Validate screens Python source before execution. It returns an empty
// string when the code passes, otherwise a refusal message. Comments and
// string contents are ignored; imports are checked against a module
// blacklist, direct calls against a builtin blacklist, and dunder
// attribute access is refused. Attribute calls like x.open() are outside
// the direct-call check, matching the execution contract callers rely on.
func Validate(code string) string {
	screened, msg := blankLiterals(code)
	if msg != "" {
		return msg
	}
	if msg := checkBrackets(screened); msg != "" {
		return msg
	}
	for _, line := range logicalLines(screened) {
		if msg := checkLine(line); msg != "" {
			return msg
		}
	}
	return ""
}

// logicalLines splits screened source into logical lines: a physical line
// ending in a backslash, or left inside an open bracket, continues on the
// next one. Without this, eval(\n'1') would split the call name from its
// parenthesis and slip past the call check.
func logicalLines(code string) []string {
	var lines []string
	var joined strings.Builder
	depth := 0
	for _, line := range strings.Split(code, "\n") {
		cont := false
		if strings.HasSuffix(line, "\\") {
			line = line[:len(line)-1]
			cont = true
		}
		for i := 0; i < len(line); i++ {
			switch line[i] {
			case '(', '[', '{':
				depth++
			case ')', ']', '}':
				depth--
			}
		}
		joined.WriteString(line)
		if cont || depth > 0 {
			joined.WriteByte(' ')
			continue
		}
		lines = append(lines, joined.String())
		joined.Reset()
	}
	if joined.Len() > 0 {
		lines = append(lines, joined.String())
	}
	return lines
}

// blankLiterals returns a copy of the source with comment text and string
// contents replaced by spaces, so later scans only see live code. The
// second return value is a non-empty syntax message when a string literal
// never closes.
func blankLiterals(code string) (string, string) {
	out := []byte(code)
	n := len(code)
	i := 0
	for i < n {
		c := code[i]
		switch {
		case c == '#':
			for i < n && code[i] != '\n' {
				out[i] = ' '
				i++
			}
		case c == '\'' || c == '"':
			quote := code[i : i+1]
			if i+2 < n && code[i+1] == c && code[i+2] == c {
				quote = code[i : i+3]
			}
			end, ok := scanString(code, i, quote)
			if !ok {
				return "", "Syntax Error: unterminated string literal"
			}
			for j := i + len(quote); j < end-len(quote); j++ {
				if code[j] != '\n' {
					out[j] = ' '
				}
			}
			i = end
		default:
			i++
		}
	}
	return string(out), ""
}

// scanString finds the end of the string literal opened at start with the
// given quote, honoring backslash escapes. It returns the index just past
// the closing quote.
func scanString(code string, start int, quote string) (int, bool) {
	i := start + len(quote)
	n := len(code)
	for i < n {
		if code[i] == '\\' {
			i += 2
			continue
		}
		if strings.HasPrefix(code[i:], quote) {
			return i + len(quote), true
		}
		if len(quote) == 1 && code[i] == '\n' {
			return 0, false
		}
		i++
	}
	return 0, false
}

func checkBrackets(code string) string {
	pairs := map[byte]byte{')': '(', ']': '[', '}': '{'}
	var stack []byte
	for i := 0; i < len(code); i++ {
		switch c := code[i]; c {
		case '(', '[', '{':
			stack = append(stack, c)
		case ')', ']', '}':
			if len(stack) == 0 || stack[len(stack)-1] != pairs[c] {
				return fmt.Sprintf("Syntax Error: unmatched '%c'", c)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		return fmt.Sprintf("Syntax Error: unclosed '%c'", stack[len(stack)-1])
	}
	return ""
}

func checkLine(line string) string {
	for _, stmt := range strings.Split(line, ";") {
		trimmed := strings.TrimSpace(stmt)

		if rest, ok := strings.CutPrefix(trimmed, "import "); ok {
			if msg := checkImportList(rest); msg != "" {
				return msg
			}
		}
		if rest, ok := strings.CutPrefix(trimmed, "from "); ok {
			fields := strings.Fields(rest)
			if len(fields) > 0 && blacklistImports[rootModule(fields[0])] {
				return fmt.Sprintf("Security Violation: Importing from '%s' is not allowed.", fields[0])
			}
		}
	}

	return checkCallsAndAttrs(line)
}

// checkImportList validates the module list of an import statement,
// e.g. "os.path as p, math".
func checkImportList(rest string) string {
	for _, part := range strings.Split(rest, ",") {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		if blacklistImports[rootModule(fields[0])] {
			return fmt.Sprintf("Security Violation: Importing '%s' is not allowed.", fields[0])
		}
	}
	return ""
}

func rootModule(name string) string {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return name
}

// checkCallsAndAttrs scans one line for direct calls to blacklisted
// builtins and for dunder attribute access.
func checkCallsAndAttrs(line string) string {
	prevWord := ""
	i := 0
	for i < len(line) {
		c := line[i]

		if c == '.' && strings.HasPrefix(line[i+1:], "__") {
			return "Security Violation: Accessing private/dunder attributes is not allowed."
		}

		if !isIdentStart(c) {
			i++
			continue
		}

		start := i
		for i < len(line) && isIdentChar(line[i]) {
			i++
		}
		word := line[start:i]

		// x.open() is an attribute call, not a direct builtin call.
		dotted := start > 0 && line[start-1] == '.'

		if !dotted && prevWord != "def" && prevWord != "class" && blacklistCalls[word] {
			j := i
			for j < len(line) && (line[j] == ' ' || line[j] == '\t') {
				j++
			}
			if j < len(line) && line[j] == '(' {
				return fmt.Sprintf("Security Violation: Calling '%s' is not allowed.", word)
			}
		}
		prevWord = word
	}
	return ""
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
