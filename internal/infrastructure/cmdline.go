package infrastructure

import "strings"

// shellSpecialChars are the characters that make an argument unsafe to paste
// into a POSIX shell unquoted
const shellSpecialChars = " \t\n\r'\"$`\\!*?[](){}|;<>&~#%"

// QuoteArg quotes s for display in a shell command line.
// exec.Command never needs this; it only keeps logged commands copy-pasteable.
func QuoteArg(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, shellSpecialChars) {
		return s
	}
	// close the quote, emit a double-quoted ', reopen
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

// FormatCommand renders binary and args as a single quoted command line
func FormatCommand(binary string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, QuoteArg(binary))
	for _, arg := range args {
		parts = append(parts, QuoteArg(arg))
	}
	return strings.Join(parts, " ")
}
