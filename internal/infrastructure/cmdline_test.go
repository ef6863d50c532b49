package infrastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteArg(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain path",
			input:    "/opt/app/yt-dlp",
			expected: "/opt/app/yt-dlp",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "''",
		},
		{
			name:     "path with spaces",
			input:    "/Applications/My App/yt-dlp",
			expected: "'/Applications/My App/yt-dlp'",
		},
		{
			name:     "url with query string",
			input:    "https://www.youtube.com/watch?v=abc&t=10",
			expected: "'https://www.youtube.com/watch?v=abc&t=10'",
		},
		{
			name:     "single quote",
			input:    "it's",
			expected: `'it'"'"'s'`,
		},
		{
			name:     "dollar and backtick",
			input:    "$(rm -rf `x`)",
			expected: "'$(rm -rf `x`)'",
		},
		{
			name:     "flag",
			input:    "--audio-format",
			expected: "--audio-format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, QuoteArg(tt.input))
		})
	}
}

func TestFormatCommand(t *testing.T) {
	tests := []struct {
		name     string
		binary   string
		args     []string
		expected string
	}{
		{
			name:     "audio extraction template",
			binary:   "/opt/app/yt-dlp",
			args:     []string{"-x", "--audio-format", "mp3", "--", "https://youtu.be/abc"},
			expected: "/opt/app/yt-dlp -x --audio-format mp3 -- https://youtu.be/abc",
		},
		{
			name:     "binary with space",
			binary:   `C:\Program Files\app\yt-dlp.exe`,
			args:     []string{"--version"},
			expected: `'C:\Program Files\app\yt-dlp.exe' --version`,
		},
		{
			name:     "no args",
			binary:   "yt-dlp",
			expected: "yt-dlp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCommand(tt.binary, tt.args...))
		})
	}
}
