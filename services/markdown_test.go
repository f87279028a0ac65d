package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMarkdown(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{
			name:   "heading and paragraph",
			source: "# Arm\n\nA robot arm.",
			want:   []string{"<h1>Arm</h1>", "<p>A robot arm.</p>"},
		},
		{
			name:   "fenced code block",
			source: "```\nfmt.Println(\"hi\")\n```",
			want:   []string{"<pre><code>"},
		},
		{
			name:   "gfm table",
			source: "| a | b |\n|---|---|\n| 1 | 2 |",
			want:   []string{"<table>", "<td>1</td>"},
		},
		{
			name:   "raw html passes through",
			source: "<div class=\"demo\">ok</div>",
			want:   []string{`<div class="demo">ok</div>`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderMarkdown([]byte(tt.source))
			require.NoError(t, err)
			for _, fragment := range tt.want {
				assert.Contains(t, got, fragment)
			}
		})
	}
}
