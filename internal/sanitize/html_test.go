package sanitize

import (
	"strings"
	"testing"
)

func TestText_RemovesAllHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "script tag",
			input:    `Beach <script>alert('xss')</script> Cleanup`,
			expected: `Beach  Cleanup`,
		},
		{
			name:     "inline event handler",
			input:    `<div onclick="alert('xss')">Tree Plantation</div>`,
			expected: `Tree Plantation`,
		},
		{
			name:     "iframe injection",
			input:    `Food Drive <iframe src="evil.com"></iframe> Dhaka`,
			expected: `Food Drive  Dhaka`,
		},
		{
			name:     "mixed HTML tags",
			input:    `<b>Winter</b> <i>Cloth</i> <a href="http://example.com">Donation</a>`,
			expected: `Winter Cloth Donation`,
		},
		{
			name:     "plain text unchanged",
			input:    `Just plain text`,
			expected: `Just plain text`,
		},
		{
			name:     "empty string",
			input:    ``,
			expected: ``,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Text(tt.input)
			if got != tt.expected {
				t.Errorf("Text(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestText_KeepsTypedEntities(t *testing.T) {
	if got := Text("Cox's Bazar"); got != "Cox's Bazar" {
		t.Errorf("apostrophe mangled: %q", got)
	}
	if got := Text("Food & Shelter"); got != "Food & Shelter" {
		t.Errorf("ampersand mangled: %q", got)
	}
	// A user who types an escaped tag gets the literal text back, never markup.
	if got := Text("&lt;script&gt;"); got != "<script>" && got != "&lt;script&gt;" {
		t.Errorf("unexpected entity handling: %q", got)
	}
}

func TestHTML_KeepsSafeFormatting(t *testing.T) {
	input := `<p>Bring <strong>warm</strong> clothes.</p><script>alert('xss')</script>`
	got := HTML(input)
	if !strings.Contains(got, "<strong>warm</strong>") {
		t.Errorf("expected safe formatting preserved, got %q", got)
	}
	if strings.Contains(got, "script") {
		t.Errorf("expected script removed, got %q", got)
	}
}

func TestHTML_StripsDangerousAttributes(t *testing.T) {
	input := `<a href="javascript:alert(1)" onclick="alert(1)">link</a>`
	got := HTML(input)
	if strings.Contains(got, "javascript:") || strings.Contains(got, "onclick") {
		t.Errorf("expected dangerous attributes removed, got %q", got)
	}
}
