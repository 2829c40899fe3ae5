package markup

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []string
		notWant []string
	}{
		{
			name: "plain fragment",
			in:   `<div class="resume-header"><h1>A</h1></div>`,
			want: []string{`<div class="resume-header"><h1>A</h1></div>`},
		},
		{
			name:    "code fence",
			in:      "```html\n<div class=\"resume-body\">x</div>\n```",
			want:    []string{`<div class="resume-body">x</div>`},
			notWant: []string{"```"},
		},
		{
			name: "json envelope",
			in:   `{"resume": "<div class=\"resume-header\">y</div>"}`,
			want: []string{`<div class="resume-header">y</div>`},
		},
		{
			name:    "outer document tags",
			in:      `<html><head><style>p{}</style></head><body><div class="resume-body">z</div></body></html>`,
			want:    []string{`<div class="resume-body">z</div>`},
			notWant: []string{"<html", "<head", "<body", "<style"},
		},
		{
			name:    "script removed",
			in:      `<div class="resume-body" onclick="x()">ok<script>alert(1)</script></div>`,
			want:    []string{`<div class="resume-body">ok</div>`},
			notWant: []string{"script", "onclick"},
		},
		{
			name:    "prose around fence",
			in:      "Here is your tailored resume:\n\n```html\n<div class=\"resume-header\"><h1>A</h1></div>\n<div class=\"resume-body\">b</div>\n```\nLet me know if you need changes.",
			want:    []string{`<div class="resume-header"><h1>A</h1></div>`, `<div class="resume-body">b</div>`},
			notWant: []string{"```", "Here is", "Let me know"},
		},
		{
			name:    "prose around bare markup",
			in:      "Sure! <div class=\"resume-header\">A</div> Hope this helps.",
			want:    []string{`<div class="resume-header">A</div>`},
			notWant: []string{"Sure!", "Hope this helps"},
		},
		{
			name:    "prose before envelope",
			in:      "Result: {\"resume\": \"<div class=\\\"resume-body\\\">c</div>\"}",
			want:    []string{`<div class="resume-body">c</div>`},
			notWant: []string{"Result", "{"},
		},
		{
			name: "whitespace only",
			in:   "  \n ",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if len(tt.want) == 0 && got != "" {
				t.Fatalf("expected empty result, got %q", got)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Fatalf("expected %q in %q", w, got)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(got, nw) {
					t.Fatalf("unexpected %q in %q", nw, got)
				}
			}
		})
	}
}
