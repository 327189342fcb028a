package format

import "testing"

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"alice", "alice"},
		{"<b>bob</b>", "&lt;b&gt;bob&lt;/b&gt;"},
		{"a&b", "a&amp;b"},
	}
	for _, tt := range tests {
		if got := EscapeHTML(tt.in); got != tt.want {
			t.Errorf("EscapeHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBoldItalicEscape(t *testing.T) {
	if got := Bold("<script>"); got != "<b>&lt;script&gt;</b>" {
		t.Errorf("Bold = %q", got)
	}
	if got := Italic("a<b"); got != "<em>a&lt;b</em>" {
		t.Errorf("Italic = %q", got)
	}
}
