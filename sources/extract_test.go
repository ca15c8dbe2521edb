package sources

import (
	"strings"
	"testing"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"cited claim[1] and another[note 2]", "cited claim and another"},
		{"  spaced\n\nout\ttext  ", "spaced out text"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CleanText(tt.in); got != tt.want {
			t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtractFallbackParagraphs(t *testing.T) {
	html := `<html><body>
		<script>var x = 1;</script>
		<style>p { color: red }</style>
		<table><tr><td>Some long tabular content that should not be extracted at all here</td></tr></table>
		<p>short</p>
		<p>This paragraph is comfortably longer than the minimum threshold and should be kept in the output.</p>
		<p>Another substantial paragraph with enough text to pass the length filter without any problem at all.<sup>[3]</sup></p>
	</body></html>`

	text, err := extractFallback([]byte(html))
	if err != nil {
		t.Fatalf("extractFallback: %v", err)
	}
	if strings.Contains(text, "var x") || strings.Contains(text, "tabular") {
		t.Errorf("non-content tags leaked into output: %q", text)
	}
	if strings.Contains(text, "short") {
		t.Errorf("short paragraph was not filtered: %q", text)
	}
	if !strings.Contains(text, "comfortably longer") || !strings.Contains(text, "Another substantial") {
		t.Errorf("substantial paragraphs missing: %q", text)
	}
	if strings.Contains(text, "[3]") {
		t.Errorf("citation marker survived: %q", text)
	}
}

func TestExtractFallbackEmptyDocument(t *testing.T) {
	text, err := extractFallback([]byte("<html><body><div>no paragraphs here</div></body></html>"))
	if err != nil {
		t.Fatalf("extractFallback: %v", err)
	}
	if text != "" {
		t.Errorf("expected empty output, got %q", text)
	}
}

func TestExtractTextUsesFallbackForSparsePages(t *testing.T) {
	// A page readability cannot make sense of still yields paragraph text.
	html := `<html><body>
		<p>` + strings.Repeat("Paragraph content that is long enough to be kept by the fallback extractor. ", 3) + `</p>
	</body></html>`

	text, err := ExtractText("https://example.com/page", []byte(html))
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if !strings.Contains(text, "Paragraph content") {
		t.Errorf("fallback text missing: %q", text)
	}
}

func TestExtractTextNothingUsable(t *testing.T) {
	if _, err := ExtractText("https://example.com/empty", []byte("<html><body></body></html>")); err == nil {
		t.Errorf("expected error for contentless page")
	}
}

func TestIsFeedURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"https://example.com/rss", true},
		{"https://example.com/feed", true},
		{"https://example.com/updates.xml", true},
		{"https://example.com/atom.xml", true},
		{"https://example.com/article", false},
		{"not a url with rss in it", false},
	}
	for _, tt := range tests {
		if got := IsFeedURL(tt.in); got != tt.want {
			t.Errorf("IsFeedURL(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
