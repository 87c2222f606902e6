package parser

import (
	"strings"
	"testing"
)

func TestHTMLParser_BodyBlocks(t *testing.T) {
	input := `<html><head><title>Manifesto</title><style>p{color:red}</style></head>
<body>
<h1>Economy</h1>
<p>Lower  taxes
for families.</p>
<ul><li>Build housing</li><li>Fund schools</li></ul>
<script>alert(1)</script>
</body></html>`

	got, err := (&HTMLParser{}).Extract(strings.NewReader(input), "doc.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"Economy", "Lower taxes for families.", "Build housing", "Fund schools"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in output, got %q", want, got)
		}
	}
	if strings.Contains(got, "alert") {
		t.Errorf("script content leaked: %q", got)
	}
	if strings.Contains(got, "color") {
		t.Errorf("style content leaked: %q", got)
	}
	if strings.Contains(got, "Manifesto") {
		t.Errorf("title leaked into body text: %q", got)
	}
}

func TestHTMLParser_Empty(t *testing.T) {
	got, err := (&HTMLParser{}).Extract(strings.NewReader("<html><body></body></html>"), "doc.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}
