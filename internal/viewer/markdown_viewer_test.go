package viewer

import (
	"errors"
	"strings"
	"testing"

	"github.com/boolean-maybe/structsearch/view"
)

func TestLoadTopic(t *testing.T) {
	tests := []struct {
		topic      string
		wantSource string
		wantTitle  string
	}{
		{topic: "", wantSource: view.HelpHome, wantTitle: "# structsearch"},
		{topic: "syntax", wantSource: "syntax", wantTitle: "# Syntax"},
		{topic: "keys", wantSource: "keys", wantTitle: "# Keys"},
	}
	for _, tt := range tests {
		t.Run(tt.wantSource, func(t *testing.T) {
			content, source, err := LoadTopic(tt.topic)
			if err != nil {
				t.Fatalf("LoadTopic(%q) error = %v", tt.topic, err)
			}
			if source != tt.wantSource {
				t.Errorf("source = %q, want %q", source, tt.wantSource)
			}
			if !strings.HasPrefix(content, tt.wantTitle) {
				t.Errorf("content should start with %q", tt.wantTitle)
			}
		})
	}
}

func TestLoadTopic_Unknown(t *testing.T) {
	if _, _, err := LoadTopic("nope"); !errors.Is(err, view.ErrUnknownTopic) {
		t.Errorf("LoadTopic(nope) error = %v, want ErrUnknownTopic", err)
	}
}

func TestNewViewer(t *testing.T) {
	content, source, err := LoadTopic("")
	if err != nil {
		t.Fatal(err)
	}
	if NewViewer(content, source) == nil {
		t.Fatal("NewViewer() returned nil")
	}
}

func TestFormatErrorContent(t *testing.T) {
	got := formatErrorContent(errors.New("boom"))
	if !strings.Contains(got, "# Error") || !strings.Contains(got, "boom") {
		t.Errorf("formatErrorContent() = %q", got)
	}
}
