package view

import (
	"embed"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	nav "github.com/boolean-maybe/navidown/navidown"
)

//go:embed help/*.md
var helpFS embed.FS

// HelpHome is the page the help view opens on
const HelpHome = "help"

// ErrUnknownTopic is returned for a help page that does not exist
var ErrUnknownTopic = errors.New("unknown help topic")

// HelpTopics lists the embedded help pages by name
func HelpTopics() []string {
	entries, err := helpFS.ReadDir("help")
	if err != nil {
		return nil
	}
	topics := make([]string, 0, len(entries))
	for _, e := range entries {
		topics = append(topics, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(topics)
	return topics
}

// HelpPage returns the markdown of a help page; names are case-insensitive
func HelpPage(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = HelpHome
	}
	data, err := helpFS.ReadFile("help/" + name + ".md")
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownTopic, name)
	}
	return string(data), nil
}

// HelpProvider serves embedded help pages to navidown.
// Links are resolved by URL first, then by link text.
type HelpProvider struct{}

// FetchContent implements navidown's content provider
func (HelpProvider) FetchContent(elem nav.NavElement) (string, error) {
	for _, key := range []string{elem.URL, elem.Text} {
		if key == "" {
			continue
		}
		if content, err := HelpPage(key); err == nil {
			return content, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownTopic, elem.Text)
}

// pageKey returns the name a link resolves to, used as the history source
func pageKey(elem nav.NavElement) string {
	if elem.URL != "" {
		return strings.ToLower(elem.URL)
	}
	return strings.ToLower(elem.Text)
}
