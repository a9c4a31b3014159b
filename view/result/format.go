package result

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/boolean-maybe/structsearch/model"
	"github.com/boolean-maybe/structsearch/search"

	"gopkg.in/yaml.v3"
)

// Output formats for a structured value.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// ParseFormat normalizes a format name; unknown names fall back to yaml.
func ParseFormat(name string) string {
	if strings.EqualFold(strings.TrimSpace(name), FormatJSON) {
		return FormatJSON
	}
	return FormatYAML
}

// NextFormat cycles yaml -> json -> yaml
func NextFormat(format string) string {
	if format == FormatJSON {
		return FormatYAML
	}
	return FormatJSON
}

// Encode serializes a value in the given format.
func Encode(v search.Value, format string) (string, error) {
	switch ParseFormat(format) {
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode json: %w", err)
		}
		return string(data) + "\n", nil
	default:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return "", fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return "", fmt.Errorf("encode yaml: %w", err)
		}
		return buf.String(), nil
	}
}

// Decode parses a value from yaml or json. JSON is a subset of YAML, so
// the yaml decoder reads both; unknown fields are rejected.
func Decode(data []byte) (search.Value, error) {
	var v search.Value
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&v); err != nil {
		return search.Value{}, fmt.Errorf("decode value: %w", err)
	}
	return v, nil
}

// Placeholder is shown before anything was submitted.
const Placeholder = "# structsearch\n\nType to search. Press **Enter** to submit, **Tab** to complete, **F1** for help.\n"

// Markdown describes a submission: a table of filter terms, the selected
// groups and the encoded value.
func Markdown(sub model.Submission, format string) (string, error) {
	encoded, err := Encode(sub.Value, format)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## Submitted at %s\n\n", sub.SubmittedAt.Format("15:04:05"))

	if sub.Value.IsEmpty() {
		b.WriteString("_empty search_\n\n")
	}

	if len(sub.Value.Filters) > 0 {
		b.WriteString("| # | filter | operator | value |\n|---|---|---|---|\n")
		for i, term := range sub.Value.Filters {
			fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", i+1,
				escapeCell(term.FilterKey), escapeCell(term.OperatorKey), escapeCell(strings.Join(term.Values(), ", ")))
		}
		b.WriteString("\n")
	}

	if len(sub.Value.GroupFilterKeys) > 0 {
		fmt.Fprintf(&b, "**Groups:** %s\n\n", strings.Join(sub.Value.GroupFilterKeys, ", "))
	}

	fmt.Fprintf(&b, "```%s\n%s```\n", ParseFormat(format), encoded)
	return b.String(), nil
}

func escapeCell(s string) string {
	if s == "" {
		return " "
	}
	return strings.ReplaceAll(s, "|", `\|`)
}
