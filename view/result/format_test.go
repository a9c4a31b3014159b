package result

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/boolean-maybe/structsearch/model"
	"github.com/boolean-maybe/structsearch/search"
)

func sampleValue() search.Value {
	return search.Value{
		Filters: []search.Term{
			{FilterKey: "domain", OperatorKey: "=", Value: "example.com,mail.example.com"},
			{FilterKey: "keywords", OperatorKey: "=", Value: "a|b"},
		},
		GroupFilterKeys: []string{"attributes"},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "json", want: FormatJSON},
		{in: " JSON ", want: FormatJSON},
		{in: "yaml", want: FormatYAML},
		{in: "toml", want: FormatYAML},
		{in: "", want: FormatYAML},
	}
	for _, tt := range tests {
		if got := ParseFormat(tt.in); got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if NextFormat(FormatYAML) != FormatJSON || NextFormat(FormatJSON) != FormatYAML {
		t.Error("NextFormat should alternate yaml and json")
	}
}

func TestEncodeDecode(t *testing.T) {
	for _, format := range []string{FormatYAML, FormatJSON} {
		t.Run(format, func(t *testing.T) {
			encoded, err := Encode(sampleValue(), format)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			if !strings.Contains(encoded, "groupFilterKeys") || !strings.Contains(encoded, "filterKey") {
				t.Errorf("encoded value misses field names:\n%s", encoded)
			}

			decoded, err := Decode([]byte(encoded))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if !reflect.DeepEqual(decoded, sampleValue()) {
				t.Errorf("Decode() = %+v, want %+v", decoded, sampleValue())
			}
		})
	}
}

func TestDecode_UnknownField(t *testing.T) {
	if _, err := Decode([]byte("filters: []\nextra: 1\n")); err == nil {
		t.Error("Decode() should reject unknown fields")
	}
}

func TestMarkdown(t *testing.T) {
	sub := model.Submission{
		Value:       sampleValue(),
		SubmittedAt: time.Date(2026, 3, 4, 9, 8, 7, 0, time.UTC),
	}

	md, err := Markdown(sub, FormatJSON)
	if err != nil {
		t.Fatalf("Markdown() error = %v", err)
	}

	for _, want := range []string{
		"## Submitted at 09:08:07",
		"| 1 | domain | = | example.com, mail.example.com |",
		`| 2 | keywords | = | a\|b |`,
		"**Groups:** attributes",
		"```json\n{",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestMarkdown_Empty(t *testing.T) {
	md, err := Markdown(model.Submission{}, FormatYAML)
	if err != nil {
		t.Fatalf("Markdown() error = %v", err)
	}
	if !strings.Contains(md, "_empty search_") {
		t.Errorf("empty submission should be marked:\n%s", md)
	}
	if strings.Contains(md, "| # |") {
		t.Error("empty submission should not render a table")
	}
}
