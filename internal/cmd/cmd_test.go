package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/boolean-maybe/structsearch/config"
)

// executeCommand runs the command tree with args and returns its output.
func executeCommand(root *cobra.Command, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	err := root.Execute()
	return buf.String(), err
}

// isolateConfig points every config lookup at a fresh temp directory.
func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Chdir(dir)
	config.ResetPathManager()
	t.Cleanup(config.ResetPathManager)
	return dir
}

func TestDecodeCmd(t *testing.T) {
	isolateConfig(t)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "yaml by default",
			args: []string{"decode", "domain=example.com", "attributes"},
			want: []string{"filterKey: domain", "value: example.com", "- attributes"},
		},
		{
			name: "json output",
			args: []string{"decode", "-o", "json", "author=bob"},
			want: []string{`"filterKey": "author"`, `"value": "bob"`, `"groupFilterKeys": []`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(NewRootCmd(), tt.args...)
			if err != nil {
				t.Fatalf("decode error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestDecodeCmd_RequiresTokens(t *testing.T) {
	isolateConfig(t)

	if _, err := executeCommand(NewRootCmd(), "decode"); err == nil {
		t.Error("decode without tokens should fail")
	}
}

func TestEncodeCmd(t *testing.T) {
	isolateConfig(t)

	root := NewRootCmd()
	root.SetIn(strings.NewReader("filters:\n  - filterKey: author\n    operatorKey: \"=\"\n    value: bob\ngroupFilterKeys: [segments]\n"))
	out, err := executeCommand(root, "encode")
	if err != nil {
		t.Fatalf("encode error = %v", err)
	}
	if out != "author=bob\nsegments\n" {
		t.Errorf("encode output = %q", out)
	}
}

func TestEncodeCmd_FromFile(t *testing.T) {
	dir := isolateConfig(t)

	path := filepath.Join(dir, "value.json")
	data := `{"filters":[{"filterKey":"keywords","operatorKey":"=","value":"hello"}],"groupFilterKeys":[]}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := executeCommand(NewRootCmd(), "encode", "-f", path)
	if err != nil {
		t.Fatalf("encode error = %v", err)
	}
	if out != "keywords=hello\n" {
		t.Errorf("encode output = %q", out)
	}
}

func TestEncodeCmd_Invalid(t *testing.T) {
	isolateConfig(t)

	tests := []struct {
		name  string
		input string
	}{
		{name: "unknown filter", input: "filters:\n  - filterKey: nope\n    operatorKey: \"=\"\n    value: x\n"},
		{name: "leaf used as group", input: "groupFilterKeys: [author]\n"},
		{name: "unknown field", input: "extra: 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := NewRootCmd()
			root.SetIn(strings.NewReader(tt.input))
			if _, err := executeCommand(root, "encode"); err == nil {
				t.Error("encode should reject the value")
			}
		})
	}
}

func TestFiltersCmd(t *testing.T) {
	isolateConfig(t)

	out, err := executeCommand(NewRootCmd(), "filters")
	if err != nil {
		t.Fatalf("filters error = %v", err)
	}
	for _, want := range []string{
		"free text: keywords",
		"attributes (Attributes) group",
		"  domain (Domain) [= !=] multi async",
		"  author (Author) [=]",
		"segments (Segments) group",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("filters output missing %q:\n%s", want, out)
		}
	}
}

func TestFiltersCmd_FiltersFlag(t *testing.T) {
	dir := isolateConfig(t)

	path := filepath.Join(dir, "custom.yaml")
	custom := "filters:\n  - key: priority\n    name: Priority\n    operators: [\"=\"]\n    values: [high, low]\n"
	if err := os.WriteFile(path, []byte(custom), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := executeCommand(NewRootCmd(), "filters", "--filters", path)
	if err != nil {
		t.Fatalf("filters error = %v", err)
	}
	if !strings.Contains(out, "priority (Priority) [=]") {
		t.Errorf("custom filter missing:\n%s", out)
	}
	if !strings.Contains(out, "# "+path) {
		t.Errorf("source should name the custom file:\n%s", out)
	}
}

func TestInitCmd(t *testing.T) {
	dir := isolateConfig(t)

	out, err := executeCommand(NewRootCmd(), "init", "--target", "user")
	if err != nil {
		t.Fatalf("init error = %v", err)
	}
	filtersPath := filepath.Join(dir, "structsearch", "filters.yaml")
	if _, err := os.Stat(filtersPath); err != nil {
		t.Fatalf("filters.yaml not installed: %v", err)
	}
	if !strings.Contains(out, "wrote "+filtersPath) {
		t.Errorf("init output should list written files:\n%s", out)
	}

	out, err = executeCommand(NewRootCmd(), "init", "--target", "user")
	if err != nil {
		t.Fatalf("second init error = %v", err)
	}
	if !strings.Contains(out, "Existing files kept") {
		t.Errorf("second init should keep files:\n%s", out)
	}

	if _, err := executeCommand(NewRootCmd(), "init", "--target", "moon"); err == nil {
		t.Error("unknown target should fail")
	}
}

func TestDocsCmd_List(t *testing.T) {
	isolateConfig(t)

	out, err := executeCommand(NewRootCmd(), "docs", "--list")
	if err != nil {
		t.Fatalf("docs error = %v", err)
	}
	if out != "help\nkeys\nsyntax\n" {
		t.Errorf("docs --list = %q", out)
	}
}

func TestDescribeFilter_Depth(t *testing.T) {
	isolateConfig(t)

	cat, _, err := loadCatalog()
	if err != nil {
		t.Fatal(err)
	}
	first := cat.Filters[0]
	if got := describeFilter(first.Children[0], 1); !strings.HasPrefix(got, "  domain") {
		t.Errorf("describeFilter() = %q, want two-space indent", got)
	}
}

func TestInfoCmd(t *testing.T) {
	dir := isolateConfig(t)

	out, err := executeCommand(NewRootCmd(), "info")
	if err != nil {
		t.Fatalf("info error = %v", err)
	}
	for _, want := range []string{
		"structsearch " + config.Version,
		"Config Dir:    " + filepath.Join(dir, "structsearch"),
		"Filters:       (embedded)",
		"Source:        embedded:filters",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("info output missing %q:\n%s", want, out)
		}
	}
}
