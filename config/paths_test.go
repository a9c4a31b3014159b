package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/viper"
)

func TestGetUserConfigDir(t *testing.T) {
	tests := []struct {
		name      string
		xdgConfig string
		expectXDG bool
	}{
		{
			name:      "XDG_CONFIG_HOME set",
			xdgConfig: "/custom/config",
			expectXDG: true,
		},
		{
			name:      "without XDG",
			xdgConfig: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CONFIG_HOME", tt.xdgConfig)

			dir, err := getUserConfigDir()
			if err != nil {
				t.Fatalf("getUserConfigDir() error = %v", err)
			}

			if tt.expectXDG {
				expected := filepath.Join(tt.xdgConfig, "structsearch")
				if dir != expected {
					t.Errorf("getUserConfigDir() = %q, want %q", dir, expected)
				}
				return
			}
			if !filepath.IsAbs(dir) {
				t.Errorf("getUserConfigDir() returned non-absolute path: %q", dir)
			}
			if filepath.Base(dir) != "structsearch" {
				t.Errorf("getUserConfigDir() = %q, want basename 'structsearch'", dir)
			}
			if runtime.GOOS == "linux" && filepath.Base(filepath.Dir(dir)) != ".config" {
				t.Errorf("getUserConfigDir() = %q, want ~/.config/structsearch on linux", dir)
			}
		})
	}
}

func TestGetUserCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/custom/cache")

	dir, err := getUserCacheDir()
	if err != nil {
		t.Fatalf("getUserCacheDir() error = %v", err)
	}
	if want := filepath.Join("/custom/cache", "structsearch"); dir != want {
		t.Errorf("getUserCacheDir() = %q, want %q", dir, want)
	}
}

func TestPathManagerPaths(t *testing.T) {
	pm := &PathManager{
		configDir:   "/cfg/structsearch",
		cacheDir:    "/cache/structsearch",
		projectRoot: "/work",
	}

	tests := []struct {
		name   string
		getter func() string
		want   string
	}{
		{"ConfigFile", pm.ConfigFile, "/cfg/structsearch/config.yaml"},
		{"ProjectConfigDir", pm.ProjectConfigDir, "/work/.structsearch"},
		{"ProjectConfigFile", pm.ProjectConfigFile, "/work/.structsearch/config.yaml"},
		{"UserFiltersFile", pm.UserFiltersFile, "/cfg/structsearch/filters.yaml"},
		{"LogFile", pm.LogFile, "/cache/structsearch/structsearch.log"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.getter(); got != filepath.FromSlash(tt.want) {
				t.Errorf("%s() = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestPathManagerFiltersSearchPaths(t *testing.T) {
	pm := &PathManager{configDir: "/cfg", cacheDir: "/cache", projectRoot: "/work"}

	paths := pm.FiltersSearchPaths()
	if len(paths) != 3 {
		t.Fatalf("FiltersSearchPaths() returned %d paths, want 3", len(paths))
	}
	if paths[0] != filepath.Join("/work", ".structsearch", "filters.yaml") {
		t.Errorf("first search path = %q, want project file", paths[0])
	}
	if paths[1] != pm.UserFiltersFile() {
		t.Errorf("second search path = %q, want user file", paths[1])
	}
	if paths[2] != "filters.yaml" {
		t.Errorf("last search path = %q, want cwd file", paths[2])
	}
}

func TestPathManagerEnsureDirs(t *testing.T) {
	tmpDir := t.TempDir()
	pm := &PathManager{
		configDir:   filepath.Join(tmpDir, "config"),
		cacheDir:    filepath.Join(tmpDir, "cache"),
		projectRoot: tmpDir,
	}

	if err := pm.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs() error = %v", err)
	}

	for _, dir := range []string{pm.ConfigDir(), pm.CacheDir()} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Errorf("directory %q was not created: %v", dir, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("%q is not a directory", dir)
		}
	}
}

func TestFindFiltersFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	ResetPathManager()
	t.Cleanup(ResetPathManager)
	t.Cleanup(viper.Reset)

	if err := InitPaths(); err != nil {
		t.Fatalf("InitPaths() error = %v", err)
	}

	userFile := GetUserFiltersFile()
	if err := os.MkdirAll(filepath.Dir(userFile), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(userFile, []byte("filters: []\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	// the project and cwd candidates are relative to the test's working
	// directory, which holds no filters.yaml
	if got := FindFiltersFile(); got != userFile {
		t.Errorf("FindFiltersFile() = %q, want %q", got, userFile)
	}

	viper.Set("filters.file", "/explicit/filters.yaml")
	if got := FindFiltersFile(); got != "/explicit/filters.yaml" {
		t.Errorf("FindFiltersFile() = %q, want explicit path", got)
	}
}

func TestResetPathManager(t *testing.T) {
	t.Cleanup(ResetPathManager)

	ResetPathManager()
	t.Setenv("XDG_CONFIG_HOME", "/first/config")
	if err := InitPaths(); err != nil {
		t.Fatalf("first InitPaths() error = %v", err)
	}
	first := GetConfigDir()
	if want := filepath.Join("/first/config", "structsearch"); first != want {
		t.Errorf("first GetConfigDir() = %q, want %q", first, want)
	}

	ResetPathManager()
	t.Setenv("XDG_CONFIG_HOME", "/second/config")
	if err := InitPaths(); err != nil {
		t.Fatalf("second InitPaths() error = %v", err)
	}
	if second := GetConfigDir(); second == first {
		t.Error("ResetPathManager() did not allow re-initialization with different config")
	}
}
