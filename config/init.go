package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
)

// Install targets offered by the sample prompt.
const (
	InstallUser    = "user"
	InstallProject = "project"
)

// InstallChoice is the outcome of the sample install prompt.
type InstallChoice struct {
	Target    string
	Overwrite bool
}

// PromptForSampleInstall presents a Huh form asking where to install the
// sample filters.yaml. Returns (choice, proceed, error)
func PromptForSampleInstall() (InstallChoice, bool, error) {
	choice := InstallChoice{Target: InstallUser}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Install a sample filter catalog?").
				Description("filters.yaml defines the filters, operators and values offered while searching").
				Options(
					huh.NewOption(fmt.Sprintf("User config (%s)", GetConfigDir()), InstallUser),
					huh.NewOption(fmt.Sprintf("This project (%s)", GetProjectConfigDir()), InstallProject),
				).
				Value(&choice.Target),
			huh.NewConfirm().
				Title("Overwrite an existing filters.yaml?").
				Value(&choice.Overwrite),
		),
	).WithTheme(huh.ThemeCharm())

	err := form.Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return InstallChoice{}, false, nil
		}
		return InstallChoice{}, false, fmt.Errorf("form error: %w", err)
	}

	return choice, true, nil
}

// TargetDir resolves an install target to its directory.
func TargetDir(target string) (string, error) {
	switch target {
	case InstallUser:
		return GetConfigDir(), nil
	case InstallProject:
		return GetProjectConfigDir(), nil
	default:
		return "", fmt.Errorf("unknown install target: %s", target)
	}
}

// InstallSampleFilters writes the sample catalog and a default config.yaml
// into dir. Existing files are kept unless overwrite is set.
// Returns the paths written.
func InstallSampleFilters(dir, filtersYAML string, overwrite bool) ([]string, error) {
	if len(filtersYAML) == 0 {
		return nil, fmt.Errorf("sample filters.yaml content is empty")
	}

	//nolint:gosec // G301: 0755 is appropriate for config directory
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", dir, err)
	}

	files := []struct {
		name    string
		content string
	}{
		{defaultFiltersFile, filtersYAML},
		{configFilename, defaultConfigYAML},
	}

	var written []string
	var errs []error
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if _, err := os.Stat(path); err == nil && !overwrite {
			slog.Info("keeping existing file", "path", path)
			continue
		}
		if err := os.WriteFile(path, []byte(f.content), 0644); err != nil {
			errs = append(errs, fmt.Errorf("write %s: %w", path, err))
			continue
		}
		slog.Info("installed sample file", "path", path)
		written = append(written, path)
	}

	return written, errors.Join(errs...)
}
