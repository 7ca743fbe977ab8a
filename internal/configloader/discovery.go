package configloader

import (
	"context"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"runtime"
)

// ConfigPaths holds the configuration file found for each layer. An empty
// string means the layer has no file.
type ConfigPaths struct {
	System   string // /etc/mdlive/config.yaml or %ProgramData%\mdlive\config.yaml
	User     string // $XDG_CONFIG_HOME/mdlive/config.yaml
	Project  string // nearest .mdlive.yml above the working directory
	Explicit string // --config
}

// Names searched for in each directory, most preferred first.
//
//nolint:gochecknoglobals // Read-only lookup tables.
var (
	projectFileNames = []string{".mdlive.yml", ".mdlive.yaml", ".mdlive.json", "mdlive.yml", "mdlive.yaml"}
	layerFileNames   = []string{"config.yaml", "config.yml"}
	vcsMarkers       = []string{".git", ".hg", ".svn"}
)

// DiscoverPaths locates the system, user and project configuration files
// for workDir. Missing files are not an error.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover config: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  firstFile(systemConfigDir(), layerFileNames),
		User:    firstFile(UserConfigDir(), layerFileNames),
		Project: project,
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return "/etc/mdlive"
	}
	if programData := os.Getenv("ProgramData"); programData != "" {
		return filepath.Join(programData, "mdlive")
	}
	return `C:\ProgramData\mdlive`
}

// UserConfigDir returns $XDG_CONFIG_HOME/mdlive, or ~/.config/mdlive when
// XDG_CONFIG_HOME is unset. It returns "" if neither can be determined.
func UserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mdlive")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "mdlive")
}

// FindProjectConfig returns the nearest project config file at or above
// startDir, or "" if there is none. The search ends at a VCS root, the
// home directory or the filesystem root, whichever comes first.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}
	start, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", startDir, err)
	}

	for dir := range searchDirs(start) {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("find project config: %w", err)
		}
		if path := firstFile(dir, projectFileNames); path != "" {
			return path, nil
		}
	}
	return "", nil
}

// searchDirs yields dir and its ancestors up to the first boundary.
func searchDirs(dir string) iter.Seq[string] {
	home, _ := os.UserHomeDir()

	return func(yield func(string) bool) {
		for {
			if !yield(dir) {
				return
			}
			if dir == home || isVCSRoot(dir) {
				return
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				return
			}
			dir = parent
		}
	}
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}
