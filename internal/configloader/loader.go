// Package configloader resolves the mdlive configuration from its layers:
// defaults, system, user and project files, an explicit file, MDLIVE_*
// environment variables and command-line flags, later layers winning.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/mdlive/pkg/config"
)

// LoadOptions controls which layers Load reads.
type LoadOptions struct {
	// WorkingDir is where the project config search starts. Empty means
	// the process working directory.
	WorkingDir string

	// ExplicitPath is read after the discovered files. It must exist.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// CLIConfig holds the settings given as flags. Its non-zero fields
	// override every other layer.
	CLIConfig *config.Config
}

// LoadResult is a resolved configuration and where it came from.
type LoadResult struct {
	Config     *config.Config
	Paths      *ConfigPaths
	LoadedFrom []string // files read, lowest precedence first
	Warnings   []string
}

// fileLayer is one configuration file taking part in a load.
type fileLayer struct {
	name string
	path string
}

// Load resolves the configuration described by opts. A file layer that
// fails to parse or validate aborts the load with an error naming the file.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	for _, layer := range opts.fileLayers(paths) {
		fileCfg, err := readConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		if _, err := check(fileCfg, layer.path); err != nil {
			return nil, err
		}
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
		cfg = merge(cfg, fileCfg)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}
	cfg = merge(cfg, opts.CLIConfig)

	// Environment and flags have no file to blame. Warnings depend on how
	// layers combine, so they come from the merged result only.
	warnings, err := check(cfg, "")
	if err != nil {
		return nil, err
	}
	result.Warnings = warnings

	result.Config = cfg
	return result, nil
}

// fileLayers lists the files to read in precedence order, skipping
// ignored and missing layers.
func (opts LoadOptions) fileLayers(paths *ConfigPaths) []fileLayer {
	candidates := []struct {
		fileLayer
		ignore bool
	}{
		{fileLayer{"system", paths.System}, opts.IgnoreSystemConfig},
		{fileLayer{"user", paths.User}, opts.IgnoreUserConfig},
		{fileLayer{"project", paths.Project}, opts.IgnoreProjectConfig},
		{fileLayer{"explicit", paths.Explicit}, false},
	}

	layers := make([]fileLayer, 0, len(candidates))
	for _, c := range candidates {
		if !c.ignore && c.path != "" {
			layers = append(layers, c.fileLayer)
		}
	}
	return layers
}

func readConfigFile(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	cfg, err := config.FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
