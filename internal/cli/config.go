package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlive/internal/configloader"
	"github.com/yaklabco/mdlive/internal/logging"
	"github.com/yaklabco/mdlive/pkg/config"
	"github.com/yaklabco/mdlive/pkg/fsutil"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create and inspect mdlive configuration",
		Long: `Create and inspect mdlive configuration.

Configuration is read from, in increasing precedence: built-in defaults,
/etc/mdlive/config.yaml, $XDG_CONFIG_HOME/mdlive/config.yaml, the nearest
.mdlive.yml in the current directory or a parent, the file named by
--config, MDLIVE_* environment variables, and command-line flags.`,
		Args: noArgs,
	}

	cmd.AddCommand(newConfigInitCommand())
	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigPathCommand())

	return cmd
}

// initFlags holds the flags for the config init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newConfigInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new mdlive configuration file",
		Long: `Create a new .mdlive.yml configuration file in the current directory.

Examples:
  mdlive config init                     Create minimal .mdlive.yml
  mdlive config init --full              Create full config with every setting documented
  mdlive config init --format json       Create .mdlive.json instead
  mdlive config init --output custom.yml Write to a custom file path`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with every setting documented")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .mdlive.yml or .mdlive.json)")

	return cmd
}

func runConfigInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive(cmd.ErrOrStderr())

	if flags.format != "yaml" && flags.format != "json" {
		return fmt.Errorf("%w: invalid format %q: must be yaml or json", ErrInvalidUsage, flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".mdlive.yml"
		if flags.format == "json" {
			outputPath = ".mdlive.json"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrInvalidUsage, outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteAtomic(commandContext(cmd), absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	if flags.full {
		logger.Info("full template documents every setting")
	}
	logger.Info("run 'mdlive config show' to see the effective configuration")

	return nil
}

func newConfigShowCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration mdlive would use in the current directory, after
every file, environment variable and flag has been applied.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "Output format: yaml or json")

	return cmd
}

func runConfigShow(cmd *cobra.Command, format string) error {
	if format != "yaml" && format != "json" {
		return fmt.Errorf("%w: invalid format %q: must be yaml or json", ErrInvalidUsage, format)
	}

	result, _, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}

	var content []byte
	if format == "json" {
		content, err = json.MarshalIndent(result.Config, "", "  ")
	} else {
		content, err = result.Config.ToYAMLWithHeader(config.DefaultTemplateHeader())
	}
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if format == "json" {
		content = append(content, '\n')
	}

	_, err = cmd.OutOrStdout().Write(content)
	return err
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show where configuration is read from",
		Long: `Show the configuration files mdlive discovers from the current directory
and the environment variables it reads.`,
		Args: noArgs,
		RunE: runConfigPath,
	}
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	paths, err := configloader.DiscoverPaths(commandContext(cmd), workDir)
	if err != nil {
		return fmt.Errorf("discover config: %w", err)
	}
	if explicit, _ := cmd.Flags().GetString("config"); explicit != "" {
		paths.Explicit = explicit
	}

	show := func(path string) string {
		if path == "" {
			return "(none)"
		}
		return path
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "system:   %s\n", show(paths.System))
	fmt.Fprintf(out, "user:     %s\n", show(paths.User))
	fmt.Fprintf(out, "project:  %s\n", show(paths.Project))
	fmt.Fprintf(out, "explicit: %s\n", show(paths.Explicit))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "environment:")
	for _, env := range configloader.ListEnvVars() {
		fmt.Fprintf(out, "  %-28s %s\n", env[0], env[1])
	}

	return nil
}
