package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/terassyi/gdvm/internal/config"
	"github.com/terassyi/gdvm/internal/i18n"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read or write gdvm's config.toml",
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a config value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Clear a config value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every known config key and its current value",
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

func init() {
	configCmd.AddCommand(configGetCmd, configSetCmd, configUnsetCmd, configListCmd)
}

// configKeys maps the flat "section.key" dotted form the CLI accepts
// onto accessors into config.Config. github.token is the only key
// today (spec §6's "Unknown keys are rejected").
var configKeys = map[string]struct {
	get func(*config.Config) string
	set func(*config.Config, string)
}{
	"github.token": {
		get: func(c *config.Config) string { return c.Github.Token },
		set: func(c *config.Config, v string) { c.Github.Token = v },
	},
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigForCLI(cmd)
	if err != nil {
		return err
	}
	key, ok := configKeys[args[0]]
	if !ok {
		return errors.New(i18n.T("error.config_unknown_key", args[0]))
	}
	cmd.Println(key.get(cfg))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	dir, cfg, err := loadConfigDirForCLI(cmd)
	if err != nil {
		return err
	}
	key, ok := configKeys[args[0]]
	if !ok {
		return errors.New(i18n.T("error.config_unknown_key", args[0]))
	}
	key.set(cfg, args[1])
	return config.Save(dir, cfg)
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	dir, cfg, err := loadConfigDirForCLI(cmd)
	if err != nil {
		return err
	}
	key, ok := configKeys[args[0]]
	if !ok {
		return errors.New(i18n.T("error.config_unknown_key", args[0]))
	}
	key.set(cfg, "")
	return config.Save(dir, cfg)
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfigForCLI(cmd)
	if err != nil {
		return err
	}
	var lines []string
	for name := range configKeys {
		lines = append(lines, name)
	}
	for _, name := range lines {
		cmd.Print(i18n.T("cli.config_list_line", name, configKeys[name].get(cfg)))
	}
	return nil
}

func loadConfigForCLI(cmd *cobra.Command) (*config.Config, error) {
	_, cfg, err := loadConfigDirForCLI(cmd)
	return cfg, err
}

func loadConfigDirForCLI(cmd *cobra.Command) (string, *config.Config, error) {
	a, err := newApp(formatter(cmd))
	if err != nil {
		return "", nil, err
	}
	return a.Paths.Base(), a.Config, nil
}
