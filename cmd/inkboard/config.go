package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/inkboard/internal/config"
)

type configCmd struct {
	subcommand
	toml bool
	path string
}

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	c := &configCmd{subcommand: newSubcommand(r, "config")}
	c.fs.BoolVar(&c.toml, "toml", false, "use TOML instead of the rc format")
	c.fs.StringVar(&c.path, "path", "", "file written by save (default: the loaded config file)")
	if err := c.parse(args, c); err != nil {
		return nil, err
	}
	if c.fs.NArg() != 1 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *configCmd) Run() error {
	switch sub := c.fs.Arg(0); sub {
	case "print":
		return c.runPrint()
	case "save":
		return c.runSave()
	default:
		return &UsageError{of: c, msg: fmt.Sprintf("unknown config command: %s", sub)}
	}
}

func (c *configCmd) runPrint() error {
	if !c.toml {
		fmt.Fprint(c.stdout, c.config.String())
		return nil
	}
	out, err := c.config.TOML()
	if err != nil {
		return err
	}
	fmt.Fprint(c.stdout, out)
	return nil
}

// savePath picks where to save: -path, then the file the configuration was
// loaded from, then the default location.
func (c *configCmd) savePath() (string, error) {
	path := c.path
	if path == "" {
		path = config.NewLoader(version, c.configPath).GetConfigPath()
	}
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return "", fmt.Errorf("failed to get user home dir: %w", err)
		}
		path = p
	}
	if c.toml && !config.IsTOML(path) {
		path = strings.TrimSuffix(path, filepath.Ext(path)) + ".toml"
	}
	return path, nil
}

func (c *configCmd) runSave() error {
	path, err := c.savePath()
	if err != nil {
		return err
	}
	body, err := config.Encode(c.config, path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	fmt.Fprintf(c.stderr, "Configuration saved to %s\n", path)
	return nil
}
