package configs

import (
	"errors"
	"fmt"
)

var Values Config

type (
	Config struct {
		Build Build `mapstructure:"build"`
	}

	Build struct {
		ProjectDir     string     `mapstructure:"project-dir"`
		ToolsDir       string     `mapstructure:"tools-dir"`
		OutOfPlaceOnly bool       `mapstructure:"out-of-place-only"`
		GitBinary      string     `mapstructure:"git-binary"`
		HipifyCommand  string     `mapstructure:"hipify-command"`
		AddStaticCasts bool       `mapstructure:"add-static-casts"`
		ReportFile     string     `mapstructure:"report-file"`
		Includes       []string   `mapstructure:"includes"`
		Ignores        []string   `mapstructure:"ignores"`
		Substitute     Substitute `mapstructure:"substitute"`
	}

	Substitute struct {
		Root       string   `mapstructure:"root"`
		Extensions []string `mapstructure:"extensions"`
		Exempt     []string `mapstructure:"exempt"`
		Rules      []Rule   `mapstructure:"rules"`
	}

	Rule struct {
		From string `mapstructure:"from"`
		To   string `mapstructure:"to"`
	}
)

func (c *Build) Validate() error {
	var errs []error

	if c.ProjectDir == "" {
		errs = append(errs, errors.New("build.project-dir is required"))
	}
	if c.ToolsDir == "" {
		errs = append(errs, errors.New("build.tools-dir is required"))
	}
	if c.GitBinary == "" {
		errs = append(errs, errors.New("build.git-binary is required"))
	}
	if c.HipifyCommand == "" {
		errs = append(errs, errors.New("build.hipify-command is required"))
	}
	if len(c.Includes) == 0 {
		errs = append(errs, errors.New("build.includes must list at least one glob"))
	}

	if c.Substitute.Root == "" {
		errs = append(errs, errors.New("build.substitute.root is required"))
	}
	if len(c.Substitute.Extensions) == 0 {
		errs = append(errs, errors.New("build.substitute.extensions must list at least one suffix"))
	}
	for i, rule := range c.Substitute.Rules {
		if rule.From == "" {
			errs = append(errs, fmt.Errorf("build.substitute.rules[%d].from is required", i))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("build configuration validation failed: %w", errors.Join(errs...))
	}

	return nil
}
