package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rocm-build/amdify/configs"
	"github.com/rocm-build/amdify/internal/build/hipify"
	"github.com/rocm-build/amdify/internal/build/infra/filesystem"
	fsjson "github.com/rocm-build/amdify/internal/build/infra/filesystem/json"
	"github.com/rocm-build/amdify/internal/build/patch"
	"github.com/rocm-build/amdify/internal/build/report"
	"github.com/rocm-build/amdify/internal/build/substitute"
)

type pipeline struct {
	cfg    configs.Build
	runner hipify.Runner
	reader filesystem.Reader
	writer filesystem.Writer
}

func start(ctx context.Context, cfg configs.Build) error {
	p := pipeline{
		cfg:    cfg,
		runner: hipify.NewExecRunner(cfg.HipifyCommand),
		reader: fsjson.NewReader(),
		writer: fsjson.NewWriter(),
	}
	return p.run(ctx)
}

func (p pipeline) run(ctx context.Context) error {
	projectDir, err := filepath.Abs(p.cfg.ProjectDir)
	if err != nil {
		return fmt.Errorf("failed to resolve project directory: %w", err)
	}
	toolsDir := resolvePath(projectDir, p.cfg.ToolsDir)

	jsonSettings := ""
	var appliedPatches []string
	var subResult substitute.Result

	if !p.cfg.OutOfPlaceOnly {
		jsonSettings = filepath.Join(toolsDir, settingsFileName)
		if fileExists(jsonSettings) {
			if err := hipify.ValidateSettings(p.reader, jsonSettings); err != nil {
				return err
			}
		} else {
			slog.With("settings_file", jsonSettings).Warn("hipify settings file not found, passing its path through unchecked")
		}

		appliedPatches, err = patch.NewApplier(p.cfg.GitBinary).ApplyAll(ctx, projectDir, filepath.Join(toolsDir, patchesDirName))
		if err != nil {
			return err
		}

		walker := substitute.NewWalker(p.cfg.Substitute.Extensions, p.cfg.Substitute.Exempt, substitutionRules(p.cfg))
		subResult, err = walker.Run(ctx, resolvePath(projectDir, p.cfg.Substitute.Root))
		if err != nil {
			return err
		}
	}

	opts := hipify.Options{
		ProjectDirectory: projectDir,
		OutputDirectory:  projectDir,
		Includes:         p.cfg.Includes,
		Ignores:          p.cfg.Ignores,
		OutOfPlaceOnly:   p.cfg.OutOfPlaceOnly,
		JSONSettings:     jsonSettings,
		AddStaticCasts:   p.cfg.AddStaticCasts,
	}
	if err := p.runner.Run(ctx, opts); err != nil {
		return fmt.Errorf("hipify pass failed: %w", err)
	}

	if p.cfg.ReportFile != "" {
		if err := p.writeReport(opts, appliedPatches, subResult); err != nil {
			return err
		}
	}

	return nil
}

func (p pipeline) writeReport(opts hipify.Options, appliedPatches []string, subResult substitute.Result) error {
	mode := report.ModeInPlace
	if p.cfg.OutOfPlaceOnly {
		mode = report.ModeOutOfPlaceOnly
	}

	model := report.Model{
		Mode:    mode,
		Patches: report.Patches{Applied: appliedPatches},
		Substitution: report.Substitution{
			FilesScanned:  subResult.FilesScanned,
			FilesModified: subResult.FilesModified,
			Replacements:  subResult.Replacements,
		},
		Hipify: report.Hipify{
			ProjectDirectory: opts.ProjectDirectory,
			OutputDirectory:  opts.OutputDirectory,
			Includes:         opts.Includes,
			Ignores:          opts.Ignores,
			JSONSettings:     opts.JSONSettings,
			AddStaticCasts:   opts.AddStaticCasts,
		},
	}

	slog.With("report_file", p.cfg.ReportFile).Info("writing run report")
	return report.NewGenerator(p.writer).Generate(p.cfg.ReportFile, model)
}

func substitutionRules(cfg configs.Build) []substitute.Rule {
	rules := make([]substitute.Rule, 0, len(cfg.Substitute.Rules))
	for _, rule := range cfg.Substitute.Rules {
		rules = append(rules, substitute.Rule{From: rule.From, To: rule.To})
	}
	return rules
}

func applyDefaults(cfg *configs.Build) {
	if cfg.ProjectDir == "" {
		cfg.ProjectDir = defaultBuildConfig.ProjectDir
	}
	if cfg.ToolsDir == "" {
		cfg.ToolsDir = defaultBuildConfig.ToolsDir
	}
	if cfg.GitBinary == "" {
		cfg.GitBinary = defaultBuildConfig.GitBinary
	}
	if cfg.HipifyCommand == "" {
		cfg.HipifyCommand = defaultBuildConfig.HipifyCommand
	}
	if len(cfg.Includes) == 0 {
		cfg.Includes = defaultBuildConfig.Includes
	}
	if len(cfg.Ignores) == 0 {
		cfg.Ignores = defaultBuildConfig.Ignores
	}
	if cfg.Substitute.Root == "" {
		cfg.Substitute.Root = defaultBuildConfig.Substitute.Root
	}
	if len(cfg.Substitute.Extensions) == 0 {
		cfg.Substitute.Extensions = defaultBuildConfig.Substitute.Extensions
	}
	if len(cfg.Substitute.Exempt) == 0 {
		cfg.Substitute.Exempt = defaultBuildConfig.Substitute.Exempt
	}
	if len(cfg.Substitute.Rules) == 0 {
		cfg.Substitute.Rules = defaultBuildConfig.Substitute.Rules
	}
}

func resolvePath(rootDir, pathValue string) string {
	if filepath.IsAbs(pathValue) {
		return filepath.Clean(pathValue)
	}
	return filepath.Clean(filepath.Join(rootDir, pathValue))
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}
