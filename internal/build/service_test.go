package build

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rocm-build/amdify/configs"
	"github.com/rocm-build/amdify/internal/build/hipify"
	fsjson "github.com/rocm-build/amdify/internal/build/infra/filesystem/json"
	"github.com/rocm-build/amdify/internal/build/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// fakeRunner records the options of every hipify dispatch.
type fakeRunner struct {
	calls []hipify.Options
}

func (f *fakeRunner) Run(_ context.Context, opts hipify.Options) error {
	f.calls = append(f.calls, opts)
	return nil
}

func newTestPipeline(cfg configs.Build) (pipeline, *fakeRunner) {
	runner := &fakeRunner{}
	return pipeline{
		cfg:    cfg,
		runner: runner,
		reader: fsjson.NewReader(),
		writer: fsjson.NewWriter(),
	}, runner
}

// testProject lays out a minimal source tree: one substitutable file under
// torch/, one patch, and a stub git binary logging its invocations.
func testProject(t *testing.T) (cfg configs.Build, projectDir, gitLog string) {
	t.Helper()
	projectDir = t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(projectDir, "torch", "csrc"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "torch", "csrc", "engine.cpp"), []byte("#ifdef USE_CUDA\n"), 0644))

	toolsDir := filepath.Join(projectDir, "tools", "amd_build")
	require.NoError(t, os.MkdirAll(filepath.Join(toolsDir, "patches"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(toolsDir, "patches", "fix.patch"), []byte("diff"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(toolsDir, settingsFileName), []byte(`{"disabled_modules": []}`), 0644))

	gitDir := t.TempDir()
	gitBinary := filepath.Join(gitDir, "git")
	gitLog = filepath.Join(gitDir, "args.log")
	script := "#!/bin/sh\necho \"$@\" >> " + gitLog + "\nexit 0\n"
	require.NoError(t, os.WriteFile(gitBinary, []byte(script), 0755))

	cfg = configs.MustDefaultConfig().Build
	cfg.ProjectDir = projectDir
	cfg.GitBinary = gitBinary
	return cfg, projectDir, gitLog
}

func TestRunInPlace(t *testing.T) {
	cfg, projectDir, gitLog := testProject(t)
	p, runner := newTestPipeline(cfg)

	require.NoError(t, p.run(context.Background()))

	// Patch applied, markers substituted.
	assert.FileExists(t, gitLog)
	data, err := os.ReadFile(filepath.Join(projectDir, "torch", "csrc", "engine.cpp"))
	require.NoError(t, err)
	assert.Equal(t, "#ifdef USE_ROCM\n", string(data))

	require.Len(t, runner.calls, 1)
	opts := runner.calls[0]
	assert.Equal(t, projectDir, opts.ProjectDirectory)
	assert.Equal(t, projectDir, opts.OutputDirectory)
	assert.False(t, opts.OutOfPlaceOnly)
	assert.Equal(t, filepath.Join(projectDir, "tools", "amd_build", settingsFileName), opts.JSONSettings)
	assert.True(t, opts.AddStaticCasts)
}

func TestRunOutOfPlaceOnly(t *testing.T) {
	cfg, projectDir, gitLog := testProject(t)
	cfg.OutOfPlaceOnly = true
	p, runner := newTestPipeline(cfg)

	require.NoError(t, p.run(context.Background()))

	// No patches, no substitutions.
	assert.NoFileExists(t, gitLog)
	data, err := os.ReadFile(filepath.Join(projectDir, "torch", "csrc", "engine.cpp"))
	require.NoError(t, err)
	assert.Equal(t, "#ifdef USE_CUDA\n", string(data))

	require.Len(t, runner.calls, 1)
	opts := runner.calls[0]
	assert.True(t, opts.OutOfPlaceOnly)
	assert.Empty(t, opts.JSONSettings, "settings file is only supplied in in-place mode")
}

func TestRunHipifyListsIdenticalAcrossModes(t *testing.T) {
	cfg, _, _ := testProject(t)

	inPlace, inPlaceRunner := newTestPipeline(cfg)
	require.NoError(t, inPlace.run(context.Background()))

	cfg.OutOfPlaceOnly = true
	outOfPlace, outOfPlaceRunner := newTestPipeline(cfg)
	require.NoError(t, outOfPlace.run(context.Background()))

	require.Len(t, inPlaceRunner.calls, 1)
	require.Len(t, outOfPlaceRunner.calls, 1)
	assert.Equal(t, inPlaceRunner.calls[0].Includes, outOfPlaceRunner.calls[0].Includes)
	assert.Equal(t, inPlaceRunner.calls[0].Ignores, outOfPlaceRunner.calls[0].Ignores)
}

func TestRunRejectsMalformedSettings(t *testing.T) {
	cfg, projectDir, _ := testProject(t)
	settingsPath := filepath.Join(projectDir, "tools", "amd_build", settingsFileName)
	require.NoError(t, os.WriteFile(settingsPath, []byte(`{{{`), 0644))

	p, runner := newTestPipeline(cfg)
	require.Error(t, p.run(context.Background()))
	assert.Empty(t, runner.calls, "hipify must not run with a malformed settings file")
}

func TestRunWritesReportWhenConfigured(t *testing.T) {
	cfg, projectDir, _ := testProject(t)
	reportPath := filepath.Join(t.TempDir(), "amdify-report.yaml")
	cfg.ReportFile = reportPath

	p, _ := newTestPipeline(cfg)
	require.NoError(t, p.run(context.Background()))

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)

	var model report.Model
	require.NoError(t, yaml.Unmarshal(data, &model))
	assert.Equal(t, report.ModeInPlace, model.Mode)
	assert.Equal(t, []string{"fix.patch"}, model.Patches.Applied)
	assert.Equal(t, 1, model.Substitution.FilesModified)
	assert.Equal(t, projectDir, model.Hipify.ProjectDirectory)
}

func TestRunWritesNoArtifactsByDefault(t *testing.T) {
	cfg, projectDir, _ := testProject(t)
	p, _ := newTestPipeline(cfg)
	require.NoError(t, p.run(context.Background()))

	entries, err := os.ReadDir(projectDir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"torch", "tools"}, names)
}

func TestApplyDefaults(t *testing.T) {
	var cfg configs.Build
	applyDefaults(&cfg)

	assert.Equal(t, defaultBuildConfig.ProjectDir, cfg.ProjectDir)
	assert.Equal(t, defaultBuildConfig.ToolsDir, cfg.ToolsDir)
	assert.Equal(t, defaultBuildConfig.GitBinary, cfg.GitBinary)
	assert.Equal(t, defaultBuildConfig.HipifyCommand, cfg.HipifyCommand)
	assert.Equal(t, defaultBuildConfig.Includes, cfg.Includes)
	assert.Equal(t, defaultBuildConfig.Substitute, cfg.Substitute)
	require.NoError(t, cfg.Validate())
}

func TestApplyDefaultsKeepsOverrides(t *testing.T) {
	cfg := configs.Build{ProjectDir: "/src/pytorch", HipifyCommand: "hipify-clang"}
	applyDefaults(&cfg)

	assert.Equal(t, "/src/pytorch", cfg.ProjectDir)
	assert.Equal(t, "hipify-clang", cfg.HipifyCommand)
	assert.Equal(t, defaultBuildConfig.GitBinary, cfg.GitBinary)
}
