package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigLoads(t *testing.T) {
	cfg, err := DefaultConfig()
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Build.ProjectDir)
	assert.Equal(t, "tools/amd_build", cfg.Build.ToolsDir)
	assert.False(t, cfg.Build.OutOfPlaceOnly)
	assert.Equal(t, "git", cfg.Build.GitBinary)
	assert.Equal(t, "hipify-python", cfg.Build.HipifyCommand)
	assert.True(t, cfg.Build.AddStaticCasts)
	assert.Empty(t, cfg.Build.ReportFile)

	assert.Contains(t, cfg.Build.Includes, "torch/*")
	assert.Contains(t, cfg.Build.Includes, "aten/*")
	assert.Contains(t, cfg.Build.Includes, "caffe2/**/*_test*")
	assert.Contains(t, cfg.Build.Ignores, "**/hip/**")

	assert.Equal(t, "torch", cfg.Build.Substitute.Root)
	assert.Equal(t, []string{".cpp", ".h"}, cfg.Build.Substitute.Extensions)
	assert.Len(t, cfg.Build.Substitute.Exempt, 3)

	require.Len(t, cfg.Build.Substitute.Rules, 2)
	assert.Equal(t, Rule{From: "USE_CUDA", To: "USE_ROCM"}, cfg.Build.Substitute.Rules[0])
	assert.Equal(t, Rule{From: "CUDA_VERSION", To: "0"}, cfg.Build.Substitute.Rules[1])
}

func TestDefaultConfigValidates(t *testing.T) {
	cfg := MustDefaultConfig()
	require.NoError(t, cfg.Build.Validate())
}

func TestValidateMissingFields(t *testing.T) {
	var cfg Build
	err := cfg.Validate()
	require.Error(t, err)

	assert.ErrorContains(t, err, "build.project-dir is required")
	assert.ErrorContains(t, err, "build.hipify-command is required")
	assert.ErrorContains(t, err, "build.includes must list at least one glob")
	assert.ErrorContains(t, err, "build.substitute.root is required")
}

func TestValidateEmptyRuleMarker(t *testing.T) {
	cfg := MustDefaultConfig().Build
	cfg.Substitute.Rules = append(cfg.Substitute.Rules, Rule{From: "", To: "x"})

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "build.substitute.rules[2].from is required")
}
