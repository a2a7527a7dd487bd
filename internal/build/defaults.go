package build

import "github.com/rocm-build/amdify/configs"

const (
	patchesDirName   = "patches"
	settingsFileName = "disabled_features.json"
)

var defaultBuildConfig = configs.MustDefaultConfig().Build
