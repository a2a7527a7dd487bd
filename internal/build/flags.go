package build

import "github.com/spf13/viper"

func init() {
	declareBoolFlag("out-of-place-only", "build.out-of-place-only", defaultBuildConfig.OutOfPlaceOnly, "Only run hipify out-of-place on source files, skipping patches and marker substitutions")

	declareStringFlag("project-dir", "build.project-dir", defaultBuildConfig.ProjectDir, "Root of the source tree to transform")
	declareStringFlag("tools-dir", "build.tools-dir", defaultBuildConfig.ToolsDir, "Directory with AMD build assets (patches/, disabled_features.json), relative to the project dir")
	declareStringFlag("git-binary", "build.git-binary", defaultBuildConfig.GitBinary, "Version-control binary used to apply patch files")
	declareStringFlag("hipify-command", "build.hipify-command", defaultBuildConfig.HipifyCommand, "External hipify command performing the CUDA-to-HIP translation")
	declareStringFlag("report-file", "build.report-file", defaultBuildConfig.ReportFile, "Path of the optional YAML run report (empty disables it)")

	declareBoolFlag("add-static-casts", "build.add-static-casts", defaultBuildConfig.AddStaticCasts, "Ask hipify to add defensive static casts around translated calls")
}

func declareStringFlag(name, key, defaultValue, description string) {
	CMD.Flags().String(name, defaultValue, description)
	if err := viper.BindPFlag(key, CMD.Flags().Lookup(name)); err != nil {
		panic(err)
	}
}

func declareBoolFlag(name, key string, defaultValue bool, description string) {
	CMD.Flags().Bool(name, defaultValue, description)
	if err := viper.BindPFlag(key, CMD.Flags().Lookup(name)); err != nil {
		panic(err)
	}
}
