package build

import (
	"fmt"
	"log/slog"

	"github.com/rocm-build/amdify/configs"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var CMD = &cobra.Command{
	Use:   "build",
	Short: "Apply AMD patches, rewrite CUDA markers, and run the hipify pass",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		applyDefaults(&cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}

		slog.Info("starting AMD build transformation", slog.Bool("out_of_place_only", cfg.OutOfPlaceOnly))
		if err := start(cmd.Context(), cfg); err != nil {
			return fmt.Errorf("error occurred running AMD build transformation: %w", err)
		}

		slog.Info("AMD build transformation finished")
		return nil
	},
}

func loadConfig() (configs.Build, error) {
	// Re-unmarshal to include flag overrides.
	if err := viper.Unmarshal(&configs.Values); err != nil {
		return configs.Build{}, fmt.Errorf("failed to unmarshal config with flag overrides: %w", err)
	}
	return configs.Values.Build, nil
}
