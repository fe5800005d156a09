package main

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/weaver/loader"
)

func newApplyCommand() *cobra.Command {
	var (
		configPath string
		outputDir  string
	)
	cmd := &cobra.Command{
		Use:   "apply <bundle-dir>",
		Short: "Apply the configured transformation pipeline to a bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputDir := args[0]
			if outputDir == "" {
				outputDir = inputDir + "-out"
			}
			runID := uuid.Must(uuid.NewV4()).String()
			logger := log.With().Str("run_id", runID).Logger()

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			applier, err := cfg.buildApplier()
			if err != nil {
				return err
			}

			in, err := loadBundle(inputDir)
			if err != nil {
				return fmt.Errorf("load bundle from %s: %w", inputDir, err)
			}
			logger.Info().
				Str("bundle_id", in.ID()).
				Int("classes", in.ClassCount()).
				Int("phases", len(cfg.Run)).
				Msg("applying pipeline")

			start := time.Now()
			out, err := applier.Apply(in, loader.NewContext(in, nil))
			if err != nil {
				return fmt.Errorf("apply pipeline: %w", err)
			}
			if err := writeBundle(out, outputDir); err != nil {
				return fmt.Errorf("write bundle to %s: %w", outputDir, err)
			}

			logger.Info().
				Int("classes", out.ClassCount()).
				Int("injected", out.ClassCount()-in.ClassCount()).
				Dur("elapsed", time.Since(start)).
				Str("output", outputDir).
				Msg("pipeline complete")
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "weave.yaml", "Pipeline configuration file")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (default: <bundle-dir>-out)")
	return cmd
}
