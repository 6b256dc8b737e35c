package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Sena-ops/lintmerge/internal/logging"
)

var debugMode bool

var logger *zap.SugaredLogger

var rootCmd = &cobra.Command{
	Use:           "lintmerge",
	Short:         "lintmerge - runs C/C++ static analyzers and merges their reports",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(debugMode)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
