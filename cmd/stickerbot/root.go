package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iudanet/stickerbot/internal/config"
)

func newRootCmd() (*cobra.Command, error) {
	v := viper.New()
	config.SetDefaults(v)
	config.BindEnv(v)

	cmd := &cobra.Command{
		Use:           "stickerbot",
		Short:         "Telegram bot that downloads and packages sticker sets",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configFile, _ := cmd.Flags().GetString("config")
			return config.ReadFile(v, configFile)
		},
	}

	cmd.PersistentFlags().String("config", "", "Config file path (optional)")

	runCmd, err := newRunCmd(v)
	if err != nil {
		return nil, err
	}
	cmd.AddCommand(runCmd)
	cmd.AddCommand(newVersionCmd())

	return cmd, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Sticker Bot\n")
			_, _ = fmt.Fprintf(out, "Version:    %s\n", Version)
			_, _ = fmt.Fprintf(out, "Build Date: %s\n", BuildDate)
			_, _ = fmt.Fprintf(out, "Git Commit: %s\n", GitCommit)
		},
	}
}
