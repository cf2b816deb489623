package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/wallflower/internal/config"
	"github.com/five82/wallflower/internal/logging"
	"github.com/five82/wallflower/internal/logtail"
)

const defaultLogLines = 50

func newLogsCmd(opts *rootOptions) *cobra.Command {
	var (
		lines int
		level string
	)
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the end of the log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if cfg.LogFile == "" {
				return fmt.Errorf("no log file configured")
			}

			out, err := logtail.Read(cfg.LogFile, lines)
			if err != nil {
				return err
			}
			if level != "" {
				out = logtail.Filter(out, logging.ParseLevel(level))
			}
			if _, tty := terminalWidth(cmd.OutOrStdout()); tty {
				out = logtail.ColorizeLines(out, logtail.DefaultStyles())
			}
			for _, line := range out {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", defaultLogLines, "number of lines to show (0 for all)")
	cmd.Flags().StringVar(&level, "level", "", "minimum level to show: debug, info, warn or error")
	return cmd
}
