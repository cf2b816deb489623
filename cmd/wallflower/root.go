package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/five82/wallflower/internal/app"
	"github.com/five82/wallflower/internal/kvstore"
)

var _ pflag.Value = (*kvstore.Backend)(nil)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	prefsPath  string
	storage    kvstore.Backend
}

func (o *rootOptions) appOptions() app.Options {
	return app.Options{
		ConfigPath: o.configPath,
		PrefsPath:  o.prefsPath,
		Storage:    o.storage,
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "wallflower",
		Short: "Browse Unsplash wallpapers in the terminal",
		Long: `wallflower browses Unsplash wallpapers in the terminal. Run without a
subcommand to start the interactive browser. The favorites and download
subcommands work on saved favorites without starting it, and logs shows
the end of the log file.

Set UNSPLASH_ACCESS_KEY or access_key in the config file before browsing.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), opts.appOptions())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.config/wallflower/config.toml)")
	flags.StringVar(&opts.prefsPath, "prefs", "", "preferences file (default ~/.config/wallflower/prefs.toml)")
	flags.Var(&opts.storage, "storage", "storage backend: file, bolt, sqlite or memory (overrides storage_backend)")

	cmd.AddCommand(
		newFavoritesCmd(opts),
		newDownloadCmd(opts),
		newLogsCmd(opts),
	)
	return cmd
}
