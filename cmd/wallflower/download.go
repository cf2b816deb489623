package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/five82/wallflower/internal/app"
	"github.com/five82/wallflower/internal/wallpaper"
)

const downloadConcurrency = 3

func newDownloadCmd(opts *rootOptions) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "download [id...]",
		Short: "Download favorites into the download directory",
		Args: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) > 0) {
				return fmt.Errorf("pass favorite ids or --all")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.Bootstrap(cmd.Context(), opts.appOptions())
			if err != nil {
				return err
			}
			defer func() { _ = svc.Close() }()

			recs, err := selectFavorites(svc.Favorites.List(), args, all)
			if err != nil {
				return err
			}

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(downloadConcurrency)

			var mu sync.Mutex
			out := cmd.OutOrStdout()
			for _, rec := range recs {
				rec := rec
				g.Go(func() error {
					path, err := svc.Downloader.Download(ctx, rec)
					if err != nil {
						return fmt.Errorf("download %s: %w", rec.ID, err)
					}
					mu.Lock()
					defer mu.Unlock()
					fmt.Fprintf(out, "%s\t%s\n", rec.ID, path)
					return nil
				})
			}
			return g.Wait()
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "download every favorite")
	return cmd
}

// selectFavorites picks the favorites named by ids, in argument order, or
// every favorite when all is set.
func selectFavorites(list []wallpaper.Record, ids []string, all bool) ([]wallpaper.Record, error) {
	if all {
		return list, nil
	}
	byID := make(map[string]wallpaper.Record, len(list))
	for _, rec := range list {
		byID[rec.ID] = rec
	}

	recs := make([]wallpaper.Record, 0, len(ids))
	var missing []string
	for _, id := range ids {
		rec, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		recs = append(recs, rec)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("not a favorite: %s", strings.Join(missing, ", "))
	}
	return recs, nil
}
