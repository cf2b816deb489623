package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/five82/wallflower/internal/appearance"
	"github.com/five82/wallflower/internal/config"
	"github.com/five82/wallflower/internal/favorites"
	"github.com/five82/wallflower/internal/kvstore"
	"github.com/five82/wallflower/internal/logging"
	"github.com/five82/wallflower/internal/media"
	"github.com/five82/wallflower/internal/prefs"
	"github.com/five82/wallflower/internal/ui"
	"github.com/five82/wallflower/internal/unsplash"
)

// Options configure the wallflower application.
type Options struct {
	ConfigPath string
	PrefsPath  string          // empty uses ~/.config/wallflower/prefs.toml
	Storage    kvstore.Backend // overrides storage_backend when set
}

// Services are the long-lived collaborators shared by the TUI and the CLI
// commands. They are built once by Bootstrap and released by Close.
type Services struct {
	Config     config.Config
	Log        *logging.Logger
	Storage    kvstore.Gateway
	Favorites  *favorites.Store
	Client     *unsplash.Client
	Downloader *media.Downloader
	Sharer     *media.Sharer
}

// Bootstrap loads configuration, opens storage and loads favorites.
func Bootstrap(ctx context.Context, opts Options) (*Services, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.Storage != "" {
		cfg.Storage = opts.Storage
	}

	logger, err := logging.New(logging.Options{Path: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	logger.Info("starting", "storage", cfg.Storage, "data_dir", cfg.DataDir)

	storage, err := kvstore.Open(cfg.Storage, cfg.DataDir)
	if err != nil {
		_ = logger.Close()
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage, err)
	}

	client, err := unsplash.NewClient(cfg.APIURL, cfg.AccessKey, unsplash.Options{
		Orientation: cfg.Orientation,
		RandomQuery: cfg.RandomQuery,
		Logger:      logger.Logger,
	})
	if err != nil {
		_ = storage.Close()
		_ = logger.Close()
		return nil, fmt.Errorf("init unsplash client: %w", err)
	}
	if cfg.AccessKey == "" {
		logger.Warn("no access key configured; set " + config.AccessKeyEnv + " or access_key")
	}

	favs := favorites.New(storage, favorites.Options{Logger: logger.Logger})
	favs.Load(ctx)

	return &Services{
		Config:     cfg,
		Log:        logger,
		Storage:    storage,
		Favorites:  favs,
		Client:     client,
		Downloader: media.NewDownloader(cfg.DownloadDir, media.DownloaderOptions{Logger: logger.Logger}),
		Sharer:     media.NewSharer(logger.Logger),
	}, nil
}

// Close waits for pending favorite writes, then releases storage and the
// log file.
func (s *Services) Close() error {
	if s == nil {
		return nil
	}
	s.Favorites.Close()
	err := s.Storage.Close()
	s.Log.Info("stopped")
	return errors.Join(err, s.Log.Close())
}

// Run boots the wallflower TUI until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	svc, err := Bootstrap(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	userPrefs := prefs.Load(opts.PrefsPath)

	// The terminal query must finish before the TUI takes over input.
	host, source := appearance.StartupResolver().Resolve()
	svc.Log.Info("appearance detected", "mode", host, "source", source)
	theme := appearance.NewStore(host)

	session := appearance.SessionResolver()
	StartHostWatcher(ctx, theme, session, svc.Config.HostThemePoll, svc.Log.Logger)

	return ui.Run(ui.Options{
		Context:    ctx,
		Source:     svc.Client,
		PerPage:    svc.Config.PerPage,
		Favorites:  svc.Favorites,
		Appearance: theme,
		HostProbe:  session.Probe,
		Downloader: svc.Downloader,
		Sharer:     svc.Sharer,
		Palette:    userPrefs.Palette,
		PrefsPath:  opts.PrefsPath,
		Logger:     svc.Log.Logger,
	})
}
