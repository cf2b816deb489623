// Package app is the composition root for wallflower.
//
// Bootstrap loads configuration, opens logging and the configured key-value
// backend, loads favorites and builds the Unsplash client, downloader and
// sharer. The returned Services are shared by the TUI (Run) and the CLI
// subcommands, and Close waits for queued favorite writes before releasing
// storage.
//
// Run detects the host color scheme before the TUI takes over the terminal,
// optionally starts a watcher that re-checks it every host_theme_poll, and
// blocks in ui.Run until the user quits or the context is cancelled.
//
// Nothing at runtime is fatal: fetch, download and persistence failures are
// logged and the UI keeps its previous state. Only configuration, logging
// and storage setup errors are returned from Bootstrap.
package app
