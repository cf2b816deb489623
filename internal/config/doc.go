// Package config loads wallflower's TOML configuration.
//
// # Discovery
//
// Load reads the given path, or ~/.config/wallflower/config.toml when the
// path is empty. A missing file is not an error: every field has a default
// so wallflower starts without any configuration. Blank values also fall
// back to their defaults.
//
// # Fields
//
//	api_url         = "https://api.unsplash.com"
//	access_key      = ""                      # or UNSPLASH_ACCESS_KEY
//	per_page        = 15                      # 1..30
//	orientation     = "portrait"              # landscape, portrait, squarish
//	random_query    = "wallpaper"
//	storage_backend = "file"                  # file, bolt, sqlite, memory
//	data_dir        = "~/.local/share/wallflower"
//	download_dir    = "~/Pictures/wallflower"
//	log_level       = "info"
//	log_file        = "<data_dir>/wallflower.log"
//	host_theme_poll = 0                       # seconds, 0 disables
//
// Paths accept a leading tilde and are made absolute.
//
// # Errors
//
// Load fails when the home directory cannot be resolved, the file cannot be
// read, the TOML does not parse, or a value is out of range (unknown
// orientation or storage backend, negative poll interval).
package config
