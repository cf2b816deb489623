// Package ui implements the wallflower terminal interface with Bubble Tea.
//
// # Screens
//
// The browse screen shows a featured carousel of the first five wallpapers
// above a two-column card grid. Moving the selection near the end of the grid
// asks the browse.Controller for the next page. Pressing / opens a search
// box; results replace the grid until esc returns to browsing.
//
// The favorites screen lists saved wallpapers newest first. Enter opens a
// detail modal from either screen, where a wallpaper can be favorited,
// shared or downloaded.
//
// # State
//
// Model is a value type, as Bubble Tea expects. Long-lived stores are
// pointers injected through Options: the favorites.Store, the
// appearance.Store and the browse.Controller. Network and disk work runs in
// tea.Cmd functions and comes back as messages; fetch results from
// superseded requests are dropped by the controller.
//
// # Appearance
//
// Colors come from a palette (Nightfox, Kanagawa, Slate), each with a light
// and a dark variant. t flips the mode for the session, T cycles the palette
// and saves it to the preferences file. Regaining terminal focus re-checks
// the host color scheme.
package ui
