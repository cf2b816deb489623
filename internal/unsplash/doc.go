// Package unsplash is a small client for the parts of the Unsplash API that
// wallflower uses: random photos and photo search.
//
// Requests authenticate with the application's access key through the
// "Authorization: Client-ID" header and ask for portrait photos by default.
// Each request carries a generated X-Request-ID that also appears in the
// log lines for that request.
//
// Any transport error, non-2xx status or undecodable body is returned
// wrapping wallpaper.ErrNetwork. The client never retries; callers decide
// what a failure means for their state.
package unsplash
