// Package update checks GitHub for the latest yuzu release and fetches it.
//
// The package includes:
//   - GitHub API client for fetching release info (release.go)
//   - Asset selection by file suffix (select.go)
//   - Version token parsing from artifact file names (version.go)
//   - Local download directory scanning (inventory.go)
//   - Remote/local reconciliation (reconcile.go)
//   - Streaming download with temp file and atomic rename (download.go)
//   - The check and update pipeline tying these together (updater.go)
//
// Comparison is exact: a version token is an opaque build identifier taken from the
// artifact file name, so any difference between remote and local means an update.
// A failed or cancelled download never leaves a file under the final artifact name.
package update
