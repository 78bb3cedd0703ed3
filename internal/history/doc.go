// Package history keeps an opt-in SQLite ledger of completed exports.
//
// Each row records which document was produced for which video, how many
// comments it held and a SHA3-256 digest of its content. The ledger never
// stores the fetched text or the API key, and it is never consulted to skip
// a fetch: it exists so users can see when and how a video's comment
// section changed between exports.
//
// The database uses modernc.org/sqlite, a CGO-free driver, with WAL mode
// and a single connection.
package history
