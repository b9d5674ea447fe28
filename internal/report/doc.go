// Package report renders the outcome of a script check.
//
// Four formats are supported:
//   - text  : the human-readable CI log output (default)
//   - json  : a single JSON document
//   - sarif : SARIF v2.1.0 for code-scanning upload
//   - github: GitHub Actions error annotations followed by the text output
//
// Use [GetWriter] to obtain a [Writer] for a format string, or [WriteReport]
// to also pick the destination.
package report
