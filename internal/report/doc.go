// Package report renders the outcome of a patch run for the terminal: the
// one-line-per-change summary and the dry-run diff.
package report
