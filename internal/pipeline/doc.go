// Package pipeline implements the text transformations applied to a blog post
// when the tariff rate changes.
//
// The stages run in a fixed order:
//   - Update-note insertion (timestamped annotation after the last note)
//   - Rate update (strike through the active percentage, append the new one)
//   - Price update (recompute dependent dollar amounts per tracked product)
//
// Every stage takes the whole document as a string and returns a new string.
// Regions of the document that are not targeted are copied byte-for-byte, so
// the surrounding markup and styling survive any number of runs.
package pipeline
