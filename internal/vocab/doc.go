// Package vocab contains the vocabulary domain: the fixed category set, the
// loader for the word list asset, and the Navigator state machine that tracks
// position, bookmarks and persisted progress.
//
// Allowed here:
// - category parsing, word list decoding and validation
// - navigation and bookmark transitions, progress serialization
//
// Not allowed here:
// - terminal rendering or key bindings (see internal/tui)
// - concrete storage backends (see internal/storage)
package vocab
