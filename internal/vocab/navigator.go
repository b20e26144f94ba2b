package vocab

import (
	"slices"

	"go.uber.org/zap"
)

// NoWords is displayed in place of an empty word sequence.
const NoWords = "(no words)"

// Signal is a discrete navigation input from the UI shell.
type Signal int

const (
	SignalNone Signal = iota
	SignalPrevious
	SignalNext
)

// Navigator owns the active category, the active index, the bookmark-only
// filter and the bookmarks, and mirrors progress into a Store.
//
// Navigator is not safe for concurrent use; the UI shell drives it from a
// single goroutine.
type Navigator struct {
	store Store
	log   *zap.Logger
	words Mapping

	category     Category
	index        int
	bookmarkOnly bool
	bookmarks    map[Category][]int
	positions    map[Category]int
	loaded       bool

	onCollapse func()
	collapsed  bool
	failures   int
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithLogger sets the logger used for storage warnings.
func WithLogger(log *zap.Logger) Option {
	return func(n *Navigator) {
		if log != nil {
			n.log = log
		}
	}
}

// WithCollapse registers fn to run the first time a category-changing
// interaction occurs.
func WithCollapse(fn func()) Option {
	return func(n *Navigator) { n.onCollapse = fn }
}

// NewNavigator returns a Navigator over an empty mapping at the default
// position. Call Restore once the vocabulary is loaded.
func NewNavigator(store Store, opts ...Option) *Navigator {
	n := &Navigator{
		store:     store,
		log:       zap.NewNop(),
		category:  DefaultCategory,
		bookmarks: map[Category][]int{},
		positions: map[Category]int{},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Restore installs the loaded mapping and seeds state from the store.
// Transitions are ignored until Restore has run.
func (n *Navigator) Restore(m Mapping) {
	n.words = m
	n.loaded = true
	n.category = DefaultCategory
	n.index = 0
	n.bookmarkOnly = false
	n.positions = map[Category]int{}

	restored := false
	stored := 0
	raw, ok, err := n.load(KeyCurrent)
	if err == nil && ok {
		rec, derr := decodeCurrent(raw)
		switch {
		case derr != nil:
			n.fail(&StorageError{Op: "decode", Key: KeyCurrent, Err: derr})
		case !rec.Category.Valid():
			n.log.Warn("ignoring progress for unknown category", zap.String("category", string(rec.Category)))
		default:
			n.category = rec.Category
			n.index = rec.Index
			stored = rec.Index
			restored = true
		}
	}
	n.clamp()
	switch {
	case restored && n.index != stored:
		n.recordProgress()
	case restored:
		n.positions[n.category] = n.index
		if _, ok, err := n.persistedIndex(n.category); err == nil && !ok {
			n.save(string(n.category), encodeIndex(n.index))
		}
	case err == nil:
		n.recordProgress()
	default:
		n.positions[n.category] = n.index
	}

	n.bookmarks = map[Category][]int{}
	if raw, ok, err := n.load(KeyBookmarked); err == nil && ok {
		b, derr := decodeBookmarks(raw)
		if derr != nil {
			n.fail(&StorageError{Op: "decode", Key: KeyBookmarked, Err: derr})
		} else {
			n.bookmarks = b
		}
	}
	for c := range m {
		if _, ok := n.bookmarks[c]; !ok {
			n.bookmarks[c] = []int{}
		}
	}
}

// Reset forgets all persisted progress and bookmarks and starts over at the
// default position.
func (n *Navigator) Reset() {
	if !n.loaded {
		return
	}
	if n.store != nil {
		keys := []string{KeyCurrent, KeyBookmarked}
		for _, c := range Categories {
			keys = append(keys, string(c))
		}
		for _, k := range keys {
			if err := n.store.Remove(k); err != nil {
				n.fail(&StorageError{Op: "remove", Key: k, Err: err})
			}
		}
	}
	n.Restore(n.words)
}

// SelectCategory switches the active category.
func (n *Navigator) SelectCategory(c Category) {
	if !n.loaded || !c.Valid() {
		return
	}
	n.collapse()
	if _, seen := n.positions[c]; !seen {
		_, ok, err := n.persistedIndex(c)
		if err == nil && !ok {
			n.positions[c] = 0
			n.save(string(c), encodeIndex(0))
		}
	}
	n.category = c
	if n.bookmarkOnly {
		n.index = 0
	} else {
		n.index = n.position(c)
	}
	n.clamp()
	n.recordProgress()
}

// Advance moves to the next displayed word, stopping at the last one.
func (n *Navigator) Advance() {
	if !n.loaded {
		return
	}
	if n.index < len(n.DisplayedWords(n.category))-1 {
		n.index++
	}
	n.recordProgress()
}

// Retreat moves to the previous displayed word, stopping at the first one.
func (n *Navigator) Retreat() {
	if !n.loaded {
		return
	}
	if n.index > 0 {
		n.index--
	}
	n.recordProgress()
}

// HandleSignal maps previous/next to Retreat/Advance and ignores anything else.
func (n *Navigator) HandleSignal(s Signal) {
	switch s {
	case SignalPrevious:
		n.Retreat()
	case SignalNext:
		n.Advance()
	}
}

// ToggleBookmarkOnly flips the bookmark-only filter. Entering starts at the
// first bookmark; leaving returns to the persisted position of the category.
func (n *Navigator) ToggleBookmarkOnly() {
	if !n.loaded {
		return
	}
	n.bookmarkOnly = !n.bookmarkOnly
	if n.bookmarkOnly {
		n.index = 0
	} else {
		n.index = n.position(n.category)
	}
	n.clamp()
}

// BookmarkCurrentWord adds the active word to the bookmarks. It does nothing
// while the bookmark-only filter is on.
func (n *Navigator) BookmarkCurrentWord() {
	if !n.loaded || n.bookmarkOnly || len(n.words.Words(n.category)) == 0 {
		return
	}
	if slices.Contains(n.bookmarks[n.category], n.index) {
		return
	}
	n.bookmarks[n.category] = append(n.bookmarks[n.category], n.index)
	n.save(KeyBookmarked, encodeBookmarks(n.bookmarks))
}

// DisplayedWords returns the sequence navigation runs over for c: the
// bookmarked words in bookmark order, or every word. An empty sequence is
// replaced by NoWords. Callers must not modify the result.
func (n *Navigator) DisplayedWords(c Category) []string {
	words := n.words.Words(c)
	if n.bookmarkOnly {
		marked := make([]string, 0, len(n.bookmarks[c]))
		for _, i := range n.bookmarks[c] {
			if i >= 0 && i < len(words) {
				marked = append(marked, words[i])
			}
		}
		words = marked
	}
	if len(words) == 0 {
		return []string{NoWords}
	}
	return words
}

// Category returns the active category.
func (n *Navigator) Category() Category { return n.category }

// Index returns the active position within DisplayedWords.
func (n *Navigator) Index() int { return n.index }

// BookmarkOnly reports whether the bookmark-only filter is on.
func (n *Navigator) BookmarkOnly() bool { return n.bookmarkOnly }

// Word returns the active word, or NoWords.
func (n *Navigator) Word() string {
	return n.DisplayedWords(n.category)[n.index]
}

// Total returns how many real words are displayed for the active category.
func (n *Navigator) Total() int {
	words := n.DisplayedWords(n.category)
	if len(words) == 1 && words[0] == NoWords {
		return 0
	}
	return len(words)
}

// IsBookmarked reports whether the active word is bookmarked.
func (n *Navigator) IsBookmarked() bool {
	if n.Total() == 0 {
		return false
	}
	return n.bookmarkOnly || slices.Contains(n.bookmarks[n.category], n.index)
}

// Bookmarks returns a copy of the bookmarked indices of c in insertion order.
func (n *Navigator) Bookmarks(c Category) []int {
	return slices.Clone(n.bookmarks[c])
}

// Degraded reports whether any storage operation has failed, meaning some
// progress exists only in memory.
func (n *Navigator) Degraded() bool { return n.failures > 0 }

func (n *Navigator) clamp() {
	last := len(n.DisplayedWords(n.category)) - 1
	if n.index > last {
		n.index = last
	}
	if n.index < 0 {
		n.index = 0
	}
}

func (n *Navigator) collapse() {
	if n.collapsed {
		return
	}
	n.collapsed = true
	if n.onCollapse != nil {
		n.onCollapse()
	}
}

// recordProgress writes the current record and the per-category index.
// Browsing bookmarks never overwrites the real position.
func (n *Navigator) recordProgress() {
	if n.bookmarkOnly {
		return
	}
	n.positions[n.category] = n.index
	n.save(KeyCurrent, encodeCurrent(n.category, n.index))
	n.save(string(n.category), encodeIndex(n.index))
}

// position returns the last index viewed in c during this session, falling
// back to the stored one.
func (n *Navigator) position(c Category) int {
	if idx, ok := n.positions[c]; ok {
		return idx
	}
	idx, _, _ := n.persistedIndex(c)
	return idx
}

func (n *Navigator) persistedIndex(c Category) (int, bool, error) {
	raw, ok, err := n.load(string(c))
	if err != nil || !ok {
		return 0, ok, err
	}
	idx, err := decodeIndex(raw)
	if err != nil {
		n.fail(&StorageError{Op: "decode", Key: string(c), Err: err})
		return 0, true, nil
	}
	return idx, true, nil
}

func (n *Navigator) load(key string) (string, bool, error) {
	if n.store == nil {
		return "", false, nil
	}
	v, ok, err := n.store.Get(key)
	if err != nil {
		serr := &StorageError{Op: "get", Key: key, Err: err}
		n.fail(serr)
		return "", false, serr
	}
	return v, ok, nil
}

func (n *Navigator) save(key, value string) {
	if n.store == nil {
		return
	}
	if err := n.store.Set(key, value); err != nil {
		n.fail(&StorageError{Op: "set", Key: key, Err: err})
	}
}

func (n *Navigator) fail(err *StorageError) {
	n.failures++
	n.log.Warn("progress storage unavailable", zap.Error(err))
}
