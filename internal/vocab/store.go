package vocab

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Store is the persistent string key-value store progress is mirrored into.
// A missing key reports ok=false with a nil error.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

// Storage keys. Per-category indices are stored under the category id.
const (
	KeyCurrent    = "current"
	KeyBookmarked = "bookmarked"
)

type currentRecord struct {
	Category Category `json:"category"`
	Index    int      `json:"index"`
}

func encodeCurrent(c Category, idx int) string {
	b, _ := json.Marshal(currentRecord{Category: c, Index: idx})
	return string(b)
}

func decodeCurrent(s string) (currentRecord, error) {
	var rec currentRecord
	err := json.Unmarshal([]byte(s), &rec)
	return rec, err
}

func encodeIndex(idx int) string { return strconv.Itoa(idx) }

func decodeIndex(s string) (int, error) {
	// Older writers stored the number via JSON, which may carry a fraction.
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func encodeBookmarks(b map[Category][]int) string {
	out := make(map[Category][]int, len(b))
	for c, idx := range b {
		if idx == nil {
			idx = []int{}
		}
		out[c] = idx
	}
	data, _ := json.Marshal(out)
	return string(data)
}

func decodeBookmarks(s string) (map[Category][]int, error) {
	var raw map[Category][]int
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, err
	}
	out := make(map[Category][]int, len(raw))
	for c, idx := range raw {
		seen := make(map[int]struct{}, len(idx))
		clean := make([]int, 0, len(idx))
		for _, i := range idx {
			if _, dup := seen[i]; dup || i < 0 {
				continue
			}
			seen[i] = struct{}{}
			clean = append(clean, i)
		}
		out[c] = clean
	}
	return out, nil
}
