package vocab

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Mapping holds the ordered word list of each category. It is never mutated
// after load.
type Mapping map[Category][]string

// Words returns the sequence for c, or nil when the category is absent.
func (m Mapping) Words(c Category) []string {
	if m == nil {
		return nil
	}
	return m[c]
}

var validate = validator.New()

// DecodeMapping parses a `{ "<category>": ["word", ...] }` document. Keys
// outside the fixed category set are dropped; blank words are rejected.
func DecodeMapping(data []byte, log *zap.Logger) (Mapping, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode vocabulary: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("decode vocabulary: document is not an object")
	}
	out := make(Mapping, len(raw))
	for key, words := range raw {
		cat := Category(key)
		if !cat.Valid() {
			log.Warn("dropping unknown vocabulary category", zap.String("category", key), zap.Int("words", len(words)))
			continue
		}
		trimmed := make([]string, len(words))
		for i, w := range words {
			trimmed[i] = strings.TrimSpace(w)
		}
		if err := validate.Var(trimmed, "dive,required"); err != nil {
			return nil, fmt.Errorf("category %s: blank word: %w", key, err)
		}
		out[cat] = trimmed
	}
	return out, nil
}
