package vocab

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Category identifies one of the fixed vocabulary topic buckets.
type Category string

const (
	Medical     Category = "medical"
	Legal       Category = "legal"
	Education   Category = "education"
	Immigration Category = "immigration"
	Welfare     Category = "welfare"
	Business    Category = "business"
)

// DefaultCategory is active when no progress has been recorded yet.
const DefaultCategory = Medical

// Categories lists every category in display order.
var Categories = []Category{Medical, Legal, Education, Immigration, Welfare, Business}

var labels = map[string]map[Category]string{
	"zh": {
		Medical:     "医疗",
		Legal:       "法律",
		Education:   "教育",
		Immigration: "移民",
		Welfare:     "Centrelink/社区服务",
		Business:    "商业/金融/保险",
	},
	"en": {
		Medical:     "Medical",
		Legal:       "Legal",
		Education:   "Education",
		Immigration: "Immigration",
		Welfare:     "Centrelink/Community",
		Business:    "Business/Finance/Insurance",
	},
}

// Valid reports whether c is part of the fixed category set.
func (c Category) Valid() bool {
	for _, k := range Categories {
		if k == c {
			return true
		}
	}
	return false
}

// Label returns the display name of c in lang, falling back to the id.
func (c Category) Label(lang string) string {
	if byCat, ok := labels[lang]; ok {
		if l, ok := byCat[c]; ok {
			return l
		}
	}
	return string(c)
}

// Languages returns the label languages that have translations.
func Languages() []string {
	return []string{"zh", "en"}
}

// ParseCategory resolves user input to a Category. Unknown input returns an
// error naming the closest known category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c.Valid() {
		return c, nil
	}
	best, bestDist := Category(""), -1
	for _, k := range Categories {
		d := levenshtein.ComputeDistance(string(c), string(k))
		if bestDist < 0 || d < bestDist {
			best, bestDist = k, d
		}
	}
	if bestDist >= 0 && bestDist <= len(best)/2 {
		return "", fmt.Errorf("unknown category %q (did you mean %q?)", s, best)
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Offset returns the category n steps away from c in display order, wrapping
// at both ends.
func (c Category) Offset(n int) Category {
	pos := 0
	for i, k := range Categories {
		if k == c {
			pos = i
			break
		}
	}
	size := len(Categories)
	return Categories[((pos+n)%size+size)%size]
}
