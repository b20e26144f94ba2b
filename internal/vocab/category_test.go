package vocab

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" Legal ")
	require.NoError(t, err)
	require.Equal(t, Legal, c)

	_, err = ParseCategory("medcal")
	require.EqualError(t, err, `unknown category "medcal" (did you mean "medical"?)`)

	_, err = ParseCategory("zzz")
	require.EqualError(t, err, `unknown category "zzz"`)
}

func TestCategoryOffsetWraps(t *testing.T) {
	require.Equal(t, Legal, Medical.Offset(1))
	require.Equal(t, Business, Medical.Offset(-1))
	require.Equal(t, Medical, Business.Offset(1))
	require.Equal(t, Medical, Medical.Offset(len(Categories)))
}

func TestCategoryLabel(t *testing.T) {
	require.Equal(t, "医疗", Medical.Label("zh"))
	require.Equal(t, "Medical", Medical.Label("en"))
	require.Equal(t, "medical", Medical.Label("fr"))
	for _, lang := range Languages() {
		for _, c := range Categories {
			require.NotEqual(t, string(c), c.Label(lang), "%s/%s", lang, c)
		}
	}
}

func TestProgressCodecs(t *testing.T) {
	require.Equal(t, `{"category":"legal","index":3}`, encodeCurrent(Legal, 3))

	idx, err := decodeIndex("7")
	require.NoError(t, err)
	require.Equal(t, 7, idx)
	idx, err = decodeIndex("2.0")
	require.NoError(t, err)
	require.Equal(t, 2, idx)
	_, err = decodeIndex("seven")
	require.Error(t, err)

	require.JSONEq(t, `{"medical":[],"legal":[4,1]}`, encodeBookmarks(map[Category][]int{Medical: nil, Legal: {4, 1}}))
	b, err := decodeBookmarks(`{"legal":[4,1,4,-2]}`)
	require.NoError(t, err)
	require.Equal(t, []int{4, 1}, b[Legal])
}
