package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.False(t, had)
	require.Empty(t, fm)
	require.Equal(t, input, body)
}

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	fm, body, had, err := Split([]byte("---\nid: intro\n---\n# Title\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("id: intro\n"), fm)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestSplit_EmptyFrontmatter(t *testing.T) {
	fm, body, had, err := Split([]byte("---\n---\n# Hi\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte{}, fm)
	require.Equal(t, []byte("# Hi\n"), body)
}

func TestSplit_ClosingDelimiterAtEOF(t *testing.T) {
	fm, body, had, err := Split([]byte("---\ntitle: x\n---"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("title: x\n"), fm)
	require.Empty(t, body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	_, _, had, err := Split([]byte("---\nkey: value\n# Title\n"))
	require.ErrorIs(t, err, ErrMissingClosingDelimiter)
	require.False(t, had)
}

func TestSplit_CRLF(t *testing.T) {
	fm, body, had, err := Split([]byte("---\r\nkey: value\r\n---\r\n# Title\r\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("key: value\r\n"), fm)
	require.Equal(t, []byte("# Title\r\n"), body)
}

func TestParse_TypedFields(t *testing.T) {
	fields, all, err := Parse([]byte("id: quicksort\ntitle: Quicksort\nsidebar_label: QS\ndraft: true\ntags: [sorting]\n"))
	require.NoError(t, err)
	require.Equal(t, Fields{ID: "quicksort", Title: "Quicksort", SidebarLabel: "QS", Draft: true}, fields)
	require.Equal(t, []any{"sorting"}, all["tags"])
}

func TestParse_EmptyAndInvalid(t *testing.T) {
	fields, all, err := Parse(nil)
	require.NoError(t, err)
	require.Equal(t, Fields{}, fields)
	require.Empty(t, all)

	_, _, err = Parse([]byte("id: [unterminated\n"))
	require.Error(t, err)
}

func TestCanonical_SortedAndSkipping(t *testing.T) {
	out, err := Canonical(map[string]any{
		"title":       "B",
		"id":          "a",
		"fingerprint": "x",
		"nested":      map[string]any{"z": 1, "a": true},
	}, "fingerprint")
	require.NoError(t, err)
	require.Equal(t, "id: a\nnested:\n  a: true\n  z: 1\ntitle: B\n", string(out))

	empty, err := Canonical(map[string]any{"fingerprint": "x"}, "fingerprint")
	require.NoError(t, err)
	require.Empty(t, empty)
}
