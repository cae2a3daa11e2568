package synonym

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand_EveryMemberYieldsWholeGroup(t *testing.T) {
	table := MustNewTable(DefaultGroups)

	for _, group := range DefaultGroups {
		want := make([]string, 0, len(group))
		for _, term := range group {
			want = append(want, Normalize(term))
		}
		for _, term := range group {
			assert.ElementsMatch(t, want, table.Expand(term), "expand(%q)", term)
		}
	}
}

func TestExpand_Miss(t *testing.T) {
	table := MustNewTable(DefaultGroups)

	assert.Equal(t, []string{"golang"}, table.Expand("  GoLang "))
}

func TestExpand_Empty(t *testing.T) {
	table := MustNewTable(DefaultGroups)

	assert.Empty(t, table.Expand(""))
	assert.Empty(t, table.Expand("   "))
}

func TestExpand_CaseAndWhitespace(t *testing.T) {
	table := MustNewTable(DefaultGroups)

	assert.ElementsMatch(t,
		[]string{"it", "cntt", "công nghệ thông tin", "information technology", "tech"},
		table.Expand("  IT "),
	)
}

func TestExpand_DecomposedInput(t *testing.T) {
	table := MustNewTable(DefaultGroups)

	// "kế toán" typed with combining marks
	decomposed := "ke\u0302\u0301 toa\u0301n"
	assert.Contains(t, table.Expand(decomposed), "accountant")
}

func TestExpand_ReturnsCopy(t *testing.T) {
	table := MustNewTable([][]string{{"a", "b"}})

	got := table.Expand("a")
	got[0] = "mutated"

	assert.Equal(t, []string{"a", "b"}, table.Expand("a"))
}

func TestNewTable_Overlap(t *testing.T) {
	_, err := NewTable([][]string{{"it", "tech"}, {"Tech", "engineering"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOverlappingGroups)
}

func TestNewTable_EmptyTerm(t *testing.T) {
	_, err := NewTable([][]string{{"it", " "}})
	assert.ErrorIs(t, err, ErrEmptyTerm)
}

func TestNewTable_DuplicateInsideGroup(t *testing.T) {
	table, err := NewTable([][]string{{"it", "IT", "tech"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"it", "tech"}, table.Expand("tech"))
	assert.Equal(t, 1, table.Len())
}

func TestMustNewTable_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustNewTable([][]string{{"a"}, {"a"}})
	})
}

func TestDefaultGroupsAreDisjoint(t *testing.T) {
	_, err := NewTable(DefaultGroups)
	assert.NoError(t, err)
}

func TestLoadGroups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synonyms.json")
	require.NoError(t, os.WriteFile(path, []byte(`[["go","golang"],["js","javascript"]]`), 0o600))

	groups, err := LoadGroups(path)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"go", "golang"}, {"js", "javascript"}}, groups)

	_, err = LoadGroups(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
