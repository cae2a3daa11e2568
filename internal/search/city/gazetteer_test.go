package city

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	g := Default()

	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"lowercase", "hà nội", "Hà Nội", true},
		{"uppercase", "HỒ CHÍ MINH", "Hồ Chí Minh", true},
		{"surrounding whitespace", "  đà nẵng  ", "Đà Nẵng", true},
		{"decomposed input", "Ha\u0300 No\u0302\u0323i", "Hà Nội", true},
		{"unknown", "nowhereville", "", false},
		{"empty", "", "", false},
		{"partial is not a match", "hà", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := g.Normalize(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_FirstMatchWins(t *testing.T) {
	g := NewGazetteer([]string{"Springfield", "SPRINGFIELD", ""})

	got, ok := g.Normalize("springfield")
	require.True(t, ok)
	assert.Equal(t, "Springfield", got)
	assert.Len(t, g.Names(), 2)
}

func TestLoadGazetteer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cities.json")
	require.NoError(t, os.WriteFile(path, []byte(`["Hà Nội","Huế"]`), 0o600))

	g, err := LoadGazetteer(path)
	require.NoError(t, err)

	got, ok := g.Normalize("huế")
	assert.True(t, ok)
	assert.Equal(t, "Huế", got)
}
