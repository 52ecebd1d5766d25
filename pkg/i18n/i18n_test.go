package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundleLookupFallsBack(t *testing.T) {
	b, err := Default()
	require.NoError(t, err)

	es := b.For("es")
	assert.Equal(t, "Rol", es.T("promptBuilder.columns.role"))
	// Block copy only ships in English.
	assert.Equal(t, "Frontend engineer", es.T("blocks.devWebRoleTitle"))
	assert.Equal(t, "no.such.key", es.T("no.such.key"))

	unknown := b.For("fr")
	assert.Equal(t, "Role", unknown.T("promptBuilder.columns.role"))
}

func TestBundleMatch(t *testing.T) {
	b := MustDefault()

	tests := []struct {
		header string
		want   string
	}{
		{"", "en"},
		{"es-MX,es;q=0.9,en;q=0.8", "es"},
		{"en-GB", "en"},
		{"de-DE", "en"},
		{"not a header ;;;", "en"},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Match(tt.header))
		})
	}
}

func TestMapTranslator(t *testing.T) {
	m := Map{"a": "A"}
	assert.Equal(t, "A", m.T("a"))
	assert.Equal(t, "b", m.T("b"))
}
