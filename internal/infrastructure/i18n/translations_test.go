package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestTranslator(t *testing.T) {
	tr := NewTranslator("en", zap.NewNop())

	t.Run("english", func(t *testing.T) {
		assert.Equal(t, "Done.", tr.T("en", "generic.done", nil))
	})

	t.Run("german", func(t *testing.T) {
		assert.Equal(t, "Erledigt.", tr.T("de", "generic.done", nil))
	})

	t.Run("template data", func(t *testing.T) {
		msg := tr.T("en", "notify.reminder", map[string]any{"Event": "Op", "When": "soon"})
		assert.Equal(t, "**Op** starts soon!", msg)
	})

	t.Run("unknown locale falls back to default", func(t *testing.T) {
		assert.Equal(t, "Done.", tr.T("fr", "generic.done", nil))
	})

	t.Run("unknown key returns the key", func(t *testing.T) {
		assert.Equal(t, "no.such.key", tr.T("en", "no.such.key", nil))
	})

	t.Run("empty key", func(t *testing.T) {
		assert.Empty(t, tr.T("en", "", nil))
	})
}
