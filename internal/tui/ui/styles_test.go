package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultStyles(t *testing.T) {
	t.Parallel()

	styles := DefaultStyles()

	assert.Contains(t, styles.Title.Render("Results"), "Results")
	assert.Contains(t, styles.Success.Render(SymbolOK), SymbolOK)
	assert.Contains(t, styles.Error.Render(SymbolFail), SymbolFail)
	assert.Contains(t, styles.Warning.Render("warn"), "warn")
}
