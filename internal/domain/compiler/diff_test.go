package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiff_Summary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		diff     Diff
		expected string
	}{
		{"add", Add("checkout", "gray", "depth 1"), "+ checkout gray (depth 1)"},
		{"modify with values", Modify("unit", "NetworkManager", "disabled", "enabled"), "~ unit NetworkManager (disabled -> enabled)"},
		{"modify from only", Modify("unit", "iwd", "enabled", ""), "~ unit iwd (was enabled)"},
		{"modify bare", Modify("checkout", "ax-shell", "", ""), "~ checkout ax-shell"},
		{"none", NoChange("font", "tabler"), "  font tabler"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.diff.Summary())
		})
	}
}

func TestDiff_Accessors(t *testing.T) {
	t.Parallel()

	d := Modify("unit", "NetworkManager", "disabled", "enabled")
	assert.Equal(t, DiffTypeModify, d.Type())
	assert.Equal(t, "unit", d.Resource())
	assert.Equal(t, "NetworkManager", d.Name())
	assert.Equal(t, "disabled", d.From())
	assert.Equal(t, "enabled", d.To())
}

func TestDiff_IsEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, Diff{}.IsEmpty())
	assert.False(t, NoChange("font", "tabler").IsEmpty())
}

func TestStepStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status  StepStatus
		phrase  string
		pending bool
	}{
		{StatusSatisfied, "up to date", false},
		{StatusNeedsApply, "will change", true},
		{StatusUnknown, "state unknown", true},
		{StatusFailed, "failed", false},
		{StatusSkipped, "skipped", false},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.phrase, tt.status.Phrase())
			assert.Equal(t, tt.pending, tt.status.Pending())
		})
	}
}

func TestExplanation_Lines(t *testing.T) {
	t.Parallel()

	e := NewExplanation("Install bundled font", "Copies tabler-icons into ~/.local/share/fonts.",
		[]string{"https://tabler.io/icons"})

	assert.Equal(t, []string{"Install bundled font"}, e.Lines(false))
	assert.Equal(t, []string{
		"Install bundled font",
		"Copies tabler-icons into ~/.local/share/fonts.",
		"see https://tabler.io/icons",
	}, e.Lines(true))
	assert.False(t, e.IsEmpty())
	assert.True(t, Explanation{}.IsEmpty())
	assert.Empty(t, Explanation{}.Lines(true))
}
