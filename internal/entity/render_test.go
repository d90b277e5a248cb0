package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderLines(t *testing.T, text string) []string {
	t.Helper()

	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	require.Len(t, lines, 11)

	return lines
}

func TestGameState_Render(t *testing.T) {
	plain := "⬜⬜⬜⬛⬜⬜⬜⬛⬜⬜⬜"
	separator := strings.Repeat(GlyphSeparator, 11)

	t.Run("Empty board renders plain", func(t *testing.T) {
		// Given: a fresh game
		state := NewGameState()

		// When: rendering without highlights
		lines := renderLines(t, state.Render())

		// Then: every cell is plain and sub-boards are separated
		for i, line := range lines {
			if i == 3 || i == 7 {
				assert.Equal(t, separator, line)
				continue
			}
			assert.Equal(t, plain, line)
		}
	})

	t.Run("Highlight marks the empty cells of one sub-board", func(t *testing.T) {
		// Given: player 1 played the center of the center sub-board
		state := NewGameState()
		require.NoError(t, state.ApplyMove(4, 1, 1))

		// When: rendering with sub-board 4 highlighted
		lines := renderLines(t, state.Render(WithHighlight(4)))

		// Then: the occupied cell keeps its owner and the rest of sub-board 4 is selectable
		assert.Equal(t, plain, lines[0])
		assert.Equal(t, "⬜⬜⬜⬛🟨🟨🟨⬛⬜⬜⬜", lines[4])
		assert.Equal(t, "⬜⬜⬜⬛🟨🟦🟨⬛⬜⬜⬜", lines[5])
		assert.Equal(t, "⬜⬜⬜⬛🟨🟨🟨⬛⬜⬜⬜", lines[6])
	})

	t.Run("Highlightable marks every listed sub-board", func(t *testing.T) {
		// Given: both players made a move
		state := NewGameState()
		require.NoError(t, state.ApplyMove(4, 1, 1))
		require.NoError(t, state.ApplyMove(4, 0, 2))

		// When: rendering with sub-boards 0 and 4 selectable
		lines := renderLines(t, state.Render(WithHighlightable([]int{0, 4})))

		// Then: both are highlighted, player 2's mark shows
		assert.Equal(t, "🟨🟨🟨⬛⬜⬜⬜⬛⬜⬜⬜", lines[0])
		assert.Equal(t, "⬜⬜⬜⬛🟨🟨🟥⬛⬜⬜⬜", lines[4])
		assert.Equal(t, "⬜⬜⬜⬛🟨🟦🟨⬛⬜⬜⬜", lines[5])
		assert.Equal(t, plain, lines[8])
	})

	t.Run("Single highlight wins over highlightable", func(t *testing.T) {
		// Given: a fresh game
		state := NewGameState()

		// When: rendering with both options, in either order
		forward := renderLines(t, state.Render(WithHighlightable([]int{0, 1}), WithHighlight(4)))
		backward := renderLines(t, state.Render(WithHighlight(4), WithHighlightable([]int{0, 1})))

		// Then: only sub-board 4 is selectable
		for _, lines := range [][]string{forward, backward} {
			assert.Equal(t, plain, lines[0])
			assert.Equal(t, "⬜⬜⬜⬛🟨🟨🟨⬛⬜⬜⬜", lines[4])
			assert.Equal(t, plain, lines[8])
		}
	})
}
