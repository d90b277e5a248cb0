package entity

import (
	"strings"

	"github.com/samber/lo"
)

const (
	GlyphPlayer1    = "🟦"
	GlyphPlayer2    = "🟥"
	GlyphSelectable = "🟨"
	GlyphEmpty      = "⬜"
	GlyphSeparator  = "⬛"
)

type renderConfig struct {
	highlight     *int
	highlightable []int
}

type RenderOption func(*renderConfig)

// WithHighlight marks the empty cells of one sub-board as selectable.
func WithHighlight(sub int) RenderOption {
	return func(cfg *renderConfig) {
		cfg.highlight = &sub
	}
}

// WithHighlightable marks the empty cells of every listed sub-board as selectable.
func WithHighlightable(subs []int) RenderOption {
	return func(cfg *renderConfig) {
		cfg.highlightable = subs
	}
}

// Render draws the meta-grid row by row, one glyph per cell, sub-boards split by separators.
func (that *GameState) Render(opts ...RenderOption) string {
	var cfg renderConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var out strings.Builder

	for metaRow := range SubBoardSize {
		for row := range SubBoardSize {
			for metaCol := range SubBoardSize {
				sub := metaRow*SubBoardSize + metaCol
				for col := range SubBoardSize {
					out.WriteString(cfg.glyph(sub, that.board[sub][row][col]))
				}

				if metaCol != SubBoardSize-1 {
					out.WriteString(GlyphSeparator)
				}
			}
			out.WriteString("\n")
		}

		if metaRow != SubBoardSize-1 {
			out.WriteString(strings.Repeat(GlyphSeparator, SubBoardSize*SubBoardSize+SubBoardSize-1))
			out.WriteString("\n")
		}
	}

	return out.String()
}

func (cfg *renderConfig) glyph(sub int, cell Player) string {
	switch cell {
	case Player1:
		return GlyphPlayer1
	case Player2:
		return GlyphPlayer2
	}

	if cfg.highlight != nil {
		if *cfg.highlight == sub {
			return GlyphSelectable
		}
		return GlyphEmpty
	}

	if lo.Contains(cfg.highlightable, sub) {
		return GlyphSelectable
	}

	return GlyphEmpty
}
