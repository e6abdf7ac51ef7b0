package main

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/DukeRupert/pagewindow/internal/pagination"
)

const ellipsisMark = "…"

// formatText renders w on one line, e.g. "1 … 3 4 [5] 6 7 … 10", with page
// numbers formatted for tag.
func formatText(w pagination.Window, tag language.Tag) string {
	items := w.Items()
	if len(items) == 0 {
		return "(no pages)"
	}

	p := message.NewPrinter(tag)
	parts := make([]string, len(items))
	for i, item := range items {
		switch {
		case item.Type == pagination.ItemEllipsis:
			parts[i] = ellipsisMark
		case item.Current:
			parts[i] = "[" + p.Sprintf("%d", item.Page) + "]"
		default:
			parts[i] = p.Sprintf("%d", item.Page)
		}
	}
	return strings.Join(parts, " ")
}
