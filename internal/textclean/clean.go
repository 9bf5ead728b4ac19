// Package textclean normalizes extracted page text into a compact,
// LLM-friendly form.
package textclean

import (
	"regexp"
	"strings"
)

var (
	reNewlineRun3 = regexp.MustCompile(`\n{3,}`)
	reSpaceRun3   = regexp.MustCompile(` {3,}`)
	reFencedCode  = regexp.MustCompile("(?s)```.*?```")
	reInlineCode  = regexp.MustCompile("`[^`\n]*`")
	reNewlineRun2 = regexp.MustCompile(`\n{2,}`)

	glyphStripper = strings.NewReplacer(
		// bullets
		"•", "", "●", "", "○", "", "◦", "", "▪", "", "▫", "", "■", "", "□", "", "‣", "", "⁃", "",
		// box drawing
		"─", "", "━", "", "│", "", "┃", "", "┌", "", "┐", "", "└", "", "┘", "",
		"├", "", "┤", "", "┬", "", "┴", "", "┼", "",
	)
)

// Clean collapses blank-line and space runs, strips code fragments, bullet
// and box-drawing glyphs, and trims every line and the whole text.
//
// A single pass can expose new runs (removing an inline span between two
// spaces, say), so the passes are repeated until the text is stable. Every
// pass after the first either leaves the text alone or shortens it, which
// bounds the loop and makes Clean idempotent.
func Clean(text string) string {
	if text == "" {
		return ""
	}
	for {
		next := cleanOnce(text)
		if next == text {
			return next
		}
		text = next
	}
}

func cleanOnce(text string) string {
	text = reNewlineRun3.ReplaceAllString(text, "\n\n")
	text = strings.ReplaceAll(text, "\t", " ")
	text = reSpaceRun3.ReplaceAllString(text, " ")
	text = reFencedCode.ReplaceAllString(text, "")
	text = reInlineCode.ReplaceAllString(text, "")
	text = glyphStripper.Replace(text)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")

	text = reNewlineRun2.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
