package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dyatlov/go-opengraph/opengraph"
)

const (
	blockSelector = "h1, h2, h3, h4, h5, h6, p, li, pre, blockquote"
	noiseSelector = "script, style, noscript, template, svg, iframe, nav, footer, aside, form, header, button"
)

// Readability picks the container that looks most like an article body and
// returns its block-level text, one block per paragraph. The title comes from
// og:title, then <title>, then the first <h1>.
type Readability struct {
	// MinBlockChars drops blocks shorter than this many characters, except
	// headings. Zero keeps everything.
	MinBlockChars int
}

func (r Readability) Extract(input []byte) (Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(input))
	if err != nil {
		return Document{}, fmt.Errorf("parse html: %w", err)
	}
	title := pageTitle(input, doc)

	doc.Find(noiseSelector).Remove()
	doc.Find("*").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return isBoilerplateContainer(s.Get(0))
	}).Remove()

	root := bestContainer(doc)
	text := r.collectBlocks(root)
	if text == "" {
		// Pages without block markup (bare text in divs) still carry content.
		text = normalizeWhitespace(root.Text())
	}
	return Document{Title: title, Text: text}, nil
}

func pageTitle(input []byte, doc *goquery.Document) string {
	og := opengraph.NewOpenGraph()
	if err := og.ProcessHTML(bytes.NewReader(input)); err == nil {
		if t := strings.TrimSpace(og.Title); t != "" {
			return t
		}
	}
	if t := strings.TrimSpace(doc.Find("head title").First().Text()); t != "" {
		return t
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}

// bestContainer prefers explicit article markup and otherwise scores every
// div/section by paragraph text, discounted by link density.
func bestContainer(doc *goquery.Document) *goquery.Selection {
	for _, sel := range []string{"article", "main", "[role=main]", "[itemprop=articleBody]"} {
		if s := doc.Find(sel).First(); s.Length() > 0 && textLen(s.Find("p")) > 0 {
			return s
		}
	}

	var best *goquery.Selection
	bestScore := 0.0
	doc.Find("div, section").Each(func(_ int, s *goquery.Selection) {
		paras := s.ChildrenFiltered("p")
		if paras.Length() == 0 {
			return
		}
		score := float64(textLen(paras)) * (1 - linkDensity(s))
		if score > bestScore {
			best, bestScore = s, score
		}
	})
	if best != nil {
		return best
	}
	return doc.Find("body").First()
}

func (r Readability) collectBlocks(root *goquery.Selection) string {
	blocks := make([]string, 0, 32)
	root.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		// Nested blocks (a <p> inside an <li>) are emitted by their outermost block.
		if s.ParentsUntilSelection(root).Filter(blockSelector).Length() > 0 {
			return
		}
		var text string
		if goquery.NodeName(s) == "pre" {
			text = strings.TrimSpace(s.Text())
		} else {
			text = strings.Join(strings.Fields(s.Text()), " ")
		}
		if text == "" {
			return
		}
		if r.MinBlockChars > 0 && !isHeading(s) && len([]rune(text)) < r.MinBlockChars {
			return
		}
		blocks = append(blocks, text)
	})
	return strings.Join(blocks, "\n\n")
}

func isHeading(s *goquery.Selection) bool {
	switch goquery.NodeName(s) {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

func textLen(s *goquery.Selection) int {
	return len(strings.TrimSpace(s.Text()))
}

func linkDensity(s *goquery.Selection) float64 {
	total := textLen(s)
	if total == 0 {
		return 0
	}
	links := textLen(s.Find("a"))
	d := float64(links) / float64(total)
	if d > 1 {
		return 1
	}
	return d
}
