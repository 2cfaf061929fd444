package html_parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// minBlockLength is the noise floor for generic block containers: anything
// shorter is ignored by the longest-block layer.
const minBlockLength = 120

// DefaultMaxParagraphs caps extraction when the caller passes no limit.
const DefaultMaxParagraphs = 40

// publisherSelectors cover a known publisher's markup conventions: the
// text-block container attribute first, then its rich-text class family.
var publisherSelectors = []string{
	`[data-component="text-block"]`,
	`div[class*="ssrcss"][class*="RichText"], div[class*="ssrcss"][class*="Text"]`,
}

// semanticSelectors are generic main-content containers, tried after the
// publisher-specific ones.
var semanticSelectors = []string{"article", "main", "[role='main']"}

// ExtractArticleText returns the best-effort main-article text from a full
// HTML document, or the empty string when nothing usable is found. The
// heuristic is layered; each layer runs only when the previous one produced
// nothing. Malformed markup never raises: a layer that cannot parse is
// skipped.
func ExtractArticleText(rawHTML string, maxParagraphs int) string {
	if maxParagraphs <= 0 {
		maxParagraphs = DefaultMaxParagraphs
	}
	if strings.TrimSpace(rawHTML) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}

	// Layer 1: publisher-specific selectors.
	for _, sel := range publisherSelectors {
		if text := joinParagraphs(collectParagraphs(doc.Find(sel), maxParagraphs)); text != "" {
			return text
		}
	}

	// Layer 2: semantic containers; the one with the longest text wins.
	container := longestOf(doc, semanticSelectors, 1)

	// Layer 3: longest generic block above the noise floor.
	if container == nil {
		container = longestOf(doc, []string{"div", "section"}, minBlockLength)
	}

	// Layer 4: extract from the winning container; prefer its paragraphs,
	// fall back to its non-empty lines when it has no paragraph structure.
	if container != nil {
		if text := joinParagraphs(collectParagraphs(container, maxParagraphs)); text != "" {
			return text
		}
		// The line cap compensates for the missing paragraph structure.
		if lines := nonEmptyLines(container.Text(), maxParagraphs*5/2); len(lines) > 0 {
			return strings.Join(lines, "\n\n")
		}
	}

	// Layer 5: no container at all; take the document's first paragraphs.
	return joinParagraphs(collectParagraphs(doc.Selection, maxParagraphs))
}

// collectParagraphs gathers trimmed <p> texts under sel, capped at limit.
// When sel contains no <p> descendants, the matched elements' own text is
// used, one paragraph per match.
func collectParagraphs(sel *goquery.Selection, limit int) []string {
	var paragraphs []string
	sel.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		if t := strings.TrimSpace(p.Text()); t != "" {
			paragraphs = append(paragraphs, t)
		}
		return len(paragraphs) < limit
	})
	if len(paragraphs) > 0 {
		return paragraphs
	}
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.Is("p") || s.Children().Length() == 0 {
			if t := strings.TrimSpace(s.Text()); t != "" {
				paragraphs = append(paragraphs, t)
			}
		}
		return len(paragraphs) < limit
	})
	return paragraphs
}

func joinParagraphs(paragraphs []string) string {
	return strings.Join(paragraphs, "\n\n")
}

// longestOf returns the single matched element with the longest trimmed text
// of at least minLen characters, or nil when nothing qualifies.
func longestOf(doc *goquery.Document, selectors []string, minLen int) *goquery.Selection {
	var winner *goquery.Selection
	longest := minLen - 1
	for _, sel := range selectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			if l := len(strings.TrimSpace(s.Text())); l > longest {
				winner, longest = s, l
			}
		})
	}
	return winner
}

func nonEmptyLines(text string, limit int) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			lines = append(lines, t)
			if len(lines) >= limit {
				break
			}
		}
	}
	return lines
}
