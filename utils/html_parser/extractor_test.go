package html_parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractArticleText_PublisherSelectors(t *testing.T) {
	doc := `<html><body>
		<div>navigation noise that should be ignored even if long enough to pass the noise floor threshold by itself</div>
		<div data-component="text-block"><p>First publisher paragraph.</p></div>
		<div data-component="text-block"><p>Second publisher paragraph.</p></div>
	</body></html>`

	text := ExtractArticleText(doc, 0)
	assert.Equal(t, "First publisher paragraph.\n\nSecond publisher paragraph.", text)
}

func TestExtractArticleText_SemanticBeatsLargerDiv(t *testing.T) {
	// A short <article> must win over a longer generic div: semantic
	// containers have no length floor.
	long := strings.Repeat("filler sidebar text ", 20)
	doc := `<html><body>
		<div><p>` + long + `</p></div>
		<article><p>Short article body.</p></article>
	</body></html>`

	text := ExtractArticleText(doc, 0)
	assert.Equal(t, "Short article body.", text)
}

func TestExtractArticleText_LongestDivAboveFloor(t *testing.T) {
	long := strings.Repeat("real article content here ", 10)
	doc := `<html><body>
		<div><p>short noise</p></div>
		<div id="content"><p>` + strings.TrimSpace(long) + `</p></div>
	</body></html>`

	text := ExtractArticleText(doc, 0)
	assert.Equal(t, strings.TrimSpace(long), text)
}

func TestExtractArticleText_ShortBlocksIgnored(t *testing.T) {
	// Every block is under the 120-char floor and there is no semantic
	// container, so layer 5 takes the document's paragraphs.
	doc := `<html><body>
		<div><p>tiny one</p></div>
		<div><p>tiny two</p></div>
	</body></html>`

	text := ExtractArticleText(doc, 0)
	assert.Equal(t, "tiny one\n\ntiny two", text)
}

func TestExtractArticleText_LinesWhenNoParagraphs(t *testing.T) {
	doc := `<html><body><article>
line one
<br>
line two
</article></body></html>`

	text := ExtractArticleText(doc, 0)
	assert.Contains(t, text, "line one")
	assert.Contains(t, text, "line two")
}

func TestExtractArticleText_ParagraphCap(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body><article>")
	for i := 0; i < 10; i++ {
		b.WriteString("<p>paragraph</p>")
	}
	b.WriteString("</article></body></html>")

	text := ExtractArticleText(b.String(), 3)
	assert.Equal(t, 3, len(strings.Split(text, "\n\n")))
}

func TestExtractArticleText_EmptyInputs(t *testing.T) {
	assert.Equal(t, "", ExtractArticleText("", 0))
	assert.Equal(t, "", ExtractArticleText("   \n\t", 0))
}
