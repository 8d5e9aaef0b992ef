package service

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// blockSelector matches elements whose text is set apart by spaces so that
// adjacent paragraphs do not run together.
const blockSelector = "p,div,br,li,ul,ol,h1,h2,h3,h4,h5,h6,blockquote,pre,tr,td,th"

// PlainText extracts the visible text of an HTML fragment with runs of
// whitespace collapsed to single spaces.
func PlainText(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.Join(strings.Fields(fragment), " ")
	}

	doc.Find("script,style,noscript").Remove()
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		s.BeforeNodes(space()).AfterNodes(space())
	})
	return strings.Join(strings.Fields(doc.Text()), " ")
}

func space() *html.Node {
	return &html.Node{Type: html.TextNode, Data: " "}
}

// Excerpt returns the plain text of an HTML fragment cut to at most max
// runes, with an ellipsis appended when truncated.
func Excerpt(fragment string, max int) string {
	text := PlainText(fragment)
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return strings.TrimRight(string(runes[:max]), " ") + "…"
}
