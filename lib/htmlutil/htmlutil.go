package htmlutil

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// JoinedText collects the text nodes under a selection, trims each one
// and joins the non-empty pieces with the given separator. <br> tags
// also act as piece boundaries so markup line breaks survive.
func JoinedText(sel *goquery.Selection, sep string) string {
	var pieces []string
	for _, node := range sel.Nodes {
		collectPieces(node, &pieces)
	}
	return strings.Join(pieces, sep)
}

func collectPieces(node *html.Node, pieces *[]string) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		text := strings.TrimSpace(node.Data)
		if text != "" {
			*pieces = append(*pieces, text)
		}
		return
	}
	child := node.FirstChild
	for child != nil {
		collectPieces(child, pieces)
		child = child.NextSibling
	}
}
