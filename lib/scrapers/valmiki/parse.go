package valmiki

import (
	"bytes"
	"regexp"
	"strings"

	"valmiki-backend/lib/htmlutil"
	"valmiki-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

// Sloka is one parsed verse of a sarga. records are immutable once
// parsed, anything derived from them is recomputable.
type Sloka struct {
	// 1-based ordinal within the sarga
	Index int
	// canonical "kanda.sarga.index" number, empty when the page did
	// not carry a readable number marker (soft data-quality defect,
	// prefix validation downstream catches real mismatches)
	Number string
	// verse text as a multi-line stanza in source line order
	Text string
	// word-by-word meanings (pratipadaartham)
	Gloss map[string]string
	// prose translation (bhaavam), raw and untruncated
	Translation string
}

// the sloka number sits between double-danda markers, e.g. ৷৷1.1.1৷৷
var slokaNumRegex = regexp.MustCompile(`৷৷([\d.]+)৷৷`)
var slokaNumMarkerRegex = regexp.MustCompile(`\s*৷৷[\d.]+৷৷\s*`)

// ParseSarga extracts the verses out of one sarga page in document
// order. a page with no verse rows yields an empty slice and no error,
// the caller decides whether that means "sarga does not exist".
func ParseSarga(rawHtml []byte) ([]Sloka, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(rawHtml))
	if err != nil {
		return nil, err
	}

	var slokas []Sloka
	doc.Find(".views-row").Each(func(i int, row *goquery.Selection) {
		slokas = append(slokas, extractSloka(i+1, row))
	})
	return slokas, nil
}

func extractSloka(index int, row *goquery.Selection) Sloka {
	body := row.Find(".views-field-body .field-content")
	gloss := row.Find(".views-field-field-htetrans .field-content")
	explanation := row.Find(".views-field-field-explanation .field-content")

	number, text := parseBody(htmlutil.JoinedText(body, "\n"))

	return Sloka{
		Index:       index,
		Number:      number,
		Text:        text,
		Gloss:       parseGloss(selectionText(gloss)),
		Translation: textutil.CollapseWhitespace(selectionText(explanation)),
	}
}

// the gloss and translation sections are whitespace-tokenized later,
// so their raw subtree text is enough. the body keeps JoinedText since
// its line structure matters.
func selectionText(sel *goquery.Selection) string {
	var sb strings.Builder
	for _, node := range sel.Nodes {
		sb.WriteString(htmlutil.GetText(node))
	}
	return sb.String()
}

// parseBody splits the body section into the canonical sloka number and
// the verse stanza. lines that are bracketed metadata or nothing but
// punctuation are dropped, the rest keep their source order.
func parseBody(bodyText string) (number, text string) {
	var verseLines []string
	for _, line := range strings.Split(bodyText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if number == "" {
			groups := slokaNumRegex.FindStringSubmatch(line)
			if len(groups) == 2 {
				number = groups[1]
			}
		}

		if strings.HasPrefix(line, "[") {
			continue
		}
		stripped := slokaNumMarkerRegex.ReplaceAllString(line, "")
		if !hasVerseContent(stripped) {
			continue
		}
		verseLines = append(verseLines, strings.TrimSpace(stripped))
	}
	return number, strings.Join(verseLines, "\n")
}

func hasVerseContent(line string) bool {
	for _, c := range line {
		switch c {
		case ' ', '.', ',', '।', '৷':
		default:
			return true
		}
	}
	return false
}

// parseGloss walks the word-gloss stream as a small state machine: a
// token opens a pair, the following text is its meaning, a comma closes
// the pair. tokens that are nothing but Latin letters are fragments of
// English annotation leaking into the stream and are dropped. this is a
// best-effort heuristic, a missed pair is acceptable, corrupting verse
// text is not.
func parseGloss(glossText string) map[string]string {
	gloss := map[string]string{}

	var token string
	var meaning []string
	flush := func() {
		if token != "" && len(meaning) > 0 && !isLatinOnly(token) {
			gloss[token] = strings.TrimRight(strings.Join(meaning, " "), " ,")
		}
		token = ""
		meaning = nil
	}

	for _, field := range strings.Fields(glossText) {
		closes := strings.HasSuffix(field, ",")
		field = strings.TrimSuffix(field, ",")
		if field != "" {
			if token == "" {
				token = field
			} else {
				meaning = append(meaning, field)
			}
		}
		if closes {
			flush()
		}
	}
	flush()

	return gloss
}

func isLatinOnly(token string) bool {
	for _, c := range token {
		if !(c >= 'a' && c <= 'z') && !(c >= 'A' && c <= 'Z') {
			return false
		}
	}
	return len(token) > 0
}
