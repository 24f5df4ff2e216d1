// Package documents extracts plain text from resume and job description files.
package documents

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/spigell/skill-gap/internal/utils"
)

// ErrEmpty is returned when a document holds no text.
var ErrEmpty = errors.New("document has no text")

// ReadText returns the text of the file at path. The format is picked by
// extension: pdf, docx, html and everything else as plain text.
func ReadText(path string) (string, error) {
	var (
		text string
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, err = readPDF(path)
	case ".docx":
		text, err = readDocx(path)
	case ".html", ".htm":
		var data []byte
		data, err = os.ReadFile(path)
		if err == nil {
			text, err = HTMLText(string(data))
		}
	default:
		var data []byte
		data, err = os.ReadFile(path)
		text = string(data)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	text = CleanText(text)
	if text == "" {
		return "", fmt.Errorf("%s: %w", path, ErrEmpty)
	}
	return text, nil
}

// CleanText collapses whitespace inside every line and drops blank lines.
// Line breaks are kept since skill cues are matched per line.
func CleanText(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = utils.CollapseWhitespace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}

// HTMLText returns the visible text of an HTML fragment or page. Block
// elements end with a line break.
func HTMLText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing html: %w", err)
	}

	doc.Find("script, style, noscript").Remove()
	doc.Find("p, div, li, br, tr, h1, h2, h3, h4, h5, h6, ul, ol, section, article").AfterHtml("\n")

	return CleanText(doc.Text()), nil
}

func readPDF(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}

func readDocx(path string) (string, error) {
	doc, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = strings.NewReplacer("</w:p>", "</w:p>\n", "<w:tab/>", " ", "<w:br/>", "\n").Replace(content)

	// document.xml is parsed leniently as html; only its text nodes matter.
	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("parsing document.xml: %w", err)
	}
	return parsed.Text(), nil
}
