package services

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

var docxParagraphEnd = regexp.MustCompile(`</w:p>`)

type DocumentParserService interface {
	ExtractText(filePath string) (string, error)
	ExtractTextWithMetaData(filePath string) (*DocumentContent, error)
}

type DocumentContent struct {
	Text      string
	PageCount int
	FilePath  string
	Format    string
}

type documentParserService struct{}

func NewDocumentParserService() DocumentParserService {
	return &documentParserService{}
}

func (p *documentParserService) ExtractText(filePath string) (string, error) {
	content, err := p.ExtractTextWithMetaData(filePath)
	if err != nil {
		return "", err
	}
	return content.Text, nil
}

func (p *documentParserService) ExtractTextWithMetaData(filePath string) (*DocumentContent, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", filePath)
	}

	var (
		content *DocumentContent
		err     error
	)
	switch ext := strings.ToLower(filepath.Ext(filePath)); ext {
	case ".pdf":
		content, err = extractPDF(filePath)
	case ".docx":
		content, err = extractDOCX(filePath)
	case ".txt":
		content, err = extractPlain(filePath)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(content.Text) == "" {
		return nil, fmt.Errorf("no text content found in %s", content.Format)
	}
	content.FilePath = filePath
	return content, nil
}

func extractPDF(filePath string) (*DocumentContent, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Unreadable pages are skipped; the rest of the resume still counts.
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	return &DocumentContent{
		Text:      textBuilder.String(),
		PageCount: totalPage,
		Format:    "pdf",
	}, nil
}

func extractDOCX(filePath string) (*DocumentContent, error) {
	r, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer r.Close()

	raw := r.Editable().GetContent()
	raw = docxParagraphEnd.ReplaceAllString(raw, "\n\n")

	return &DocumentContent{
		Text:      CleanText(htmlTagPattern.ReplaceAllString(raw, "")),
		PageCount: 1,
		Format:    "docx",
	}, nil
}

func extractPlain(filePath string) (*DocumentContent, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read text file: %w", err)
	}
	return &DocumentContent{
		Text:      string(data),
		PageCount: 1,
		Format:    "text",
	}, nil
}

// CleanText trims every line and drops blank ones.
func CleanText(text string) string {
	text = strings.TrimSpace(text)

	lines := strings.Split(text, "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
