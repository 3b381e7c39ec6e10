package docext

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Content type classifications for AnalyzePDF.
const (
	ContentTypeText    = "text"
	ContentTypeScanned = "scanned_images"
	ContentTypeMixed   = "mixed"
	ContentTypeNone    = "no_content"
)

// maxTextSize caps the amount of text extracted from a single document.
const maxTextSize = 10 * 1024 * 1024

// minMeaningfulTextLength is the threshold below which extracted text is
// treated as OCR noise rather than real content.
const minMeaningfulTextLength = 50

// PDFInfo describes the content makeup of a PDF file.
type PDFInfo struct {
	Pages       int
	ContentType string
	HasImages   bool
	ImageCount  int
	TextLength  int
}

// ExtractPDFText extracts plain text from every page of a PDF. Pages that
// fail to decode are skipped; the result is the surviving pages joined with
// newlines, cleaned via CleanText.
func ExtractPDFText(path string) (string, error) {
	return ExtractPDFPages(path, 0)
}

// ExtractPDFPages extracts text from at most maxPages pages (0 means all).
// Used for prior-art documents where only the opening pages matter.
func ExtractPDFPages(path string, maxPages int) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	text, err := extractTextContent(reader, maxPages)
	if err != nil {
		return "", err
	}
	return CleanText(text), nil
}

func extractTextContent(reader *pdf.Reader, maxPages int) (string, error) {
	var builder strings.Builder
	totalLength := 0

	numPages := reader.NumPage()
	if maxPages > 0 && maxPages < numPages {
		numPages = maxPages
	}

	for pageNum := 1; pageNum <= numPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			// Continue with other pages even if one fails
			continue
		}

		if totalLength+len(content) > maxTextSize {
			remaining := maxTextSize - totalLength
			if remaining > 0 {
				builder.WriteString(content[:remaining])
			}
			break
		}

		builder.WriteString(content)
		builder.WriteString("\n")
		totalLength += len(content) + 1
	}

	text := builder.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content could be extracted from PDF")
	}

	return text, nil
}

// AnalyzePDF classifies a PDF's content as text, scanned_images, mixed, or
// no_content based on extracted text length and an XObject image scan.
func AnalyzePDF(path string) (*PDFInfo, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	text, _ := extractTextContent(reader, 0)
	cleanLen := len(strings.TrimSpace(text))
	hasImages, imageCount := detectImages(reader)

	info := &PDFInfo{
		Pages:      reader.NumPage(),
		HasImages:  hasImages,
		ImageCount: imageCount,
		TextLength: cleanLen,
	}

	switch {
	case cleanLen < minMeaningfulTextLength && hasImages:
		info.ContentType = ContentTypeScanned
	case cleanLen < minMeaningfulTextLength:
		info.ContentType = ContentTypeNone
	case hasImages:
		info.ContentType = ContentTypeMixed
	default:
		info.ContentType = ContentTypeText
	}

	return info, nil
}

// detectImages scans every page's XObject dictionary for image objects.
func detectImages(reader *pdf.Reader) (bool, int) {
	imageCount := 0
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		imageCount += countImagesOnPage(reader, pageNum)
	}
	return imageCount > 0, imageCount
}

func countImagesOnPage(reader *pdf.Reader, pageNum int) (count int) {
	defer func() {
		// Malformed resource dictionaries can panic inside the library.
		if recover() != nil {
			count = 0
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return 0
	}

	resources := page.V.Key("Resources")
	if resources.IsNull() {
		return 0
	}

	xObjects := resources.Key("XObject")
	if xObjects.IsNull() || xObjects.Kind() != pdf.Dict {
		return 0
	}

	for _, key := range xObjects.Keys() {
		obj := xObjects.Key(key)
		if obj.IsNull() {
			continue
		}
		subtype := obj.Key("Subtype")
		if subtype.IsNull() || subtype.Name() != "Image" {
			continue
		}
		count++
	}

	return count
}
