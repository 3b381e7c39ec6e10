package docext

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// DOCX XML structures (simplified)
type docxDocument struct {
	XMLName xml.Name `xml:"document"`
	Body    docxBody `xml:"body"`
}

type docxBody struct {
	XMLName xml.Name    `xml:"body"`
	Paras   []docxPara  `xml:"p"`
	Tables  []docxTable `xml:"tbl"`
}

type docxPara struct {
	XMLName xml.Name  `xml:"p"`
	Runs    []docxRun `xml:"r"`
}

type docxRun struct {
	Text []docxText `xml:"t"`
}

type docxText struct {
	Content string `xml:",chardata"`
}

type docxTable struct {
	Rows []docxRow `xml:"tr"`
}

type docxRow struct {
	Cells []docxCell `xml:"tc"`
}

type docxCell struct {
	Paras []docxPara `xml:"p"`
}

// ExtractDOCXText reads paragraph text, then table-cell text, from
// word/document.xml. One line per paragraph, table rows rendered as
// tab-joined cell text, cleaned via CleanText.
func ExtractDOCXText(path string) (string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("opening DOCX: %w", err)
	}
	defer r.Close()

	var docFile *zip.File
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", fmt.Errorf("word/document.xml not found in DOCX")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", fmt.Errorf("opening document.xml: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}

	var doc docxDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("parsing DOCX XML: %w", err)
	}

	var b strings.Builder
	for _, para := range doc.Body.Paras {
		b.WriteString(paraText(para))
		b.WriteString("\n")
	}

	for _, tbl := range doc.Body.Tables {
		for _, row := range tbl.Rows {
			cells := make([]string, 0, len(row.Cells))
			for _, cell := range row.Cells {
				var cellText strings.Builder
				for _, p := range cell.Paras {
					if cellText.Len() > 0 {
						cellText.WriteString(" ")
					}
					cellText.WriteString(paraText(p))
				}
				cells = append(cells, cellText.String())
			}
			b.WriteString(strings.Join(cells, "\t"))
			b.WriteString("\n")
		}
	}

	text := CleanText(b.String())
	if text == "" {
		return "", fmt.Errorf("no text content could be extracted from DOCX")
	}
	return text, nil
}

func paraText(para docxPara) string {
	var b strings.Builder
	for _, run := range para.Runs {
		for _, t := range run.Text {
			b.WriteString(t.Content)
		}
	}
	return b.String()
}
