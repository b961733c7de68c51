package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// ErrUnsupportedType is returned for documents that are neither PDF nor DOCX.
var ErrUnsupportedType = errors.New("unsupported document type")

// Text extracts plain text from an in-memory resume document.
func Text(ctx context.Context, data []byte, mimeType string, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", errors.New("empty document")
	}
	switch normalizeMimeType(mimeType, fileName) {
	case mimePDF:
		return extractPDF(data)
	case mimeDOCX:
		return extractDOCX(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	doc, err := docx.ReadDocxFromMemory(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}
	defer doc.Close()
	return stripDocxXML(doc.Editable().GetContent()), nil
}

// stripDocxXML flattens word/document.xml markup into paragraph-separated text.
func stripDocxXML(raw string) string {
	raw = strings.ReplaceAll(raw, "</w:p>", "\n")
	raw = strings.ReplaceAll(raw, "<w:br/>", "\n")
	var buf strings.Builder
	inTag := false
	for _, r := range raw {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			buf.WriteRune(r)
		}
	}
	return strings.TrimSpace(buf.String())
}

func normalizeMimeType(mimeType string, fileName string) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	if clean == mimePDF || clean == mimeDOCX {
		return clean
	}

	// Browsers and object stores often report OOXML as zip or octet-stream.
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return mimePDF
	case ".docx":
		return mimeDOCX
	default:
		return clean
	}
}
