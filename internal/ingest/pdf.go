// ABOUTME: PDF text extraction for uploaded documents
package ingest

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// extractPDFText extracts the plain text of every page in order
func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("reading PDF text: %w", err)
	}

	var sb bytes.Buffer
	if _, err := io.Copy(&sb, plain); err != nil {
		return "", fmt.Errorf("reading PDF text: %w", err)
	}
	return sb.String(), nil
}
