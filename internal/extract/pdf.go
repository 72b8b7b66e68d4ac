package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF concatenates all text runs across all pages in document order,
// space-joined. Positional metadata is discarded; only the text matters
// downstream.
func extractPDF(fileBytes []byte) (text string, err error) {
	// The pdf package panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = newError(KindMalformedDocument, fmt.Errorf("pdf parser panic: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(fileBytes), int64(len(fileBytes)))
	if err != nil {
		return "", newError(KindMalformedDocument, err)
	}

	var runs []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", newError(KindMalformedDocument, fmt.Errorf("page %d: %w", i, err))
		}
		for _, row := range rows {
			for _, word := range row.Content {
				if s := strings.TrimSpace(word.S); s != "" {
					runs = append(runs, s)
				}
			}
		}
	}

	return strings.Join(runs, " "), nil
}
