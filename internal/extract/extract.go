// Package extract detects resume media types and pulls plain text out of PDF files locally.
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
)

// MediaTypePDF is the only media type accepted for upload.
const MediaTypePDF = "application/pdf"

// ErrEmptyFile is returned when there are no bytes to inspect.
var ErrEmptyFile = errors.New("empty file")

// DetectMediaType sniffs the media type of data. When the content is inconclusive the
// file extension is consulted. Parameters such as charset are dropped.
func DetectMediaType(data []byte, fileName string) string {
	if len(data) > 0 {
		detected := mimetype.Detect(data)
		if !detected.Is("application/octet-stream") && !detected.Is("text/plain") {
			return NormalizeMediaType(detected.String())
		}
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(fileName))); byExt != "" {
		return NormalizeMediaType(byExt)
	}
	if len(data) > 0 {
		return NormalizeMediaType(mimetype.Detect(data).String())
	}
	return "application/octet-stream"
}

// NormalizeMediaType lowercases a media type and strips its parameters.
func NormalizeMediaType(mediaType string) string {
	return strings.ToLower(strings.TrimSpace(strings.Split(mediaType, ";")[0]))
}

// IsPDF reports whether data carries the PDF signature.
func IsPDF(data []byte) bool {
	return len(data) > 0 && mimetype.Detect(data).Is(MediaTypePDF)
}

// PDFText extracts the plain text of a PDF document.
func PDFText(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrEmptyFile
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return buf.String(), nil
}
