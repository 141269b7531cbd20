// Package extractor turns uploaded CV files into plain text.
package extractor

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"

	"github.com/mu7ammad-3li/cv-lize/internal/models"
)

// Extractor extracts plain text from one upload format.
type Extractor interface {
	Extract(content []byte) (string, error)
}

// Factory hands out the extractor matching a declared file type.
type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) ForType(ft models.FileType) (Extractor, error) {
	switch ft {
	case models.FilePDF:
		return &PDFExtractor{}, nil
	case models.FileMarkdown, models.FileText:
		return &TextExtractor{}, nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ft)
	}
}

// DetectFileType determines the upload format from the filename extension
// and cross-checks it against the content's magic bytes. A .txt or .md file
// that is actually a known binary format (image, archive, executable) is
// rejected outright; PDFs are left to the security scanner, which performs
// its own signature check.
func DetectFileType(filename string, content []byte) (models.FileType, error) {
	var ft models.FileType
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		ft = models.FilePDF
	case ".md", ".markdown":
		ft = models.FileMarkdown
	case ".txt":
		ft = models.FileText
	default:
		return "", fmt.Errorf("unsupported file type: %s", filename)
	}

	if ft == models.FilePDF {
		return ft, nil
	}

	if kind, _ := filetype.Match(content); kind != filetype.Unknown {
		return "", fmt.Errorf("file %s declares %s but contains %s content", filename, ft, kind.MIME.Value)
	}
	return ft, nil
}
