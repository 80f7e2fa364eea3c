package filesystem

import (
	"mime"

	"github.com/gabriel-vasile/mimetype"
)

// MIMETable implements stacks.MIMETypes with the process-wide table of the
// mime package, which is loaded once from the system mime.types files.
type MIMETable struct{}

// NewMIMETable creates a new MIMETable.
func NewMIMETable() *MIMETable {
	return &MIMETable{}
}

// TypeByExtension returns the content type for ext, or "" when unknown.
func (t *MIMETable) TypeByExtension(ext string) string {
	if ext == "" {
		return ""
	}
	return mime.TypeByExtension(ext)
}

// Sniff detects the content type from the leading bytes of content.
func (t *MIMETable) Sniff(content []byte) string {
	return mimetype.Detect(content).String()
}
