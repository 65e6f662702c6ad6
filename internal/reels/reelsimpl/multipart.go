package reelsimpl

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"strings"

	"github.com/orgball2608/reels-client/internal/reels"
)

type form struct {
	buf    *bytes.Buffer
	writer *multipart.Writer
}

func newForm() *form {
	buf := &bytes.Buffer{}
	return &form{buf: buf, writer: multipart.NewWriter(buf)}
}

func (f *form) field(name, value string) error {
	return f.writer.WriteField(name, value)
}

// file streams a local file into a part, keeping the caller's content type
// (CreateFormFile would force application/octet-stream).
func (f *form) file(name string, a reels.Attachment) error {
	src, err := os.Open(a.Path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", a.Path, err)
	}
	defer src.Close()

	contentType := a.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(name), escapeQuotes(a.FileName)))
	h.Set("Content-Type", contentType)

	part, err := f.writer.CreatePart(h)
	if err != nil {
		return fmt.Errorf("failed to create part %s: %w", name, err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("failed to copy %s: %w", a.Path, err)
	}
	return nil
}

func (f *form) close() (io.Reader, string, error) {
	if err := f.writer.Close(); err != nil {
		return nil, "", err
	}
	return f.buf, f.writer.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
