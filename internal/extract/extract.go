package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	// ErrUnsupportedType is returned when the payload is neither a PDF nor a DOCX file.
	ErrUnsupportedType = errors.New("unsupported document type")

	// ErrUnparseable is returned when a document of a supported type cannot be read.
	ErrUnparseable = errors.New("unparseable document")
)

// Result is the text pulled out of a document.
type Result struct {
	Text     string
	Pages    int
	MimeType string
}

// FromBytes sniffs the payload and extracts its text.
// PDF text is the per-page plain text concatenated in page order with no separator.
// Libraries used: github.com/ledongthuc/pdf (PDF) and github.com/nguyenthenguyen/docx (DOCX).
func FromBytes(ctx context.Context, data []byte) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	mime := DetectMime(data)
	switch mime {
	case MimePDF:
		return extractPDF(ctx, data)
	case MimeDOCX:
		return extractDOCX(data)
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedType, mime)
	}
}

// FromReader reads r fully and extracts its text.
func FromReader(ctx context.Context, r io.Reader) (Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Result{}, fmt.Errorf("read upload: %w", err)
	}
	return FromBytes(ctx, data)
}

// DetectMime returns the sniffed MIME type without parameters.
func DetectMime(data []byte) string {
	detected := mimetype.Detect(data)
	for m := detected; m != nil; m = m.Parent() {
		switch {
		case m.Is(MimePDF):
			return MimePDF
		case m.Is(MimeDOCX):
			return MimeDOCX
		}
	}
	if detected.Is("application/zip") && hasDocxBody(data) {
		return MimeDOCX
	}
	return strings.TrimSpace(strings.Split(detected.String(), ";")[0])
}

func extractPDF(ctx context.Context, data []byte) (res Result, err error) {
	// The pdf package panics on some malformed object graphs.
	defer func() {
		if rec := recover(); rec != nil {
			res = Result{}
			err = fmt.Errorf("%w: %v", ErrUnparseable, rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}

	var text strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return Result{}, fmt.Errorf("%w: page %d: %v", ErrUnparseable, i, err)
		}
		text.WriteString(pageContent(pageText))
	}

	return Result{Text: text.String(), Pages: numPages, MimeType: MimePDF}, nil
}

// pageContent drops the newlines GetPlainText emits ahead of the page's first
// text object. Newlines between later text objects are kept as word breaks.
// A page with nothing but whitespace contributes nothing.
func pageContent(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	return strings.TrimLeft(raw, "\n")
}

func extractDOCX(data []byte) (Result, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	defer doc.Close()

	return Result{
		Text:     stripDocxXML(doc.Editable().GetContent()),
		Pages:    1,
		MimeType: MimeDOCX,
	}, nil
}

// stripDocxXML keeps character data and turns paragraph and break ends into newlines.
func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.EndElement:
			if (t.Name.Local == "p" || t.Name.Local == "br") && buf.Len() > 0 {
				buf.WriteString("\n")
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

func hasDocxBody(data []byte) bool {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return false
	}
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			return true
		}
	}
	return false
}
