package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"testing"

	"resume-parser/internal/extract/extracttest"
)

func TestFromBytesConcatenatesPagesWithoutSeparator(t *testing.T) {
	data := extracttest.PDF("Jane Doe studied at Springfield University.", " Skills: Python.", "Page three")

	res, err := FromBytes(context.Background(), data)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	want := "Jane Doe studied at Springfield University. Skills: Python.Page three"
	if res.Text != want {
		t.Fatalf("text mismatch:\n got %q\nwant %q", res.Text, want)
	}
	if res.Pages != 3 {
		t.Fatalf("expected 3 pages, got %d", res.Pages)
	}
	if res.MimeType != MimePDF {
		t.Fatalf("expected %s, got %s", MimePDF, res.MimeType)
	}
}

func TestFromBytesEmptyPDF(t *testing.T) {
	res, err := FromBytes(context.Background(), extracttest.PDF(""))
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if res.Text != "" {
		t.Fatalf("expected empty text, got %q", res.Text)
	}
	if res.Pages != 1 {
		t.Fatalf("expected 1 page, got %d", res.Pages)
	}
}

func TestFromBytesSkipsLeadingTextObjectBreaks(t *testing.T) {
	data := extracttest.PDFStreams(
		"BT ET "+extracttest.TextObject("Jane Doe")+" "+extracttest.TextObject("Springfield College"),
		"BT ET BT ET",
	)

	res, err := FromBytes(context.Background(), data)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if res.Text != "Jane Doe\nSpringfield College" {
		t.Fatalf("unexpected text %q", res.Text)
	}
}

func TestPageContent(t *testing.T) {
	cases := map[string]string{
		"":               "",
		"\n":             "",
		"\n \n\t":        "",
		"\nhello":        "hello",
		"\n\n hello":     " hello",
		"\nhello\nworld": "hello\nworld",
	}
	for raw, want := range cases {
		if got := pageContent(raw); got != want {
			t.Errorf("pageContent(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestFromBytesEscapedCharacters(t *testing.T) {
	res, err := FromBytes(context.Background(), extracttest.PDF(`C (language) \ Go`))
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if res.Text != `C (language) \ Go` {
		t.Fatalf("unexpected text %q", res.Text)
	}
}

func TestFromBytesRejectsNonPDF(t *testing.T) {
	_, err := FromBytes(context.Background(), []byte("just some plain text, not a resume pdf"))
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestFromBytesCorruptPDF(t *testing.T) {
	_, err := FromBytes(context.Background(), []byte("%PDF-1.4\nthis is not really a pdf body\n"))
	if !errors.Is(err, ErrUnparseable) {
		t.Fatalf("expected ErrUnparseable, got %v", err)
	}
}

func TestFromBytesHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := FromBytes(ctx, extracttest.PDF("text"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDetectMimeZipWithoutDocumentIsNotDocx(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	if got := DetectMime(buf.Bytes()); got == MimeDOCX || got == MimePDF {
		t.Fatalf("plain zip detected as %s", got)
	}
	if _, err := FromBytes(context.Background(), buf.Bytes()); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestStripDocxXML(t *testing.T) {
	raw := `<w:document xmlns:w="w"><w:body><w:p><w:r><w:t>Springfield College</w:t></w:r></w:p><w:p><w:r><w:t>Go</w:t></w:r></w:p></w:body></w:document>`
	if got := stripDocxXML(raw); got != "Springfield College\nGo" {
		t.Fatalf("unexpected text %q", got)
	}
}
