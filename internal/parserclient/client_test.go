package parserclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseUploadsResumeField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/parse-resume" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		file, header, err := r.FormFile("resume")
		if err != nil {
			t.Errorf("missing resume field: %v", err)
			http.Error(w, "bad", http.StatusBadRequest)
			return
		}
		defer file.Close()
		body, _ := io.ReadAll(file)
		if header.Filename != "cv.pdf" || string(body) != "%PDF-fake" {
			t.Errorf("unexpected upload %q %q", header.Filename, body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"skills":["Go"],"education":["Springfield University"],"raw_text":"Go"}`))
	}))
	defer srv.Close()

	client, err := New(srv.URL+"/", 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := client.Parse(context.Background(), "cv.pdf", strings.NewReader("%PDF-fake"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(res.Skills) != 1 || res.Skills[0] != "Go" || len(res.Education) != 1 || res.RawText != "Go" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestParseReturnsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":{"code":"unparseable_pdf","message":"file is not a readable PDF"}}`))
	}))
	defer srv.Close()

	client, _ := New(srv.URL, 0)
	_, err := client.Parse(context.Background(), "cv.txt", strings.NewReader("hello"))
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusUnprocessableEntity || apiErr.Code != "unparseable_pdf" {
		t.Fatalf("unexpected error %+v", apiErr)
	}
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := New("  ", 0); err == nil {
		t.Fatalf("expected error")
	}
}
