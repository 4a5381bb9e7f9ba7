package s3

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type fakeS3 struct {
	put     *s3.PutObjectInput
	body    []byte
	deleted string
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.put = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(string(f.body)))}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = aws.ToString(in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "ns/cv.pdf", want: "ns/cv.pdf"},
		{name: "prefix trailing slash", prefix: "attachments/", key: "ns/cv.pdf", want: "attachments/ns/cv.pdf"},
		{name: "prefix and key slashes", prefix: "/attachments/", key: "/ns/cv.pdf", want: "attachments/ns/cv.pdf"},
		{name: "empty key", prefix: "attachments", key: "", want: "attachments"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

func TestPutUsesPrefixAndEncryption(t *testing.T) {
	fake := &fakeS3{}
	store := newWithClient(fake, "bucket", "/attachments/", "kms-key")

	obj, err := store.Put(context.Background(), "job-1/user-1", "notes.txt", strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if obj.Size != 5 || string(fake.body) != "hello" {
		t.Fatalf("unexpected upload size=%d body=%q", obj.Size, fake.body)
	}
	if got := aws.ToString(fake.put.Key); got != "attachments/"+obj.Key {
		t.Fatalf("object key = %q, stored key = %q", got, obj.Key)
	}
	if fake.put.ServerSideEncryption != s3types.ServerSideEncryptionAwsKms || aws.ToString(fake.put.SSEKMSKeyId) != "kms-key" {
		t.Fatalf("expected kms encryption, got %v", fake.put.ServerSideEncryption)
	}
	if !strings.HasPrefix(obj.ContentType, "text/plain") {
		t.Fatalf("content type = %q", obj.ContentType)
	}

	if err := store.Delete(context.Background(), obj.Key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if fake.deleted != "attachments/"+obj.Key {
		t.Fatalf("deleted %q", fake.deleted)
	}
}
