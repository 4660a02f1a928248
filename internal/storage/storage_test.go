package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_Put(t *testing.T) {
	root := t.TempDir()
	st, err := NewLocalStorage(root, "https://cdn.example.com/", 1)
	require.NoError(t, err)

	url, err := st.Put(context.Background(), "resumes", "../../cv.PDF", "application/pdf", 8, strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "https://cdn.example.com/resumes/"), url)
	assert.True(t, strings.HasSuffix(url, ".pdf"), url)

	key := strings.TrimPrefix(url, "https://cdn.example.com/")
	body, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(body))
}

func TestLocalStorage_PutTooLarge(t *testing.T) {
	root := t.TempDir()
	st, err := NewLocalStorage(root, "http://localhost/media", 1)
	require.NoError(t, err)

	big := strings.NewReader(strings.Repeat("x", 1024*1024+1))
	_, err = st.Put(context.Background(), "resumes", "cv.pdf", "", 0, big)
	require.Error(t, err)

	entries, _ := os.ReadDir(filepath.Join(root, "resumes"))
	assert.Empty(t, entries)
}

func TestLocalStorage_CanceledContext(t *testing.T) {
	st, err := NewLocalStorage(t.TempDir(), "http://localhost", 1)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = st.Put(ctx, "resumes", "cv.pdf", "", 1, strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

type mockS3 struct {
	mock.Mock
}

func (m *mockS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3.PutObjectOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestS3Storage_Put(t *testing.T) {
	client := new(mockS3)
	client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		body, _ := io.ReadAll(in.Body)
		return *in.Bucket == "hvac-media" &&
			strings.HasPrefix(*in.Key, "resumes/") &&
			*in.ContentType == "application/pdf" &&
			in.ContentLength != nil && *in.ContentLength == 6 &&
			string(body) == "resume"
	})).Return(&s3.PutObjectOutput{}, nil)

	st := newS3Storage(client, "hvac-media", "https://hvac-media.s3.amazonaws.com")
	url, err := st.Put(context.Background(), "resumes", "cv.pdf", "application/pdf", 6, strings.NewReader("resume"))

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://hvac-media.s3.amazonaws.com/resumes/"))
	client.AssertExpectations(t)
}

func TestS3Storage_PutError(t *testing.T) {
	client := new(mockS3)
	client.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("AccessDenied"))

	st := newS3Storage(client, "hvac-media", "https://cdn")
	_, err := st.Put(context.Background(), "resumes", "cv.pdf", "", 6, strings.NewReader("resume"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "AccessDenied")
}

func TestS3Storage_PutBuffersStream(t *testing.T) {
	client := new(mockS3)
	client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		_, seekable := in.Body.(io.Seeker)
		return seekable && in.ContentLength != nil && *in.ContentLength == 9
	})).Return(&s3.PutObjectOutput{}, nil)

	// Тело из нескольких частей, как после определения типа файла в обработчике.
	body := io.MultiReader(strings.NewReader("%PDF"), strings.NewReader("-1.4\n"))
	st := newS3Storage(client, "hvac-media", "http://localhost:4566/hvac-media")
	_, err := st.Put(context.Background(), "resumes", "cv.pdf", "application/pdf", 0, body)

	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestObjectKey_StripsTraversal(t *testing.T) {
	key := objectKey("../resumes", `..\..\evil.docx`)
	assert.False(t, strings.Contains(key, ".."))
	assert.True(t, strings.HasSuffix(key, ".docx"))
}
