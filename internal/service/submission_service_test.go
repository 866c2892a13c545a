package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"reach_edu_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 最小 JPEG 头，http.DetectContentType 识别为 image/jpeg
var jpegPayload = append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, bytes.Repeat([]byte{0}, 64)...)

func newSubmissionService() *SubmissionService {
	state, _ := newStateService()
	svc := NewSubmissionService(state, nil)
	svc.sleep = func(time.Duration) {}
	return svc
}

func TestUploadAcceptsImage(t *testing.T) {
	svc := newSubmissionService()

	file, err := svc.Upload(context.Background(), "1", "worksheet.jpg", jpegPayload, nil)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", file.MimeType)
	assert.Equal(t, int64(len(jpegPayload)), file.SizeBytes)
	assert.True(t, strings.HasPrefix(file.DataURL, "data:image/jpeg;base64,"))
	assert.Nil(t, file.Video)

	state := svc.State.Load("1")
	require.Len(t, state.Files, 1)
	assert.Equal(t, file.ID, state.Files[0].ID)
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	svc := newSubmissionService()

	_, err := svc.Upload(context.Background(), "1", "notes.txt", []byte("plain text content"), nil)
	assert.ErrorIs(t, err, util.ErrFileTypeUnsupported)
	assert.Empty(t, svc.State.Load("1").Files)
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	svc := newSubmissionService()

	huge := make([]byte, util.MaxSubmissionFileSize+1)
	_, err := svc.Upload(context.Background(), "1", "big.jpg", huge, nil)
	assert.ErrorIs(t, err, util.ErrFileTooLarge)
}

func TestUploadReportsProgressTo100(t *testing.T) {
	svc := newSubmissionService()

	var reported []int
	_, err := svc.Upload(context.Background(), "1", "worksheet.jpg", jpegPayload, func(p int) {
		reported = append(reported, p)
	})
	require.NoError(t, err)
	require.NotEmpty(t, reported)
	assert.Equal(t, 100, reported[len(reported)-1])
	assert.IsNonDecreasing(t, reported)
}

func TestRemoveKeepsRemainingFiles(t *testing.T) {
	svc := newSubmissionService()

	first, err := svc.Upload(context.Background(), "1", "a.jpg", jpegPayload, nil)
	require.NoError(t, err)
	_, err = svc.Upload(context.Background(), "1", "b.jpg", jpegPayload, nil)
	require.NoError(t, err)

	files := svc.Remove(context.Background(), "1", first.ID)
	require.Len(t, files, 1)
	assert.Equal(t, "b.jpg", files[0].Name)
}

func TestDataURLRoundTrip(t *testing.T) {
	url := util.EncodeDataURL("image/jpeg", jpegPayload)
	mime, data, err := util.DecodeDataURL(url)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)
	assert.Equal(t, jpegPayload, data)
}
