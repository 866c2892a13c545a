package util

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// MaxSubmissionFileSize 单个提交文件上限（提交页提示 Max 10MB each）
const MaxSubmissionFileSize = 10 << 20

// SubmissionMimeTypes 作业提交允许的类型：图片、视频、PDF
var SubmissionMimeTypes = []string{"image/", "video/", "application/pdf"}

// ValidateMimeType 深度校验文件 MIME 类型
// allowedTypes: 允许的 MIME 前缀或完整类型，如 "image/", "video/", "application/pdf"
func ValidateMimeType(reader io.Reader, allowedTypes []string) (string, error) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	mimeType := http.DetectContentType(buffer[:n])

	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) || mimeType == allowed {
			return mimeType, nil
		}
	}

	return mimeType, errors.New("invalid file type: " + mimeType)
}

// IsImage 检测是否为图片
func IsImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}

// IsVideo 检测是否为视频
func IsVideo(mimeType string) bool {
	return strings.HasPrefix(mimeType, "video/") || mimeType == "application/x-mpegURL"
}

// EncodeDataURL 将文件内容编码为自包含 data URL，和浏览器 FileReader 产物一致
func EncodeDataURL(mimeType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

// DecodeDataURL 还原 data URL 的原始字节和 MIME 类型
func DecodeDataURL(dataURL string) (string, []byte, error) {
	if !strings.HasPrefix(dataURL, "data:") {
		return "", nil, errors.New("not a data URL")
	}
	rest := strings.TrimPrefix(dataURL, "data:")
	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return "", nil, errors.New("unsupported data URL encoding")
	}
	mimeType := rest[:sep]
	data, err := base64.StdEncoding.DecodeString(rest[sep+len(";base64,"):])
	if err != nil {
		return "", nil, err
	}
	return mimeType, data, nil
}
