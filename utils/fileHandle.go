package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"lms_backend/config"

	"github.com/google/uuid"
)

// Asset classes accepted by the upload endpoint. Each maps to its own
// subdirectory, size limit and MIME allow-list.
const (
	AssetInstructorImage     = "instructor-images"
	AssetCourseThumbnail     = "course-thumbnails"
	AssetCourseVideo         = "course-videos"
	AssetCertificateTemplate = "certificate-templates"
)

const (
	MaxInstructorImageSize = 5 * 1024 * 1024  // 5MB for instructor profile images
	MaxCourseAssetSize     = 50 * 1024 * 1024 // 50MB for thumbnails, videos, certificate PDFs
)

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp"}
var allowedVideoTypes = []string{"video/mp4", "video/webm", "video/ogg"}
var allowedDocumentTypes = []string{"application/pdf"}

var allowedTypesByClass = map[string][]string{
	AssetInstructorImage:     allowedImageTypes,
	AssetCourseThumbnail:     allowedImageTypes,
	AssetCourseVideo:         allowedVideoTypes,
	AssetCertificateTemplate: allowedDocumentTypes,
}

// MaxSizeForClass returns the upload size limit for an asset class
func MaxSizeForClass(class string) int64 {
	if class == AssetInstructorImage {
		return MaxInstructorImageSize
	}
	return MaxCourseAssetSize
}

// ValidateUpload checks size and MIME type against the asset class limits.
// Called before any byte is written so an oversized or disallowed file
// never reaches disk.
func ValidateUpload(class string, size int64, contentType string) error {
	allowed, ok := allowedTypesByClass[class]
	if !ok {
		return fmt.Errorf("unknown asset class: %s", class)
	}

	if maxSize := MaxSizeForClass(class); size > maxSize {
		return fmt.Errorf("file size must be less than %dMB", maxSize/(1024*1024))
	}

	for _, t := range allowed {
		if contentType == t {
			return nil
		}
	}
	return fmt.Errorf("invalid file type: %s", contentType)
}

// SaveUploadedFile validates and stores an uploaded file under the asset
// class subdirectory with a unique name, returning the relative path.
func SaveUploadedFile(file *multipart.FileHeader, class string) (string, error) {
	if err := ValidateUpload(class, file.Size, file.Header.Get("Content-Type")); err != nil {
		return "", err
	}

	// Open the uploaded file
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// Create destination directory if it doesn't exist
	destDir := filepath.Join(config.AppConfig.UploadDir, class)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	// Create a unique filename
	ext := filepath.Ext(file.Filename)
	newFilename := uuid.New().String() + ext
	filePath := filepath.Join(destDir, newFilename)

	// Create destination file
	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	// Copy the file content
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return filepath.Join(class, newFilename), nil
}

// GetFileURL returns the public URL for a stored asset path
func GetFileURL(filePath string) string {
	if filePath == "" {
		return ""
	}
	return config.AppConfig.BaseURL + "/uploads/" + filepath.ToSlash(filePath)
}
