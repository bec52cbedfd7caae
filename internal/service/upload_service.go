package service

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jagoron-news/internal/config"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
)

var (
	ErrUploadTooLarge       = errors.New("file is too large")
	ErrUploadTypeNotAllowed = errors.New("file type is not allowed")
	ErrUploadInvalidImage   = errors.New("image cannot be decoded")
)

var allowedUploadScenes = map[string]struct{}{
	"article": {},
	"section": {},
	"author":  {},
	"site":    {},
	"editor":  {},
	"common":  {},
}

// UploadService newsroom media uploads
type UploadService struct {
	cfg config.UploadConfig
}

// NewUploadService creates the upload service
func NewUploadService(cfg config.UploadConfig) *UploadService {
	if strings.TrimSpace(cfg.Dir) == "" {
		cfg.Dir = "uploads"
	}
	return &UploadService{cfg: cfg}
}

// Dir local directory served under /uploads
func (s *UploadService) Dir() string {
	return s.cfg.Dir
}

// SaveFile validates and stores an upload, returning its public path
func (s *UploadService) SaveFile(file *multipart.FileHeader, scene string) (string, error) {
	if s.cfg.MaxSize > 0 && file.Size > s.cfg.MaxSize {
		return "", fmt.Errorf("%w: max %d MB", ErrUploadTooLarge, s.cfg.MaxSize/1024/1024)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(s.cfg.AllowedExtensions) > 0 {
		if ext == "" || !isAllowedExtension(ext, s.cfg.AllowedExtensions) {
			return "", fmt.Errorf("%w: extension %q", ErrUploadTypeNotAllowed, ext)
		}
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	buffer := make([]byte, 512)
	if _, err := src.Read(buffer); err != nil && err != io.EOF {
		return "", err
	}
	contentType := http.DetectContentType(buffer)
	if len(s.cfg.AllowedTypes) > 0 && !containsFold(s.cfg.AllowedTypes, contentType) {
		return "", fmt.Errorf("%w: %s", ErrUploadTypeNotAllowed, contentType)
	}

	if strings.HasPrefix(contentType, "image/") {
		width, height, err := decodeImageDimensions(src, contentType)
		if err != nil {
			return "", err
		}
		if s.cfg.MaxWidth > 0 && width > s.cfg.MaxWidth {
			return "", fmt.Errorf("%w: width over %d", ErrUploadInvalidImage, s.cfg.MaxWidth)
		}
		if s.cfg.MaxHeight > 0 && height > s.cfg.MaxHeight {
			return "", fmt.Errorf("%w: height over %d", ErrUploadInvalidImage, s.cfg.MaxHeight)
		}
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	normalizedScene := normalizeUploadScene(scene)
	filename := uuid.New().String() + ext
	now := time.Now().UTC()
	year := now.Format("2006")
	month := now.Format("01")
	savePath := filepath.Join(s.cfg.Dir, normalizedScene, year, month, filename)
	if err := os.MkdirAll(filepath.Dir(savePath), 0o755); err != nil {
		return "", err
	}
	dst, err := os.Create(savePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return fmt.Sprintf("/uploads/%s/%s/%s/%s", normalizedScene, year, month, filename), nil
}

func normalizeUploadScene(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := allowedUploadScenes[value]; ok {
		return value
	}
	return "common"
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), target) {
			return true
		}
	}
	return false
}

func isAllowedExtension(ext string, allowed []string) bool {
	for _, allowedExt := range allowed {
		normalized := strings.ToLower(strings.TrimSpace(allowedExt))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if ext == normalized {
			return true
		}
	}
	return false
}

func decodeImageDimensions(src io.ReadSeeker, contentType string) (int, int, error) {
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return 0, 0, err
	}
	if strings.EqualFold(contentType, "image/webp") {
		width, height, err := decodeWebPDimensions(src)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %v", ErrUploadInvalidImage, err)
		}
		return width, height, nil
	}
	cfg, _, err := image.DecodeConfig(src)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrUploadInvalidImage, err)
	}
	return cfg.Width, cfg.Height, nil
}

// decodeWebPDimensions walks RIFF chunks until a VP8/VP8L/VP8X header
func decodeWebPDimensions(src io.ReadSeeker) (int, int, error) {
	header := make([]byte, 12)
	if _, err := io.ReadFull(src, header); err != nil {
		return 0, 0, err
	}
	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WEBP" {
		return 0, 0, errors.New("bad webp header")
	}
	for {
		chunkHeader := make([]byte, 8)
		if _, err := io.ReadFull(src, chunkHeader); err != nil {
			return 0, 0, err
		}
		chunkType := string(chunkHeader[0:4])
		chunkSize := int(binary.LittleEndian.Uint32(chunkHeader[4:8]))
		data := make([]byte, chunkSize)
		if _, err := io.ReadFull(src, data); err != nil {
			return 0, 0, err
		}
		switch chunkType {
		case "VP8X":
			if len(data) < 10 {
				return 0, 0, errors.New("short VP8X chunk")
			}
			width := 1 + int(data[4]) + int(data[5])<<8 + int(data[6])<<16
			height := 1 + int(data[7]) + int(data[8])<<8 + int(data[9])<<16
			return width, height, nil
		case "VP8 ":
			if len(data) < 10 {
				return 0, 0, errors.New("short VP8 chunk")
			}
			width := int(binary.LittleEndian.Uint16(data[6:8]) & 0x3FFF)
			height := int(binary.LittleEndian.Uint16(data[8:10]) & 0x3FFF)
			return width, height, nil
		case "VP8L":
			if len(data) < 5 || data[0] != 0x2f {
				return 0, 0, errors.New("bad VP8L chunk")
			}
			bits := binary.LittleEndian.Uint32(data[1:5])
			return int(bits&0x3FFF) + 1, int((bits>>14)&0x3FFF) + 1, nil
		}
		if chunkSize%2 == 1 {
			if _, err := src.Seek(1, io.SeekCurrent); err != nil {
				return 0, 0, err
			}
		}
	}
}
