package service

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	uploadsDir = "uploads/avatars"
	avatarSize = 512
)

// EnsureUploadsDir ensures the avatar uploads directory exists
func EnsureUploadsDir() error {
	if err := os.MkdirAll(uploadsDir, 0755); err != nil {
		return fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return nil
}

// AvatarService turns an uploaded photo into a stylized profile avatar.
type AvatarService struct{}

func NewAvatarService() *AvatarService {
	return &AvatarService{}
}

// Cartoonify renders a cartoon-look avatar from raw photo bytes and
// returns it as a base64 PNG data URI. The photo is squared off to
// 512x512, boosted in saturation, smoothed, and outlined with darkened
// edges.
func (s *AvatarService) Cartoonify(imageData []byte) (string, error) {
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return "", fmt.Errorf("failed to decode avatar image: %w", err)
	}
	log.Printf("📸 Avatar decoded: format=%s, bounds=%v", format, img.Bounds())

	square := imaging.Fill(img, avatarSize, avatarSize, imaging.Center, imaging.Lanczos)

	// Flat, saturated base layer.
	toon := imaging.AdjustSaturation(square, 40)
	toon = imaging.Blur(toon, 1.5)
	toon = imaging.Sharpen(toon, 2.0)

	// Edge map from the grayscale image, used to draw outlines.
	gray := imaging.Grayscale(square)
	edges := imaging.Convolve3x3(gray, [9]float64{
		-1, -1, -1,
		-1, 8, -1,
		-1, -1, -1,
	}, nil)

	result := overlayEdges(toon, edges)

	var buf bytes.Buffer
	if err := png.Encode(&buf, result); err != nil {
		return "", fmt.Errorf("failed to encode avatar: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())
	log.Printf("✓ Avatar rendered: %d bytes", buf.Len())
	return "data:image/png;base64," + encoded, nil
}

// overlayEdges darkens toon pixels wherever the edge map is strong,
// which reads as a drawn outline.
func overlayEdges(toon *image.NRGBA, edges *image.NRGBA) *image.NRGBA {
	const edgeThreshold = 60
	bounds := toon.Bounds()
	out := imaging.Clone(toon)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			idx := edges.PixOffset(x, y)
			if edges.Pix[idx] > edgeThreshold {
				oidx := out.PixOffset(x, y)
				out.Pix[oidx] = out.Pix[oidx] / 4
				out.Pix[oidx+1] = out.Pix[oidx+1] / 4
				out.Pix[oidx+2] = out.Pix[oidx+2] / 4
			}
		}
	}
	return out
}

// SaveProfileImage stores an uploaded profile photo on disk and returns
// its public path.
func (s *AvatarService) SaveProfileImage(userID, filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp":
	default:
		return "", fmt.Errorf("unsupported image type: %s", ext)
	}

	if err := EnsureUploadsDir(); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_profile%s", userID, ext)
	path := filepath.Join(uploadsDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write profile image: %w", err)
	}

	log.Printf("✓ Profile image saved: %s", path)
	return "/" + filepath.ToSlash(path), nil
}
