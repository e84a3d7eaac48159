// Package imaging validates uploaded images and derives everything the
// photo record needs: thumbnail, acquisition time and dominant color.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"time"

	"github.com/EdlinOrg/prominentcolor"
	"github.com/gabriel-vasile/mimetype"
	"github.com/nfnt/resize"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp"

	"github.com/sefazor/photoalbums-backend/internal/errs"
)

const (
	ThumbnailSize    = 300
	thumbnailQuality = 80

	// DefaultDominantColor is the gray used when palette extraction fails.
	DefaultDominantColor = "#808080"
)

// AllowedMimeTypes is the upload allow-list. Anything else is rejected
// before a single byte reaches object storage.
var AllowedMimeTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
}

// Source tags a metadata value as actually extracted from the file or
// substituted with a default, so callers can tell corrupt metadata apart
// from missing metadata.
type Source string

const (
	SourceExtracted Source = "extracted"
	SourceDefaulted Source = "defaulted"
)

type Metadata struct {
	MimeType            string
	SizeBytes           int64
	AcquiredAt          time.Time
	AcquiredAtSource    Source
	DominantColor       string
	DominantColorSource Source
}

type Processed struct {
	Original  []byte
	Thumbnail []byte
	Metadata  Metadata
}

// Process sniffs the content type against the allow-list, extracts
// best-effort metadata and renders a center-cropped JPEG thumbnail.
// Metadata extraction never fails the upload; only an unsupported or
// undecodable file does.
func Process(data []byte) (*Processed, error) {
	detected := mimetype.Detect(data)
	if !isAllowed(detected) {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedMedia, detected.String())
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: cannot decode image: %v", errs.ErrUnsupportedMedia, err)
	}

	acquiredAt, acquiredSource := acquisitionTime(data)
	color, colorSource := dominantColor(img)

	thumb, err := renderThumbnail(img)
	if err != nil {
		return nil, fmt.Errorf("failed to generate thumbnail: %w", err)
	}

	return &Processed{
		Original:  data,
		Thumbnail: thumb,
		Metadata: Metadata{
			MimeType:            detected.String(),
			SizeBytes:           int64(len(data)),
			AcquiredAt:          acquiredAt,
			AcquiredAtSource:    acquiredSource,
			DominantColor:       color,
			DominantColorSource: colorSource,
		},
	}, nil
}

func isAllowed(m *mimetype.MIME) bool {
	for _, allowed := range AllowedMimeTypes {
		if m.Is(allowed) {
			return true
		}
	}
	return false
}

// acquisitionTime reads EXIF DateTimeOriginal (falling back to DateTime)
// and defaults to now. Malformed EXIF is indistinguishable from absent
// EXIF here; both come back as SourceDefaulted.
func acquisitionTime(data []byte) (time.Time, Source) {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return time.Now(), SourceDefaulted
	}
	t, err := x.DateTime()
	if err != nil {
		return time.Now(), SourceDefaulted
	}
	return t, SourceExtracted
}

func dominantColor(img image.Image) (string, Source) {
	items, err := prominentcolor.Kmeans(img)
	if err != nil || len(items) == 0 {
		return DefaultDominantColor, SourceDefaulted
	}
	c := items[0].Color
	return fmt.Sprintf("#%02x%02x%02x", uint8(c.R), uint8(c.G), uint8(c.B)), SourceExtracted
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// renderThumbnail center-crops to a square and scales to ThumbnailSize,
// re-encoding as JPEG regardless of the source format.
func renderThumbnail(img image.Image) ([]byte, error) {
	bounds := img.Bounds()
	side := bounds.Dx()
	if bounds.Dy() < side {
		side = bounds.Dy()
	}
	x0 := bounds.Min.X + (bounds.Dx()-side)/2
	y0 := bounds.Min.Y + (bounds.Dy()-side)/2

	cropped := img
	if si, ok := img.(subImager); ok {
		cropped = si.SubImage(image.Rect(x0, y0, x0+side, y0+side))
	}

	thumb := resize.Resize(ThumbnailSize, ThumbnailSize, cropped, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: thumbnailQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
