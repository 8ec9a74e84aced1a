// Package imaging turns arbitrary user-submitted render files into the
// canonical payload the generator accepts: a bounded-size JPEG, base64
// encoded, labeled image/jpeg. Several renders travel in one generator
// call, so every image is capped hard on pixel dimensions and re-encoded
// lossy regardless of input format.
package imaging

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/image/draw"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/michaelsjacques/dreamcraft-estimator/internal/domain/entities"
)

const (
	// MaxDimension caps the longer side of an outgoing render.
	MaxDimension = 1024
	// JPEGQuality is the fixed re-encode quality (canvas 0.82 equivalent).
	JPEGQuality = 82
	// DecodeTimeout bounds a single file's decode+resize+encode. Some
	// formats never signal completion; a hang must become a failure.
	DecodeTimeout = 8 * time.Second
	// MaxBatchSize is the most renders accepted per estimate.
	MaxBatchSize = 10
)

var (
	ErrDecode        = errors.New("could not decode image")
	ErrTimeout       = errors.New("image processing timed out")
	ErrTooManyImages = errors.New("too many images in batch")
)

// RawImage is an uploaded file before normalization. DeclaredType is
// whatever the client claimed (often empty or wrong) and is only a hint.
type RawImage struct {
	Data         []byte
	DeclaredType string
	Name         string
}

// FileError reports one file's normalization failure. Batch callers drop
// the file and proceed; a bad render never sinks its siblings.
type FileError struct {
	Name string
	Err  error
}

var extensionMIMETypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
}

const fallbackMIMEType = "image/jpeg"

// ResolveMIMEType resolves what an upload claims to be before re-encoding.
// A declared image type is trusted, except HEIC/HEIF which gets relabeled.
// Otherwise the filename extension decides, falling back to image/jpeg, so
// the resolution never yields an empty or unknown type. The resolved type
// is a pre-encode hint only; every outgoing attachment is JPEG.
func ResolveMIMEType(declaredType, name string) string {
	declared := strings.ToLower(strings.TrimSpace(declaredType))
	if strings.HasPrefix(declared, "image/") {
		if declared == "image/heic" || declared == "image/heif" {
			return fallbackMIMEType
		}
		return declared
	}
	if mime, ok := extensionMIMETypes[strings.ToLower(filepath.Ext(name))]; ok {
		return mime
	}
	return fallbackMIMEType
}

// Normalizer converts raw uploads into transport-ready attachments.
type Normalizer struct {
	MaxDimension int
	Quality      int
	Timeout      time.Duration

	// decode is swappable so timeout behavior is testable with a decoder
	// that stalls.
	decode func(data []byte) (image.Image, error)
}

func NewNormalizer() *Normalizer {
	return &Normalizer{
		MaxDimension: MaxDimension,
		Quality:      JPEGQuality,
		Timeout:      DecodeTimeout,
		decode:       decodeImage,
	}
}

func decodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

// Normalize decodes one file, downsamples it to at most MaxDimension on
// the longer side (never upscaling), re-encodes it as JPEG and returns the
// base64 payload without any data-URI prefix. The whole unit of work races
// the normalizer timeout and the caller's context.
func (n *Normalizer) Normalize(ctx context.Context, raw RawImage) (entities.ImageAttachment, error) {
	type outcome struct {
		attachment entities.ImageAttachment
		err        error
	}

	done := make(chan outcome, 1)
	go func() {
		attachment, err := n.convert(raw)
		done <- outcome{attachment: attachment, err: err}
	}()

	select {
	case out := <-done:
		return out.attachment, out.err
	case <-time.After(n.Timeout):
		return entities.ImageAttachment{}, fmt.Errorf("%w after %s: %s", ErrTimeout, n.Timeout, raw.Name)
	case <-ctx.Done():
		return entities.ImageAttachment{}, ctx.Err()
	}
}

func (n *Normalizer) convert(raw RawImage) (entities.ImageAttachment, error) {
	if len(raw.Data) == 0 {
		return entities.ImageAttachment{}, fmt.Errorf("%w: empty file %q", ErrDecode, raw.Name)
	}

	img, err := n.decode(raw.Data)
	if err != nil {
		return entities.ImageAttachment{}, fmt.Errorf("%w: %q declared as %s: %v",
			ErrDecode, raw.Name, ResolveMIMEType(raw.DeclaredType, raw.Name), err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return entities.ImageAttachment{}, fmt.Errorf("%w: image has zero dimensions", ErrDecode)
	}

	if width > n.MaxDimension || height > n.MaxDimension {
		img = scaleDown(img, width, height, n.MaxDimension)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: n.Quality}); err != nil {
		return entities.ImageAttachment{}, fmt.Errorf("%w: re-encode failed: %v", ErrDecode, err)
	}

	// The payload is always JPEG after re-encode. The declared type must
	// not leak into the attachment; the provider rejects image blocks whose
	// media type does not match the bytes.
	return entities.ImageAttachment{
		Payload:     base64.StdEncoding.EncodeToString(buf.Bytes()),
		MIMEType:    fallbackMIMEType,
		DisplayName: raw.Name,
	}, nil
}

// scaleDown resizes preserving aspect ratio so the longer side equals max.
func scaleDown(img image.Image, width, height, max int) image.Image {
	var targetW, targetH int
	if width >= height {
		targetW = max
		targetH = int(float64(height)*float64(max)/float64(width) + 0.5)
	} else {
		targetH = max
		targetW = int(float64(width)*float64(max)/float64(height) + 0.5)
	}
	if targetW < 1 {
		targetW = 1
	}
	if targetH < 1 {
		targetH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// NormalizeAll fans one goroutine out per file and correlates results back
// by index, so output order matches input order regardless of completion
// order. A failing or timed-out file is reported and dropped; it neither
// blocks nor cancels its siblings. Files beyond MaxBatchSize are rejected
// up front.
func (n *Normalizer) NormalizeAll(ctx context.Context, files []RawImage) ([]entities.ImageAttachment, []FileError) {
	accepted := files
	var failures []FileError
	if len(files) > MaxBatchSize {
		accepted = files[:MaxBatchSize]
		for _, extra := range files[MaxBatchSize:] {
			failures = append(failures, FileError{Name: extra.Name, Err: ErrTooManyImages})
		}
	}

	results := make([]entities.ImageAttachment, len(accepted))
	errs := make([]error, len(accepted))

	var wg sync.WaitGroup
	for i, raw := range accepted {
		wg.Add(1)
		go func(i int, raw RawImage) {
			defer wg.Done()
			results[i], errs[i] = n.Normalize(ctx, raw)
		}(i, raw)
	}
	wg.Wait()

	attachments := make([]entities.ImageAttachment, 0, len(accepted))
	for i := range accepted {
		if errs[i] != nil {
			failures = append(failures, FileError{Name: accepted[i].Name, Err: errs[i]})
			continue
		}
		attachments = append(attachments, results[i])
	}
	return attachments, failures
}
