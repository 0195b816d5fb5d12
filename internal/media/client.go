// Package media stores user-supplied images with an external hosting
// provider and hands back stable delivery URLs.
package media

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/gosimple/slug"
)

// ErrUploadFailed is returned when the hosting provider rejects an upload
// or cannot be reached.
var ErrUploadFailed = errors.New("media upload failed")

// Uploader defines the interface for image hosting operations
type Uploader interface {
	// Upload stores an image under the given public ID and returns the URL
	// it will be served from
	Upload(ctx context.Context, data []byte, publicID string) (string, error)

	// Destroy removes a previously uploaded image
	Destroy(ctx context.Context, publicID string) error
}

// NewPublicID derives a hosting identifier from a country name. The random
// suffix keeps repeated uploads for the same country from overwriting each
// other.
func NewPublicID(name string) string {
	suffix := make([]byte, 4)
	_, _ = rand.Read(suffix)
	return fmt.Sprintf("countries/%s-%s", slug.Make(name), hex.EncodeToString(suffix))
}

// Discard is the Uploader for deployments without a configured media
// provider: uploads are rejected, destroys succeed silently.
type Discard struct{}

func (Discard) Upload(ctx context.Context, data []byte, publicID string) (string, error) {
	return "", fmt.Errorf("%w: no media provider configured", ErrUploadFailed)
}

func (Discard) Destroy(ctx context.Context, publicID string) error {
	return nil
}
