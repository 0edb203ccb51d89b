package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/Dhaval523/WorkJunction/internal/upstream"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type Cloudinary struct {
	cld     *cloudinary.Cloudinary
	breaker *upstream.Breaker
}

func NewCloudinary(cloudName, apiKey, apiSecret string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	cld.Config.URL.Secure = true
	return &Cloudinary{cld: cld, breaker: upstream.NewBreaker("cloudinary")}, nil
}

// Upload sends the file with resource_type auto so PDFs and images share one path.
func (c *Cloudinary) Upload(ctx context.Context, folder Folder, file File) (string, error) {
	return upstream.Do(c.breaker, func() (string, error) {
		resp, err := c.cld.Upload.Upload(ctx, bytes.NewReader(file.Data), uploader.UploadParams{
			Folder:       string(folder),
			ResourceType: "auto",
		})
		if err != nil {
			return "", fmt.Errorf("cloudinary upload: %w", err)
		}
		if resp.Error.Message != "" {
			return "", fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
		}
		if resp.SecureURL == "" {
			return "", errors.New("cloudinary upload: empty secure_url")
		}
		return resp.SecureURL, nil
	})
}
