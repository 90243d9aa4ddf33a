package generic

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"strings"

	humanize "github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/scoop-bot/scoop-bot/log"
)

// Hasher computes the checksum written to a manifest for a download URL.
type Hasher interface {
	Sum(ctx context.Context, url string) (string, error)
}

// ChecksumService downloads assets and computes their sha256.
type ChecksumService struct {
	Client      *http.Client
	githubToken string
}

func NewChecksumService(client *http.Client, githubToken string) *ChecksumService {
	if client == nil {
		client = http.DefaultClient
	}
	return &ChecksumService{
		Client:      client,
		githubToken: githubToken,
	}
}

// Sum streams url into sha256 and returns the hex digest.
func (c *ChecksumService) Sum(ctx context.Context, url string) (string, error) {
	content, err := c.Download(ctx, url)
	if err != nil {
		return "", errors.Wrap(err, "error while downloading package to calculate shasum")
	}
	defer content.Close()

	h := sha256.New()
	n, err := io.Copy(h, content)
	if err != nil {
		return "", errors.Wrap(err, "error while calculating shasum of package")
	}
	log.G(ctx).Debugf("Hashed %s of %s", humanize.Bytes(uint64(n)), url)
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// Download opens url for reading. The caller closes the body.
func (c *ChecksumService) Download(ctx context.Context, url string) (io.ReadCloser, error) {
	log.G(ctx).Infof("Downloading: %s", url)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req = req.WithContext(ctx)
	// Only add auth header if asset is on github
	if c.githubToken != "" && strings.HasPrefix(url, "https://github.com/") {
		req.Header.Set("Authorization", "token "+c.githubToken)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, errors.Errorf("unexpected status %d downloading %s", resp.StatusCode, url)
	}
	return resp.Body, nil
}
