package hashicorp

import (
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/scoop-bot/scoop-bot/log"
	"github.com/scoop-bot/scoop-bot/models"
	"github.com/scoop-bot/scoop-bot/strategy/handlers"
)

const ReleasesURL = "https://releases.hashicorp.com"

// Products are the HashiCorp repositories served by releases.hashicorp.com.
var Products = []string{"terraform", "vault", "consul", "nomad", "packer", "boundary", "waypoint"}

// Windows builds keyed by Scoop architecture label.
var windowsAssets = map[string]string{
	"64bit": "_windows_amd64.zip",
	"32bit": "_windows_386.zip",
	"arm64": "_windows_arm64.zip",
}

// HashiCorp builds manifests from releases.hashicorp.com instead of the
// GitHub release assets, which HashiCorp does not publish.
type HashiCorp struct {
	BaseURL string
	Client  *http.Client
}

func New() *HashiCorp {
	return &HashiCorp{BaseURL: ReleasesURL, Client: http.DefaultClient}
}

// Register adds h for every HashiCorp product.
func (h *HashiCorp) Register(r *handlers.Registry) {
	for _, p := range Products {
		r.Register(p, h)
	}
}

func (h *HashiCorp) Generate(ctx context.Context, req *handlers.Request) (models.Document, error) {
	name := strings.ToLower(req.Repo)
	version := req.Version

	checksums, err := h.downloadFile(ctx, fmt.Sprintf("%s/%s/%s/%s_%s_SHA256SUMS", h.BaseURL, name, version, name, version))
	if err != nil {
		return nil, errors.Wrap(err, "Could not download checksums")
	}

	labels := make([]string, 0, len(windowsAssets))
	for label := range windowsAssets {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	arch := map[string]interface{}{}
	autoupdate := map[string]interface{}{}
	for _, label := range labels {
		suffix := windowsAssets[label]
		sha := h.getChecksum(name+"_"+version+suffix, checksums)
		if sha == "" {
			log.G(ctx).Debugf("No %s build of %s %s", label, name, version)
			continue
		}
		arch[label] = map[string]interface{}{
			"url":  fmt.Sprintf("%s/%s/%s/%s_%s%s", h.BaseURL, name, version, name, version, suffix),
			"hash": sha,
		}
		autoupdate[label] = map[string]interface{}{
			"url": fmt.Sprintf("%s/%s/$version/%s_$version%s", h.BaseURL, name, name, suffix),
		}
	}
	if len(arch) == 0 {
		return nil, errors.Errorf("no windows builds of %s %s", name, version)
	}

	return models.Document{
		"bin":          name + ".exe",
		"architecture": arch,
		"checkver": map[string]interface{}{
			"url":   fmt.Sprintf("%s/%s/", h.BaseURL, name),
			"regex": fmt.Sprintf(`%s_([\d.]+)_windows`, name),
		},
		"autoupdate": map[string]interface{}{
			"architecture": autoupdate,
		},
	}, nil
}

func (h *HashiCorp) getChecksum(assetName, checksums string) string {
	for _, line := range strings.Split(strings.TrimSuffix(checksums, "\n"), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 2 && fields[1] == assetName {
			return fields[0]
		}
	}
	return ""
}

func (h *HashiCorp) downloadFile(ctx context.Context, url string) (string, error) {
	log.G(ctx).Debugf("Downloading: %s", url)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := h.Client.Do(req.WithContext(ctx))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}
	res, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(res), nil
}
