package handlers

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/scoop-bot/scoop-bot/models"
)

// Dive builds the download url from the version, dive does not need a pattern.
func Dive(ctx context.Context, req *Request) (models.Document, error) {
	base := fmt.Sprintf("https://github.com/%s/%s/releases/download", req.Owner, req.Repo)
	url := fmt.Sprintf("%s/v%s/dive_%s_windows_amd64.zip", base, req.Version, req.Version)

	sha, err := req.Hasher.Sum(ctx, url)
	if err != nil {
		return nil, errors.Wrap(err, "could not hash dive release")
	}

	return models.Document{
		"description": "A tool for exploring a docker image, layer contents, and discovering ways to shrink the size of your Docker/OCI image",
		"bin":         "dive.exe",
		"architecture": map[string]interface{}{
			"64bit": map[string]interface{}{
				"url":  url,
				"hash": sha,
			},
		},
		"checkver": checkver(req),
		"autoupdate": map[string]interface{}{
			"architecture": map[string]interface{}{
				"64bit": map[string]interface{}{
					"url": base + "/v$version/dive_$version_windows_amd64.zip",
				},
			},
		},
	}, nil
}
