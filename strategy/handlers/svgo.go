package handlers

import (
	"context"

	"github.com/scoop-bot/scoop-bot/models"
)

// SVGO installs svgo from npm and wraps it in a cmd shim.
func SVGO(ctx context.Context, req *Request) (models.Document, error) {
	return models.Document{
		"version":     req.Version,
		"description": "Node.js tool for optimizing SVG files",
		"homepage":    "https://github.com/" + req.Owner + "/" + req.Repo,
		"license":     "MIT",
		"depends":     "nodejs",
		"bin":         "svgo.cmd",
		"installer": map[string]interface{}{
			"script": []interface{}{
				`New-Item -ItemType Directory -Force -Path "$dir\svgo" | Out-Null`,
				`Set-Location -Path "$dir\svgo"`,
				`npm install svgo@$version`,
				`$content = @'`,
				`@echo off`,
				`node "%~dp0svgo\node_modules\svgo\bin\svgo" %*`,
				`'@`,
				`$content | Out-File "$dir\svgo.cmd" -Encoding ASCII`,
			},
		},
		"checkver": checkver(req),
		"autoupdate": map[string]interface{}{
			"version": "$version",
		},
	}, nil
}
