package generic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/scoop-bot/scoop-bot/log"
	"github.com/scoop-bot/scoop-bot/models"
)

// Generic fills the manifest fields every tracked app has in common.
type Generic struct {
	Hasher Hasher
}

// Render builds the base manifest for app from release. repo may be nil when
// the repository metadata could not be fetched.
func (g *Generic) Render(ctx context.Context, app *models.TrackedApp, release *models.Release, repo *models.Repository) *models.Manifest {
	manifest := &models.Manifest{
		Version:      GetVersion(release.Tag, app.Repo),
		Description:  fmt.Sprintf("Automatic update from %s", app.FullName()),
		Homepage:     fmt.Sprintf("https://github.com/%s", app.FullName()),
		License:      "Unknown",
		Architecture: map[string]models.Architecture{},
	}

	if repo != nil {
		if repo.Description != "" {
			manifest.Description = repo.Description
		}
		if repo.Homepage != "" {
			manifest.Homepage = repo.Homepage
		} else if repo.HTMLURL != "" {
			manifest.Homepage = repo.HTMLURL
		}
		if repo.License != "" && repo.License != "NOASSERTION" {
			manifest.License = repo.License
		}
	}

	labels := make([]string, 0, len(app.Patterns))
	for label := range app.Patterns {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		pattern := app.Patterns[label]
		asset := FindAsset(release.Assets, pattern)
		if asset == nil {
			log.G(ctx).Warnf("No asset matching %q for %s", pattern, label)
			continue
		}
		log.G(ctx).Infof("Found matching asset for %s: %s", label, asset.Name)

		sha, err := g.Hasher.Sum(ctx, asset.DownloadURL)
		if err != nil {
			log.G(ctx).Errorf("Could not hash %s: %v", asset.Name, err)
			continue
		}
		manifest.Architecture[label] = models.Architecture{
			URL:  asset.DownloadURL,
			Hash: sha,
		}
	}

	return manifest
}

// GetVersion strips the app name and any leading "v" from a release tag.
func GetVersion(tagName, appName string) string {
	cleanVersion := tagName
	lower := strings.ToLower(cleanVersion)
	name := strings.ToLower(appName)
	// remove "name-", "name/" or "name"
	for _, prefix := range []string{name + "-", name + "/", name} {
		if name != "" && strings.HasPrefix(lower, prefix) {
			cleanVersion = cleanVersion[len(prefix):]
			break
		}
	}
	return strings.TrimLeft(cleanVersion, "vV")
}

// Merge overlays override on base. Nested objects are merged key by key,
// any other override value replaces the base value.
func Merge(base, override models.Document) models.Document {
	merged := models.Document{}
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		ov, ok := asObject(v)
		bv, bok := asObject(merged[k])
		if ok && bok {
			merged[k] = map[string]interface{}(Merge(bv, ov))
			continue
		}
		merged[k] = v
	}
	return merged
}

func asObject(v interface{}) (models.Document, bool) {
	switch o := v.(type) {
	case models.Document:
		return o, true
	case map[string]interface{}:
		return models.Document(o), true
	}
	return nil, false
}

// Encode renders a manifest document as indented JSON. Keys are sorted so
// an unchanged release produces byte identical output.
func Encode(doc models.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Architectures counts the architecture entries of a manifest document.
func Architectures(doc models.Document) int {
	arch, ok := asObject(doc["architecture"])
	if !ok {
		return 0
	}
	return len(arch)
}
