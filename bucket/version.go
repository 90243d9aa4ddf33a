package bucket

import (
	"encoding/json"
	"io/ioutil"

	"github.com/blang/semver"

	"github.com/scoop-bot/scoop-bot/models"
)

// CurrentVersion returns the version of the manifest at path, or "" when
// there is none.
func CurrentVersion(path string) string {
	content, err := ioutil.ReadFile(path)
	if err != nil {
		return ""
	}
	var m struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(content, &m); err != nil {
		return ""
	}
	return m.Version
}

// Status compares the version in the bucket with the one just rendered.
func Status(current, version string) models.Status {
	if current == "" {
		return models.StatusNew
	}
	if current == version {
		return models.StatusUpToDate
	}
	cv, err := semver.ParseTolerant(current)
	if err != nil {
		return models.StatusUpdated
	}
	nv, err := semver.ParseTolerant(version)
	if err != nil {
		return models.StatusUpdated
	}
	if nv.LT(cv) {
		return models.StatusOlder
	}
	return models.StatusUpdated
}
