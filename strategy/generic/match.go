package generic

import (
	"strings"

	"github.com/scoop-bot/scoop-bot/models"
)

// FindAsset returns the first asset whose name contains pattern, ignoring case.
func FindAsset(assets []models.Asset, pattern string) *models.Asset {
	if pattern == "" {
		return nil
	}
	p := strings.ToLower(pattern)
	for i := range assets {
		if strings.Contains(strings.ToLower(assets[i].Name), p) {
			return &assets[i]
		}
	}
	return nil
}
