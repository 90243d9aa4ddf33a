package scoopgithub

import (
	"context"
	"net/http"

	ghApi "github.com/google/go-github/v26/github"
	"github.com/pkg/errors"

	"github.com/scoop-bot/scoop-bot/log"
	"github.com/scoop-bot/scoop-bot/models"
)

// Releases reads release and repository information from GitHub.
type Releases struct {
	Client *ghApi.Client
}

// LatestRelease returns the latest published release of owner/repo, or nil
// when the repository has none.
func (r *Releases) LatestRelease(ctx context.Context, owner, repo string) (*models.Release, error) {
	release, resp, err := r.Client.Repositories.GetLatestRelease(ctx, owner, repo)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			log.G(ctx).Debugf("No latest release for %s/%s", owner, repo)
			return nil, nil
		}
		return nil, errors.Wrapf(err, "could not get latest release of %s/%s", owner, repo)
	}
	return toRelease(release), nil
}

// Repository returns the metadata used for the generic manifest fields.
func (r *Releases) Repository(ctx context.Context, owner, repo string) (*models.Repository, error) {
	details, _, err := r.Client.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, errors.Wrapf(err, "could not get repository %s/%s", owner, repo)
	}

	return &models.Repository{
		Description: details.GetDescription(),
		Homepage:    details.GetHomepage(),
		HTMLURL:     details.GetHTMLURL(),
		License:     details.GetLicense().GetSPDXID(),
	}, nil
}

func toRelease(release *ghApi.RepositoryRelease) *models.Release {
	assets := make([]models.Asset, 0, len(release.Assets))
	for _, a := range release.Assets {
		assets = append(assets, models.Asset{
			Name:        a.GetName(),
			DownloadURL: a.GetBrowserDownloadURL(),
			Size:        a.GetSize(),
		})
	}

	return &models.Release{
		Tag:         release.GetTagName(),
		Name:        release.GetName(),
		Body:        release.GetBody(),
		HTMLURL:     release.GetHTMLURL(),
		PublishedAt: release.GetPublishedAt().Time,
		Assets:      assets,
	}
}
