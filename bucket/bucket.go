package bucket

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/scoop-bot/scoop-bot/config"
	"github.com/scoop-bot/scoop-bot/log"
	"github.com/scoop-bot/scoop-bot/models"
	"github.com/scoop-bot/scoop-bot/strategy/generic"
	"github.com/scoop-bot/scoop-bot/strategy/handlers"
)

// Dir holds the manifests, relative to the bucket repository.
const Dir = "bucket"

type ReleaseSource interface {
	LatestRelease(ctx context.Context, owner, repo string) (*models.Release, error)
	Repository(ctx context.Context, owner, repo string) (*models.Repository, error)
}

type Publisher interface {
	Publish(ctx context.Context) (bool, error)
}

// Updater regenerates the manifests of all tracked apps.
type Updater struct {
	Store     *config.Store
	Releases  ReleaseSource
	Hasher    generic.Hasher
	Handlers  *handlers.Registry
	Publisher Publisher
	BucketDir string

	// Target limits a run to one repository when set.
	Target string
	// DryRun renders manifests without writing or publishing them.
	DryRun bool
}

// UpdateManifests runs every tracked app through fetch, render and write,
// saves last_checked and publishes the result. Failures of a single app are
// logged and skipped.
func (u *Updater) UpdateManifests(ctx context.Context) ([]*models.Result, error) {
	apps, err := u.Store.Load()
	if err != nil {
		return nil, err
	}
	if len(apps) == 0 {
		log.G(ctx).Info("No apps configured in tracking file")
		return nil, nil
	}

	results := []*models.Result{}
	found := false
	for _, app := range apps {
		if u.Target != "" && u.Target != app.Repo && u.Target != app.FullName() {
			continue
		}
		found = true
		appCtx := log.WithApp(ctx, app.Owner, app.Repo)
		log.G(appCtx).Infof("## Checking %s", app.FullName())

		result, err := u.UpdateApp(appCtx, app)
		if err != nil {
			log.G(appCtx).Warnf("Error in handling %s: %v", app.FullName(), err)
			continue
		}
		results = append(results, result)
	}
	if !found {
		return nil, errors.Errorf("%s is not tracked", u.Target)
	}

	if u.DryRun {
		return results, nil
	}

	if err := u.Store.Save(apps); err != nil {
		return results, err
	}

	if u.Publisher != nil {
		if _, err := u.Publisher.Publish(ctx); err != nil {
			log.G(ctx).Errorf("Git operation failed: %v", err)
		}
	}
	return results, nil
}

// UpdateApp renders and writes the manifest of a single app. An app without
// any architecture and without a handler is reported as skipped and nothing
// is written.
func (u *Updater) UpdateApp(ctx context.Context, app *models.TrackedApp) (*models.Result, error) {
	release, err := u.Releases.LatestRelease(ctx, app.Owner, app.Repo)
	if err != nil {
		return nil, err
	}
	if release == nil {
		return nil, errors.Errorf("no release found for %s", app.FullName())
	}

	repo, err := u.Releases.Repository(ctx, app.Owner, app.Repo)
	if err != nil {
		log.G(ctx).Debugf("Using default metadata: %v", err)
	}

	g := &generic.Generic{Hasher: u.Hasher}
	manifest := g.Render(ctx, app, release, repo)
	doc := manifest.Document()

	result := &models.Result{
		Owner:   app.Owner,
		Repo:    app.Repo,
		Version: manifest.Version,
	}

	if h, ok := u.Handlers.Lookup(app.Repo); ok {
		fragment, err := h.Generate(ctx, &handlers.Request{
			Owner:   app.Owner,
			Repo:    app.Repo,
			Version: manifest.Version,
			Release: release,
			Hasher:  u.Hasher,
		})
		if err != nil {
			return nil, errors.Wrap(err, "handler failed")
		}
		doc = generic.Merge(doc, fragment)
		result.Handler = app.Repo
		if v, ok := doc["version"].(string); ok {
			result.Version = v
		}
	}

	result.Architectures = generic.Architectures(doc)
	if result.Architectures == 0 {
		delete(doc, "architecture")
		if result.Handler == "" {
			log.G(ctx).Warnf("No matching assets found for %s", app.Repo)
			result.Status = models.StatusSkipped
			return result, nil
		}
	}

	path := u.ManifestPath(app.Repo)
	result.CurrentVersion = CurrentVersion(path)
	result.Status = Status(result.CurrentVersion, result.Version)

	content, err := generic.Encode(doc)
	if err != nil {
		return nil, err
	}
	if u.DryRun {
		log.G(ctx).Infof("Dry run, not writing %s", path)
		return result, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, err
	}
	if err := ioutil.WriteFile(path, content, 0644); err != nil {
		return nil, errors.Wrapf(err, "could not write %s", path)
	}
	result.Written = true
	config.MarkChecked(app, release.PublishedAt.UTC().Format(time.RFC3339))
	log.G(ctx).Infof("Updated manifest for %s", app.Repo)

	return result, nil
}

func (u *Updater) ManifestPath(repo string) string {
	return filepath.Join(u.BucketDir, repo+".json")
}
