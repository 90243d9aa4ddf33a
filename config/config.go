package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-yaml/yaml"
	"github.com/pkg/errors"

	"github.com/scoop-bot/scoop-bot/models"
)

// DefaultPath is where the tracked apps live, relative to the bucket repository.
const DefaultPath = "scripts/tracked_apps.yml"

type file struct {
	Apps map[string]*models.TrackedApp `yaml:"apps"`
}

// Store persists the set of tracked apps as YAML.
type Store struct {
	Path string
}

func NewStore(repoPath string) *Store {
	return &Store{Path: filepath.Join(repoPath, DefaultPath)}
}

// Ensure creates the config file with an empty app set if it does not exist.
func (s *Store) Ensure() error {
	if err := os.MkdirAll(filepath.Dir(s.Path), os.ModePerm); err != nil {
		return errors.Wrapf(err, "could not create %s", filepath.Dir(s.Path))
	}
	if _, err := os.Stat(s.Path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	return s.write(&file{Apps: map[string]*models.TrackedApp{}})
}

// Track adds or replaces an app. Its last_checked is reset.
func (s *Store) Track(owner, repo string, patterns map[string]string) error {
	key, err := Key(owner, repo)
	if err != nil {
		return err
	}
	f, err := s.read()
	if err != nil {
		return err
	}
	if patterns == nil {
		patterns = map[string]string{}
	}
	f.Apps[key] = &models.TrackedApp{
		Patterns:    patterns,
		LastChecked: nil,
	}
	return s.write(f)
}

// Untrack removes an app from the config.
func (s *Store) Untrack(owner, repo string) error {
	key, err := Key(owner, repo)
	if err != nil {
		return err
	}
	f, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := f.Apps[key]; !ok {
		return errors.Errorf("%s is not tracked", key)
	}
	delete(f.Apps, key)
	return s.write(f)
}

// Load returns all tracked apps ordered by owner/repo.
func (s *Store) Load() ([]*models.TrackedApp, error) {
	f, err := s.read()
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(f.Apps))
	for k := range f.Apps {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	apps := make([]*models.TrackedApp, 0, len(keys))
	for _, k := range keys {
		app := f.Apps[k]
		if app == nil {
			app = &models.TrackedApp{}
		}
		owner, repo, err := SplitKey(k)
		if err != nil {
			return nil, err
		}
		app.Owner = owner
		app.Repo = repo
		if app.Patterns == nil {
			app.Patterns = map[string]string{}
		}
		apps = append(apps, app)
	}
	return apps, nil
}

// Save writes the given apps, replacing the stored set.
func (s *Store) Save(apps []*models.TrackedApp) error {
	f := &file{Apps: map[string]*models.TrackedApp{}}
	for _, app := range apps {
		key, err := Key(app.Owner, app.Repo)
		if err != nil {
			return err
		}
		f.Apps[key] = app
	}
	return s.write(f)
}

// MarkChecked records the publish time of the release a manifest was built from.
func MarkChecked(app *models.TrackedApp, ts string) {
	app.LastChecked = &ts
}

func Key(owner, repo string) (string, error) {
	owner = strings.TrimSpace(owner)
	repo = strings.TrimSpace(repo)
	if owner == "" || repo == "" {
		return "", errors.New("owner and repo are required")
	}
	return owner + "/" + repo, nil
}

func SplitKey(key string) (string, string, error) {
	parts := strings.Split(key, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", errors.Errorf("invalid app key %q, expected owner/repo", key)
	}
	return parts[0], parts[1], nil
}

func (s *Store) read() (*file, error) {
	content, err := ioutil.ReadFile(s.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read %s", s.Path)
	}
	f := &file{}
	if err := yaml.Unmarshal(content, f); err != nil {
		return nil, errors.Wrapf(err, "could not parse %s", s.Path)
	}
	if f.Apps == nil {
		f.Apps = map[string]*models.TrackedApp{}
	}
	return f, nil
}

func (s *Store) write(f *file) error {
	content, err := yaml.Marshal(f)
	if err != nil {
		return err
	}
	return errors.Wrapf(ioutil.WriteFile(s.Path, content, 0644), "could not write %s", s.Path)
}
