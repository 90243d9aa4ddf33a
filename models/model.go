package models

import (
	"fmt"
	"time"
)

// TrackedApp is one entry of tracked_apps.yml. Owner and Repo are derived
// from the "owner/repo" key the entry is stored under.
type TrackedApp struct {
	Owner       string            `yaml:"-"`
	Repo        string            `yaml:"-"`
	Patterns    map[string]string `yaml:"patterns"`
	LastChecked *string           `yaml:"last_checked"`
}

func (a *TrackedApp) FullName() string {
	return fmt.Sprintf("%s/%s", a.Owner, a.Repo)
}

type Asset struct {
	Name        string
	DownloadURL string
	Size        int
}

type Release struct {
	Tag         string
	Name        string
	Body        string
	HTMLURL     string
	PublishedAt time.Time
	Assets      []Asset
}

type Repository struct {
	Description string
	Homepage    string
	HTMLURL     string
	License     string
}

type Architecture struct {
	URL  string `json:"url"`
	Hash string `json:"hash"`
}

// Manifest is the generic part of a Scoop manifest. Handler specific fields
// are merged on top of it as a Document.
type Manifest struct {
	Version      string                  `json:"version"`
	Description  string                  `json:"description"`
	Homepage     string                  `json:"homepage"`
	License      string                  `json:"license"`
	Architecture map[string]Architecture `json:"architecture"`
}

// Document is a manifest in its free-form JSON shape.
type Document map[string]interface{}

// Document converts the manifest to its JSON shape.
func (m *Manifest) Document() Document {
	arch := map[string]interface{}{}
	for label, a := range m.Architecture {
		arch[label] = map[string]interface{}{
			"url":  a.URL,
			"hash": a.Hash,
		}
	}
	return Document{
		"version":      m.Version,
		"description":  m.Description,
		"homepage":     m.Homepage,
		"license":      m.License,
		"architecture": arch,
	}
}

type Status string

const (
	StatusNew      Status = "New"
	StatusUpdated  Status = "Updated"
	StatusUpToDate Status = "Up to date"
	StatusOlder    Status = "Older than current"
	StatusSkipped  Status = "Skipped"
)

// Result describes what a run did for a single tracked app.
type Result struct {
	Owner          string
	Repo           string
	CurrentVersion string
	Version        string
	Architectures  int
	Handler        string
	Status         Status
	Written        bool
}
