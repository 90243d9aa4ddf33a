package printer

import (
	"sort"
	"strings"

	humanize "github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/rodaine/table"

	"github.com/scoop-bot/scoop-bot/models"
)

func newTable(columns ...interface{}) table.Table {
	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()

	tbl := table.New(columns...)
	tbl.WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt)
	return tbl
}

// Table prints the outcome of an update run.
func Table(results []*models.Result) {
	tbl := newTable("Owner", "Repo", "CurrentVersion", "NewRelease", "Arch", "Handler", "Status")

	for _, r := range results {
		tbl.AddRow(r.Owner, r.Repo, r.CurrentVersion, r.Version, r.Architectures, r.Handler, r.Status)
	}

	tbl.Print()
}

// Tracked prints the content of tracked_apps.yml.
func Tracked(apps []*models.TrackedApp) {
	tbl := newTable("Owner", "Repo", "Patterns", "LastChecked")

	for _, app := range apps {
		patterns := []string{}
		for label, p := range app.Patterns {
			patterns = append(patterns, label+"="+p)
		}
		sort.Strings(patterns)

		lastChecked := "never"
		if app.LastChecked != nil {
			lastChecked = *app.LastChecked
		}
		tbl.AddRow(app.Owner, app.Repo, strings.Join(patterns, ", "), lastChecked)
	}

	tbl.Print()
}

// Assets prints the assets of a release, marking those matched by a pattern.
func Assets(release *models.Release, matched map[string]string) {
	tbl := newTable("Asset", "Size", "Match", "URL")

	for _, a := range release.Assets {
		tbl.AddRow(a.Name, humanize.Bytes(uint64(a.Size)), matched[a.Name], a.DownloadURL)
	}

	tbl.Print()
}
