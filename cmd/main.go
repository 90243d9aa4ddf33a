package main

import (
	"context"
	"net/url"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/scoop-bot/scoop-bot/config"
	"github.com/scoop-bot/scoop-bot/log"
	"github.com/scoop-bot/scoop-bot/printer"
	"github.com/scoop-bot/scoop-bot/scoopgithub"
	"github.com/scoop-bot/scoop-bot/strategy/generic"
)

// Lists the assets of the latest release of a repository, to help pick
// patterns before tracking it.
func main() {
	var verbose bool
	var githubPath string

	app := cli.NewApp()
	app.Name = "scoop-bot-assets"
	app.Version = "0.1.0"

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:        "project, p",
			Usage:       "github url or owner/repo",
			Destination: &githubPath,
			Required:    true,
		}, cli.StringSliceFlag{
			Name:  "pattern",
			Usage: "Show which asset a pattern selects, e.g. 64bit=windows-x64.exe",
		}, cli.BoolFlag{
			Name:        "verbose",
			Usage:       "Full debug log",
			Destination: &verbose,
		},
	}

	app.Action = func(c *cli.Context) error {
		ctx := context.Background()

		if verbose {
			log.G(ctx).Logger.SetLevel(logrus.DebugLevel)
		}

		owner, repo, err := parseProject(githubPath)
		if err != nil {
			return err
		}

		releases := &scoopgithub.Releases{Client: scoopgithub.CreateClient(ctx, config.Token())}
		release, err := releases.LatestRelease(ctx, owner, repo)
		if err != nil {
			return err
		}
		if release == nil {
			return errors.Errorf("no release found for %s/%s", owner, repo)
		}
		log.G(ctx).Infof("Latest version of %s/%s: %s", owner, repo, release.Tag)

		matched := map[string]string{}
		for _, p := range c.StringSlice("pattern") {
			parts := strings.SplitN(p, "=", 2)
			label, pattern := parts[0], parts[len(parts)-1]
			if asset := generic.FindAsset(release.Assets, pattern); asset != nil {
				matched[asset.Name] = strings.TrimPrefix(matched[asset.Name]+","+label, ",")
			} else {
				log.G(ctx).Warnf("No asset matching %q for %s", pattern, label)
			}
		}

		printer.Assets(release, matched)
		return nil
	}

	err := app.Run(os.Args)
	if err != nil {
		log.L.Fatal(err)
	}
}

func parseProject(project string) (string, string, error) {
	if strings.Contains(project, "://") {
		u, err := url.Parse(project)
		if err != nil {
			return "", "", err
		}
		project = strings.Trim(u.Path, "/")
	}
	parts := strings.Split(project, "/")
	if len(parts) < 2 {
		return "", "", errors.Errorf("invalid project %q", project)
	}
	return config.SplitKey(parts[0] + "/" + parts[1])
}
