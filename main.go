package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/scoop-bot/scoop-bot/bucket"
	"github.com/scoop-bot/scoop-bot/config"
	"github.com/scoop-bot/scoop-bot/log"
	"github.com/scoop-bot/scoop-bot/printer"
	"github.com/scoop-bot/scoop-bot/publisher"
	"github.com/scoop-bot/scoop-bot/scoopgithub"
	"github.com/scoop-bot/scoop-bot/strategy/generic"
)

func main() {
	var repoPath string
	var verbose bool

	app := cli.NewApp()
	app.Name = "scoop-bot"
	app.Usage = "Keep a Scoop bucket in sync with GitHub releases"
	app.Version = "0.1.0"

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:        "repo-path, r",
			Usage:       "Path to the bucket repository",
			Value:       ".",
			Destination: &repoPath,
		}, cli.BoolFlag{
			Name:        "verbose",
			Usage:       "Full debug log",
			Destination: &verbose,
		},
	}

	app.Before = func(c *cli.Context) error {
		log.SetVerbose(verbose)
		return config.NewStore(repoPath).Ensure()
	}

	app.Commands = []cli.Command{
		{
			Name:    "update",
			Aliases: []string{"u"},
			Usage:   "Regenerate manifests for all tracked apps and push the bucket",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "target",
					Usage: "Update only one repo (name or owner/repo)",
				}, cli.BoolFlag{
					Name:  "dry-run",
					Usage: "Render manifests without writing or pushing them",
				},
			},
			Action: func(c *cli.Context) error {
				return update(repoPath, c.String("target"), c.Bool("dry-run"))
			},
		},
		{
			Name:      "track",
			Usage:     "Track a repository",
			ArgsUsage: "owner/repo",
			Flags: []cli.Flag{
				cli.StringSliceFlag{
					Name:  "pattern, p",
					Usage: "Asset pattern as arch=substring, e.g. 64bit=windows-x64.exe",
				},
			},
			Action: func(c *cli.Context) error {
				owner, repo, err := config.SplitKey(c.Args().First())
				if err != nil {
					return err
				}
				patterns, err := parsePatterns(c.StringSlice("pattern"))
				if err != nil {
					return err
				}
				if err := config.NewStore(repoPath).Track(owner, repo, patterns); err != nil {
					return err
				}
				log.L.Infof("Tracking %s/%s", owner, repo)
				return nil
			},
		},
		{
			Name:      "untrack",
			Usage:     "Stop tracking a repository",
			ArgsUsage: "owner/repo",
			Action: func(c *cli.Context) error {
				owner, repo, err := config.SplitKey(c.Args().First())
				if err != nil {
					return err
				}
				return config.NewStore(repoPath).Untrack(owner, repo)
			},
		},
		{
			Name:  "list",
			Usage: "List tracked repositories",
			Action: func(c *cli.Context) error {
				apps, err := config.NewStore(repoPath).Load()
				if err != nil {
					return err
				}
				printer.Tracked(apps)
				return nil
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.L.Fatal(err)
	}
}

func update(repoPath, target string, dryRun bool) error {
	ctx := context.Background()
	token := config.Token()
	if token == "" {
		log.G(ctx).Warn("No GitHub token found, using anonymous access")
	}

	registry, err := bucket.Handlers(ctx, repoPath, nil)
	if err != nil {
		return errors.Wrap(err, "could not load handlers")
	}

	u := &bucket.Updater{
		Store:     config.NewStore(repoPath),
		Releases:  &scoopgithub.Releases{Client: scoopgithub.CreateClient(ctx, token)},
		Hasher:    generic.NewChecksumService(nil, token),
		Handlers:  registry,
		Publisher: publisher.NewGit(repoPath),
		BucketDir: filepath.Join(repoPath, bucket.Dir),
		Target:    target,
		DryRun:    dryRun,
	}

	results, err := u.UpdateManifests(ctx)
	if err != nil {
		return err
	}
	printer.Table(results)
	return nil
}

func parsePatterns(values []string) (map[string]string, error) {
	patterns := map[string]string{}
	for _, v := range values {
		parts := strings.SplitN(v, "=", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, errors.Errorf("invalid pattern %q, expected arch=substring", v)
		}
		patterns[parts[0]] = parts[1]
	}
	return patterns, nil
}
