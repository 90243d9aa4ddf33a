package publisher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/scoop-bot/scoop-bot/log"
)

const defaultBranch = "master"

// Git commits and pushes the bucket repository when its working tree changed.
type Git struct {
	RepoPath string
	Remote   string
	Runner   CommandRunner
	Now      func() time.Time
}

func NewGit(repoPath string) *Git {
	return &Git{
		RepoPath: repoPath,
		Remote:   "origin",
		Runner:   ExecRunner{},
		Now:      time.Now,
	}
}

// Publish stages, commits and pushes all changes. It reports whether a
// commit was made.
func (g *Git) Publish(ctx context.Context) (bool, error) {
	status, err := g.git(ctx, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	if strings.TrimSpace(status) == "" {
		log.G(ctx).Info("No changes to commit")
		return false, nil
	}

	if _, err := g.git(ctx, "add", "."); err != nil {
		return false, err
	}
	message := fmt.Sprintf("Updated manifests %s", g.Now().Format(time.RFC3339))
	if _, err := g.git(ctx, "commit", "-m", message); err != nil {
		return false, err
	}

	branch := g.currentBranch(ctx)
	log.G(ctx).Infof("Pushing to branch: %s", branch)
	if _, err := g.git(ctx, "push", g.Remote, branch); err != nil {
		return true, err
	}
	log.G(ctx).Info("Changes committed and pushed successfully")
	return true, nil
}

func (g *Git) currentBranch(ctx context.Context) string {
	out, err := g.git(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	branch := strings.TrimSpace(out)
	if err != nil || branch == "" {
		log.G(ctx).Warnf("Could not determine branch, using %s", defaultBranch)
		return defaultBranch
	}
	return branch
}

func (g *Git) git(ctx context.Context, args ...string) (string, error) {
	log.G(ctx).Debugf("git %s", strings.Join(args, " "))
	out, err := g.Runner.Run(ctx, g.RepoPath, "git", args...)
	if err != nil {
		return string(out), errors.Wrapf(err, "git %s failed: %s", args[0], strings.TrimSpace(string(out)))
	}
	return string(out), nil
}
