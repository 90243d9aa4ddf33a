package bucket

import (
	"context"
	"net/http"
	"path/filepath"

	"github.com/scoop-bot/scoop-bot/strategy/handlers"
	"github.com/scoop-bot/scoop-bot/strategy/hashicorp"
)

// Handlers returns the built-in named handlers plus the Lua handlers found
// under repoPath. Lua handlers replace built-ins of the same name.
func Handlers(ctx context.Context, repoPath string, client *http.Client) (*handlers.Registry, error) {
	r := handlers.NewRegistry()
	handlers.RegisterBuiltins(r)

	h := hashicorp.New()
	if client != nil {
		h.Client = client
	}
	h.Register(r)

	if _, err := handlers.LoadScripts(ctx, r, filepath.Join(repoPath, handlers.ScriptDir)); err != nil {
		return nil, err
	}
	return r, nil
}
