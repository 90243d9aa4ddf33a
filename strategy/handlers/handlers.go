package handlers

import (
	"context"
	"sort"
	"strings"

	"github.com/scoop-bot/scoop-bot/models"
	"github.com/scoop-bot/scoop-bot/strategy/generic"
)

// Request carries what a handler knows about the release being packaged.
type Request struct {
	Owner   string
	Repo    string
	Version string
	Release *models.Release
	Hasher  generic.Hasher
}

// A Handler knows the naming scheme of one project and returns the manifest
// fields that override the generic ones.
type Handler interface {
	Generate(ctx context.Context, req *Request) (models.Document, error)
}

type HandlerFunc func(ctx context.Context, req *Request) (models.Document, error)

func (f HandlerFunc) Generate(ctx context.Context, req *Request) (models.Document, error) {
	return f(ctx, req)
}

// Registry maps lower case repository names to handlers.
type Registry struct {
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: map[string]Handler{}}
}

// Register adds h for repo, replacing any handler already registered.
func (r *Registry) Register(repo string, h Handler) {
	r.handlers[strings.ToLower(repo)] = h
}

func (r *Registry) Lookup(repo string) (Handler, bool) {
	h, ok := r.handlers[strings.ToLower(repo)]
	return h, ok
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegisterBuiltins adds the handlers shipped with scoop-bot.
func RegisterBuiltins(r *Registry) {
	r.Register("dive", HandlerFunc(Dive))
	r.Register("svgo", HandlerFunc(SVGO))
}

func checkver(req *Request) map[string]interface{} {
	return map[string]interface{}{
		"github": "https://github.com/" + req.Owner + "/" + req.Repo,
		"regex":  `(?i)releases/tag/v?([\d.]+)`,
	}
}
