package handlers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/yuin/gluamapper"
	lua "github.com/yuin/gopher-lua"

	"github.com/scoop-bot/scoop-bot/log"
	"github.com/scoop-bot/scoop-bot/models"
	"github.com/scoop-bot/scoop-bot/strategy/generic"
)

// ScriptDir holds Lua handlers, relative to the bucket repository.
const ScriptDir = "scripts/handlers"

// Script is a handler written in Lua. The script sees the globals owner,
// repo, version and tag plus the functions hash(url) and asset(pattern), and
// must assign a table to the global manifest.
type Script struct {
	Path string
}

func (s *Script) Generate(ctx context.Context, req *Request) (models.Document, error) {
	l := lua.NewState()
	defer l.Close()

	tag := ""
	var assets []models.Asset
	if req.Release != nil {
		tag = req.Release.Tag
		assets = req.Release.Assets
	}

	l.SetGlobal("owner", lua.LString(req.Owner))
	l.SetGlobal("repo", lua.LString(req.Repo))
	l.SetGlobal("version", lua.LString(req.Version))
	l.SetGlobal("tag", lua.LString(tag))
	l.SetGlobal("hash", l.NewFunction(func(L *lua.LState) int {
		sha, err := req.Hasher.Sum(ctx, L.CheckString(1))
		if err != nil {
			L.RaiseError("%v", err)
			return 0
		}
		L.Push(lua.LString(sha))
		return 1
	}))
	l.SetGlobal("asset", l.NewFunction(func(L *lua.LState) int {
		asset := generic.FindAsset(assets, L.CheckString(1))
		if asset == nil {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(lua.LString(asset.DownloadURL))
		return 1
	}))

	if err := l.DoFile(s.Path); err != nil {
		return nil, errors.Wrapf(err, "could not run %s", s.Path)
	}

	table, ok := l.GetGlobal("manifest").(*lua.LTable)
	if !ok {
		return nil, errors.Errorf("%s does not set a manifest table", s.Path)
	}
	value := gluamapper.ToGoValue(table, gluamapper.Option{NameFunc: func(name string) string { return name }})
	doc, ok := normalize(value).(map[string]interface{})
	if !ok {
		return nil, errors.Errorf("%s: manifest must be a table with named fields", s.Path)
	}
	return models.Document(doc), nil
}

// LoadScripts registers every *.lua file in dir under its base name. A
// missing dir registers nothing.
func LoadScripts(ctx context.Context, r *Registry, dir string) (int, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return 0, nil
	}
	paths, err := filepath.Glob(filepath.Join(dir, "*.lua"))
	if err != nil {
		return 0, err
	}
	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), ".lua")
		log.G(ctx).Debugf("Registering Lua handler %s from %s", name, path)
		r.Register(name, &Script{Path: path})
	}
	return len(paths), nil
}

func normalize(v interface{}) interface{} {
	switch o := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(o))
		for k, val := range o {
			m[fmt.Sprint(k)] = normalize(val)
		}
		return m
	case []interface{}:
		for i := range o {
			o[i] = normalize(o[i])
		}
		return o
	}
	return v
}
