package handlers

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/scoop-bot/scoop-bot/models"
)

type fakeHasher struct {
	calls []string
}

func (f *fakeHasher) Sum(ctx context.Context, url string) (string, error) {
	f.calls = append(f.calls, url)
	if strings.Contains(url, "missing") {
		return "", fmt.Errorf("404 for %s", url)
	}
	return strings.Repeat("0", 64), nil
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	RegisterBuiltins(r)

	if _, ok := r.Lookup("Dive"); !ok {
		t.Error("Lookup() should ignore case")
	}
	if _, ok := r.Lookup("chatbox"); ok {
		t.Error("Lookup() found a handler for chatbox")
	}
	if diff := cmp.Diff([]string{"dive", "svgo"}, r.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}

func TestDive(t *testing.T) {
	h := &fakeHasher{}
	got, err := Dive(context.Background(), &Request{Owner: "wagoodman", Repo: "dive", Version: "0.12.0", Hasher: h})
	if err != nil {
		t.Fatalf("Dive() error = %v", err)
	}

	url := "https://github.com/wagoodman/dive/releases/download/v0.12.0/dive_0.12.0_windows_amd64.zip"
	if diff := cmp.Diff([]string{url}, h.calls); diff != "" {
		t.Errorf("hashed urls mismatch (-want +got):\n%s", diff)
	}
	want := map[string]interface{}{
		"64bit": map[string]interface{}{"url": url, "hash": strings.Repeat("0", 64)},
	}
	if diff := cmp.Diff(want, got["architecture"]); diff != "" {
		t.Errorf("Dive() architecture mismatch (-want +got):\n%s", diff)
	}
	if got["bin"] != "dive.exe" {
		t.Errorf("Dive() bin = %v", got["bin"])
	}
}

func TestDive_HashFailure(t *testing.T) {
	_, err := Dive(context.Background(), &Request{Owner: "missing", Repo: "dive", Version: "0.12.0", Hasher: &fakeHasher{}})
	if err == nil {
		t.Error("Dive() should fail when the asset cannot be hashed")
	}
}

func TestSVGO(t *testing.T) {
	got, err := SVGO(context.Background(), &Request{Owner: "svg", Repo: "svgo", Version: "3.2.0"})
	if err != nil {
		t.Fatal(err)
	}
	for key, want := range map[string]interface{}{
		"version":  "3.2.0",
		"license":  "MIT",
		"depends":  "nodejs",
		"bin":      "svgo.cmd",
		"homepage": "https://github.com/svg/svgo",
	} {
		if got[key] != want {
			t.Errorf("SVGO()[%s] = %v, want %v", key, got[key], want)
		}
	}
	if _, ok := got["architecture"]; ok {
		t.Error("SVGO() should not set architecture")
	}
}

func TestHandlerFunc(t *testing.T) {
	var h Handler = HandlerFunc(func(ctx context.Context, req *Request) (models.Document, error) {
		return models.Document{"bin": req.Repo + ".exe"}, nil
	})
	got, err := h.Generate(context.Background(), &Request{Repo: "tool"})
	if err != nil {
		t.Fatal(err)
	}
	if got["bin"] != "tool.exe" {
		t.Errorf("Generate() = %v", got)
	}
}
