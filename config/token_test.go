package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/gobuffalo/envy"
)

func TestTokenFromFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "scoop-bot-token")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, TokenFile)
	if err := ioutil.WriteFile(path, []byte("  ghp_secret\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if got := TokenFromFile(path); got != "ghp_secret" {
		t.Errorf("TokenFromFile() = %q, want %q", got, "ghp_secret")
	}
	if got := TokenFromFile(filepath.Join(dir, "missing")); got != "" {
		t.Errorf("TokenFromFile() of missing file = %q, want empty", got)
	}
}

func TestToken_PrefersEnvironment(t *testing.T) {
	old := envy.Get(TokenEnv, "")
	defer envy.Set(TokenEnv, old)

	envy.Set(TokenEnv, " from-env ")
	if got := Token(); got != "from-env" {
		t.Errorf("Token() = %q, want %q", got, "from-env")
	}
}
