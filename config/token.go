package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobuffalo/envy"
)

const (
	TokenEnv  = "GITHUB_TOKEN"
	TokenFile = ".github_token"
)

// Token returns the GitHub token from GITHUB_TOKEN, falling back to
// ~/.github_token. An empty string means anonymous access.
func Token() string {
	if t := strings.TrimSpace(envy.Get(TokenEnv, "")); t != "" {
		return t
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return TokenFromFile(filepath.Join(home, TokenFile))
}

func TokenFromFile(path string) string {
	content, err := ioutil.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(content))
}
