package generic

import (
	"testing"

	"github.com/scoop-bot/scoop-bot/models"
)

func TestFindAsset(t *testing.T) {
	assets := []models.Asset{
		{Name: "Chatbox-0.10.4-arm64.dmg"},
		{Name: "Chatbox-0.10.4-WINDOWS-X64.EXE"},
		{Name: "Chatbox-0.10.4-windows-x64.exe.blockmap"},
		{Name: "dive_0.12.0_windows_amd64.zip"},
	}
	tests := []struct {
		name    string
		pattern string
		want    string
	}{
		{name: "case insensitive", pattern: "windows-x64.exe", want: "Chatbox-0.10.4-WINDOWS-X64.EXE"},
		{name: "first match wins", pattern: "x64", want: "Chatbox-0.10.4-WINDOWS-X64.EXE"},
		{name: "upper case pattern", pattern: "WINDOWS_AMD64.ZIP", want: "dive_0.12.0_windows_amd64.zip"},
		{name: "no match", pattern: "linux", want: ""},
		{name: "empty pattern", pattern: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindAsset(assets, tt.pattern)
			if tt.want == "" {
				if got != nil {
					t.Errorf("FindAsset() = %v, want nil", got.Name)
				}
				return
			}
			if got == nil || got.Name != tt.want {
				t.Errorf("FindAsset() = %v, want %v", got, tt.want)
			}
		})
	}
}
