package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/scoop-bot/scoop-bot/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir, err := ioutil.TempDir("", "scoop-bot-config")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	s := NewStore(dir)
	if err := s.Ensure(); err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}
	return s
}

func TestStore_Ensure(t *testing.T) {
	s := newTestStore(t)

	content, err := ioutil.ReadFile(s.Path)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(content), "apps: {}\n"; got != want {
		t.Errorf("Ensure() wrote %q, want %q", got, want)
	}

	if err := s.Track("Bin-Huang", "chatbox", map[string]string{"64bit": "windows-x64.exe"}); err != nil {
		t.Fatal(err)
	}
	// A second Ensure must not wipe existing apps.
	if err := s.Ensure(); err != nil {
		t.Fatal(err)
	}
	apps, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(apps) != 1 {
		t.Errorf("Load() returned %d apps, want 1", len(apps))
	}
	if filepath.Base(filepath.Dir(s.Path)) != "scripts" {
		t.Errorf("config stored in %s, want scripts/", s.Path)
	}
}

func TestStore_TrackTwiceOverwrites(t *testing.T) {
	s := newTestStore(t)

	if err := s.Track("wagoodman", "dive", map[string]string{"64bit": "windows_amd64.zip", "32bit": "windows_386.zip"}); err != nil {
		t.Fatal(err)
	}
	apps, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	MarkChecked(apps[0], "2024-01-02T03:04:05Z")
	if err := s.Save(apps); err != nil {
		t.Fatal(err)
	}

	if err := s.Track("wagoodman", "dive", map[string]string{"64bit": "amd64.zip"}); err != nil {
		t.Fatal(err)
	}
	apps, err = s.Load()
	if err != nil {
		t.Fatal(err)
	}

	want := []*models.TrackedApp{{
		Owner:    "wagoodman",
		Repo:     "dive",
		Patterns: map[string]string{"64bit": "amd64.zip"},
	}}
	if diff := cmp.Diff(want, apps); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_MarkCheckedRoundTrip(t *testing.T) {
	s := newTestStore(t)

	if err := s.Track("svg", "svgo", map[string]string{"64bit": "npm"}); err != nil {
		t.Fatal(err)
	}
	apps, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if apps[0].LastChecked != nil {
		t.Fatalf("LastChecked = %v, want nil", *apps[0].LastChecked)
	}
	MarkChecked(apps[0], "2024-05-06T07:08:09Z")
	if err := s.Save(apps); err != nil {
		t.Fatal(err)
	}

	apps, err = s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if apps[0].LastChecked == nil || *apps[0].LastChecked != "2024-05-06T07:08:09Z" {
		t.Errorf("LastChecked = %v, want 2024-05-06T07:08:09Z", apps[0].LastChecked)
	}
}

func TestStore_LoadIsSorted(t *testing.T) {
	s := newTestStore(t)

	for _, key := range [][2]string{{"wagoodman", "dive"}, {"Bin-Huang", "chatbox"}, {"svg", "svgo"}} {
		if err := s.Track(key[0], key[1], nil); err != nil {
			t.Fatal(err)
		}
	}
	apps, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	got := []string{}
	for _, app := range apps {
		got = append(got, app.FullName())
	}
	want := []string{"Bin-Huang/chatbox", "svg/svgo", "wagoodman/dive"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() order mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_Untrack(t *testing.T) {
	s := newTestStore(t)

	if err := s.Track("wagoodman", "dive", nil); err != nil {
		t.Fatal(err)
	}
	if err := s.Untrack("wagoodman", "dive"); err != nil {
		t.Fatalf("Untrack() error = %v", err)
	}
	if err := s.Untrack("wagoodman", "dive"); err == nil {
		t.Error("Untrack() of unknown app should fail")
	}
	apps, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(apps) != 0 {
		t.Errorf("Load() returned %d apps, want 0", len(apps))
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		owner   string
		repo    string
		want    string
		wantErr bool
	}{
		{owner: "svg", repo: "svgo", want: "svg/svgo"},
		{owner: " svg ", repo: "svgo ", want: "svg/svgo"},
		{owner: "", repo: "svgo", wantErr: true},
		{owner: "svg", repo: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.owner+"/"+tt.repo, func(t *testing.T) {
			got, err := Key(tt.owner, tt.repo)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Key() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Key() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSplitKey(t *testing.T) {
	owner, repo, err := SplitKey("OpenVPN/openvpn-build")
	if err != nil {
		t.Fatal(err)
	}
	if owner != "OpenVPN" || repo != "openvpn-build" {
		t.Errorf("SplitKey() = %s, %s", owner, repo)
	}
	for _, bad := range []string{"openvpn", "a/b/c", "/b", "a/"} {
		if _, _, err := SplitKey(bad); err == nil {
			t.Errorf("SplitKey(%q) should fail", bad)
		}
	}
}
