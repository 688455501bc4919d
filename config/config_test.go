package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
)

func envMap(vals map[string]string) func(string) string {
	return func(k string) string { return vals[k] }
}

func newTestResolver(t *testing.T, global, local string, env map[string]string) *Resolver {
	t.Helper()
	dir := t.TempDir()

	var globalPath, localPath string
	if global != "" {
		globalPath = filepath.Join(dir, "config.yaml")
		if err := os.WriteFile(globalPath, []byte(global), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	if local != "" {
		localPath = filepath.Join(dir, LocalConfigName)
		if err := os.WriteFile(localPath, []byte(local), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	r := NewResolverWithPaths(globalPath, localPath)
	r.SetErrWriter(nil)
	r.getenv = envMap(env)
	return r
}

func TestResolver_Defaults(t *testing.T) {
	cfg := newTestResolver(t, "", "", nil).Resolve()

	if got := cfg.Get(KeyConfigFilename); got != "pull.yml" {
		t.Errorf("config_filename = %q, want pull.yml", got)
	}
	if got := cfg.Source(KeyDefaultMergeMethod); got != SourceDefault {
		t.Errorf("source = %q, want %q", got, SourceDefault)
	}
	if got := cfg.Get(KeyGitHubToken); got != "" {
		t.Errorf("github_token = %q, want empty", got)
	}
}

func TestResolver_Priority(t *testing.T) {
	r := newTestResolver(t,
		"config_filename: global.yml\ndefault_merge_method: merge\ngithub_api_url: https://ghe.example.com/api/v3/\n",
		"config_filename: local.yml\ndefault_merge_method: squash\n",
		map[string]string{"PULLSYNC_DEFAULT_MERGE_METHOD": "rebase"},
	)

	cfg := r.ResolveWithFlags(map[string]string{KeyConfigFilename: "flag.yml", KeyProvider: ""})

	tests := []struct {
		key     string
		want    string
		wantSrc Source
	}{
		{KeyConfigFilename, "flag.yml", SourceFlag},
		{KeyDefaultMergeMethod, "rebase", SourceEnv},
		{KeyGitHubAPIURL, "https://ghe.example.com/api/v3/", SourceGlobal},
	}
	for _, tt := range tests {
		got, src := cfg.GetWithSource(tt.key)
		if got != tt.want || src != tt.wantSrc {
			t.Errorf("%s = %q (%s), want %q (%s)", tt.key, got, src, tt.want, tt.wantSrc)
		}
	}

	if _, ok := cfg.values[KeyProvider]; ok {
		t.Error("empty flag values must not override")
	}
}

func TestResolver_EnvAliases(t *testing.T) {
	r := newTestResolver(t, "", "", map[string]string{"GITHUB_TOKEN": "ghp_alias"})
	if got := r.Resolve().Get(KeyGitHubToken); got != "ghp_alias" {
		t.Errorf("github_token = %q, want alias value", got)
	}

	r = newTestResolver(t, "", "", map[string]string{
		"GITHUB_TOKEN":          "ghp_alias",
		"PULLSYNC_GITHUB_TOKEN": "ghp_prefixed",
	})
	if got := r.Resolve().Get(KeyGitHubToken); got != "ghp_prefixed" {
		t.Errorf("github_token = %q, prefixed variable should win", got)
	}
}

func TestResolver_LocalIgnoresSecretsAndUnknownKeys(t *testing.T) {
	r := newTestResolver(t, "", "github_token: leaked\nbogus: 1\nconfig_filename: sync.yml\n", nil)

	cfg := r.Resolve()
	if got := cfg.Get(KeyGitHubToken); got != "" {
		t.Errorf("github_token = %q, secrets in local config must be ignored", got)
	}
	if got := cfg.Get("bogus"); got != "" {
		t.Errorf("bogus = %q, want empty", got)
	}
	if got := cfg.Get(KeyConfigFilename); got != "sync.yml" {
		t.Errorf("config_filename = %q", got)
	}
	if len(r.Warnings) != 2 {
		t.Errorf("warnings = %v, want 2", r.Warnings)
	}
}

func TestResolver_MalformedFileWarns(t *testing.T) {
	r := newTestResolver(t, "{not yaml", "", nil)

	cfg := r.Resolve()
	if got := cfg.Get(KeyConfigFilename); got != "pull.yml" {
		t.Errorf("config_filename = %q, defaults should survive", got)
	}
	if len(r.Warnings) != 1 {
		t.Errorf("warnings = %v, want 1", r.Warnings)
	}
}

func TestResolver_NumericValues(t *testing.T) {
	cfg := newTestResolver(t, "app_id: 12345\n", "", nil).Resolve()
	if got := cfg.Get(KeyAppID); got != "12345" {
		t.Errorf("app_id = %q, want 12345", got)
	}
}

func TestNewResolver_FindsGitRoot(t *testing.T) {
	root := t.TempDir()
	if _, err := git.PlainInit(root, false); err != nil {
		t.Fatalf("PlainInit() error = %v", err)
	}
	sub := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	r := NewResolver(sub)

	// Resolve symlinks so temp dirs compare equal on macOS.
	want, _ := filepath.EvalSymlinks(root)
	got, _ := filepath.EvalSymlinks(r.GitRoot())
	if got != want {
		t.Errorf("GitRoot() = %q, want %q", r.GitRoot(), root)
	}
	if r.LocalPath() != filepath.Join(r.GitRoot(), LocalConfigName) {
		t.Errorf("LocalPath() = %q", r.LocalPath())
	}
}

func TestNewResolver_OutsideGit(t *testing.T) {
	r := NewResolver(t.TempDir())
	if r.GitRoot() != "" || r.LocalPath() != "" {
		t.Errorf("GitRoot() = %q, LocalPath() = %q, want empty", r.GitRoot(), r.LocalPath())
	}
}

func TestResolved_Keys(t *testing.T) {
	cfg := newTestResolver(t, "", "", nil).Resolve()
	keys := cfg.Keys()
	if len(keys) != 2 || keys[0] != KeyConfigFilename || keys[1] != KeyDefaultMergeMethod {
		t.Errorf("Keys() = %v", keys)
	}
}

func TestKeyNames(t *testing.T) {
	names := KeyNames()
	if len(names) != len(Keys) {
		t.Fatalf("KeyNames() = %d names, want %d", len(names), len(Keys))
	}
	for _, n := range names {
		if _, ok := LookupKey(n); !ok {
			t.Errorf("LookupKey(%q) failed", n)
		}
	}
	if EnvName(KeyAppID) != "PULLSYNC_APP_ID" {
		t.Errorf("EnvName() = %q", EnvName(KeyAppID))
	}
}

func TestSource_Persisted(t *testing.T) {
	for src, want := range map[Source]bool{
		SourceDefault: false,
		SourceGlobal:  true,
		SourceLocal:   true,
		SourceEnv:     false,
		SourceFlag:    false,
	} {
		if got := src.Persisted(); got != want {
			t.Errorf("%s.Persisted() = %v, want %v", src, got, want)
		}
	}
}
