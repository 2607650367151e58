package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/storyswift/pkg/pipeline"
)

const loginStoryboard = `<document>
  <scenes>
    <scene sceneID="s1">
      <objects>
        <navigationController id="nav">
          <connections>
            <segue destination="vc1" kind="relationship" relationship="rootViewController" id="r1"/>
          </connections>
        </navigationController>
        <viewController storyboardIdentifier="Login" id="vc1">
          <view key="view" id="v1">
            <subviews>
              <label text="Welcome" id="l1">
                <rect key="frame" x="0" y="40" width="200" height="30"/>
              </label>
            </subviews>
          </view>
          <connections>
            <segue destination="vc2" kind="show" id="s1"/>
          </connections>
        </viewController>
        <viewController storyboardIdentifier="Home" id="vc2"/>
      </objects>
    </scene>
  </scenes>
</document>`

// writeDescriptor writes body to dir/name and returns the path.
func writeDescriptor(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestCLI(t *testing.T) (*CLI, context.Context) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	return c, withLogger(context.Background(), c.Logger)
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c, _ := newTestCLI(t)
	root := c.RootCommand()

	for _, name := range []string{"convert", "inspect", "graph", "serve", "cache", "completion"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRootCommandLoadsConfig(t *testing.T) {
	t.Setenv("STORYSWIFT_MODE", "")
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	path := writeDescriptor(t, t.TempDir(), "storyswift.toml", "[generate]\nmode = \"flat\"\n")

	c, _ := newTestCLI(t)
	root := c.RootCommand()
	root.SetArgs([]string{"--config", path, "cache", "path"})
	root.SetOut(io.Discard)
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if c.Config().Generate.Mode != pipeline.ModeFlat {
		t.Errorf("Mode = %s, want flat from the config file", c.Config().Generate.Mode)
	}
}

func TestRootCommandRejectsBadConfig(t *testing.T) {
	path := writeDescriptor(t, t.TempDir(), "storyswift.toml", "[generate]\nmode = \"grid\"\n")

	c, _ := newTestCLI(t)
	root := c.RootCommand()
	root.SetArgs([]string{"--config", path, "cache", "path"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	if err := root.Execute(); err == nil {
		t.Error("Execute() should fail on an invalid mode")
	}
}
