package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/hyprbind/hyprbind/cmd/hyprbind/internal/config"
	"github.com/hyprbind/hyprbind/pkg/headless"
	"github.com/hyprbind/hyprbind/pkg/markup"
	"github.com/hyprbind/hyprbind/pkg/platform"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	root := NewRootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func project(t *testing.T, files map[string]string) string {
	t.Helper()
	t.Setenv("HYPRBIND_LIBRARY", "")
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "hyprbind version "+Version) {
		t.Errorf("version output = %q", out)
	}
}

func TestCheckPrintsTree(t *testing.T) {
	dir := project(t, map[string]string{
		"hyprbind.yaml": "app:\n  id: org.example.demo\nwindow:\n  title: Demo\n",
		"main.yaml": `
root:
  - type: column
    children:
      - type: text
        content: hello
      - type: button
        label: Quit
        onClick: quit
`,
	})

	out, _, err := execute(t, "--dir", dir, "check", filepath.Join(dir, "main.yaml"))
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 6 {
		t.Fatalf("output has %d lines, want 6:\n%s", len(lines), out)
	}
	if !strings.HasSuffix(lines[0], ": ok") {
		t.Errorf("first line = %q", lines[0])
	}
	wantPrefixes := []string{"window ", "  element ", "    column layout ", "      text ", "      button "}
	for i, want := range wantPrefixes {
		if !strings.HasPrefix(lines[i+1], want) {
			t.Errorf("line %d = %q, want prefix %q", i+1, lines[i+1], want)
		}
	}
	if !strings.Contains(lines[1], `"Demo"`) {
		t.Errorf("window line %q does not carry the configured title", lines[1])
	}
	if !strings.Contains(lines[4], `"hello"`) || !strings.Contains(lines[5], `"Quit"`) {
		t.Errorf("leaf lines = %q, %q", lines[4], lines[5])
	}
}

func TestCheckRejectsUnknownAction(t *testing.T) {
	dir := project(t, map[string]string{
		"main.yaml": "root:\n  - type: button\n    onClick: launch\n",
	})
	_, _, err := execute(t, "--dir", dir, "check", filepath.Join(dir, "main.yaml"))
	if err == nil || !strings.Contains(err.Error(), "launch") {
		t.Errorf("check = %v, want an unknown action error naming launch", err)
	}
}

func TestLogLevelFlag(t *testing.T) {
	dir := project(t, map[string]string{"hyprbind.yaml": "log:\n  level: error\n"})

	a := &app{dir: dir, logLevel: "debug"}
	if err := a.setup(&bytes.Buffer{}, false); err != nil {
		t.Fatal(err)
	}
	if a.cfg.LogLevel != log.ErrorLevel {
		t.Errorf("level without flag = %v, want the config's error", a.cfg.LogLevel)
	}
	if err := a.setup(&bytes.Buffer{}, true); err != nil {
		t.Fatal(err)
	}
	if a.cfg.LogLevel != log.DebugLevel {
		t.Errorf("level with flag = %v, want debug", a.cfg.LogLevel)
	}

	if _, _, err := execute(t, "--dir", dir, "--log-level", "loud", "check", "x.yaml"); err == nil {
		t.Error("invalid --log-level accepted")
	}
}

func TestRunMissingLibrary(t *testing.T) {
	dir := project(t, map[string]string{"main.yaml": "root: []\n"})
	_, _, err := execute(t, "--dir", dir, "--library", filepath.Join(dir, "missing.so"), "run", filepath.Join(dir, "main.yaml"))
	if err == nil {
		t.Fatal("run succeeded without a native library")
	}
}

// clickInLoop presses the last created button from inside EnterLoop.
type clickInLoop struct {
	*headless.Toolkit
	button             platform.Handle
	destroysInsideLoop int
}

func (c *clickInLoop) CreateButton(p platform.ButtonParams) platform.Handle {
	c.button = c.Toolkit.CreateButton(p)
	return c.button
}

func (c *clickInLoop) EnterLoop(backend platform.Handle) {
	c.Toolkit.Click(c.button)
	c.destroysInsideLoop = c.Toolkit.CallCount("DestroyBackend")
	c.Toolkit.EnterLoop(backend)
}

func TestQuitClosesWindowAndLeavesTeardownToRun(t *testing.T) {
	doc, err := markup.Parse([]byte(`
window:
  title: Demo
root:
  - type: button
    label: Quit
    onClick: quit
`))
	if err != nil {
		t.Fatal(err)
	}
	a := &app{cfg: &config.Resolved{AppID: "org.example.demo"}, logger: log.New(io.Discard)}
	tk := &clickInLoop{Toolkit: headless.New()}

	if err := a.serve(tk, doc, "main.yaml"); err != nil {
		t.Fatalf("serve: %v", err)
	}

	if tk.destroysInsideLoop != 0 {
		t.Error("quit destroyed the backend while its loop was running")
	}
	if n := tk.CallCount("CloseWindow"); n != 1 {
		t.Errorf("CloseWindow calls = %d, want 1", n)
	}
	if n := tk.CallCount("DestroyBackend"); n != 1 {
		t.Errorf("DestroyBackend calls = %d, want 1 after the loop", n)
	}
}
