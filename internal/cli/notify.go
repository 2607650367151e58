package cli

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// notifyCommand returns the program and arguments that show a desktop
// notification on goos, or false when goos has no notifier.
func notifyCommand(goos, title, body string) (string, []string, bool) {
	switch goos {
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s" sound name "default"`,
			appleScriptEscape(body), appleScriptEscape(title))
		return "osascript", []string{"-e", script}, true
	case "linux", "freebsd", "openbsd":
		return "notify-send", []string{"--app-name=" + appName, title, body}, true
	}
	return "", nil, false
}

func appleScriptEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

// notify shows a desktop notification. Platforms without a notifier are
// silently skipped.
func notify(ctx context.Context, title, body string) error {
	name, args, ok := notifyCommand(runtime.GOOS, title, body)
	if !ok {
		return nil
	}
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("notify: %s not found", name)
	}
	if out, err := exec.CommandContext(ctx, name, args...).CombinedOutput(); err != nil {
		return fmt.Errorf("notify failed: %s (%w)", strings.TrimSpace(string(out)), err)
	}
	return nil
}

// openCommand returns the program that opens a folder in the file
// manager on goos.
func openCommand(goos string) (string, bool) {
	switch goos {
	case "darwin":
		return "open", true
	case "linux", "freebsd", "openbsd":
		return "xdg-open", true
	}
	return "", false
}

// openFolder reveals dir in the platform file manager.
func openFolder(ctx context.Context, dir string) error {
	name, ok := openCommand(runtime.GOOS)
	if !ok {
		return fmt.Errorf("opening folders is not supported on %s", runtime.GOOS)
	}
	if out, err := exec.CommandContext(ctx, name, dir).CombinedOutput(); err != nil {
		return fmt.Errorf("open failed: %s (%w)", strings.TrimSpace(string(out)), err)
	}
	return nil
}
