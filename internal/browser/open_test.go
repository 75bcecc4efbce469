package browser

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestCommandHonoursBrowserEnv(t *testing.T) {
	t.Setenv("BROWSER", "firefox --new-tab")
	cmd, err := Command("http://localhost:3001/auth/google")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(cmd.Path) != "firefox" && cmd.Args[0] != "firefox" {
		t.Errorf("command = %q, want firefox", cmd.Path)
	}
	want := []string{"firefox", "--new-tab", "http://localhost:3001/auth/google"}
	if len(cmd.Args) != len(want) {
		t.Fatalf("args = %q, want %q", cmd.Args, want)
	}
	for i := range want {
		if cmd.Args[i] != want[i] {
			t.Errorf("args[%d] = %q, want %q", i, cmd.Args[i], want[i])
		}
	}
}

func TestCommandPlatformDefault(t *testing.T) {
	t.Setenv("BROWSER", "")
	cmd, err := Command("http://example.com")
	switch runtime.GOOS {
	case "darwin", "linux", "freebsd", "openbsd", "windows":
		if err != nil {
			t.Fatal(err)
		}
		if last := cmd.Args[len(cmd.Args)-1]; last != "http://example.com" {
			t.Errorf("last arg = %q", last)
		}
	default:
		if err == nil {
			t.Error("expected unsupported OS error")
		}
	}
}
