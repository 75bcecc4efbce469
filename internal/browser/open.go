// Package browser launches the user's web browser for the Google sign-in.
package browser

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Command builds the command that opens url. $BROWSER, when set, wins over
// the platform default.
func Command(url string) (*exec.Cmd, error) {
	if b := strings.Fields(os.Getenv("BROWSER")); len(b) > 0 {
		return exec.Command(b[0], append(b[1:], url)...), nil
	}
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url), nil
	case "linux", "freebsd", "openbsd":
		return exec.Command("xdg-open", url), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url), nil
	default:
		return nil, fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
}

// Open opens url without waiting for the browser to exit.
func Open(url string) error {
	cmd, err := Command(url)
	if err != nil {
		return err
	}
	return cmd.Start()
}
