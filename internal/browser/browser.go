package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// IndexURL is the public Fear and Greed Index page.
const IndexURL = "https://edition.cnn.com/markets/fear-and-greed"

// Launcher starts the platform URL handler. Replaced in tests.
var Launcher = func(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Open validates rawURL and hands it to the system browser.
func Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open URL with scheme %q (only http/https allowed)", u.Scheme)
	}
	name, args := command(runtime.GOOS, rawURL)
	return Launcher(name, args...)
}

func command(goos, rawURL string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{rawURL}
	case "windows":
		// Use rundll32 instead of cmd /c start to avoid shell interpretation
		return "rundll32", []string{"url.dll,FileProtocolHandler", rawURL}
	default:
		return "xdg-open", []string{rawURL}
	}
}
