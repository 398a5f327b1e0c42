package web

import "runtime"

// FindChrome on the FS, returns the binary path and a temp dir for the
// profile.
func FindChrome() (string, string) {
	switch runtime.GOOS {
	case "windows":
		return "C:\\Program Files (x86)\\Google\\Chrome\\Application\\chrome.exe", "C:\\Temp\\uiwait\\"
	case "darwin":
		return "/Applications/Google Chrome.app/Contents/MacOS/Google Chrome", "/tmp/uiwait/"
	case "linux":
		return "/usr/bin/chromium-browser", "/tmp/uiwait/"
	}
	return "", "tmp"
}
