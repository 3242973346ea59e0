package tui

import (
	"errors"
	"os/exec"
	"runtime"
	"strings"
)

// JobLink opens a job's edit page in the local browser.
type JobLink struct {
	BaseURL string
}

func (j JobLink) OpenJob(id string) error {
	if id == "" {
		return errors.New("no job id")
	}
	u := strings.TrimRight(j.BaseURL, "/") + "/jobs/" + id + "/edit"

	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", u).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", u).Start()
	default:
		return exec.Command("xdg-open", u).Start()
	}
}
