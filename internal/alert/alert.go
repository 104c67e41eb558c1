// Package alert sends best-effort desktop notifications through whatever
// the host platform provides. Delivery is never guaranteed and failures
// are deliberately dropped: a missed alert degrades to "no popup", which
// is acceptable everywhere this package is used.
package alert

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Send shows a system notification with the given title and message.
// It returns without error on every platform; callers treat delivery
// as fire-and-forget.
func Send(title, message string) {
	switch runtime.GOOS {
	case "linux":
		exec.Command("notify-send", title, message).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification %q with title %q`, message, title)
		exec.Command("osascript", "-e", script).Run()
	case "windows":
		script := fmt.Sprintf(
			`[System.Reflection.Assembly]::LoadWithPartialName('System.Windows.Forms'); [System.Windows.Forms.MessageBox]::Show('%s', '%s')`,
			message, title,
		)
		exec.Command("powershell", "-Command", script).Run()
	}
}
