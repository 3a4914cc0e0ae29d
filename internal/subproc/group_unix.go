//go:build unix

package subproc

import (
	"os/exec"
	"syscall"
)

// setProcessGroup places the child in its own process group so the whole
// group (including grandchildren spawned by installers) can be signalled.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// killGroup terminates a process group. With Setpgid the group ID equals the
// child's pid, so the negative pid addresses the group.
func killGroup(pgid int) {
	_ = syscall.Kill(-pgid, syscall.SIGTERM)
}
