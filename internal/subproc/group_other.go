//go:build !unix

package subproc

import "os/exec"

// Non-unix hosts are rejected by platform.Detect before any command runs;
// these stubs only keep the package compiling there.
func setProcessGroup(cmd *exec.Cmd) {}

func killGroup(pgid int) {}
