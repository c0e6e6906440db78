//go:build unix

package sandbox

import (
	"os/exec"
	"syscall"
)

// setProcGroup places the child in its own process group so a kill also
// reaches anything the interpreter forks.
func setProcGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func killProcGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
}
