//go:build unix

package main

import (
	"os/exec"
	"syscall"
)

// configureDaemonProcess puts crucibled in its own process group so it
// survives the CLI exiting.
func configureDaemonProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}
}
