package main

import (
	"log"
	"os"
	"os/exec"
	"runtime"
)

// keepAwake is a scoped process-wide resource (§9 Design Notes): acquired
// at the start of a run, released on every exit path. Failure to hold the
// lock is a warning, never an error (§6).
type keepAwake struct {
	cmd *exec.Cmd
}

// acquireKeepAwake makes a best-effort attempt to prevent the OS from
// sleeping for the duration of a long encode. It is intentionally narrow:
// one external command per platform, no dependency on a wake-lock library,
// matching the "straightforward glue" framing in §1.
func acquireKeepAwake(enabled bool) *keepAwake {
	if !enabled {
		return &keepAwake{}
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("caffeinate", "-i")
	case "linux":
		if _, err := exec.LookPath("systemd-inhibit"); err == nil {
			cmd = exec.Command("systemd-inhibit", "--what=sleep", "--why=surroundup encode in progress", "sleep", "infinity")
		}
	}

	if cmd == nil {
		return &keepAwake{}
	}

	if err := cmd.Start(); err != nil {
		log.Printf("[keepawake] warning: failed to acquire wake lock: %v", err)
		return &keepAwake{}
	}

	return &keepAwake{cmd: cmd}
}

// release ends the wake-lock hold, if one was acquired. Safe to call on a
// no-op keepAwake.
func (k *keepAwake) release() {
	if k == nil || k.cmd == nil || k.cmd.Process == nil {
		return
	}
	if err := k.cmd.Process.Signal(os.Interrupt); err != nil {
		_ = k.cmd.Process.Kill()
	}
	_ = k.cmd.Wait()
}
