package install

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// Mode identifies how privileged commands are run.
type Mode string

const (
	// ModeRoot runs commands directly; the process already has privileges.
	ModeRoot Mode = "root"
	// ModeSudoNoPasswd prefixes commands with "sudo -n".
	ModeSudoNoPasswd Mode = "sudo-nopasswd"
	// ModeSudo prefixes commands with "sudo" and may prompt for a password.
	ModeSudo Mode = "sudo"
	// ModeDoas prefixes commands with "doas".
	ModeDoas Mode = "doas"
	// ModeNone means no elevation mechanism is available.
	ModeNone Mode = "none"
)

// Elevator runs commands with elevated privileges using the mechanism
// resolved at construction time.
type Elevator struct {
	Mode Mode

	// run executes the prepared command; overridden in tests.
	run func(*exec.Cmd) error
}

// ResolveElevator probes the environment once and settles on a mechanism,
// in preference order: already root, passwordless sudo, interactive sudo,
// doas, nothing.
func ResolveElevator() *Elevator {
	if os.Geteuid() == 0 {
		return &Elevator{Mode: ModeRoot}
	}
	if _, err := exec.LookPath("sudo"); err == nil {
		// "sudo -n true" succeeds only when no password prompt is needed.
		if exec.Command("sudo", "-n", "true").Run() == nil {
			return &Elevator{Mode: ModeSudoNoPasswd}
		}
		return &Elevator{Mode: ModeSudo}
	}
	if _, err := exec.LookPath("doas"); err == nil {
		return &Elevator{Mode: ModeDoas}
	}
	return &Elevator{Mode: ModeNone}
}

// Run executes name with args under the resolved mechanism. Interactive
// mechanisms inherit the terminal so password prompts reach the user.
func (e *Elevator) Run(ctx context.Context, name string, args ...string) error {
	var cmd *exec.Cmd
	switch e.Mode {
	case ModeRoot:
		cmd = exec.CommandContext(ctx, name, args...)
	case ModeSudoNoPasswd:
		cmd = exec.CommandContext(ctx, "sudo", append([]string{"-n", name}, args...)...)
	case ModeSudo:
		cmd = exec.CommandContext(ctx, "sudo", append([]string{name}, args...)...)
	case ModeDoas:
		cmd = exec.CommandContext(ctx, "doas", append([]string{name}, args...)...)
	default:
		return fmt.Errorf("no elevation mechanism available")
	}

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr

	runner := e.run
	if runner == nil {
		runner = (*exec.Cmd).Run
	}
	if err := runner(cmd); err != nil {
		return fmt.Errorf("%s %s: %w", name, e.Mode, err)
	}
	return nil
}
