package adapter

import (
	"errors"
	"log/slog"
	"os/exec"
	"runtime"
)

// ErrNoURL is returned when a record has no image URL to open
var ErrNoURL = errors.New("no URL to open")

// Launcher opens image URLs in an external viewer
type Launcher struct {
	command string   // configured viewer command, empty for system default
	args    []string // additional arguments for the viewer
	goos    string
	logger  *slog.Logger
}

// NewLauncher creates a launcher. An empty command uses the system default
// handler (open / xdg-open / start).
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command: command,
		args:    args,
		goos:    runtime.GOOS,
		logger:  logger,
	}
}

// Launch opens url without waiting for the viewer to exit
func (l *Launcher) Launch(url string) error {
	if url == "" {
		return ErrNoURL
	}

	cmd := l.buildCommand(url)
	l.logger.Info("launching viewer", "command", cmd.Path, "args", cmd.Args[1:])
	return cmd.Start()
}

// buildCommand assembles the viewer invocation; the URL always goes last
func (l *Launcher) buildCommand(url string) *exec.Cmd {
	if l.command != "" {
		args := append(append([]string{}, l.args...), url)
		return exec.Command(l.command, args...)
	}

	switch l.goos {
	case "darwin":
		return exec.Command("open", url)
	case "windows":
		return exec.Command("cmd", "/c", "start", "", url)
	default:
		// Linux and other Unix-like systems
		return exec.Command("xdg-open", url)
	}
}
