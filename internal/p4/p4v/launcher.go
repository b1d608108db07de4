package p4v

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/Cyclone1070/p4bridge/internal/config"
	"github.com/Cyclone1070/p4bridge/internal/p4/executor"
	"github.com/sirupsen/logrus"
)

// Launcher starts GUI helper processes without waiting for them.
type Launcher struct {
	p4       string
	p4v      string
	p4vc     string
	compare  string
	settings string
	fs       FileSystem
	lookPath func(string) (string, error)
	start    func(*exec.Cmd) error
	log      logrus.FieldLogger
}

// NewLauncher creates a Launcher for the configured executables.
func NewLauncher(cfg *config.Config, log logrus.FieldLogger) *Launcher {
	if cfg == nil {
		panic("cfg is required")
	}
	if log == nil {
		panic("log is required")
	}
	return &Launcher{
		p4:       cfg.P4.Executable,
		p4v:      cfg.P4.P4VExecutable,
		p4vc:     cfg.P4.P4VCExecutable,
		compare:  cfg.P4.CompareTool,
		settings: cfg.P4.SettingsFile,
		fs:       OSFileSystem{},
		lookPath: exec.LookPath,
		start:    startDetached,
		log:      log,
	}
}

// SettingsPath returns the configured settings file or the per-user default.
func (l *Launcher) SettingsPath() string {
	if l.settings != "" {
		return l.settings
	}
	return SettingsPath(l.fs)
}

// Settings loads the GUI settings. Failures are logged and yield empty Settings.
func (l *Launcher) Settings() *Settings {
	path := l.SettingsPath()
	s, err := LoadSettings(l.fs, path)
	if err != nil {
		l.log.WithError(err).Warn("ignoring unreadable p4v settings")
		return &Settings{}
	}
	return s
}

// InstallFolder returns the directory holding the CLI executable on PATH, or "".
func (l *Launcher) InstallFolder() string {
	path, err := l.lookPath(l.p4)
	if err != nil {
		return ""
	}
	return filepath.Dir(path)
}

// P4VCCommand returns the program and arguments used to run a p4vc
// subcommand: the standalone p4vc when it is installed beside the CLI,
// otherwise "p4v -p4vc".
func (l *Launcher) P4VCCommand(args []string) (string, []string) {
	if dir := l.InstallFolder(); dir != "" {
		candidate := filepath.Join(dir, l.p4vc)
		if runtime.GOOS == "windows" && filepath.Ext(candidate) == "" {
			candidate += ".exe"
		}
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return l.p4vc, append([]string(nil), args...)
		}
	}
	return l.p4v, append([]string{"-p4vc"}, args...)
}

// StartP4VC launches a p4vc subcommand, e.g. "timelapse" or "revisiongraph".
func (l *Launcher) StartP4VC(args ...string) error {
	program, argv := l.P4VCCommand(args)
	return l.launch(program, argv)
}

// CompareTool returns the diff tool from the GUI settings or the configured default.
func (l *Launcher) CompareTool() string {
	return l.Settings().CompareTool(l.compare)
}

// StartCompare launches the diff tool on params.
func (l *Launcher) StartCompare(params CompareParams) error {
	tool := l.CompareTool()
	return l.launch(tool, params.Args(tool))
}

func (l *Launcher) launch(program string, args []string) error {
	l.log.WithField("command", executor.FormatCommandLine(program, args)).Info("launching")
	cmd := exec.Command(program, args...)
	if err := l.start(cmd); err != nil {
		return &LaunchError{Program: program, Cause: err}
	}
	return nil
}

// startDetached starts cmd and reaps it in the background.
func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
