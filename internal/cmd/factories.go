package cmd

import (
	"fmt"
	"io"

	adapterexecutor "github.com/renato0307/remux/internal/adapters/executor"
	adapterstorage "github.com/renato0307/remux/internal/adapters/storage"
	"github.com/renato0307/remux/internal/config"
	"github.com/renato0307/remux/internal/devserver"
	"github.com/renato0307/remux/internal/logging"
	"github.com/renato0307/remux/internal/paths"
	"github.com/renato0307/remux/internal/ports"
	"github.com/renato0307/remux/internal/services"
	"github.com/renato0307/remux/internal/session"
)

// Container holds all dependencies for the application
type Container struct {
	Config     *config.Config
	Executor   ports.InteractiveExecutor
	Target     config.Target
	TargetName string

	// Services
	SessionService *services.SessionService

	// Internal - for cleanup only
	runRepo ports.RunRepository
}

// NewContainer creates a new Container for the target named by targetName
func NewContainer(cfg *config.Config, targetName string) (*Container, error) {
	name, target, err := cfg.ResolveTarget(targetName)
	if err != nil {
		return nil, err
	}

	executor, err := newExecutor(target)
	if err != nil {
		return nil, fmt.Errorf("target %s: %w", name, err)
	}

	// History is optional; remux works without a writable home
	var runs ports.RunRepository
	repo, err := adapterstorage.NewSQLiteRepository(paths.GetDBPath())
	if err != nil {
		logging.Logger.Warn("Run history disabled", "error", err)
	} else {
		runs = repo
	}

	registry := session.NewRegistry(executor, session.Config{
		DefaultCwd: cfg.Defaults.Workdir,
		StateDir:   cfg.Defaults.StateDir,
	})

	return &Container{
		Config:         cfg,
		Executor:       executor,
		SessionService: services.NewSessionService(registry, runs, name),
		Target:         target,
		TargetName:     name,
		runRepo:        runs,
	}, nil
}

func newExecutor(target config.Target) (ports.InteractiveExecutor, error) {
	switch target.Kind {
	case config.KindSSH:
		return adapterexecutor.NewSSH(adapterexecutor.SSHConfig{
			Host:                  target.Host,
			IdentityFile:          target.IdentityFile,
			InsecureIgnoreHostKey: target.InsecureIgnoreHostKey,
			KnownHostsFile:        target.KnownHostsFile,
			Port:                  target.Port,
			Timeout:               target.Timeout,
			User:                  target.User,
		})
	case config.KindLocal, "":
		return adapterexecutor.NewLocal(target.Shell), nil
	}
	return nil, fmt.Errorf("unknown target kind %q", target.Kind)
}

// DevServer returns the dev server for unit, running in ptySession when set
func (c *Container) DevServer(unit, ptySession string) (*devserver.Server, error) {
	if unit == "" {
		unit = c.Config.Defaults.JournalUnit
	}
	cfg := devserver.Config{
		PollInterval: c.Config.Defaults.LogPollInterval,
		Unit:         unit,
	}
	if ptySession != "" {
		binding, err := session.NewBinding(session.Binding{ID: ptySession, Workdir: c.Config.Defaults.Workdir})
		if err != nil {
			return nil, err
		}
		cfg.Pty = &binding
	}
	return devserver.New(c.Executor, c.SessionService.Registry(), cfg), nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var firstErr error
	if closer, ok := c.Executor.(io.Closer); ok {
		firstErr = closer.Close()
	}
	if c.runRepo != nil {
		if err := c.runRepo.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
