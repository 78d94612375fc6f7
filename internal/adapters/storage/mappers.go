package storage

import (
	"github.com/renato0307/remux/internal/ports"
)

// runModelToPort converts a RunModel (GORM) to ports.Run
func runModelToPort(m RunModel) ports.Run {
	return ports.Run{
		Command:    m.Command,
		CreatedAt:  m.CreatedAt,
		Cwd:        m.Cwd,
		Error:      m.Error,
		ExitCode:   m.ExitCode,
		FinishedAt: m.FinishedAt,
		ID:         m.ID,
		SessionID:  m.SessionID,
		State:      ports.RunState(m.State),
		Target:     m.Target,
	}
}

// portToRunModel converts a ports.Run to RunModel (GORM)
func portToRunModel(r ports.Run) RunModel {
	state := string(r.State)
	if state == "" {
		state = string(ports.RunCreated)
	}
	return RunModel{
		Command:    r.Command,
		CreatedAt:  r.CreatedAt,
		Cwd:        r.Cwd,
		Error:      r.Error,
		ExitCode:   r.ExitCode,
		FinishedAt: r.FinishedAt,
		ID:         r.ID,
		SessionID:  r.SessionID,
		State:      state,
		Target:     r.Target,
	}
}
