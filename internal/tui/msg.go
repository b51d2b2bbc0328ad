package tui

import "github.com/runoshun/git-chain/internal/domain"

// Msg is the sealed interface for all TUI messages.
// All message types must implement the sealed() method.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgStatsLoaded is sent when a statistics run finishes.
type MsgStatsLoaded struct {
	Report *domain.StatisticsReport
}

func (MsgStatsLoaded) sealed() {}

// MsgProjectLoaded is sent when the task status of a project is loaded.
type MsgProjectLoaded struct {
	Result *domain.ReconciliationResult
}

func (MsgProjectLoaded) sealed() {}

// MsgError is sent when an error occurs.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}
