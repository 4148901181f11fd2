package application

import (
	"log/slog"

	"imagepdf/internal/services"
	"imagepdf/internal/transport"
)

type StatsManager struct {
	history *services.HistoryService
	events  transport.EventEmitter
	logger  *slog.Logger
}

func NewStatsManager(history *services.HistoryService, events transport.EventEmitter, logger *slog.Logger) *StatsManager {
	return &StatsManager{
		history: history,
		events:  events,
		logger:  logger,
	}
}

// UpdateStats recomputes the session totals and pushes them to the frontend.
func (m *StatsManager) UpdateStats() {
	stats := m.GetStats()
	m.events.Emit(transport.EventStatsUpdate, stats)
}

func (m *StatsManager) GetStats() *AppStats {
	stats, err := m.history.Stats()
	if err != nil {
		m.logger.Error("Failed to load session stats", "error", err)
		return &AppStats{}
	}
	return stats
}
