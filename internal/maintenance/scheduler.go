// Package maintenance runs scheduled upkeep against the SQLite database.
package maintenance

import (
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/jwhulst/userbase/internal/config"
	"github.com/jwhulst/userbase/internal/database"
)

const defaultSchedule = "0 4 * * *"

// Manager schedules periodic database maintenance.
type Manager struct {
	db          *database.DB
	cron        *cron.Cron
	cronEntryID cron.EntryID
	mu          sync.Mutex
	running     bool

	enabled  bool
	schedule string
	vacuum   bool
}

// NewManager creates a new maintenance manager
func NewManager(db *database.DB) *Manager {
	return &Manager{
		db:   db,
		cron: cron.New(),
	}
}

// Start loads the schedule from settings and starts the cron scheduler.
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return nil
	}

	loader := config.NewLoader(m.db)
	m.enabled = loader.Bool("maintenance.enabled", true)
	m.schedule = loader.String("maintenance.schedule", defaultSchedule)
	m.vacuum = loader.Bool("maintenance.vacuum", false)

	m.cron.Start()
	m.running = true

	if m.enabled {
		entryID, err := m.cron.AddFunc(m.schedule, m.run)
		if err != nil {
			log.Warn().Err(err).Str("schedule", m.schedule).Msg("Failed to set maintenance schedule")
		} else {
			m.cronEntryID = entryID
		}
	}

	log.Info().
		Bool("enabled", m.enabled).
		Str("schedule", m.schedule).
		Bool("vacuum", m.vacuum).
		Msg("Maintenance manager started")

	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (m *Manager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return nil
	}

	ctx := m.cron.Stop()
	<-ctx.Done()

	m.running = false
	log.Info().Msg("Maintenance manager stopped")

	return nil
}

// RunNow executes one maintenance pass outside the schedule.
func (m *Manager) RunNow() {
	m.run()
}

func (m *Manager) run() {
	log.Debug().Msg("Running database maintenance")

	if err := m.db.Optimize(); err != nil {
		log.Error().Err(err).Msg("Database optimize failed")
	}

	if m.vacuum {
		if err := m.db.Vacuum(); err != nil {
			log.Error().Err(err).Msg("Database vacuum failed")
		}
	}
}
