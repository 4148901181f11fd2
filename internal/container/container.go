package container

import (
	"log/slog"

	"gorm.io/gorm"

	"imagepdf/internal/compression"
	"imagepdf/internal/config"
	"imagepdf/internal/conversion"
	"imagepdf/internal/imaging"
	"imagepdf/internal/models"
	"imagepdf/internal/services"
	"imagepdf/internal/session"
)

// Container holds all dependencies for the application
type Container struct {
	config *config.Config
	db     *gorm.DB
	logger *slog.Logger

	compressor     *compression.Compressor
	converter      *conversion.Converter
	session        *session.Session
	prefsService   *services.PreferencesService
	historyService *services.HistoryService
}

// New creates a new dependency injection container. db may be nil for
// callers that only convert, such as the CLI.
func New(cfg *config.Config, db *gorm.DB) *Container {
	c := &Container{
		config: cfg,
		db:     db,
		logger: cfg.Logger,
	}

	c.initServices()
	return c
}

func (c *Container) initServices() {
	c.compressor = compression.NewCompressor(
		imaging.NewJPEGEncoder(),
		imaging.NewResizer(),
		c.config.Policy,
		c.logger,
	)
	c.converter = conversion.NewConverter(imaging.NewDecoder(), c.compressor, c.logger)
	c.session = session.New(c.logger)

	if c.db != nil {
		c.prefsService = services.NewPreferencesService(c.db, models.UserPreferencesData{
			PageFormat:  c.config.PageFormat,
			SizeLimitMB: c.config.SizeLimitMB,
			OutputDir:   c.config.OutputDir,
		})
		c.historyService = services.NewHistoryService(c.db)
	}
}

// GetConverter returns the conversion pipeline
func (c *Container) GetConverter() *conversion.Converter {
	return c.converter
}

// GetSession returns the image list
func (c *Container) GetSession() *session.Session {
	return c.session
}

// GetPreferencesService returns the preferences service
func (c *Container) GetPreferencesService() *services.PreferencesService {
	return c.prefsService
}

// GetHistoryService returns the history service
func (c *Container) GetHistoryService() *services.HistoryService {
	return c.historyService
}

// GetConfig returns the application configuration
func (c *Container) GetConfig() *config.Config {
	return c.config
}
