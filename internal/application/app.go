package application

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"imagepdf/internal/config"
	"imagepdf/internal/container"
	"imagepdf/internal/database"
	"imagepdf/internal/document"
	"imagepdf/internal/models"
	"imagepdf/internal/transport"
)

type App struct {
	ctx         context.Context
	config      *config.Config
	db          *gorm.DB
	container   *container.Container
	dialogs     transport.DialogHandler
	events      transport.EventEmitter
	preferences *PreferencesHandler
	images      *ImagesHandler
	converter   *ConvertHandler
	stats       *StatsManager
	logger      *slog.Logger
}

func NewApp() *App {
	return &App{}
}

func (a *App) OnStartup(ctx context.Context) {
	cfg := config.New()

	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		cfg.Logger.Error("Failed to initialize database", "error", err)
		return
	}

	a.setup(ctx, cfg, db, transport.NewDialogsHandler(ctx), transport.NewEventEmitter(ctx))

	cfg.Logger.Info("Wails app initialized successfully")
	cfg.Logger.Info("Application configuration",
		"output_directory", cfg.OutputDir,
		"page_format", cfg.PageFormat,
		"size_limit_mb", cfg.SizeLimitMB,
		"max_dimension", cfg.Policy.MaxDimension)
}

func (a *App) OnShutdown(ctx context.Context) {
	if a.db == nil {
		return
	}
	if err := database.Close(a.db); err != nil {
		a.logger.Error("Failed to close database", "error", err)
	}
}

func (a *App) setup(ctx context.Context, cfg *config.Config, db *gorm.DB, dialogs transport.DialogHandler, events transport.EventEmitter) {
	a.ctx = ctx
	a.config = cfg
	a.db = db
	a.logger = cfg.Logger
	a.dialogs = dialogs
	a.events = events
	a.container = container.New(cfg, db)

	a.stats = NewStatsManager(a.container.GetHistoryService(), events, cfg.Logger)
	a.preferences = NewPreferencesHandler(a.container.GetPreferencesService())
	a.images = NewImagesHandler(ctx, a.container.GetSession())
	a.converter = &ConvertHandler{
		ctx:       ctx,
		config:    cfg,
		session:   a.container.GetSession(),
		converter: a.container.GetConverter(),
		prefs:     a.container.GetPreferencesService(),
		history:   a.container.GetHistoryService(),
		stats:     a.stats,
		events:    events,
		logger:    cfg.Logger,
		now:       time.Now,
	}
}

func (a *App) ready() bool {
	return a.container != nil
}

func (a *App) AddFiles(paths []string) ImagesResponse {
	if !a.ready() {
		return ImagesResponse{Error: ErrNotInitialized.Error()}
	}
	return a.images.AddFiles(paths)
}

func (a *App) AddFileData(uploads []FileUpload) ImagesResponse {
	if !a.ready() {
		return ImagesResponse{Error: ErrNotInitialized.Error()}
	}
	return a.images.AddFileData(uploads)
}

func (a *App) RemoveImage(id string) ImagesResponse {
	if !a.ready() {
		return ImagesResponse{Error: ErrNotInitialized.Error()}
	}
	return a.images.Remove(id)
}

func (a *App) MoveImage(from, to int) ImagesResponse {
	if !a.ready() {
		return ImagesResponse{Error: ErrNotInitialized.Error()}
	}
	return a.images.Move(from, to)
}

func (a *App) ClearImages() ImagesResponse {
	if !a.ready() {
		return ImagesResponse{Error: ErrNotInitialized.Error()}
	}
	return a.images.Clear()
}

func (a *App) ListImages() ImagesResponse {
	if !a.ready() {
		return ImagesResponse{Error: ErrNotInitialized.Error()}
	}
	return a.images.List()
}

func (a *App) ListPageFormats() []document.PageFormat {
	return document.PageFormats()
}

func (a *App) Convert(request ConvertRequest) ConvertResponse {
	if !a.ready() {
		return ConvertResponse{Error: ErrNotInitialized.Error()}
	}
	return a.converter.Convert(request)
}

func (a *App) GetPreferences() (*models.UserPreferencesData, error) {
	if !a.ready() {
		return nil, ErrNotInitialized
	}
	return a.preferences.GetPreferences()
}

func (a *App) UpdatePreferences(data map[string]interface{}) error {
	if !a.ready() {
		return ErrNotInitialized
	}
	return a.preferences.UpdatePreferences(data)
}

func (a *App) OpenFileDialog() ([]string, error) {
	if a.dialogs == nil {
		return nil, ErrNotInitialized
	}
	return a.dialogs.OpenFileDialog()
}

func (a *App) OpenDirectoryDialog() (string, error) {
	if a.dialogs == nil {
		return "", ErrNotInitialized
	}
	return a.dialogs.OpenDirectoryDialog()
}

func (a *App) ShowSaveDialog(filename string) (string, error) {
	if a.dialogs == nil {
		return "", ErrNotInitialized
	}
	return a.dialogs.ShowSaveDialog(filename)
}

func (a *App) OpenFile(filePath string) error {
	if a.dialogs == nil {
		return ErrNotInitialized
	}
	return a.dialogs.OpenFile(filePath)
}

func (a *App) GetStats() *AppStats {
	if !a.ready() {
		return &AppStats{}
	}
	return a.stats.GetStats()
}

func (a *App) GetHistory(limit int) ([]models.ConversionRecord, error) {
	if !a.ready() {
		return nil, ErrNotInitialized
	}
	return a.container.GetHistoryService().List(limit)
}

func (a *App) GetAppStatus() map[string]interface{} {
	if !a.ready() {
		return map[string]interface{}{
			"status":   "starting",
			"app_name": config.AppName,
		}
	}

	return map[string]interface{}{
		"status":           "running",
		"framework":        "Wails",
		"app_name":         config.AppName,
		"images_in_list":   a.container.GetSession().Len(),
		"output_directory": a.config.OutputDir,
		"page_formats":     document.PageFormatNames(),
		"max_dimension":    a.config.Policy.MaxDimension,
		"overhead_bytes":   a.config.OverheadBytes(),
	}
}
