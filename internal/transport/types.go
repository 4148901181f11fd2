package transport

// Dialog interface for system dialogs
type DialogHandler interface {
	OpenFileDialog() ([]string, error)
	OpenDirectoryDialog() (string, error)
	ShowSaveDialog(filename string) (string, error)
	OpenFile(filePath string) error
}

// EventEmitter pushes named events to the frontend.
type EventEmitter interface {
	Emit(event string, data ...interface{})
}

// Event names
const (
	EventConvertProgress  = "convert:progress"
	EventConvertCompleted = "convert:completed"
	EventStatsUpdate      = "stats:update"
)

// ImagePatterns lists the extensions offered in the open dialog.
var ImagePatterns = []string{"*.jpg", "*.jpeg", "*.png", "*.gif", "*.bmp", "*.tif", "*.tiff", "*.webp"}
