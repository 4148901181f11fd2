package transport

import (
	"context"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

type wailsEmitter struct {
	ctx context.Context
}

// NewEventEmitter returns an emitter backed by the Wails runtime. ctx must
// be the context Wails passed to OnStartup.
func NewEventEmitter(ctx context.Context) EventEmitter {
	return &wailsEmitter{ctx: ctx}
}

func (e *wailsEmitter) Emit(event string, data ...interface{}) {
	wailsruntime.EventsEmit(e.ctx, event, data...)
}
