package state

import (
	"time"

	"go.uber.org/zap"

	"figmark/common"
	"figmark/element"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:   time.Now(),
		Request: Request{Format: common.MarkupFormatHtml},
	}
}

// ImagePlaceholder returns configured image source used for unnamed images.
func (e *LocalEnv) ImagePlaceholder() string {
	if e.Cfg == nil || len(e.Cfg.Generator.ImagePlaceholder) == 0 {
		return element.DefaultImagePlaceholder
	}
	return e.Cfg.Generator.ImagePlaceholder
}

// Indent returns number of spaces per markup nesting level.
func (e *LocalEnv) Indent() int {
	if e.Cfg == nil {
		return 2
	}
	return e.Cfg.Generator.Indent
}

// Logger never returns nil so it could be used before logging is configured.
func (e *LocalEnv) Logger() *zap.Logger {
	if e.Log == nil {
		return zap.NewNop()
	}
	return e.Log
}
