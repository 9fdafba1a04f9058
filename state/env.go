// Package state defines shared program state.
package state

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"figmark/common"
	"figmark/config"
)

type envKey struct{}

// Request holds generate subcommand parameters resolved from command line
// and configuration.
type Request struct {
	NoDirs    bool
	Overwrite bool
	Stdout    bool
	NodeIDs   []string
	Format    common.MarkupFormat
}

// LocalEnv is carried in context through the whole program run.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	Request

	mu       sync.Mutex
	outcomes []Outcome

	start         time.Time
	restoreStdLog func()
}

// EnvFromContext panics when context was not prepared with ContextWithEnv.
func EnvFromContext(ctx context.Context) *LocalEnv {
	env, ok := ctx.Value(envKey{}).(*LocalEnv)
	if !ok {
		panic("local environment is missing from context")
	}
	return env
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

// Uptime is time passed since environment was created.
func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// RedirectStdLog sends standard library log output to program log until
// RestoreStdLog is called.
func (e *LocalEnv) RedirectStdLog() {
	if e.Log != nil {
		e.restoreStdLog = zap.RedirectStdLog(e.Log)
	}
}

// RestoreStdLog flushes program log and undoes RedirectStdLog.
func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if restore := e.restoreStdLog; restore != nil {
		e.restoreStdLog = nil
		restore()
	}
}
