// Package logger wraps zerolog for the scheduler binaries
// there is one root logger per process, request and profile ids ride on the context
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"rewardsched/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is the logging type handed around the code base
type Logger = zerolog.Logger

// Options configures the root logger
type Options struct {
	Level       string
	Format      string // "console" or "json"
	Service     string
	Component   string
	Writer      io.Writer // defaults to stdout
	Caller      bool
	SampleEvery int
}

// FromEnv reads LOG_* settings
func FromEnv() Options {
	env := raw.New().Prefix("LOG_")
	return Options{
		Level:       env.Get("LEVEL", "debug"),
		Format:      strings.ToLower(env.Get("FORMAT", "console")),
		Service:     env.Get("SERVICE", "scheduler"),
		Component:   env.Get("COMPONENT", ""),
		Caller:      env.GetBool("CALLER", false),
		SampleEvery: env.GetInt("SAMPLE_EVERY", 0),
	}
}

var (
	once sync.Once
	root atomic.Pointer[Logger]
)

// Init installs the root logger, later calls are ignored
func Init(opt Options) {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano
		l := build(opt)
		root.Store(&l)
	})
}

// Get returns the root logger, initializing it from the environment on first use
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	Init(FromEnv())
	return root.Load()
}

// Replace swaps the root logger until the returned restore runs, tests use it to capture output
func Replace(l Logger) (restore func()) {
	prev := Get()
	root.Store(&l)
	return func() { root.Store(prev) }
}

func build(opt Options) Logger {
	w := opt.Writer
	if w == nil {
		w = os.Stdout
	}
	if opt.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	c := zerolog.New(w).Level(level(opt.Level)).With().Timestamp()
	if bi, ok := debug.ReadBuildInfo(); ok {
		c = c.Str("go_version", bi.GoVersion)
	}
	if opt.Service != "" {
		c = c.Str("service", opt.Service)
	}
	if opt.Component != "" {
		c = c.Str("component", opt.Component)
	}
	if opt.Caller {
		c = c.Caller()
	}

	l := c.Logger()
	if opt.SampleEvery > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
	}
	return l
}

// level falls back to debug for empty or unknown names
func level(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	l, err := zerolog.ParseLevel(s)
	if err != nil || l == zerolog.NoLevel {
		return zerolog.DebugLevel
	}
	return l
}

type ids struct {
	request string
	profile string
}

type ctxKey struct{}

func idsFrom(ctx context.Context) ids {
	v, _ := ctx.Value(ctxKey{}).(ids)
	return v
}

// WithRequest records the request and profile ids on ctx, blank values keep what is already there
func WithRequest(ctx context.Context, reqID, profileID string) context.Context {
	cur := idsFrom(ctx)
	if reqID != "" {
		cur.request = reqID
	}
	if profileID != "" {
		cur.profile = profileID
	}
	return context.WithValue(ctx, ctxKey{}, cur)
}

// WithProfile records the profile a request plans for
func WithProfile(ctx context.Context, profileID string) context.Context {
	return WithRequest(ctx, "", profileID)
}

// C returns the root logger enriched with the ids on ctx
func C(ctx context.Context) *Logger {
	cur := idsFrom(ctx)
	c := Get().With()
	if cur.request != "" {
		c = c.Str("request_id", cur.request)
	}
	if cur.profile != "" {
		c = c.Str("profile_id", cur.profile)
	}
	l := c.Logger()
	return &l
}

// Named returns a child of the root logger tagged with component
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}
