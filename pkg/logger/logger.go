package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dmitrymomot/qrshare/pkg/environment"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

type Option func(*config)

type config struct {
	level      slog.Level
	format     Format
	output     io.Writer
	attrs      []slog.Attr
	extractors []ContextExtractor
}

func WithLevel(l slog.Level) Option {
	return func(c *config) { c.level = l }
}

// WithLevelText parses names accepted by slog.Level.UnmarshalText, such as
// "debug" or "warn+2". An empty string keeps the current level. Unknown
// names panic so a typo in LOG_LEVEL stops startup.
func WithLevelText(s string) Option {
	return func(c *config) {
		if s == "" {
			return
		}
		if err := c.level.UnmarshalText([]byte(s)); err != nil {
			panic(fmt.Errorf("logger: %w", err))
		}
	}
}

// WithFormat panics on anything but FormatJSON and FormatText.
func WithFormat(f Format) Option {
	if f != FormatJSON && f != FormatText {
		panic(fmt.Errorf("logger: unknown format %q", f))
	}
	return func(c *config) { c.format = f }
}

func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithAttr adds attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) { c.attrs = append(c.attrs, attrs...) }
}

// WithEnvironment picks readable debug output for development and JSON at
// info level for staging and production. Records carry service and env.
func WithEnvironment(env, service string) Option {
	return func(c *config) {
		e := environment.Environment(env)
		switch {
		case e.IsProduction():
			e = environment.Production
			c.level, c.format = slog.LevelInfo, FormatJSON
		case e.IsStaging():
			e = environment.Staging
			c.level, c.format = slog.LevelInfo, FormatJSON
		default:
			c.level, c.format = slog.LevelDebug, FormatText
			e = environment.Development
		}
		c.attrs = append(c.attrs, slog.String("service", service), slog.String("env", string(e)))
	}
}

// New builds a logger writing to stdout as JSON at info level unless
// configured otherwise.
func New(opts ...Option) *slog.Logger {
	c := &config{level: slog.LevelInfo, format: FormatJSON, output: os.Stdout}
	for _, opt := range opts {
		opt(c)
	}

	hopts := &slog.HandlerOptions{Level: c.level}
	var h slog.Handler
	if c.format == FormatText {
		h = slog.NewTextHandler(c.output, hopts)
	} else {
		h = slog.NewJSONHandler(c.output, hopts)
	}
	if len(c.attrs) > 0 {
		h = h.WithAttrs(c.attrs)
	}
	if len(c.extractors) > 0 {
		h = &contextHandler{Handler: h, extractors: c.extractors}
	}
	return slog.New(h)
}

func SetAsDefault(l *slog.Logger) {
	slog.SetDefault(l)
}
