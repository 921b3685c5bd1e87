package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logger wraps the logrus package to have full control over the levels and formatters in use.
// This also provides an easier way to clone loggers and add fields.
type Logger interface {
	// Clone creates a new Logger instance with a copy of the fields from the current one.
	Clone() Logger

	// SetOptions sets the given options to the instance.
	SetOptions(opts ...Option)

	// WithOptions clones and sets the given options for the new instance.
	WithOptions(opts ...Option) Logger

	// Level returns log level.
	Level() Level

	// SetLevel parses and sets log level.
	SetLevel(str string) error

	// Formatter returns the logger formatter.
	Formatter() Formatter

	// WithField adds a single field to the returned Logger only.
	WithField(key string, value any) Logger

	// WithFields adds a set of fields to the returned Logger only.
	WithFields(fields Fields) Logger

	// WithError adds an error as single field to the returned Logger only.
	WithError(err error) Logger

	Tracef(format string, args ...any)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)

	Trace(args ...any)
	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)
}

type logger struct {
	*logrus.Entry
	formatter Formatter
}

// New returns a new Logger instance writing text to stderr at info level.
func New(opts ...Option) Logger {
	logger := &logger{
		Entry: logrus.NewEntry(logrus.New()),
	}

	logger.SetFormatter(NewTextFormatter())
	logger.SetOptions(opts...)

	return logger
}

// Discard returns a Logger that drops everything, handy in tests.
func Discard() Logger {
	return New(WithOutput(io.Discard))
}

// Clone implements the Logger interface method.
func (logger *logger) Clone() Logger {
	return logger.clone()
}

// SetOptions implements the Logger interface method.
func (logger *logger) SetOptions(opts ...Option) {
	for _, opt := range opts {
		opt(logger)
	}
}

// WithOptions implements the Logger interface method.
func (logger *logger) WithOptions(opts ...Option) Logger {
	if len(opts) == 0 {
		return logger
	}

	logger = logger.clone()
	logger.SetOptions(opts...)

	return logger
}

// SetFormatter sets the logger formatter.
func (logger *logger) SetFormatter(formatter Formatter) {
	logger.formatter = formatter
	logger.Logger.SetFormatter(&fromLogrusFormatter{Formatter: formatter})
}

// Formatter implements the Logger interface method.
func (logger *logger) Formatter() Formatter {
	return logger.formatter
}

// Level implements the Logger interface method.
func (logger *logger) Level() Level {
	return FromLogrusLevel(logger.Logger.Level)
}

// SetLevel implements the Logger interface method.
func (logger *logger) SetLevel(str string) error {
	level, err := ParseLevel(str)
	if err != nil {
		return err
	}

	logger.Logger.SetLevel(level.ToLogrusLevel())

	return nil
}

// WithField implements the Logger interface method.
func (logger *logger) WithField(key string, value any) Logger {
	return logger.WithFields(Fields{key: value})
}

// WithFields implements the Logger interface method.
func (logger *logger) WithFields(fields Fields) Logger {
	return logger.setEntry(logger.Entry.WithFields(logrus.Fields(fields)))
}

// WithError implements the Logger interface method.
func (logger *logger) WithError(err error) Logger {
	return logger.setEntry(logger.Entry.WithError(err))
}

func (logger *logger) Tracef(format string, args ...any) {
	logger.Entry.Logf(TraceLevel.ToLogrusLevel(), format, args...)
}

func (logger *logger) Debugf(format string, args ...any) {
	logger.Entry.Logf(DebugLevel.ToLogrusLevel(), format, args...)
}

func (logger *logger) Infof(format string, args ...any) {
	logger.Entry.Logf(InfoLevel.ToLogrusLevel(), format, args...)
}

func (logger *logger) Warnf(format string, args ...any) {
	logger.Entry.Logf(WarnLevel.ToLogrusLevel(), format, args...)
}

func (logger *logger) Errorf(format string, args ...any) {
	logger.Entry.Logf(ErrorLevel.ToLogrusLevel(), format, args...)
}

func (logger *logger) Trace(args ...any) {
	logger.Entry.Log(TraceLevel.ToLogrusLevel(), args...)
}

func (logger *logger) Debug(args ...any) {
	logger.Entry.Log(DebugLevel.ToLogrusLevel(), args...)
}

func (logger *logger) Info(args ...any) {
	logger.Entry.Log(InfoLevel.ToLogrusLevel(), args...)
}

func (logger *logger) Warn(args ...any) {
	logger.Entry.Log(WarnLevel.ToLogrusLevel(), args...)
}

func (logger *logger) Error(args ...any) {
	logger.Entry.Log(ErrorLevel.ToLogrusLevel(), args...)
}

func (logger *logger) setEntry(entry *logrus.Entry) *logger {
	newLogger := *logger
	newLogger.Entry = entry

	return &newLogger
}

func (logger *logger) clone() *logger {
	newLogger := *logger

	parentLogger := newLogger.Logger

	newLogger.Logger = logrus.New()
	newLogger.Logger.SetOutput(parentLogger.Out)
	newLogger.Logger.SetLevel(parentLogger.Level)
	newLogger.Logger.SetFormatter(parentLogger.Formatter)
	newLogger.Logger.ReplaceHooks(parentLogger.Hooks)
	newLogger.Entry = newLogger.Dup()
	newLogger.Entry.Logger = newLogger.Logger

	return &newLogger
}
