package log

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mgutz/ansi"
	"github.com/sirupsen/logrus"
)

const (
	TextFormat = "text"
	JSONFormat = "json"

	timestampLayout = "15:04:05.000"
)

// Entry is the representation of a single log record handed to a Formatter.
type Entry struct {
	Time    time.Time
	Level   Level
	Message string
	Fields  Fields
}

// Formatter is used to render log entries.
type Formatter interface {
	// Format takes an `Entry`. It exposes all the fields, including the default ones.
	Format(entry *Entry) ([]byte, error)

	// DisableColors removes any color or style from the log output.
	DisableColors()
}

// ParseFormat returns the formatter registered under the given name.
func ParseFormat(name string) (Formatter, error) {
	switch strings.ToLower(name) {
	case "", TextFormat:
		return NewTextFormatter(), nil
	case JSONFormat:
		return NewJSONFormatter(), nil
	}

	return nil, fmt.Errorf("invalid format %q, supported formats: %s, %s", name, TextFormat, JSONFormat)
}

// TextFormatter renders entries as `time level msg key=value`.
type TextFormatter struct {
	levelColors    map[Level]string
	disabledColors bool
}

// NewTextFormatter returns a colored text formatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{
		levelColors: map[Level]string{
			ErrorLevel: ansi.ColorCode("red+h"),
			WarnLevel:  ansi.ColorCode("yellow+h"),
			InfoLevel:  ansi.ColorCode("white+h"),
			DebugLevel: ansi.ColorCode("blue+h"),
			TraceLevel: ansi.ColorCode("white"),
		},
	}
}

// DisableColors implements the Formatter interface method.
func (formatter *TextFormatter) DisableColors() {
	formatter.disabledColors = true
}

// Format implements the Formatter interface method.
func (formatter *TextFormatter) Format(entry *Entry) ([]byte, error) {
	buf := new(bytes.Buffer)

	buf.WriteString(formatter.paint(entry.Time.Format(timestampLayout), ansi.LightBlack))
	buf.WriteByte(' ')
	buf.WriteString(formatter.paint(strings.ToUpper(entry.Level.ShortName()), formatter.levelColors[entry.Level]))
	buf.WriteByte(' ')
	buf.WriteString(entry.Message)

	for _, key := range entry.Fields.Keys() {
		buf.WriteByte(' ')
		buf.WriteString(formatter.paint(key, ansi.Cyan))
		buf.WriteByte('=')
		fmt.Fprint(buf, entry.Fields[key])
	}

	buf.WriteByte('\n')

	return buf.Bytes(), nil
}

func (formatter *TextFormatter) paint(text, color string) string {
	if formatter.disabledColors || color == "" {
		return text
	}

	return color + text + ansi.Reset
}

// JSONFormatter renders entries as one JSON object per line.
type JSONFormatter struct{}

// NewJSONFormatter returns a JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// DisableColors implements the Formatter interface method. JSON output is never colored.
func (formatter *JSONFormatter) DisableColors() {}

// Format implements the Formatter interface method.
func (formatter *JSONFormatter) Format(entry *Entry) ([]byte, error) {
	data := make(map[string]any, len(entry.Fields)+3)

	for key, val := range entry.Fields {
		if err, ok := val.(error); ok {
			val = err.Error()
		}

		data[key] = val
	}

	data[FieldKeyTime] = entry.Time.Format(time.RFC3339)
	data[FieldKeyLevel] = entry.Level.String()
	data[FieldKeyMsg] = entry.Message

	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(data); err != nil {
		return nil, fmt.Errorf("failed to marshal fields to JSON: %w", err)
	}

	return buf.Bytes(), nil
}

// fromLogrusFormatter converts a logrus entry to our Entry before formatting.
type fromLogrusFormatter struct {
	Formatter
}

func (f *fromLogrusFormatter) Format(parent *logrus.Entry) ([]byte, error) {
	entry := &Entry{
		Time:    parent.Time,
		Level:   FromLogrusLevel(parent.Level),
		Message: parent.Message,
		Fields:  Fields(parent.Data),
	}

	return f.Formatter.Format(entry)
}
