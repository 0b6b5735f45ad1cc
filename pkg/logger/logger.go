// Package logger emits structured JSON event lines. Every call site
// passes an event name plus a free-form field map.
package logger

import (
	"log/slog"
	"os"
)

var base *slog.Logger

func Init() {
	base = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

func Info(event string, fields map[string]interface{}) {
	ensure().Info(event, attrs(fields)...)
}

func Warn(event string, fields map[string]interface{}) {
	ensure().Warn(event, attrs(fields)...)
}

func Error(event string, err error, fields map[string]interface{}) {
	args := attrs(fields)
	if err != nil {
		args = append(args, slog.String("error", err.Error()))
	}
	ensure().Error(event, args...)
}

func InfoWithUser(userID, event string, fields map[string]interface{}) {
	args := attrs(fields)
	args = append(args, slog.String("user_id", userID))
	ensure().Info(event, args...)
}

func ensure() *slog.Logger {
	if base == nil {
		Init()
	}
	return base
}

func attrs(fields map[string]interface{}) []any {
	args := make([]any, 0, len(fields)*2)
	for key, value := range fields {
		args = append(args, slog.Any(key, value))
	}
	return args
}
