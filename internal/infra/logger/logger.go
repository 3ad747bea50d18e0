package logger

import (
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// botToken токен Telegram-бота; telebot включает его в URL в текстах ошибок
var botToken = regexp.MustCompile(`\d{6,}:[A-Za-z0-9_-]{30,}`)

const redacted = "[REDACTED]"

// ParseLevel переводит строку конфигурации в уровень slog. Неизвестные значения дают info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New создает логгер с текстовым или JSON-выводом
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       ParseLevel(level),
		ReplaceAttr: redactTokens,
	}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Redact скрывает токены бота в строке
func Redact(s string) string {
	return botToken.ReplaceAllString(s, redacted)
}

func redactTokens(_ []string, a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		a.Value = slog.StringValue(Redact(a.Value.String()))
	case slog.KindAny:
		if err, ok := a.Value.Any().(error); ok {
			a.Value = slog.StringValue(Redact(err.Error()))
		}
	}
	return a
}
