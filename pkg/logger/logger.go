package logger

import (
	"context"
	"io"
	"net"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type ctxKey struct{}

var log = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Init настраивает глобальный JSON логгер сервиса с выводом в stdout
func Init(serviceName string, level string) {
	InitWithWriter(serviceName, level, os.Stdout)
}

// InitWithWriter позволяет подменить writer (используется в тестах)
func InitWithWriter(serviceName string, level string, w io.Writer) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	log = zerolog.New(w).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()
}

// InitLogstash дублирует логи в Logstash по TCP
// При недоступности Logstash возвращает ошибку, текущий логгер не меняется
func InitLogstash(addr string, serviceName string, level string) error {
	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		return err
	}

	InitWithWriter(serviceName, level, zerolog.MultiLevelWriter(os.Stdout, conn))
	return nil
}

func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

func Info() *zerolog.Event {
	return log.Info()
}

func Error() *zerolog.Event {
	return log.Error()
}

func Debug() *zerolog.Event {
	return log.Debug()
}

func Warn() *zerolog.Event {
	return log.Warn()
}

func Fatal() *zerolog.Event {
	return log.Fatal()
}

// Logger возвращает копию глобального логгера
func Logger() zerolog.Logger {
	return log
}

// WithRequestID кладет в контекст логгер с полем request_id
func WithRequestID(ctx context.Context, requestID string) context.Context {
	l := log.With().Str("request_id", requestID).Logger()
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext возвращает логгер запроса или глобальный, если его нет в контексте
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(zerolog.Logger); ok {
			return &l
		}
	}
	l := log
	return &l
}
