package main

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/felixgeelhaar/docschema/middleware"
)

// zerologLogger adapts zerolog to middleware.Logger.
type zerologLogger struct {
	log zerolog.Logger
}

func newLogger(w io.Writer, level string) (*zerologLogger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return &zerologLogger{
		log: zerolog.New(w).Level(lvl).With().Timestamp().Logger(),
	}, nil
}

func (l *zerologLogger) Info(msg string, fields ...middleware.Field) {
	l.log.Info().Fields(fieldMap(fields)).Msg(msg)
}

func (l *zerologLogger) Error(msg string, fields ...middleware.Field) {
	l.log.Error().Fields(fieldMap(fields)).Msg(msg)
}

func (l *zerologLogger) Debug(msg string, fields ...middleware.Field) {
	l.log.Debug().Fields(fieldMap(fields)).Msg(msg)
}

func (l *zerologLogger) Warn(msg string, fields ...middleware.Field) {
	l.log.Warn().Fields(fieldMap(fields)).Msg(msg)
}

func fieldMap(fields []middleware.Field) map[string]any {
	m := make(map[string]any, len(fields))
	for _, f := range fields {
		m[f.Key] = f.Value
	}
	return m
}
