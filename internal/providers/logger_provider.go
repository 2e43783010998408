package providers

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"bbcd/internal/structures"
)

type TypeEnum int

const (
	TypeApp TypeEnum = iota
	TypeCollector
	TypeMirror
	TypeGet
	TypePost
)

type Logger interface {
	Errorf(t TypeEnum, format string, args ...interface{})
	Warnf(t TypeEnum, format string, args ...interface{})
	Infof(t TypeEnum, format string, args ...interface{})
	Debugf(t TypeEnum, format string, args ...interface{})
	Fatalf(t TypeEnum, format string, args ...interface{})
	Close()
}

func GetLogTypeByRequestType(method string) TypeEnum {
	if method == "POST" {
		return TypePost
	}
	return TypeGet
}

type LogProvider struct {
	app       zerolog.Logger
	collector zerolog.Logger
	access    zerolog.Logger
	files     []*os.File
}

func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, err
	}

	mode := os.FileMode(conf.Logger.Mode)
	lp := &LogProvider{}
	for _, target := range []struct {
		name string
		dst  *zerolog.Logger
	}{
		{"app.log", &lp.app},
		{"collector.log", &lp.collector},
		{"access.log", &lp.access},
	} {
		file, err := os.OpenFile(filepath.Join(conf.Logger.Dir, target.name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, mode)
		if err != nil {
			lp.Close()
			return nil, err
		}
		lp.files = append(lp.files, file)
		*target.dst = zerolog.New(file).With().Timestamp().Logger().Level(level)
	}

	return lp, nil
}

func (lp *LogProvider) target(t TypeEnum) *zerolog.Logger {
	switch t {
	case TypeCollector, TypeMirror:
		return &lp.collector
	case TypeGet, TypePost:
		return &lp.access
	default:
		return &lp.app
	}
}

func (lp *LogProvider) Errorf(t TypeEnum, format string, args ...interface{}) {
	lp.target(t).Error().Msgf(format, args...)
}

func (lp *LogProvider) Warnf(t TypeEnum, format string, args ...interface{}) {
	lp.target(t).Warn().Msgf(format, args...)
}

func (lp *LogProvider) Infof(t TypeEnum, format string, args ...interface{}) {
	lp.target(t).Info().Msgf(format, args...)
}

func (lp *LogProvider) Debugf(t TypeEnum, format string, args ...interface{}) {
	lp.target(t).Debug().Msgf(format, args...)
}

func (lp *LogProvider) Fatalf(t TypeEnum, format string, args ...interface{}) {
	lp.target(t).Fatal().Msgf(format, args...)
}

func (lp *LogProvider) Close() {
	for _, f := range lp.files {
		_ = f.Sync()
		_ = f.Close()
	}
	lp.files = nil
}
