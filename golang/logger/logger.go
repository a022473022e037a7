//Package logger builds the zap loggers shared by the library packages and the CLI.
package logger

import (
	"os"
	"strings"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

//Config describes where and how much to log. An empty Path disables the file output.
type Config struct {
	Level          string
	Path           string
	Console        bool
	RotationTime   int // hours between rotations
	RotationMaxAge int // days a rotated file is kept
}

//DefaultConfig logs INFO and above to the console only.
func DefaultConfig() Config {
	return Config{
		Level:          "INFO",
		Console:        true,
		RotationTime:   24,
		RotationMaxAge: 7,
	}
}

//ParseLevel maps DEBUG, INFO, WARN and ERROR (any case) to a zap level.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return zap.DebugLevel, nil
	case "", "INFO":
		return zap.InfoLevel, nil
	case "WARN":
		return zap.WarnLevel, nil
	case "ERROR":
		return zap.ErrorLevel, nil
	}
	return zap.InfoLevel, errors.Errorf("unknown log level %q", level)
}

//New creates a named sugared logger for the given config.
func New(name string, config Config) (*zap.SugaredLogger, error) {
	zapLevel, err := ParseLevel(config.Level)
	if err != nil {
		return nil, err
	}
	priorityLevel := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapLevel
	})

	var syncers []zapcore.WriteSyncer
	if config.Console {
		syncers = append(syncers, zapcore.AddSync(os.Stderr))
	}
	if config.Path != "" {
		rotationWriter, err := rotatelogs.New(
			config.Path+".%Y%m%d%H",
			rotatelogs.WithLinkName(config.Path),
			rotatelogs.WithRotationTime(time.Duration(config.RotationTime)*time.Hour),
			rotatelogs.WithMaxAge(time.Hour*24*time.Duration(config.RotationMaxAge)),
		)
		if err != nil {
			return nil, errors.Wrap(err, "new rotation log")
		}
		syncers = append(syncers, zapcore.AddSync(rotationWriter))
	}
	if len(syncers) == 0 {
		return zap.NewNop().Sugar(), nil
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    customLevelEncoder,
		EncodeTime:     customTimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.NewMultiWriteSyncer(syncers...), priorityLevel)
	return zap.New(core).Named(name).Sugar(), nil
}

func customLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + level.CapitalString() + "]")
}

func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("2006-01-02 15:04:05.000"))
}
