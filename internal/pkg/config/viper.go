package config

import (
	"bytes"
	"errors"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Viper is a Config implementation backed by github.com/spf13/viper.
//
// The file-based constructor watches the config file and reloads it on
// change, so tunables like OTP limits can be adjusted without a restart.
type Viper struct {
	v *viper.Viper
}

// NewViper loads configuration from the given file path. The file type is
// inferred from the extension.
func NewViper(pathFile string) (*Viper, error) {
	v := viper.New()

	filename := path.Base(pathFile)
	configName := filename[:len(filename)-len(path.Ext(filename))]

	v.AddConfigPath(path.Dir(pathFile))
	v.SetConfigName(configName)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	v.OnConfigChange(func(_ fsnotify.Event) {
		if err := v.ReadInConfig(); err != nil {
			slog.Error("config reload failed", "path", pathFile, "err", err)
			return
		}
		slog.Info("config reloaded", "path", pathFile)
	})
	v.WatchConfig()

	return &Viper{v: v}, nil
}

// NewViperFromBytes loads configuration from memory. configType must be a
// format Viper understands ("yaml", "json", ...). Useful in tests.
func NewViperFromBytes(configType string, data []byte) (*Viper, error) {
	if strings.TrimSpace(configType) == "" {
		return nil, errors.New("config type is required")
	}

	v := viper.New()
	v.SetConfigType(configType)

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, err
	}

	return &Viper{v: v}, nil
}

func (vc *Viper) GetBool(key string) bool { return vc.v.GetBool(key) }

func (vc *Viper) GetString(key string) string { return vc.v.GetString(key) }

func (vc *Viper) GetInt(key string) int { return vc.v.GetInt(key) }

func (vc *Viper) GetInt64(key string) int64 { return vc.v.GetInt64(key) }

func (vc *Viper) GetUint16(key string) uint16 { return uint16(vc.v.GetUint(key)) }

func (vc *Viper) GetFloat64(key string) float64 { return vc.v.GetFloat64(key) }

// GetArray returns the value for key split by commas. Empty elements are
// dropped.
func (vc *Viper) GetArray(key string) []string {
	parts := strings.Split(vc.v.GetString(key), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (vc *Viper) GetSecond(key string) time.Duration {
	return time.Duration(vc.v.GetInt64(key)) * time.Second
}

func (vc *Viper) GetMinute(key string) time.Duration {
	return time.Duration(vc.v.GetInt64(key)) * time.Minute
}

func (vc *Viper) GetHour(key string) time.Duration {
	return time.Duration(vc.v.GetInt64(key)) * time.Hour
}

func (vc *Viper) GetDay(key string) time.Duration {
	return time.Duration(vc.v.GetInt64(key)) * 24 * time.Hour
}

// Close implements io.Closer for interface compatibility.
func (vc *Viper) Close() error {
	return nil
}
