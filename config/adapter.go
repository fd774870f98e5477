package config

import (
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"watchboard/services/catalog"
)

// ProviderOptions converts provider settings into catalog client options.
// Non-positive values fall back to the catalog defaults.
func ProviderOptions(settings ProviderSettings) (itunes, tvmaze catalog.Options) {
	timeout := time.Duration(settings.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = catalog.DefaultTimeout
	}
	ttl := time.Duration(settings.CacheTTLSeconds) * time.Second
	if settings.CacheTTLSeconds < 0 {
		ttl = 0
	} else if ttl == 0 {
		ttl = catalog.DefaultCacheTTL
	}

	itunes = catalog.Options{BaseURL: settings.ITunes.BaseURL, Timeout: timeout, CacheTTL: ttl}
	tvmaze = catalog.Options{BaseURL: settings.TVMaze.BaseURL, Timeout: timeout, CacheTTL: ttl}
	return itunes, tvmaze
}

// LogWriter returns a rotating writer for the configured log file, or nil when
// logging goes to stderr.
func LogWriter(settings LoggingSettings) *lumberjack.Logger {
	if settings.File == "" {
		return nil
	}
	return &lumberjack.Logger{
		Filename:   settings.File,
		MaxSize:    settings.MaxSizeMB,
		MaxBackups: settings.MaxBackups,
		MaxAge:     settings.MaxAgeDays,
		Compress:   true,
	}
}
