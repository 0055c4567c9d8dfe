package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wisalhq/wisal-admin/internal/api"
	"github.com/wisalhq/wisal-admin/internal/auth"
	"github.com/wisalhq/wisal-admin/internal/config"
	"github.com/wisalhq/wisal-admin/internal/errors"
	"github.com/wisalhq/wisal-admin/internal/log"
	"github.com/wisalhq/wisal-admin/internal/version"
)

// appEnv carries the wired dependencies a command works with
type appEnv struct {
	cfg     *config.Config
	logger  *log.Logger
	client  *api.Client
	session *auth.Context

	closeLog func()
}

// buildEnv wires config, logging, the API client, and the session context
// the same way for every command. The dashboard logs to a file because
// stdout belongs to the TUI; plain commands log to stderr.
func buildEnv(dashboard bool) (*appEnv, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, errors.NewConfigInvalidError(err.Error())
	}

	logger, closeLog, err := newLogger(cfg, dashboard)
	if err != nil {
		return nil, err
	}
	log.SetDefaultLogger(logger)

	client := api.NewClient(cfg.API.BaseURL)
	client.SetLocale(cfg.API.Locale)
	client.SetTimeout(cfg.API.Timeout)

	if err := client.LoadCookies(cfg.CookieFile()); err != nil {
		logger.Warn("failed to restore refresh cookie", "error", err.Error())
	}

	var storage auth.Storage
	fileStorage, err := auth.NewFileStorage(cfg.StateFile())
	if err != nil {
		logger.WithError(errors.NewStoreCorruptError(cfg.StateFile(), err)).
			Warn("persisted session unreadable, starting fresh")
	}
	if fileStorage != nil {
		storage = fileStorage
	} else {
		// State dir cannot be created; session fields live for this run only.
		storage = auth.NewMemoryStorage()
	}

	session := auth.NewContext(client, client, auth.NewSessionStore(storage), logger)
	client.OnUnauthorized(session.Expire)

	return &appEnv{
		cfg:      cfg,
		logger:   logger,
		client:   client,
		session:  session,
		closeLog: closeLog,
	}, nil
}

// close releases what buildEnv opened
func (e *appEnv) close() {
	if e.closeLog != nil {
		e.closeLog()
	}
}

// persistCookies saves the refresh cookie for the next process. The login
// and refresh endpoints rotate it, so every command that talked to the
// auth endpoints calls this on the way out.
func (e *appEnv) persistCookies() {
	if err := e.client.SaveCookies(e.cfg.CookieFile()); err != nil {
		e.logger.Warn("failed to persist refresh cookie", "error", err.Error())
	}
}

// newLogger builds the command logger. File logging applies to the
// dashboard always, and to other commands when log.file is configured.
func newLogger(cfg *config.Config, dashboard bool) (*log.Logger, func(), error) {
	logCfg := log.Config{
		Level:          log.ParseLevel(cfg.Log.Level),
		Format:         log.ParseFormat(cfg.Log.Format),
		ServiceName:    "wisal",
		ServiceVersion: version.Version,
	}

	if dashboard || cfg.Log.File != "" {
		path := cfg.LogFile()
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		logCfg.Output = log.NewOutput(f)
		return log.New(logCfg), func() { f.Close() }, nil
	}

	logCfg.Output = log.OutputStderr()
	return log.New(logCfg), func() {}, nil
}
