package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/billfold/billfold/internal/api"
	"github.com/billfold/billfold/internal/classify"
	"github.com/billfold/billfold/internal/common"
	"github.com/billfold/billfold/internal/service"
	"github.com/billfold/billfold/internal/session"
	"github.com/billfold/billfold/internal/storage"
)

// openStore resolves the configured store: the remote backend when a
// base URL is configured and a session exists, local SQLite otherwise.
func openStore(ctx context.Context) (service.Store, error) {
	baseURL := viper.GetString("backend.url")
	if baseURL != "" {
		sess, err := session.Load()
		if err != nil {
			if errors.Is(err, session.ErrNoSession) {
				return nil, common.NewUserError(
					fmt.Sprintf("backend %s is configured but you are not logged in; run 'billfold login'", baseURL), err)
			}
			return nil, err
		}
		return api.NewClient(baseURL, sess), nil
	}

	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".local", "share", "billfold", "billfold.db")
	}

	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// loadClassifier builds the transaction classifier, preferring a
// user-supplied YAML rules file over the built-in defaults.
func loadClassifier() (*classify.Classifier, error) {
	rulesPath := viper.GetString("classify.rules")
	if rulesPath == "" {
		return classify.NewClassifier(classify.DefaultRules()), nil
	}

	rules, err := classify.LoadRules(rulesPath)
	if err != nil {
		return nil, err
	}
	return classify.NewClassifier(rules), nil
}
