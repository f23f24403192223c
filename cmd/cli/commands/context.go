package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lucabaldini/turnario/internal/config"
	"github.com/lucabaldini/turnario/pkg/core/model"
	"github.com/lucabaldini/turnario/pkg/core/roster"
	"github.com/lucabaldini/turnario/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database db.Database
	Store    *roster.Store
	Logger   *zap.Logger
	Ctx      context.Context
}

// parseMonth validates a "YYYY-MM" argument
func parseMonth(arg string) (model.MonthKey, error) {
	month := model.MonthKey(arg)
	if _, err := month.Time(); err != nil {
		return "", fmt.Errorf("month must be in YYYY-MM format: %w", err)
	}
	return month, nil
}
