package api

import (
	"database/sql"

	"github.com/vytor/deckflash/internal/deck"
	"github.com/vytor/deckflash/internal/services"
)

type Server struct {
	DB                 *sql.DB
	Registry           *deck.Registry
	TrainingService    services.TrainingService
	PreferencesService services.PreferencesService
	StatsService       services.StatsService
	EventService       services.EventService
}
