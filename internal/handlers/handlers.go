package handlers

import (
	"time"

	"media-catalog/internal/database"
	"media-catalog/internal/scanner"
	"media-catalog/internal/startup"
	"media-catalog/internal/views"
)

type Handlers struct {
	db        *database.Database
	scanner   *scanner.Scanner
	tracker   *views.Tracker
	mediaDir  string
	startTime time.Time
}

func New(db *database.Database, sc *scanner.Scanner, tracker *views.Tracker, config *startup.Config) *Handlers {
	return &Handlers{
		db:        db,
		scanner:   sc,
		tracker:   tracker,
		mediaDir:  config.MediaDir,
		startTime: time.Now(),
	}
}
