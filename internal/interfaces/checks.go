package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/lectern-app/lectern/internal/database"
	"github.com/lectern-app/lectern/internal/database/annotations"
	"github.com/lectern-app/lectern/internal/database/catalog"
	"github.com/lectern-app/lectern/internal/database/progress"
	"github.com/lectern-app/lectern/internal/database/sessions"
	"github.com/lectern-app/lectern/internal/http"
)

// Data access layer implementations behind the HTTP controllers.
var _ http.DocumentsStore = (*catalog.Repository)(nil)
var _ http.AnnotationsStore = (*annotations.Repository)(nil)
var _ http.ProgressStore = (*progress.Repository)(nil)
var _ http.SessionsStore = (*sessions.Repository)(nil)
var _ http.StreakStore = (*sessions.Repository)(nil)
var _ http.StatsStore = (*database.Database)(nil)
