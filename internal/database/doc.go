// Package database provides the data access layer for the application.
//
// # Architecture
//
// The layer is organized into domain-specific sub-packages, one per record
// collection:
//
//	database/
//	├── database.go      # Connection setup, migrations, shared handle
//	├── errors.go        # Typed failures shared by every sub-package
//	├── id.go            # Key generation for all collections
//	├── catalog/         # Document registry and cascade delete
//	├── annotations/     # Highlight, note and bookmark CRUD
//	├── progress/        # Per-document current position and reading time
//	└── sessions/        # Start/stop reading intervals and streaks
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type built on the shared *gorm.DB:
//
//	db, err := database.Default(cfg.Database.Path)
//	repo := catalog.NewRepository(db.DB)
//	doc, err := repo.AddDocument("Jane Austen - Emma.epub", entities.FormatFlow, payload)
//
// The process-wide handle from Default is opened lazily on first use;
// concurrent first callers coalesce onto the same open attempt and receive the
// same handle. Tests use ResetDefault to tear it down.
package database
