package database

import (
	"sync"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lectern-app/lectern/internal/entities"
)

// collections enumerates every record collection the store owns, in the order
// bulk operations visit them. Dependents come before documents so a wipe never
// leaves a dangling reference observable mid-way.
var collections = []struct {
	Name  string
	Model any
}{
	{"annotations", &entities.Annotation{}},
	{"sessions", &entities.ReadingSession{}},
	{"progress", &entities.Progress{}},
	{"documents", &entities.Document{}},
}

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens (creating if necessary) the store at dbPath and runs
// schema migration for the four collections.
func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, &StoreError{Op: "open", Err: err}
	}

	err = db.AutoMigrate(
		&entities.Document{},
		&entities.Annotation{},
		&entities.Progress{},
		&entities.ReadingSession{},
	)
	if err != nil {
		return nil, &StoreError{Op: "migrate", Err: err}
	}

	log.Info().Str("path", dbPath).Msg("database initialized")

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping verifies the underlying medium is still reachable.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return &StoreError{Op: "ping", Err: err}
	}
	if err := sqlDB.Ping(); err != nil {
		return &StoreError{Op: "ping", Err: err}
	}
	return nil
}

// ClearAll wipes every collection. Used only for a full reset. Each collection
// is wiped independently; if any fail, the returned ClearError names exactly
// which ones, so the caller can retry just the remainder.
func (d *Database) ClearAll() error {
	failed := make(map[string]error)
	for _, c := range collections {
		err := d.DB.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(c.Model).Error
		if err != nil {
			failed[c.Name] = err
		}
	}
	if len(failed) > 0 {
		return &ClearError{Failed: failed}
	}
	return nil
}

// Stats summarizes the whole store for the statistics surface.
type Stats struct {
	Documents           int64 `json:"documents"`
	Annotations         int64 `json:"annotations"`
	FinishedDocuments   int64 `json:"finished_documents"`
	TotalReadingMinutes int64 `json:"total_reading_minutes"`
}

// GetStats returns library-wide totals.
func (d *Database) GetStats() (Stats, error) {
	var s Stats
	if err := d.DB.Model(&entities.Document{}).Count(&s.Documents).Error; err != nil {
		return s, &StoreError{Op: "count documents", Err: err}
	}
	if err := d.DB.Model(&entities.Annotation{}).Count(&s.Annotations).Error; err != nil {
		return s, &StoreError{Op: "count annotations", Err: err}
	}
	if err := d.DB.Model(&entities.Progress{}).Where("finished = ?", true).Count(&s.FinishedDocuments).Error; err != nil {
		return s, &StoreError{Op: "count finished", Err: err}
	}
	var minutes *int64
	if err := d.DB.Model(&entities.Progress{}).Select("SUM(total_reading_minutes)").Scan(&minutes).Error; err != nil {
		return s, &StoreError{Op: "sum reading time", Err: err}
	}
	if minutes != nil {
		s.TotalReadingMinutes = *minutes
	}
	return s, nil
}

var (
	defaultMu   sync.Mutex
	defaultDB   *Database
	defaultErr  error
	defaultOpen bool
)

// Default returns the process-wide store handle, opening it on first call.
// The mutex serializes concurrent first callers onto one open attempt, so
// every caller resolves to the same handle; a failed open is remembered until
// ResetDefault.
func Default(dbPath string) (*Database, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if !defaultOpen {
		defaultDB, defaultErr = NewDatabase(dbPath)
		defaultOpen = true
	}
	return defaultDB, defaultErr
}

// ResetDefault closes and forgets the shared handle so the next Default call
// opens a fresh one. Exists for tests; the handle is never closed during
// normal operation.
func ResetDefault() error {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	var err error
	if defaultDB != nil {
		err = defaultDB.Close()
	}
	defaultDB, defaultErr, defaultOpen = nil, nil, false
	return err
}

// CollectionNames lists the logical collections in wipe order.
func CollectionNames() []string {
	names := make([]string, 0, len(collections))
	for _, c := range collections {
		names = append(names, c.Name)
	}
	return names
}
