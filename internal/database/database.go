package database

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNoSnapshot is returned when a source has never been stored.
var ErrNoSnapshot = errors.New("no snapshot stored for source")

// Snapshot is the raw content of a dataset as last fetched from its source.
type Snapshot struct {
	ID        uint      `gorm:"primaryKey"`
	Source    string    `gorm:"not null;index"`
	Checksum  string    `gorm:"not null;size:64"`
	Size      int       `gorm:"not null"`
	Content   []byte    `gorm:"not null"`
	FetchedAt time.Time `gorm:"not null;index"`
}

type Database struct {
	db *gorm.DB
}

func open(dsn string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

// NewDatabase opens (and creates if needed) the snapshot database at dbPath
// and brings its schema up to date.
func NewDatabase(dbPath string) (*Database, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := MigrateSchema(db); err != nil {
		return nil, err
	}

	d := &Database{db: db}
	if err := d.RunMigrations(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return d, nil
}

// NewTestDB returns an in-memory database for tests.
func NewTestDB() (*gorm.DB, error) {
	db, err := open("file::memory:")
	if err != nil {
		return nil, err
	}
	// every pooled connection would otherwise see its own empty database
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// MigrateSchema creates or updates the snapshot table.
func MigrateSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(&Snapshot{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// FromGorm wraps an already migrated connection.
func FromGorm(db *gorm.DB) *Database {
	return &Database{db: db}
}

func checksum(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// SaveSnapshot stores content for a source. When the latest stored snapshot
// has the same checksum nothing is written and false is returned.
func (d *Database) SaveSnapshot(source string, content []byte) (bool, error) {
	sum := checksum(content)

	var latest Snapshot
	err := d.db.Where("source = ?", source).Order("fetched_at DESC, id DESC").First(&latest).Error
	switch {
	case err == nil:
		if latest.Checksum == sum {
			return false, nil
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return false, fmt.Errorf("failed to look up snapshot: %w", err)
	}

	snap := Snapshot{
		Source:    source,
		Checksum:  sum,
		Size:      len(content),
		Content:   content,
		FetchedAt: time.Now().UTC(),
	}
	if err := d.db.Create(&snap).Error; err != nil {
		return false, fmt.Errorf("failed to save snapshot: %w", err)
	}
	return true, nil
}

// LatestSnapshot returns the newest stored content of a source.
func (d *Database) LatestSnapshot(source string) (*Snapshot, error) {
	var snap Snapshot
	err := d.db.Where("source = ?", source).Order("fetched_at DESC, id DESC").First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return &snap, nil
}

// PruneSnapshots keeps the newest keep snapshots of a source and deletes the rest.
func (d *Database) PruneSnapshots(source string, keep int) (int64, error) {
	if keep < 1 {
		keep = 1
	}
	var ids []uint
	err := d.db.Model(&Snapshot{}).
		Where("source = ?", source).
		Order("fetched_at DESC, id DESC").
		Pluck("id", &ids).Error
	if err != nil {
		return 0, fmt.Errorf("failed to list old snapshots: %w", err)
	}
	if len(ids) <= keep {
		return 0, nil
	}
	ids = ids[keep:]

	var deleted int64
	err = d.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id IN ?", ids).Delete(&Snapshot{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to prune snapshots: %w", err)
	}
	return deleted, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
