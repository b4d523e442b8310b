package database

func (d *Database) RunMigrations() error {
	// Latest-snapshot lookups filter by source and sort by time
	err := d.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_snapshots_source_fetched
		ON snapshots(source, fetched_at);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
