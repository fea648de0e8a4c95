// store/schema.go
package store

const Schema = `
CREATE TABLE IF NOT EXISTS imports (
	import_id TEXT PRIMARY KEY,
	source TEXT NOT NULL,
	imported_at DATETIME NOT NULL,
	rows INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS records (
	import_id TEXT NOT NULL,
	activity_date TEXT NOT NULL,
	process_date TEXT NOT NULL,
	settle_date TEXT NOT NULL,
	instrument TEXT NOT NULL,
	description TEXT NOT NULL,
	trans_code TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	price TEXT NOT NULL,
	amount TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_records_instrument ON records(instrument);
CREATE INDEX IF NOT EXISTS idx_records_activity_date ON records(activity_date);
`
