package storage

const schemaV1 = `
CREATE TABLE IF NOT EXISTS downloads (
    download_id     INTEGER PRIMARY KEY AUTOINCREMENT,
    run_uuid        TEXT UNIQUE NOT NULL,
    account_id      TEXT NOT NULL,
    data_file       TEXT NOT NULL,
    region_count    INTEGER NOT NULL DEFAULT 0,
    total_resources INTEGER NOT NULL DEFAULT 0,
    started_at      DATETIME NOT NULL,
    duration_ms     INTEGER,
    cli_version     TEXT,
    aws_profile     TEXT,
    created_at      DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_downloads_account_started
    ON downloads(account_id, started_at);
CREATE INDEX IF NOT EXISTS idx_downloads_started
    ON downloads(started_at DESC);

CREATE TABLE IF NOT EXISTS download_regions (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    download_id  INTEGER NOT NULL,
    region       TEXT NOT NULL,
    FOREIGN KEY (download_id) REFERENCES downloads(download_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_download_regions_download ON download_regions(download_id);

CREATE TABLE IF NOT EXISTS resource_counts (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    download_id    INTEGER NOT NULL,
    resource_kind  TEXT NOT NULL,
    resource_count INTEGER NOT NULL,
    FOREIGN KEY (download_id) REFERENCES downloads(download_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_resource_counts_download ON resource_counts(download_id);
`
