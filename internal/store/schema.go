package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS projects (
    id              TEXT PRIMARY KEY,
    name            TEXT NOT NULL,
    description     TEXT,
    type            TEXT,
    budget          REAL NOT NULL,
    spent           REAL NOT NULL DEFAULT 0,
    status          TEXT NOT NULL,
    location        TEXT,
    client_name     TEXT,
    start_date      TEXT,
    end_date        TEXT,
    created_by      TEXT,
    created_at      TEXT NOT NULL,
    updated_at      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS expenses (
    id              TEXT PRIMARY KEY,
    project_id      TEXT NOT NULL,
    item_name       TEXT NOT NULL,
    category        TEXT,
    type            TEXT,
    amount          REAL NOT NULL,
    quantity        REAL,
    unit            TEXT,
    date            TEXT,
    status          TEXT NOT NULL,
    vendor          TEXT,
    receipt_number  TEXT,
    notes           TEXT,
    created_by      TEXT,
    created_at      TEXT NOT NULL,
    updated_at      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS inventory_items (
    id              TEXT PRIMARY KEY,
    name            TEXT NOT NULL,
    sku             TEXT,
    description     TEXT,
    category        TEXT,
    quantity        REAL NOT NULL,
    unit            TEXT,
    unit_price      REAL NOT NULL,
    reorder_level   REAL NOT NULL DEFAULT 0,
    total_value     REAL NOT NULL,
    project_id      TEXT,
    location        TEXT,
    supplier        TEXT,
    status          TEXT NOT NULL,
    adj_amount      REAL,
    adj_reason      TEXT,
    adj_date        TEXT,
    created_at      TEXT NOT NULL,
    updated_at      TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_expenses_project ON expenses(project_id);
CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date);
CREATE INDEX IF NOT EXISTS idx_items_project ON inventory_items(project_id);
`
