package store

const schema = `
CREATE TABLE IF NOT EXISTS reviews (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    slug         TEXT NOT NULL UNIQUE,
    name         TEXT NOT NULL,
    cuisine      TEXT NOT NULL,
    location     TEXT NOT NULL,
    rating       REAL NOT NULL DEFAULT 0,
    excerpt      TEXT NOT NULL DEFAULT '',
    image        TEXT NOT NULL DEFAULT '',
    price_range  TEXT NOT NULL DEFAULT '',
    full_review  TEXT NOT NULL DEFAULT '',
    highlights   TEXT NOT NULL DEFAULT '[]',
    atmosphere   TEXT NOT NULL DEFAULT '',
    must_try     TEXT NOT NULL DEFAULT '[]',
    visit_date   TEXT NOT NULL DEFAULT '',
    created_at   DATETIME NOT NULL,
    updated_at   DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reviews_slug ON reviews(slug);

CREATE TABLE IF NOT EXISTS cuisines (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    slug        TEXT NOT NULL UNIQUE,
    name        TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    image       TEXT NOT NULL DEFAULT '',
    created_at  DATETIME NOT NULL,
    updated_at  DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS nyc_categories (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    slug        TEXT NOT NULL UNIQUE,
    name        TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    image       TEXT NOT NULL DEFAULT '',
    created_at  DATETIME NOT NULL,
    updated_at  DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS regions (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    slug        TEXT NOT NULL UNIQUE,
    name        TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    image       TEXT NOT NULL DEFAULT '',
    created_at  DATETIME NOT NULL,
    updated_at  DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS location_categories (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    slug        TEXT NOT NULL UNIQUE,
    name        TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    image       TEXT NOT NULL DEFAULT '',
    region_id   INTEGER NOT NULL REFERENCES regions(id) ON DELETE CASCADE,
    created_at  DATETIME NOT NULL,
    updated_at  DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_location_categories_region ON location_categories(region_id);

CREATE TABLE IF NOT EXISTS review_cuisines (
    review_id  INTEGER NOT NULL REFERENCES reviews(id) ON DELETE CASCADE,
    cuisine_id INTEGER NOT NULL REFERENCES cuisines(id) ON DELETE CASCADE,
    PRIMARY KEY (review_id, cuisine_id)
);

CREATE TABLE IF NOT EXISTS review_nyc_categories (
    review_id   INTEGER NOT NULL REFERENCES reviews(id) ON DELETE CASCADE,
    category_id INTEGER NOT NULL REFERENCES nyc_categories(id) ON DELETE CASCADE,
    PRIMARY KEY (review_id, category_id)
);

CREATE TABLE IF NOT EXISTS review_location_categories (
    review_id   INTEGER NOT NULL REFERENCES reviews(id) ON DELETE CASCADE,
    category_id INTEGER NOT NULL REFERENCES location_categories(id) ON DELETE CASCADE,
    PRIMARY KEY (review_id, category_id)
);

CREATE TABLE IF NOT EXISTS top_ten_lists (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    slug        TEXT NOT NULL UNIQUE,
    name        TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    image       TEXT NOT NULL DEFAULT '',
    created_at  DATETIME NOT NULL,
    updated_at  DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS top_ten_list_items (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    list_id   INTEGER NOT NULL REFERENCES top_ten_lists(id) ON DELETE CASCADE,
    review_id INTEGER NOT NULL REFERENCES reviews(id) ON DELETE CASCADE,
    rank      INTEGER NOT NULL,
    UNIQUE(list_id, rank),
    UNIQUE(list_id, review_id)
);

CREATE INDEX IF NOT EXISTS idx_list_items_list ON top_ten_list_items(list_id);

CREATE TABLE IF NOT EXISTS contact_submissions (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    name       TEXT NOT NULL,
    email      TEXT NOT NULL,
    message    TEXT NOT NULL,
    read       INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS social_settings (
    platform   TEXT PRIMARY KEY,
    url        TEXT NOT NULL DEFAULT '',
    handle     TEXT NOT NULL DEFAULT '',
    enabled    BOOLEAN NOT NULL DEFAULT 1,
    updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS social_embeds (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    platform   TEXT NOT NULL,
    embed_html TEXT NOT NULL,
    sort_order INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_social_embeds_order ON social_embeds(platform, sort_order);

CREATE TABLE IF NOT EXISTS page_headers (
    page       TEXT PRIMARY KEY,
    title      TEXT NOT NULL DEFAULT '',
    subtitle   TEXT NOT NULL DEFAULT '',
    image      TEXT NOT NULL DEFAULT '',
    updated_at DATETIME NOT NULL
);
`
