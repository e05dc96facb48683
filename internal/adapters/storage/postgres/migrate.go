package postgres

import (
	"context"
	"database/sql"
)

// schema es idempotente (IF NOT EXISTS) y se aplica en el arranque.
// Las restricciones de unicidad de auctions.pet_id y bids(auction_id, bidder)
// son la frontera de corrección de los flujos de subasta: los services dan
// el mensaje amable, la base decide las carreras.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS auth_tokens (
	hash       TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	expires_at TIMESTAMPTZ NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS categories (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS tags (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS pets (
	id            TEXT PRIMARY KEY,
	owner_user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	name          TEXT NOT NULL,
	age           INTEGER NOT NULL,
	available     BOOLEAN NOT NULL,
	price         DOUBLE PRECISION NOT NULL,
	category_id   TEXT NOT NULL REFERENCES categories(id),
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS pet_tags (
	pet_id TEXT NOT NULL REFERENCES pets(id) ON DELETE CASCADE,
	tag_id TEXT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
	PRIMARY KEY (pet_id, tag_id)
);

CREATE TABLE IF NOT EXISTS auctions (
	id          TEXT PRIMARY KEY,
	pet_id      TEXT NOT NULL REFERENCES pets(id) ON DELETE CASCADE,
	start_price DOUBLE PRECISION NOT NULL,
	start_date  TIMESTAMPTZ NOT NULL,
	end_date    TIMESTAMPTZ NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL,
	CONSTRAINT auctions_pet_id_key UNIQUE (pet_id)
);

CREATE TABLE IF NOT EXISTS bids (
	id             TEXT PRIMARY KEY,
	auction_id     TEXT NOT NULL REFERENCES auctions(id) ON DELETE CASCADE,
	bidder_user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	price          DOUBLE PRECISION NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL,
	updated_at     TIMESTAMPTZ NOT NULL,
	CONSTRAINT bids_auction_bidder_key UNIQUE (auction_id, bidder_user_id)
);

CREATE INDEX IF NOT EXISTS idx_pets_owner ON pets (owner_user_id);
CREATE INDEX IF NOT EXISTS idx_pets_available ON pets (available);
CREATE INDEX IF NOT EXISTS idx_bids_auction ON bids (auction_id);
CREATE INDEX IF NOT EXISTS idx_bids_bidder ON bids (bidder_user_id);
`

// Migrate aplica el esquema. Sin versionado: el esquema completo es
// idempotente y este servicio es el único dueño de la base.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
