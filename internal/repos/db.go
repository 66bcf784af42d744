package repos

import (
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// OpenDB opens the catalog store and configures the connection pool.
// Driver is "sqlite" (dev and tests) or "mysql" (what the service runs
// against in production). The sqlite schema is applied here; the MySQL
// schema is provisioned out of band.
func OpenDB(driver, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if driver == "sqlite" {
		if err := EnsureSchema(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// EnsureSchema creates the sqlite tables if missing. Exported so tests can
// build in-memory stores with the real schema.
func EnsureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Categories: name is the sync key, store assigns the id.
CREATE TABLE IF NOT EXISTS categories(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL UNIQUE
);

-- Products: id comes from the upstream catalog, never generated here.
CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT,
  category_id INTEGER REFERENCES categories(id),
  price NUMERIC NOT NULL,
  discountPercentage NUMERIC,
  rating NUMERIC,
  stock INTEGER,
  brand TEXT,
  weight NUMERIC,
  warrantyInformation TEXT,
  createdAt TIMESTAMP NOT NULL,
  updatedAt TIMESTAMP NOT NULL,
  thumbnail TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);
CREATE INDEX IF NOT EXISTS idx_products_price    ON products(price);
CREATE INDEX IF NOT EXISTS idx_products_rating   ON products(rating);

-- One row per product, only when the source record carried dimensions.
CREATE TABLE IF NOT EXISTS product_dimensions(
  product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  width NUMERIC,
  height NUMERIC,
  depth NUMERIC
);
CREATE INDEX IF NOT EXISTS idx_dimensions_product ON product_dimensions(product_id);

CREATE TABLE IF NOT EXISTS product_images(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  image_url TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_images_product ON product_images(product_id);

-- Users & baskets (write API collaborators)
CREATE TABLE IF NOT EXISTS users(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  phone TEXT,
  role TEXT NOT NULL DEFAULT 'user'
);

CREATE TABLE IF NOT EXISTS basket_items(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  product_id INTEGER NOT NULL REFERENCES products(id),
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  UNIQUE(user_id, product_id)
);
`
	_, err := db.Exec(schema)
	return err
}
