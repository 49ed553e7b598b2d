package repository

import "database/sql"

// Migrate creates the users and tasks tables when they do not exist yet.
// Username uniqueness and task ownership are enforced here, at the
// storage layer.
func Migrate(db *sql.DB) error {
	query := `
CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    username VARCHAR(255) NOT NULL UNIQUE,
    password VARCHAR(255) NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS tasks (
    id SERIAL PRIMARY KEY,
    user_id INT NOT NULL REFERENCES users (id),
    title VARCHAR(255) NOT NULL,
    description TEXT,
    status VARCHAR(32) NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := db.Exec(query)
	return err
}

// DropTables removes all persisted state. Administrative use only, e.g.
// test teardown.
func DropTables(db *sql.DB) error {
	query := `
DROP TABLE IF EXISTS tasks;
DROP TABLE IF EXISTS users;
`

	_, err := db.Exec(query)
	return err
}
