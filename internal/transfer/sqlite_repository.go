package transfer

import "database/sql"

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(name string) (*UploadSession, error) {
	query := `SELECT name, total_parts, created_at, updated_at
			  FROM upload_sessions WHERE name = $1`

	session := &UploadSession{}
	err := r.db.QueryRow(query, name).Scan(
		&session.Name,
		&session.TotalParts,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (r *SQLiteRepository) Save(session *UploadSession) error {
	query := `INSERT INTO upload_sessions (name, total_parts, created_at, updated_at)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (name) DO UPDATE SET
			  total_parts = EXCLUDED.total_parts,
			  updated_at = EXCLUDED.updated_at`

	_, err := r.db.Exec(query, session.Name, session.TotalParts, session.CreatedAt, session.UpdatedAt)
	return err
}

func (r *SQLiteRepository) Delete(name string) error {
	_, err := r.db.Exec(`DELETE FROM upload_sessions WHERE name = $1`, name)
	return err
}
