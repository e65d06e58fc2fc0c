package otp

import (
	"database/sql"
	"time"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Save(phone, code string, issuedAt, expiresAt time.Time) error {
	_, err := r.db.Exec(`
		INSERT INTO otp_codes (phone, code, issued_at, expires_at)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (phone) DO UPDATE SET code = $2, issued_at = $3, expires_at = $4
	`, phone, code, issuedAt, expiresAt)
	return err
}

func (r *PostgresRepository) LastIssuedAt(phone string) (time.Time, error) {
	var issuedAt time.Time
	err := r.db.QueryRow(`SELECT issued_at FROM otp_codes WHERE phone = $1`, phone).Scan(&issuedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}
	return issuedAt, nil
}

func (r *PostgresRepository) Consume(phone, code string) error {
	result, err := r.db.Exec(`
		DELETE FROM otp_codes
		WHERE phone = $1 AND code = $2 AND expires_at > NOW()
	`, phone, code)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCodeInvalid
	}
	return nil
}
