package address

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	selectAddressColumns = `
		SELECT address_id, user_id, name, phone, description, created_at, updated_at
		FROM addresses
	`
	insertAddressQuery = `
		INSERT INTO addresses (user_id, name, phone, description, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING address_id
	`
	updateAddressQuery = `
		UPDATE addresses
		SET name = $3, phone = $4, description = $5, updated_at = $6
		WHERE user_id = $1 AND address_id = $2
	`
	deleteAddressQuery = `DELETE FROM addresses WHERE user_id = $1 AND address_id = $2`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(userID int) ([]Address, error) {
	rows, err := r.db.Query(selectAddressColumns+` WHERE user_id = $1 ORDER BY address_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Address, 0)
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *PostgresRepository) Get(userID, addressID int) (Address, error) {
	a, err := scanAddress(r.db.QueryRow(selectAddressColumns+` WHERE user_id = $1 AND address_id = $2`, userID, addressID))
	if err != nil {
		if err == sql.ErrNoRows {
			return Address{}, ErrNotFound
		}
		return Address{}, err
	}
	return a, nil
}

func (r *PostgresRepository) Add(a Address) (Address, error) {
	err := r.db.QueryRow(insertAddressQuery, a.UserID, a.Name, a.Phone, a.Description, a.CreatedAt, a.UpdatedAt).Scan(&a.AddressID)
	if err != nil {
		return Address{}, err
	}
	return a, nil
}

func (r *PostgresRepository) Update(a Address) (Address, error) {
	result, err := r.db.Exec(updateAddressQuery, a.UserID, a.AddressID, a.Name, a.Phone, a.Description, a.UpdatedAt)
	if err != nil {
		return Address{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Address{}, err
	}
	if affected == 0 {
		return Address{}, ErrNotFound
	}
	return r.Get(a.UserID, a.AddressID)
}

func (r *PostgresRepository) Delete(userID, addressID int) error {
	result, err := r.db.Exec(deleteAddressQuery, userID, addressID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAddress(scanner rowScanner) (Address, error) {
	var (
		a         Address
		createdAt sql.NullString
		updatedAt sql.NullString
	)
	if err := scanner.Scan(&a.AddressID, &a.UserID, &a.Name, &a.Phone, &a.Description, &createdAt, &updatedAt); err != nil {
		return Address{}, err
	}
	if createdAt.Valid {
		a.CreatedAt = createdAt.String
	}
	if updatedAt.Valid {
		a.UpdatedAt = updatedAt.String
	}
	return a, nil
}
