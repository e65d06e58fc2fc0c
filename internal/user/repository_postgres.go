package user

import (
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	selectUserColumns = `
		SELECT user_id, email, password, first_name, last_name, phone, verified, avatar,
			main_address_id, array_to_string(wishlist, ',') AS wishlist_text, cart::text,
			created_at, updated_at
		FROM users
	`
	insertUserQuery = `
		INSERT INTO users (email, password, first_name, last_name, phone, verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING user_id
	`
	updateUserQuery = `
		UPDATE users
		SET email = $1, first_name = $2, last_name = $3, phone = $4,
			avatar = $5, main_address_id = $6, updated_at = $7
		WHERE user_id = $8
	`
	updatePasswordQuery = `UPDATE users SET password = $1, updated_at = $2 WHERE user_id = $3`
	markVerifiedQuery   = `UPDATE users SET verified = TRUE, updated_at = $1 WHERE user_id = $2`
	deleteUserQuery     = `DELETE FROM users WHERE user_id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	return r.getOne(selectUserColumns+` WHERE user_id = $1`, id)
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	return r.getOne(selectUserColumns+` WHERE email = $1`, email)
}

func (r *PostgresRepository) GetByPhone(phone string) (User, error) {
	return r.getOne(selectUserColumns+` WHERE phone = $1`, phone)
}

func (r *PostgresRepository) getOne(query string, arg any) (User, error) {
	u, err := scanUser(r.db.QueryRow(query, arg))
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) Create(u User) (User, error) {
	var id int
	err := r.db.QueryRow(
		insertUserQuery,
		u.Email, u.Password, u.FirstName, u.LastName, u.Phone, u.Verified, u.CreatedAt, u.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return User{}, err
	}
	u.ID = id
	return u, nil
}

func (r *PostgresRepository) Update(id int, upd User) (User, error) {
	var avatarArg any
	if upd.AvatarPic != nil {
		avatarArg = *upd.AvatarPic
	}
	var mainAddrArg any
	if upd.MainAddressID != nil {
		mainAddrArg = *upd.MainAddressID
	}
	result, err := r.db.Exec(
		updateUserQuery,
		upd.Email, upd.FirstName, upd.LastName, upd.Phone, avatarArg, mainAddrArg, upd.UpdatedAt, id,
	)
	if err != nil {
		return User{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return User{}, err
	}
	if affected == 0 {
		return User{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) UpdatePassword(id int, hashed, updatedAt string) error {
	result, err := r.db.Exec(updatePasswordQuery, hashed, updatedAt, id)
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

func (r *PostgresRepository) MarkVerified(id int, updatedAt string) error {
	result, err := r.db.Exec(markVerifiedQuery, updatedAt, id)
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

func (r *PostgresRepository) Delete(id int) error {
	result, err := r.db.Exec(deleteUserQuery, id)
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

func scanUser(scanner rowScanner) (User, error) {
	u := User{}
	var (
		avatar       sql.NullString
		mainAddr     sql.NullInt64
		wishlistText sql.NullString
		cartJSON     sql.NullString
		createdAt    sql.NullString
		updatedAt    sql.NullString
	)
	if err := scanner.Scan(
		&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.Phone, &u.Verified,
		&avatar, &mainAddr, &wishlistText, &cartJSON, &createdAt, &updatedAt,
	); err != nil {
		return User{}, err
	}

	if avatar.Valid {
		u.AvatarPic = &avatar.String
	}
	if mainAddr.Valid {
		v := int(mainAddr.Int64)
		u.MainAddressID = &v
	}
	if wishlistText.Valid && wishlistText.String != "" {
		parts := strings.Split(wishlistText.String, ",")
		u.Wishlist = make([]int, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			v, err := strconv.Atoi(p)
			if err != nil {
				return User{}, err
			}
			u.Wishlist = append(u.Wishlist, v)
		}
	}
	if cartJSON.Valid && cartJSON.String != "" {
		var raw map[string]int
		if err := json.Unmarshal([]byte(cartJSON.String), &raw); err == nil {
			u.Cart = make(map[int]int, len(raw))
			for k, qty := range raw {
				pid, err := strconv.Atoi(k)
				if err != nil {
					return User{}, err
				}
				u.Cart[pid] = qty
			}
		}
	}
	if createdAt.Valid {
		u.CreatedAt = createdAt.String
	}
	if updatedAt.Valid {
		u.UpdatedAt = updatedAt.String
	}
	return u, nil
}

// PostgresResetRepository persists password reset codes.
type PostgresResetRepository struct {
	db *sql.DB
}

func NewPostgresResetRepository(db *sql.DB) *PostgresResetRepository {
	return &PostgresResetRepository{db: db}
}

func (r *PostgresResetRepository) SaveResetCode(email, code string, expiresAt time.Time) error {
	_, err := r.db.Exec(`
		INSERT INTO password_resets (email, code, expires_at) VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET code = $2, expires_at = $3`,
		email, code, expiresAt)
	return err
}

func (r *PostgresResetRepository) ConsumeResetCode(email, code string) error {
	result, err := r.db.Exec(`
		DELETE FROM password_resets
		WHERE email = $1 AND code = $2 AND expires_at > NOW()`,
		email, code)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrResetCodeInvalid
	}
	return nil
}
