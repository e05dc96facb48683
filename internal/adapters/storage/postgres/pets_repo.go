package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-marketplace/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO pets (
			id, owner_user_id,
			name, age, available, price, category_id,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		p.ID,
		p.OwnerUserID,
		p.Name,
		p.Age,
		p.Available,
		p.Price,
		p.CategoryID,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if err := insertPetTags(ctx, tx, p.ID, p.TagIDs); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			age = $3,
			available = $4,
			price = $5,
			category_id = $6,
			updated_at = $7
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.Age,
		p.Available,
		p.Price,
		p.CategoryID,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}

	// Reemplazo completo del set de tags; el PATCH ya resolvió el merge.
	if _, err := tx.ExecContext(ctx, `DELETE FROM pet_tags WHERE pet_id = $1`, p.ID); err != nil {
		return err
	}
	if err := insertPetTags(ctx, tx, p.ID, p.TagIDs); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, owner_user_id,
			name, age, available, price, category_id,
			created_at, updated_at
		FROM pets
		WHERE id = $1
	`, id)

	p, err := scanPet(row)
	if err != nil {
		return pets.Pet{}, err
	}

	tags, err := r.tagsForPet(ctx, p.ID)
	if err != nil {
		return pets.Pet{}, err
	}
	p.TagIDs = tags
	return p, nil
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}
	return r.list(ctx, `
		SELECT
			id, owner_user_id,
			name, age, available, price, category_id,
			created_at, updated_at
		FROM pets
		WHERE owner_user_id = $1
		ORDER BY created_at ASC
	`, ownerUserID)
}

func (r *PetsRepo) ListAvailable(ctx context.Context) ([]pets.Pet, error) {
	return r.list(ctx, `
		SELECT
			id, owner_user_id,
			name, age, available, price, category_id,
			created_at, updated_at
		FROM pets
		WHERE available = TRUE
		ORDER BY created_at ASC
	`)
}

// Delete cascadea subasta y pujas vía FK ON DELETE CASCADE.
func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PetsRepo) list(ctx context.Context, query string, args ...any) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// N+1 sobre pet_tags; aceptable para el volumen del MVP.
	for i := range out {
		tags, err := r.tagsForPet(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].TagIDs = tags
	}
	return out, nil
}

func (r *PetsRepo) tagsForPet(ctx context.Context, petID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT tag_id FROM pet_tags WHERE pet_id = $1 ORDER BY tag_id ASC
	`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func insertPetTags(ctx context.Context, tx *sql.Tx, petID string, tagIDs []string) error {
	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO pet_tags (pet_id, tag_id) VALUES ($1,$2)
			ON CONFLICT DO NOTHING
		`, petID, tagID); err != nil {
			return err
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	err := row.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.Name,
		&p.Age,
		&p.Available,
		&p.Price,
		&p.CategoryID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return pets.Pet{}, ErrNotFound
	}
	if err != nil {
		return pets.Pet{}, err
	}
	return p, nil
}
