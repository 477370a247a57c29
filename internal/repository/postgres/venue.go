package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"venuebook-backend/internal/domain"
	"venuebook-backend/internal/repository"
)

type venueRepository struct {
	db *sql.DB
}

func NewVenueRepository(db *sql.DB) repository.VenueRepository {
	return &venueRepository{db: db}
}

const venueColumns = `id, registration_id, owner_id, name, phone, location, profile_image,
	images, capacity, visible, created_on, updated_on`

// Upsert keys on registration_id so a retried publication never creates a
// duplicate venue: the conflict path only refreshes the mirrored fields.
func (r *venueRepository) Upsert(ctx context.Context, v *domain.Venue) error {
	location, err := json.Marshal(v.Location)
	if err != nil {
		return err
	}
	var profileImage []byte
	if v.ProfileImage != nil {
		if profileImage, err = json.Marshal(v.ProfileImage); err != nil {
			return err
		}
	}
	var images []byte
	if v.Images != nil {
		if images, err = json.Marshal(v.Images); err != nil {
			return err
		}
	}

	query := `INSERT INTO venues (registration_id, owner_id, name, phone, location, profile_image,
	          images, capacity, visible, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
	          ON CONFLICT (registration_id) DO UPDATE SET
	            name = EXCLUDED.name,
	            phone = EXCLUDED.phone,
	            location = EXCLUDED.location,
	            profile_image = EXCLUDED.profile_image,
	            images = EXCLUDED.images,
	            visible = EXCLUDED.visible,
	            updated_on = EXCLUDED.updated_on
	          RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query,
		v.RegistrationID, v.OwnerID, v.Name, v.Phone, location, profileImage,
		images, v.Capacity, v.Visible, now,
	).Scan(&v.ID)
}

func (r *venueRepository) GetByID(ctx context.Context, id int32) (*domain.Venue, error) {
	query := fmt.Sprintf(`SELECT %s FROM venues WHERE id = $1`, venueColumns)
	v, err := scanVenue(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("venue not found")
	}
	return v, err
}

func (r *venueRepository) ListVisible(ctx context.Context, page, pageSize int32) ([]domain.Venue, int32, error) {
	var total int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM venues WHERE visible = TRUE`).Scan(&total); err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	query := fmt.Sprintf(`SELECT %s FROM venues WHERE visible = TRUE ORDER BY created_on DESC LIMIT $1 OFFSET $2`, venueColumns)
	rows, err := r.db.QueryContext(ctx, query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var venues []domain.Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, 0, err
		}
		venues = append(venues, *v)
	}
	return venues, total, rows.Err()
}

func (r *venueRepository) SetVisibility(ctx context.Context, venueID int32, visible bool) error {
	query := `UPDATE venues SET visible = $1, updated_on = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, visible, time.Now(), venueID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NotFoundError("venue not found")
	}
	return nil
}

func scanVenue(row rowScanner) (*domain.Venue, error) {
	v := &domain.Venue{}
	var location, profileImage, images []byte
	err := row.Scan(&v.ID, &v.RegistrationID, &v.OwnerID, &v.Name, &v.Phone, &location,
		&profileImage, &images, &v.Capacity, &v.Visible, &v.CreatedOn, &v.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if len(location) > 0 {
		if err := json.Unmarshal(location, &v.Location); err != nil {
			return nil, err
		}
	}
	if len(profileImage) > 0 {
		v.ProfileImage = &domain.ImageRef{}
		if err := json.Unmarshal(profileImage, v.ProfileImage); err != nil {
			return nil, err
		}
	}
	if len(images) > 0 {
		if err := json.Unmarshal(images, &v.Images); err != nil {
			return nil, err
		}
	}
	return v, nil
}
