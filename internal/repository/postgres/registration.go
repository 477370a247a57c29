package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"venuebook-backend/internal/domain"
	"venuebook-backend/internal/logger"
	"venuebook-backend/internal/repository"
)

type registrationRepository struct {
	db *sql.DB
}

func NewRegistrationRepository(db *sql.DB) repository.RegistrationRepository {
	return &registrationRepository{db: db}
}

const registrationColumns = `id, owner_id, venue_name, phone, location, profile_image,
	venue_images, citizenship_front, citizenship_back, business_registration, pan_card,
	sections, registration_status, submitted_at, approved_at, rejected_at, venue_id,
	version, created_on, updated_on`

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	logger.EnterMethod("registrationRepository.Create", "ownerID", reg.OwnerID)

	cols, err := marshalRegistration(reg)
	if err != nil {
		logger.ExitMethodWithError("registrationRepository.Create", err)
		return err
	}

	query := `INSERT INTO registrations (owner_id, venue_name, phone, location, profile_image,
	          venue_images, citizenship_front, citizenship_back, business_registration, pan_card,
	          sections, registration_status, submitted_at, approved_at, rejected_at, venue_id,
	          version, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, 1, $17, $17)
	          RETURNING id`
	logger.DatabaseCall("INSERT", "registrations", "ownerID", reg.OwnerID)

	now := time.Now()
	reg.Version = 1
	reg.CreatedOn = now
	reg.UpdatedOn = now
	err = r.db.QueryRowContext(ctx, query,
		reg.OwnerID, reg.VenueName, reg.Phone, cols.location, cols.profileImage,
		cols.venueImages, cols.citizenshipFront, cols.citizenshipBack, cols.businessRegistration,
		cols.panCard, cols.sections, reg.Status, reg.SubmittedAt, reg.ApprovedAt, reg.RejectedAt,
		reg.VenueID, now,
	).Scan(&reg.ID)
	logger.DatabaseResult("INSERT", 1, err, "registrationID", reg.ID)

	if err != nil {
		logger.ExitMethodWithError("registrationRepository.Create", err, "ownerID", reg.OwnerID)
		return err
	}
	logger.ExitMethod("registrationRepository.Create", "registrationID", reg.ID)
	return nil
}

func (r *registrationRepository) GetByID(ctx context.Context, id int32) (*domain.Registration, error) {
	query := fmt.Sprintf(`SELECT %s FROM registrations WHERE id = $1`, registrationColumns)
	return r.scanRegistration(r.db.QueryRowContext(ctx, query, id))
}

func (r *registrationRepository) GetByOwner(ctx context.Context, ownerID int32) (*domain.Registration, error) {
	query := fmt.Sprintf(`SELECT %s FROM registrations WHERE owner_id = $1`, registrationColumns)
	return r.scanRegistration(r.db.QueryRowContext(ctx, query, ownerID))
}

// Update writes the aggregate back only if the row still carries the version
// the caller read. Zero rows affected means a concurrent review won the race.
func (r *registrationRepository) Update(ctx context.Context, reg *domain.Registration) error {
	logger.EnterMethod("registrationRepository.Update", "registrationID", reg.ID, "version", reg.Version)

	cols, err := marshalRegistration(reg)
	if err != nil {
		logger.ExitMethodWithError("registrationRepository.Update", err)
		return err
	}

	query := `UPDATE registrations SET venue_name = $1, phone = $2, location = $3,
	          profile_image = $4, venue_images = $5, citizenship_front = $6, citizenship_back = $7,
	          business_registration = $8, pan_card = $9, sections = $10, registration_status = $11,
	          submitted_at = $12, approved_at = $13, rejected_at = $14, venue_id = $15,
	          version = version + 1, updated_on = $16
	          WHERE id = $17 AND version = $18`
	logger.DatabaseCall("UPDATE", "registrations", "registrationID", reg.ID)

	now := time.Now()
	result, err := r.db.ExecContext(ctx, query,
		reg.VenueName, reg.Phone, cols.location, cols.profileImage, cols.venueImages,
		cols.citizenshipFront, cols.citizenshipBack, cols.businessRegistration, cols.panCard,
		cols.sections, reg.Status, reg.SubmittedAt, reg.ApprovedAt, reg.RejectedAt,
		reg.VenueID, now, reg.ID, reg.Version)
	if err != nil {
		logger.ExitMethodWithError("registrationRepository.Update", err, "registrationID", reg.ID)
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		err := domain.ConflictError("registration %d was modified concurrently, retry the operation", reg.ID)
		logger.ExitMethodWithError("registrationRepository.Update", err, "registrationID", reg.ID)
		return err
	}

	reg.Version++
	reg.UpdatedOn = now
	logger.ExitMethod("registrationRepository.Update", "registrationID", reg.ID, "version", reg.Version)
	return nil
}

func (r *registrationRepository) List(ctx context.Context, filter repository.RegistrationFilter) ([]domain.Registration, int32, error) {
	// Unsubmitted drafts never appear in the review queue, filtered or not.
	where := `WHERE r.registration_status <> 'DRAFT'`
	args := []any{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(` AND r.registration_status = $%d`, len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(` AND (r.venue_name ILIKE $%d OR u.name ILIKE $%d)`, len(args), len(args))
	}

	countQuery := fmt.Sprintf(`SELECT count(*) FROM registrations r JOIN users u ON r.owner_id = u.id %s`, where)
	var total int32
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	args = append(args, pageSize, (page-1)*pageSize)
	query := fmt.Sprintf(`SELECT %s FROM registrations r JOIN users u ON r.owner_id = u.id %s
	         ORDER BY r.submitted_at ASC NULLS LAST, r.id ASC LIMIT $%d OFFSET $%d`,
		prefixColumns("r"), where, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var regs []domain.Registration
	for rows.Next() {
		reg, err := scanRegistrationRow(rows)
		if err != nil {
			return nil, 0, err
		}
		regs = append(regs, *reg)
	}
	return regs, total, rows.Err()
}

func (r *registrationRepository) CountByStatus(ctx context.Context) (map[domain.RegistrationStatus]int32, error) {
	query := `SELECT registration_status, count(*) FROM registrations GROUP BY registration_status`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.RegistrationStatus]int32, len(domain.RegistrationStatuses))
	for _, status := range domain.RegistrationStatuses {
		counts[status] = 0
	}
	for rows.Next() {
		var status domain.RegistrationStatus
		var count int32
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// jsonColumns holds the JSONB-encoded fields of a registration row.
type jsonColumns struct {
	location             []byte
	profileImage         []byte
	venueImages          []byte
	citizenshipFront     []byte
	citizenshipBack      []byte
	businessRegistration []byte
	panCard              []byte
	sections             []byte
}

func marshalRegistration(reg *domain.Registration) (*jsonColumns, error) {
	cols := &jsonColumns{}
	var err error
	if cols.location, err = json.Marshal(reg.Location); err != nil {
		return nil, err
	}
	if cols.sections, err = json.Marshal(reg.Sections); err != nil {
		return nil, err
	}
	if cols.profileImage, err = marshalNullable(reg.ProfileImage); err != nil {
		return nil, err
	}
	if cols.citizenshipFront, err = marshalNullable(reg.CitizenshipFront); err != nil {
		return nil, err
	}
	if cols.citizenshipBack, err = marshalNullable(reg.CitizenshipBack); err != nil {
		return nil, err
	}
	if cols.businessRegistration, err = marshalNullable(reg.BusinessRegistration); err != nil {
		return nil, err
	}
	if cols.panCard, err = marshalNullable(reg.PanCard); err != nil {
		return nil, err
	}
	if reg.VenueImages != nil {
		if cols.venueImages, err = json.Marshal(reg.VenueImages); err != nil {
			return nil, err
		}
	}
	return cols, nil
}

func marshalNullable(ref *domain.ImageRef) ([]byte, error) {
	if ref == nil {
		return nil, nil
	}
	return json.Marshal(ref)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *registrationRepository) scanRegistration(row *sql.Row) (*domain.Registration, error) {
	reg, err := scanRegistrationRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("registration not found")
	}
	return reg, err
}

func scanRegistrationRow(row rowScanner) (*domain.Registration, error) {
	reg := &domain.Registration{}
	var (
		location             []byte
		profileImage         []byte
		venueImages          []byte
		citizenshipFront     []byte
		citizenshipBack      []byte
		businessRegistration []byte
		panCard              []byte
		sections             []byte
	)
	err := row.Scan(
		&reg.ID, &reg.OwnerID, &reg.VenueName, &reg.Phone, &location, &profileImage,
		&venueImages, &citizenshipFront, &citizenshipBack, &businessRegistration, &panCard,
		&sections, &reg.Status, &reg.SubmittedAt, &reg.ApprovedAt, &reg.RejectedAt,
		&reg.VenueID, &reg.Version, &reg.CreatedOn, &reg.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}

	if len(location) > 0 {
		if err := json.Unmarshal(location, &reg.Location); err != nil {
			return nil, err
		}
	}
	if len(sections) > 0 {
		if err := json.Unmarshal(sections, &reg.Sections); err != nil {
			return nil, err
		}
	}
	if len(venueImages) > 0 {
		if err := json.Unmarshal(venueImages, &reg.VenueImages); err != nil {
			return nil, err
		}
	}
	for _, pair := range []struct {
		raw []byte
		ref **domain.ImageRef
	}{
		{profileImage, &reg.ProfileImage},
		{citizenshipFront, &reg.CitizenshipFront},
		{citizenshipBack, &reg.CitizenshipBack},
		{businessRegistration, &reg.BusinessRegistration},
		{panCard, &reg.PanCard},
	} {
		if len(pair.raw) == 0 {
			continue
		}
		ref := &domain.ImageRef{}
		if err := json.Unmarshal(pair.raw, ref); err != nil {
			return nil, err
		}
		*pair.ref = ref
	}
	return reg, nil
}

func prefixColumns(alias string) string {
	return fmt.Sprintf(`%[1]s.id, %[1]s.owner_id, %[1]s.venue_name, %[1]s.phone, %[1]s.location,
	%[1]s.profile_image, %[1]s.venue_images, %[1]s.citizenship_front, %[1]s.citizenship_back,
	%[1]s.business_registration, %[1]s.pan_card, %[1]s.sections, %[1]s.registration_status,
	%[1]s.submitted_at, %[1]s.approved_at, %[1]s.rejected_at, %[1]s.venue_id, %[1]s.version,
	%[1]s.created_on, %[1]s.updated_on`, alias)
}
