package postgres

import (
	"context"
	"database/sql"
	"time"

	"jobunya-carrental-backend/internal/domain"
	"jobunya-carrental-backend/internal/repository"
)

type damageReportRepository struct {
	db *sql.DB
}

func NewDamageReportRepository(db *sql.DB) repository.DamageReportRepository {
	return &damageReportRepository{db: db}
}

const damageColumns = `id, booking_id, user_id, description, status, created_on, updated_on`

func (r *damageReportRepository) Create(ctx context.Context, rep *domain.DamageReport) error {
	query := `INSERT INTO damage_reports (booking_id, user_id, description, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, rep.BookingID, rep.UserID, rep.Description, rep.Status, now, now).Scan(&rep.ID)
}

func (r *damageReportRepository) GetByID(ctx context.Context, id int32) (*domain.DamageReport, error) {
	rep := &domain.DamageReport{}
	query := `SELECT ` + damageColumns + ` FROM damage_reports WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&rep.ID, &rep.BookingID, &rep.UserID, &rep.Description, &rep.Status, &rep.CreatedOn, &rep.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return rep, nil
}

func (r *damageReportRepository) UpdateStatus(ctx context.Context, id int32, status domain.DamageReportStatus) error {
	query := `UPDATE damage_reports SET status=$1, updated_on=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	return err
}

func (r *damageReportRepository) ListByUser(ctx context.Context, userID int32) ([]domain.DamageReport, error) {
	query := `SELECT ` + damageColumns + ` FROM damage_reports WHERE user_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReports(rows)
}

func (r *damageReportRepository) ListAll(ctx context.Context) ([]domain.DamageReport, error) {
	query := `SELECT ` + damageColumns + ` FROM damage_reports ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReports(rows)
}

func (r *damageReportRepository) AddImage(ctx context.Context, image *domain.DamageImage) error {
	query := `INSERT INTO damage_images (report_id, storage_key, url) VALUES ($1, $2, $3) RETURNING id`
	return r.db.QueryRowContext(ctx, query, image.ReportID, image.StorageKey, image.URL).Scan(&image.ID)
}

func (r *damageReportRepository) GetImages(ctx context.Context, reportID int32) ([]domain.DamageImage, error) {
	query := `SELECT id, report_id, storage_key, url FROM damage_images WHERE report_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []domain.DamageImage
	for rows.Next() {
		var img domain.DamageImage
		if err := rows.Scan(&img.ID, &img.ReportID, &img.StorageKey, &img.URL); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func collectReports(rows *sql.Rows) ([]domain.DamageReport, error) {
	var reports []domain.DamageReport
	for rows.Next() {
		var rep domain.DamageReport
		if err := rows.Scan(&rep.ID, &rep.BookingID, &rep.UserID, &rep.Description, &rep.Status, &rep.CreatedOn, &rep.UpdatedOn); err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}
