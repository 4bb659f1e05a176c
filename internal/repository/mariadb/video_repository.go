package mariadb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/creatorly/videos-ms-go/internal/model"
	"github.com/creatorly/videos-ms-go/internal/port"
	videoService "github.com/creatorly/videos-ms-go/internal/usecase/video"
)

type VideoRepository struct {
	db *sql.DB
}

// compile-time check: *VideoRepository must satisfy port.VideoRepository
var _ port.VideoRepository = (*VideoRepository)(nil)

func NewVideoRepository(db *sql.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

const videoColumns = `
      id, owner_id, title, video_type, status, processing_key, original_filename,
      video_url, url_480p, url_720p, url_1080p, url_2k, url_4k,
      thumbnail_url, duration, views, shares, earnings,
      failed_at, created_at, updated_at
    `

// quotaColumn maps a video kind to its counter column on accounts. The kind
// is interpolated into SQL, so the switch must stay closed.
func quotaColumn(kind model.VideoKind) (string, error) {
	switch kind {
	case model.VideoKindHome:
		return "home_uploads", nil
	case model.VideoKindFlash:
		return "flash_uploads", nil
	default:
		return "", fmt.Errorf("unknown video kind %q", kind)
	}
}

// AdmitVideo reserves one quota slot and creates the pending row in a single
// transaction. The bounded compare-and-increment makes concurrent uploads
// race-safe without an explicit row lock.
func (r *VideoRepository) AdmitVideo(ctx context.Context, video *model.Video, limits model.QuotaLimits) error {
	log.Printf("admitting %s video for account #%d...", video.Kind, video.OwnerID)

	column, err := quotaColumn(video.Kind)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := reserveQuota(ctx, tx, video.OwnerID, column, limits.For(video.Kind)); err != nil {
		return err
	}

	const query = `
      INSERT INTO videos
        (owner_id, title, video_type, status, processing_key, original_filename, thumbnail_url)
      VALUES (?, ?, ?, ?, ?, ?, ?)
    `
	res, err := tx.ExecContext(ctx, query,
		video.OwnerID, video.Title, video.Kind, video.Status,
		video.ProcessingKey, video.OriginalFilename, video.ThumbnailURL,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	video.ID = id

	return tx.Commit()
}

// ReadmitVideo is the retry variant of AdmitVideo: it re-reserves quota and
// resets the existing row to pending under a fresh processing key.
func (r *VideoRepository) ReadmitVideo(ctx context.Context, video *model.Video, limits model.QuotaLimits) error {
	log.Printf("readmitting video #%d for account #%d...", video.ID, video.OwnerID)

	column, err := quotaColumn(video.Kind)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := reserveQuota(ctx, tx, video.OwnerID, column, limits.For(video.Kind)); err != nil {
		return err
	}

	const query = `
      UPDATE videos
      SET status = 'pending', processing_key = ?, original_filename = ?, failed_at = NULL
      WHERE id = ? AND status = 'failed'
    `
	res, err := tx.ExecContext(ctx, query, video.ProcessingKey, video.OriginalFilename, video.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: video #%d", videoService.ErrNotRetryable, video.ID)
	}

	return tx.Commit()
}

// reserveQuota is a bounded compare-and-increment: premium accounts always
// pass, others only below the limit. Zero affected rows means either the
// limit is hit or the account does not exist.
func reserveQuota(ctx context.Context, tx *sql.Tx, accountID int64, column string, limit int) error {
	query := fmt.Sprintf(`
      UPDATE accounts
      SET %[1]s = %[1]s + 1
      WHERE id = ? AND (is_premium = TRUE OR %[1]s < ?)
    `, column)
	res, err := tx.ExecContext(ctx, query, accountID, limit)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM accounts WHERE id = ?)`, accountID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("account #%d not found", accountID)
	}
	return videoService.ErrQuotaExceeded
}

func (r *VideoRepository) GetByID(ctx context.Context, id int64) (*model.Video, error) {
	log.Printf("fetching video #%d from the database...", id)

	query := `SELECT ` + videoColumns + ` FROM videos WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	video, err := scanVideo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, videoService.ErrVideoNotFound
	}
	if err != nil {
		return nil, err
	}
	return video, nil
}

func (r *VideoRepository) Delete(ctx context.Context, id int64) error {
	log.Printf("deleting database record for video #%d...", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM videos WHERE id = ?`, id)
	return err
}

// Approve records the finalised URLs, duration and the approved status in one
// write. An empty thumbnail URL keeps whatever the row already holds.
func (r *VideoRepository) Approve(ctx context.Context, approved port.ApprovedVideo) error {
	log.Printf("approving video #%d...", approved.ID)

	const query = `
      UPDATE videos
      SET
        status        = 'approved',
        video_url     = ?,
        url_480p      = ?,
        url_720p      = ?,
        url_1080p     = ?,
        url_2k        = ?,
        url_4k        = ?,
        thumbnail_url = COALESCE(NULLIF(?, ''), thumbnail_url),
        duration      = ?,
        failed_at     = NULL
      WHERE id = ?
    `
	_, err := r.db.ExecContext(ctx, query,
		approved.VideoURL,
		approved.URL480p, approved.URL720p, approved.URL1080p,
		approved.URL2K, approved.URL4K,
		approved.ThumbnailURL,
		approved.Duration,
		approved.ID,
	)
	return err
}

// MarkFailed transitions pending→failed. The status guard in the WHERE clause
// is what keeps rollback idempotent: only the call that actually flips the
// row reports true.
func (r *VideoRepository) MarkFailed(ctx context.Context, id int64, failedAt time.Time) (bool, error) {
	log.Printf("marking video #%d as failed...", id)

	const query = `
      UPDATE videos
      SET status = 'failed', failed_at = ?
      WHERE id = ? AND status = 'pending'
    `
	res, err := r.db.ExecContext(ctx, query, failedAt, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *VideoRepository) ListVisible(ctx context.Context, filter port.VideoFilter, staleBefore time.Time) ([]*model.Video, error) {
	log.Printf("listing videos (kind=%q, status=%q)...", filter.Kind, filter.Status)

	query := `SELECT ` + videoColumns + ` FROM videos
      WHERE NOT (status = 'failed' AND failed_at < ?)`
	args := []any{staleBefore}

	if filter.Kind != "" {
		query += ` AND video_type = ?`
		args = append(args, filter.Kind)
	}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []*model.Video
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, video)
	}
	return videos, rows.Err()
}

func (r *VideoRepository) ListPendingCreatedBefore(ctx context.Context, before time.Time) ([]int64, error) {
	log.Printf("listing pending videos created before %s...", before.Format(time.RFC3339))

	const query = `SELECT id FROM videos WHERE status = 'pending' AND created_at < ?`
	rows, err := r.db.QueryContext(ctx, query, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVideo(row rowScanner) (*model.Video, error) {
	var video model.Video
	if err := row.Scan(
		&video.ID, &video.OwnerID, &video.Title, &video.Kind, &video.Status,
		&video.ProcessingKey, &video.OriginalFilename,
		&video.VideoURL, &video.URL480p, &video.URL720p, &video.URL1080p,
		&video.URL2K, &video.URL4K,
		&video.ThumbnailURL, &video.Duration, &video.Views, &video.Shares, &video.Earnings,
		&video.FailedAt, &video.CreatedAt, &video.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &video, nil
}
