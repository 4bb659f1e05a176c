package mariadb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/creatorly/videos-ms-go/internal/model"
	"github.com/creatorly/videos-ms-go/internal/port"
)

type AccountRepository struct {
	db *sql.DB
}

// compile-time check: *AccountRepository must satisfy port.AccountRepository
var _ port.AccountRepository = (*AccountRepository)(nil)

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	log.Printf("fetching account #%d from the database...", id)

	const query = `
      SELECT id, username, is_premium, flash_uploads, home_uploads
      FROM accounts
      WHERE id = ?
    `
	row := r.db.QueryRowContext(ctx, query, id)
	var account model.Account
	if err := row.Scan(
		&account.ID, &account.Username, &account.IsPremium,
		&account.FlashUploads, &account.HomeUploads,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account #%d not found", id)
		}
		return nil, err
	}

	return &account, nil
}

// ReleaseQuota gives one slot back, floored at zero so compensation after a
// crash can never drive a counter negative.
func (r *AccountRepository) ReleaseQuota(ctx context.Context, accountID int64, kind model.VideoKind) error {
	log.Printf("releasing one %s quota slot for account #%d...", kind, accountID)

	column, err := quotaColumn(kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
      UPDATE accounts
      SET %[1]s = GREATEST(%[1]s - 1, 0)
      WHERE id = ?
    `, column)
	_, err = r.db.ExecContext(ctx, query, accountID)
	return err
}
