package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/models"
)

const (
	localRecordsTable = "local_records"
	syncStateTable    = "sync_state"

	stateKeyWatermark = "watermark"
	stateKeyDeviceID  = "device_id"

	upsertLocalRecordSuffix = `ON CONFLICT (kind, id) DO UPDATE SET
		payload = excluded.payload,
		updated_at = excluded.updated_at,
		is_deleted = excluded.is_deleted,
		dirty = excluded.dirty`

	upsertStateSuffix = `ON CONFLICT (key) DO UPDATE SET value = excluded.value`
)

// localLedgerRepository is the SQLite-backed [LocalLedger]. Records are kept
// as JSON payloads keyed by (kind, id); updated_at is stored in Unix
// milliseconds, the resolution used by conflict resolution.
type localLedgerRepository struct {
	*DB
}

func NewLocalLedgerRepository(db *DB) LocalLedger {
	return &localLedgerRepository{DB: db}
}

func (l *localLedgerRepository) SaveLocal(ctx context.Context, records ...models.SyncableRecord) error {
	log := logger.FromContext(ctx)

	return l.inTx(ctx, func(tx *sql.Tx) error {
		for _, record := range records {
			if err := upsertLocalRecord(ctx, tx, record, true); err != nil {
				log.Err(err).
					Str("func", "localLedgerRepository.SaveLocal").
					Str("kind", string(record.Kind())).
					Str("id", record.GetID()).
					Msg("failed to save local record")
				return err
			}
		}
		return nil
	})
}

func (l *localLedgerRepository) ApplyRemote(ctx context.Context, records ...models.SyncableRecord) (int, error) {
	log := logger.FromContext(ctx)
	applied := 0

	err := l.inTx(ctx, func(tx *sql.Tx) error {
		applied = 0
		for _, record := range records {
			keepLocal, err := localIsNewerDirty(ctx, tx, record)
			if err != nil {
				return err
			}
			if keepLocal {
				log.Debug().
					Str("func", "localLedgerRepository.ApplyRemote").
					Str("kind", string(record.Kind())).
					Str("id", record.GetID()).
					Msg("local edit is newer, keeping it for the next push")
				continue
			}

			if err = upsertLocalRecord(ctx, tx, record, false); err != nil {
				log.Err(err).
					Str("func", "localLedgerRepository.ApplyRemote").
					Str("kind", string(record.Kind())).
					Str("id", record.GetID()).
					Msg("failed to apply remote record")
				return err
			}
			applied++
		}
		return nil
	})

	return applied, err
}

func (l *localLedgerRepository) DirtyBatch(ctx context.Context) (models.SyncBatch, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Select("kind", "payload").
		From(localRecordsTable).
		Where(sq.Eq{"dirty": true}).
		OrderBy("updated_at ASC", "kind ASC", "id ASC").
		ToSql()
	if err != nil {
		return models.SyncBatch{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := l.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "localLedgerRepository.DirtyBatch").Msg("failed to query dirty records")
		return models.SyncBatch{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var batch models.SyncBatch
	for rows.Next() {
		var (
			kind    string
			payload string
		)
		if err = rows.Scan(&kind, &payload); err != nil {
			return models.SyncBatch{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		record, decodeErr := models.DecodeRecord(models.EntityKind(kind), []byte(payload))
		if decodeErr != nil {
			log.Err(decodeErr).
				Str("func", "localLedgerRepository.DirtyBatch").
				Str("kind", kind).
				Msg("failed to decode local record")
			return models.SyncBatch{}, fmt.Errorf("%w: %w", ErrEncodingPayload, decodeErr)
		}
		batch.Add(record)
	}

	if err = rows.Err(); err != nil {
		return models.SyncBatch{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return batch, nil
}

func (l *localLedgerRepository) MarkSynced(ctx context.Context, records ...models.SyncableRecord) error {
	return l.inTx(ctx, func(tx *sql.Tx) error {
		for _, record := range records {
			query, args, err := sq.Update(localRecordsTable).
				Set("dirty", false).
				Where(sq.Eq{
					"kind":       string(record.Kind()),
					"id":         record.GetID(),
					"updated_at": record.GetUpdatedAt().UnixMilli(),
				}).
				ToSql()
			if err != nil {
				return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
			}

			if _, err = tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}
		return nil
	})
}

func (l *localLedgerRepository) Account(ctx context.Context, id string) (models.Account, error) {
	query, args, err := sq.Select("payload").
		From(localRecordsTable).
		Where(sq.Eq{"kind": string(models.EntityAccount), "id": id}).
		ToSql()
	if err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var payload string
	err = l.DB.QueryRowContext(ctx, query, args...).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, ErrRecordNotFound
	}
	if err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	var account models.Account
	if err = json.Unmarshal([]byte(payload), &account); err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrEncodingPayload, err)
	}

	return account, nil
}

func (l *localLedgerRepository) Watermark(ctx context.Context) (*time.Time, error) {
	value, ok, err := l.state(ctx, stateKeyWatermark)
	if err != nil || !ok {
		return nil, err
	}

	at, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return nil, fmt.Errorf("invalid stored watermark %q: %w", value, err)
	}

	return &at, nil
}

func (l *localLedgerRepository) SetWatermark(ctx context.Context, at time.Time) error {
	return l.setState(ctx, stateKeyWatermark, at.UTC().Format(time.RFC3339Nano))
}

func (l *localLedgerRepository) DeviceID(ctx context.Context) (string, error) {
	id, ok, err := l.state(ctx, stateKeyDeviceID)
	if err != nil {
		return "", err
	}
	if ok {
		return id, nil
	}

	id = uuid.NewString()
	if err = l.setState(ctx, stateKeyDeviceID, id); err != nil {
		return "", err
	}

	logger.FromContext(ctx).Info().
		Str("func", "localLedgerRepository.DeviceID").
		Str("device_id", id).
		Msg("registered new device id")

	return id, nil
}

func (l *localLedgerRepository) state(ctx context.Context, key string) (string, bool, error) {
	query, args, err := sq.Select("value").
		From(syncStateTable).
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value string
	err = l.DB.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return value, true, nil
}

func (l *localLedgerRepository) setState(ctx context.Context, key, value string) error {
	query, args, err := sq.Insert(syncStateTable).
		Columns("key", "value").
		Values(key, value).
		Suffix(upsertStateSuffix).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = l.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (l *localLedgerRepository) inTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func upsertLocalRecord(ctx context.Context, tx *sql.Tx, record models.SyncableRecord, dirty bool) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingPayload, err)
	}

	query, args, err := sq.Insert(localRecordsTable).
		Columns("kind", "id", "payload", "updated_at", "is_deleted", "dirty").
		Values(
			string(record.Kind()),
			record.GetID(),
			string(payload),
			record.GetUpdatedAt().UnixMilli(),
			record.IsRecordDeleted(),
			dirty,
		).
		Suffix(upsertLocalRecordSuffix).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// localIsNewerDirty reports whether the stored row is an unpushed local edit
// strictly newer than record.
func localIsNewerDirty(ctx context.Context, tx *sql.Tx, record models.SyncableRecord) (bool, error) {
	query, args, err := sq.Select("dirty", "updated_at").
		From(localRecordsTable).
		Where(sq.Eq{"kind": string(record.Kind()), "id": record.GetID()}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		dirty     bool
		updatedAt int64
	)
	err = tx.QueryRowContext(ctx, query, args...).Scan(&dirty, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return dirty && updatedAt > record.GetUpdatedAt().UnixMilli(), nil
}
