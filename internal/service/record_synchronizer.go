package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/internal/store"
	"github.com/MKhiriev/go-finance-tracker/models"
)

// syncOutcome collects what a push produced for one entity kind.
type syncOutcome struct {
	conflicts []models.ConflictReport
	rejected  []models.RejectedRecord
}

// recordWriter performs the writes of a push for one entity kind.
type recordWriter[T models.SyncableRecord] interface {
	// create stores a record the server has never seen.
	create(ctx context.Context, userID string, record T) error

	// overwrite replaces server with the winning client version. A non-nil
	// report means the write was refused and server stays as it was.
	overwrite(ctx context.Context, client, server T) (*models.ConflictReport, error)

	// handled reports whether id was already written together with an
	// earlier record of the batch.
	handled(id string) bool
}

// storeWriter is the plain recordWriter: one record, one row.
type storeWriter[T models.SyncableRecord] struct {
	store store.RecordStore[T]
}

func (w storeWriter[T]) create(ctx context.Context, _ string, record T) error {
	return w.store.Insert(ctx, record)
}

func (w storeWriter[T]) overwrite(ctx context.Context, client, _ T) (*models.ConflictReport, error) {
	return nil, w.store.Update(ctx, client)
}

func (w storeWriter[T]) handled(string) bool { return false }

// recordSynchronizer applies pushed records of one kind, each independently
// and in submitted order.
type recordSynchronizer[T models.Record[T]] struct {
	store  store.RecordStore[T]
	writer recordWriter[T]
}

func newRecordSynchronizer[T models.Record[T]](s store.RecordStore[T], w recordWriter[T]) *recordSynchronizer[T] {
	if w == nil {
		w = storeWriter[T]{store: s}
	}
	return &recordSynchronizer[T]{store: s, writer: w}
}

// Sync applies records on behalf of userID. A record that cannot be applied
// is logged and returned as rejected; processing continues with the next.
func (s *recordSynchronizer[T]) Sync(ctx context.Context, userID string, records []T) syncOutcome {
	log := logger.FromContext(ctx)
	out := syncOutcome{}

	for _, record := range records {
		if s.writer.handled(record.GetID()) {
			continue
		}

		conflict, err := s.syncRecord(ctx, userID, record.WithOwner(userID))
		if err != nil {
			log.Err(err).
				Str("func", "recordSynchronizer.Sync").
				Str("kind", string(record.Kind())).
				Str("id", record.GetID()).
				Str("user_id", userID).
				Msg("record was not synchronized")
			out.rejected = append(out.rejected, models.RejectedRecord{
				EntityType: record.Kind(),
				EntityID:   record.GetID(),
				Reason:     err.Error(),
			})
			continue
		}

		if conflict != nil {
			out.conflicts = append(out.conflicts, *conflict)
		}
	}

	return out
}

func (s *recordSynchronizer[T]) syncRecord(ctx context.Context, userID string, client T) (*models.ConflictReport, error) {
	if client.GetID() == "" {
		return nil, ErrMissingRecordID
	}

	server, err := s.store.GetByID(ctx, client.GetID())
	if errors.Is(err, store.ErrRecordNotFound) {
		err = s.writer.create(ctx, userID, client)
		if !errors.Is(err, store.ErrRecordAlreadyExists) {
			return nil, err
		}

		// a concurrent request inserted the same id first; resolve against it
		server, err = s.store.GetByID(ctx, client.GetID())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load stored record: %w", err)
	}

	if server.GetUserID() != userID {
		return nil, ErrForeignRecord
	}

	resolution := ResolveConflict(client, server)
	if resolution.Resolution == models.ResolutionServerWon {
		return newConflictReport(client, server, resolution.Reason), nil
	}

	return s.writer.overwrite(ctx, client, server)
}

func newConflictReport[T models.SyncableRecord](client, server T, reason string) *models.ConflictReport {
	return &models.ConflictReport{
		EntityType:    client.Kind(),
		EntityID:      client.GetID(),
		ClientVersion: client,
		ServerVersion: server,
		Resolution:    models.ResolutionServerWon,
		Reason:        reason,
	}
}
