package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-finance-tracker/internal/adapter"
	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/internal/store"
	"github.com/MKhiriev/go-finance-tracker/internal/utils"
	"github.com/MKhiriev/go-finance-tracker/models"
)

type clientSyncService struct {
	local   store.LocalLedger
	adapter adapter.ServerAdapter
	ids     IDGenerator
	clock   func() time.Time
	logger  *logger.Logger

	// round serializes Sync calls from the job and from the user
	round sync.Mutex

	mu   sync.RWMutex
	skew time.Duration
}

func NewClientSyncService(local store.LocalLedger, serverAdapter adapter.ServerAdapter, logger *logger.Logger) ClientSyncService {
	return &clientSyncService{
		local:   local,
		adapter: serverAdapter,
		ids:     utils.NewUUIDGenerator(),
		clock:   time.Now,
		logger:  logger,
	}
}

func (s *clientSyncService) Sync(ctx context.Context) (SyncReport, error) {
	s.round.Lock()
	defer s.round.Unlock()

	s.measureSkew(ctx)

	deviceID, err := s.local.DeviceID(ctx)
	if err != nil {
		return SyncReport{}, fmt.Errorf("get device id: %w", err)
	}

	watermark, err := s.local.Watermark(ctx)
	if err != nil {
		return SyncReport{}, fmt.Errorf("get watermark: %w", err)
	}

	batch, err := s.local.DirtyBatch(ctx)
	if err != nil {
		return SyncReport{}, fmt.Errorf("collect dirty records: %w", err)
	}
	batch.DeviceID = deviceID
	batch.LastSyncAt = watermark

	result, err := s.adapter.Sync(ctx, batch)
	if err != nil {
		return SyncReport{}, fmt.Errorf("push batch: %w", mapAdapterError(err))
	}

	remote := result.Changes.Records()
	for _, conflict := range result.Conflicts {
		if conflict.Resolution != models.ResolutionServerWon {
			continue
		}
		record, err := decodeServerVersion(conflict)
		if err != nil {
			s.logger.Warn().Err(err).
				Str("func", "clientSyncService.Sync").
				Str("entity_type", string(conflict.EntityType)).
				Str("entity_id", conflict.EntityID).
				Msg("skipping undecodable server version")
			continue
		}
		remote = append(remote, record)
	}

	pushed := withoutRejected(batch.Records(), result.Rejected)
	for _, rejected := range result.Rejected {
		s.logger.Warn().
			Str("func", "clientSyncService.Sync").
			Str("entity_type", string(rejected.EntityType)).
			Str("entity_id", rejected.EntityID).
			Str("reason", rejected.Reason).
			Msg("record rejected by server, keeping it pending")
	}

	if err = s.local.MarkSynced(ctx, pushed...); err != nil {
		return SyncReport{}, fmt.Errorf("mark pushed records synced: %w", err)
	}

	applied, err := s.local.ApplyRemote(ctx, remote...)
	if err != nil {
		return SyncReport{}, fmt.Errorf("apply remote changes: %w", err)
	}

	if err = s.local.SetWatermark(ctx, result.ServerTime); err != nil {
		return SyncReport{}, fmt.Errorf("advance watermark: %w", err)
	}

	report := SyncReport{
		Pushed:     len(pushed),
		Applied:    applied,
		Conflicts:  len(result.Conflicts),
		Rejected:   len(result.Rejected),
		ServerTime: result.ServerTime,
		ClockSkew:  s.clockSkew(),
	}

	s.logger.Info().
		Int("pushed", report.Pushed).
		Int("applied", report.Applied).
		Int("conflicts", report.Conflicts).
		Int("rejected", report.Rejected).
		Time("server_time", report.ServerTime).
		Msg("sync round finished")

	return report, nil
}

func (s *clientSyncService) Transfer(ctx context.Context, req models.TransferRequest) (models.TransferResult, error) {
	if err := checkTransferRequest(req); err != nil {
		return models.TransferResult{}, err
	}

	result, err := s.adapter.CreateTransfer(ctx, req)
	if err == nil {
		if _, err = s.local.ApplyRemote(ctx, result.FromTransaction, result.ToTransaction); err != nil {
			return models.TransferResult{}, fmt.Errorf("store server transfer locally: %w", err)
		}
		return result, nil
	}

	err = mapAdapterError(err)
	if errors.Is(err, ErrTokenIsExpiredOrInvalid) || errors.Is(err, ErrInvalidDataProvided) {
		return models.TransferResult{}, err
	}

	// accounts created offline are unknown to the server until the next push
	s.logger.Warn().Err(err).
		Str("func", "clientSyncService.Transfer").
		Msg("online transfer failed, recording it offline")

	return s.RecordTransfer(ctx, req)
}

func (s *clientSyncService) RecordTransfer(ctx context.Context, req models.TransferRequest) (models.TransferResult, error) {
	if err := checkTransferRequest(req); err != nil {
		return models.TransferResult{}, err
	}

	from, err := s.localAccount(ctx, req.FromAccountID)
	if err != nil {
		return models.TransferResult{}, err
	}
	to, err := s.localAccount(ctx, req.ToAccountID)
	if err != nil {
		return models.TransferResult{}, err
	}

	now := s.now()
	date := now
	if req.TransactionDate != nil {
		date = *req.TransactionDate
	}

	debit, credit := models.TransferLegs{
		DebitID:         s.ids.Generate(),
		CreditID:        s.ids.Generate(),
		UserID:          from.UserID,
		From:            from,
		To:              to,
		Amount:          req.Amount,
		Note:            req.Note,
		TransactionDate: date,
		Now:             now,
	}.Build()

	if err = s.local.SaveLocal(ctx, debit, credit); err != nil {
		return models.TransferResult{}, fmt.Errorf("save transfer locally: %w", err)
	}

	return models.TransferResult{
		TransferID:      debit.ID,
		FromTransaction: debit,
		ToTransaction:   credit,
		Amount:          req.Amount.Abs(),
		Status:          models.TransferStatusPending,
	}, nil
}

// measureSkew refreshes the clock skew. A failure keeps the previous value.
func (s *clientSyncService) measureSkew(ctx context.Context) {
	sent := s.clock()
	serverTime, err := s.adapter.ServerTime(ctx)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("func", "clientSyncService.measureSkew").
			Msg("failed to get server time, keeping previous clock skew")
		return
	}
	received := s.clock()

	// assume the server read its clock halfway through the round trip
	local := sent.Add(received.Sub(sent) / 2)

	s.mu.Lock()
	s.skew = serverTime.Sub(local)
	s.mu.Unlock()
}

func (s *clientSyncService) clockSkew() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.skew
}

// now is the device clock corrected by the last measured skew.
func (s *clientSyncService) now() time.Time {
	return s.clock().Add(s.clockSkew()).UTC()
}

func (s *clientSyncService) localAccount(ctx context.Context, id string) (models.Account, error) {
	account, err := s.local.Account(ctx, id)
	if errors.Is(err, store.ErrRecordNotFound) {
		return models.Account{}, ErrAccountNotFound
	}
	if err != nil {
		return models.Account{}, err
	}
	if account.IsDeleted {
		return models.Account{}, ErrAccountNotFound
	}
	return account, nil
}

func checkTransferRequest(req models.TransferRequest) error {
	if !req.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if req.FromAccountID == req.ToAccountID {
		return ErrSameAccountTransfer
	}
	return nil
}

// decodeServerVersion turns a conflict's server snapshot back into a record.
// After a JSON round trip it is a generic map.
func decodeServerVersion(conflict models.ConflictReport) (models.SyncableRecord, error) {
	if record, ok := conflict.ServerVersion.(models.SyncableRecord); ok {
		return record, nil
	}
	if conflict.ServerVersion == nil {
		return nil, fmt.Errorf("conflict %s has no server version", conflict.EntityID)
	}

	data, err := json.Marshal(conflict.ServerVersion)
	if err != nil {
		return nil, err
	}
	return models.DecodeRecord(conflict.EntityType, data)
}

func withoutRejected(records []models.SyncableRecord, rejected []models.RejectedRecord) []models.SyncableRecord {
	if len(rejected) == 0 {
		return records
	}

	type key struct {
		kind models.EntityKind
		id   string
	}
	skip := make(map[key]bool, len(rejected))
	for _, r := range rejected {
		skip[key{r.EntityType, r.EntityID}] = true
	}

	kept := make([]models.SyncableRecord, 0, len(records))
	for _, r := range records {
		if !skip[key{r.Kind(), r.GetID()}] {
			kept = append(kept, r)
		}
	}
	return kept
}
