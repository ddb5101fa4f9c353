// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// EntityKind names one of the synchronizable entity families.
type EntityKind string

const (
	EntityAccount     EntityKind = "account"
	EntityTransaction EntityKind = "transaction"
	EntityBudget      EntityKind = "budget"
	EntityCategory    EntityKind = "category"
)

// SyncableRecord is the common surface of every entity that takes part in
// offline-first synchronization.
//
// Identity is global: ID is a client-generated UUID that is the same on
// every device and on the server. UpdatedAt is the only ordering signal used
// by conflict resolution.
type SyncableRecord interface {
	GetID() string
	GetUserID() string
	IsRecordDeleted() bool
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
	Kind() EntityKind
}

// Record is a [SyncableRecord] that can produce a copy of itself owned by
// another user. The synchronizer uses it to stamp the authenticated user onto
// newly created records instead of trusting the client-supplied owner.
type Record[T any] interface {
	SyncableRecord
	WithOwner(userID string) T
}

// SyncMeta holds the bookkeeping fields shared by every synchronizable
// entity. It is embedded into the concrete record types.
type SyncMeta struct {
	// ID is the globally unique, client-generated identifier (UUID).
	ID string `json:"id"`

	// UserID is the owner of the record. On the server it always comes from
	// the authenticated token, never from the payload.
	UserID string `json:"userId,omitempty"`

	// IsDeleted marks a soft-deleted record (tombstone). Tombstones are kept
	// and synchronized so that deletions propagate to every device.
	IsDeleted bool `json:"isDeleted"`

	// CreatedAt is the creation time as recorded by the originating device.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the last modification time. It is the last-writer-wins
	// ordering key.
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m SyncMeta) GetID() string           { return m.ID }
func (m SyncMeta) GetUserID() string       { return m.UserID }
func (m SyncMeta) IsRecordDeleted() bool   { return m.IsDeleted }
func (m SyncMeta) GetCreatedAt() time.Time { return m.CreatedAt }
func (m SyncMeta) GetUpdatedAt() time.Time { return m.UpdatedAt }

// ErrUnknownEntityKind is returned when a payload names no known entity kind.
var ErrUnknownEntityKind = errors.New("unknown entity kind")

// DecodeRecord unmarshals the JSON form of a record of the given kind.
func DecodeRecord(kind EntityKind, data []byte) (SyncableRecord, error) {
	switch kind {
	case EntityAccount:
		return decodeAs[Account](data)
	case EntityTransaction:
		return decodeAs[Transaction](data)
	case EntityBudget:
		return decodeAs[Budget](data)
	case EntityCategory:
		return decodeAs[Category](data)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEntityKind, kind)
}

func decodeAs[T SyncableRecord](data []byte) (SyncableRecord, error) {
	var record T
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return record, nil
}
