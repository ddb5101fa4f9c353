// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Resolution is the outcome of last-writer-wins conflict resolution.
type Resolution string

const (
	// ResolutionServerWon means the stored version was kept and the client
	// version was discarded.
	ResolutionServerWon Resolution = "server_won"

	// ResolutionClientWon means the client version overwrote the stored one.
	ResolutionClientWon Resolution = "client_won"
)

// SyncBatch is the payload a device pushes to the server.
type SyncBatch struct {
	// DeviceID identifies the pushing device (UUID).
	DeviceID string `json:"deviceId"`

	// LastSyncAt is the serverTime returned by the previous successful sync.
	// Nil on first sync, which pulls everything.
	LastSyncAt *time.Time `json:"lastSyncAt,omitempty"`

	Accounts     []Account     `json:"accounts,omitempty"`
	Transactions []Transaction `json:"transactions,omitempty"`
	Budgets      []Budget      `json:"budgets,omitempty"`
	Categories   []Category    `json:"categories,omitempty"`
}

// Add appends record to the slice of its kind.
func (b *SyncBatch) Add(record SyncableRecord) {
	switch r := record.(type) {
	case Account:
		b.Accounts = append(b.Accounts, r)
	case Transaction:
		b.Transactions = append(b.Transactions, r)
	case Budget:
		b.Budgets = append(b.Budgets, r)
	case Category:
		b.Categories = append(b.Categories, r)
	}
}

// Records returns every record of the batch in apply order.
func (b SyncBatch) Records() []SyncableRecord {
	records := make([]SyncableRecord, 0, len(b.Accounts)+len(b.Transactions)+len(b.Budgets)+len(b.Categories))
	for _, r := range b.Accounts {
		records = append(records, r)
	}
	for _, r := range b.Transactions {
		records = append(records, r)
	}
	for _, r := range b.Budgets {
		records = append(records, r)
	}
	for _, r := range b.Categories {
		records = append(records, r)
	}
	return records
}

// SyncChanges holds the records that changed on the server since the
// device's watermark. Every slice is non-nil so it serializes as [].
type SyncChanges struct {
	Accounts     []Account     `json:"accounts"`
	Transactions []Transaction `json:"transactions"`
	Budgets      []Budget      `json:"budgets"`
	Categories   []Category    `json:"categories"`
}

// Records returns every changed record, accounts first.
func (c SyncChanges) Records() []SyncableRecord {
	return SyncBatch{
		Accounts:     c.Accounts,
		Transactions: c.Transactions,
		Budgets:      c.Budgets,
		Categories:   c.Categories,
	}.Records()
}

// NewSyncChanges returns a [SyncChanges] with empty, non-nil slices.
func NewSyncChanges() SyncChanges {
	return SyncChanges{
		Accounts:     []Account{},
		Transactions: []Transaction{},
		Budgets:      []Budget{},
		Categories:   []Category{},
	}
}

// ConflictReport describes a pushed record that lost to the stored version.
type ConflictReport struct {
	EntityType EntityKind `json:"entityType"`
	EntityID   string     `json:"entityId"`

	// ClientVersion and ServerVersion are full record snapshots. On the server
	// they hold concrete record values; a decoding client sees generic JSON.
	ClientVersion any `json:"clientVersion"`
	ServerVersion any `json:"serverVersion"`

	Resolution Resolution `json:"resolution"`
	Reason     string     `json:"reason"`
}

// RejectedRecord is a pushed record the server could not apply. The device
// keeps it pending and resends it on the next sync.
type RejectedRecord struct {
	EntityType EntityKind `json:"entityType"`
	EntityID   string     `json:"entityId"`
	Reason     string     `json:"reason"`
}

// SyncResult is the response of a sync round.
type SyncResult struct {
	// ServerTime is captured once at the start of the round. The device must
	// store it and send it back as LastSyncAt.
	ServerTime time.Time `json:"serverTime"`

	Changes   SyncChanges      `json:"changes"`
	Conflicts []ConflictReport `json:"conflicts"`
	Rejected  []RejectedRecord `json:"rejected"`

	// SyncedAt equals ServerTime.
	SyncedAt time.Time `json:"syncedAt"`
}

// ServerTimeResponse is returned by the server-time endpoint and lets
// devices estimate their clock skew.
type ServerTimeResponse struct {
	ServerTime time.Time `json:"serverTime"`
}
