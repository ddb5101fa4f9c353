// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "github.com/MKhiriev/go-finance-tracker/models"

// Resolution reasons reported to devices.
const (
	ReasonBothDeletedClientNewer = "Both deleted, client timestamp newer"
	ReasonBothDeletedServerNewer = "Both deleted, server timestamp newer or equal"
	ReasonClientNewer            = "Client timestamp newer"
	ReasonServerNewer            = "Server timestamp newer"
	ReasonSameTimestamp          = "Same timestamp, server is source of truth"
	ReasonTransferImmutable      = "Transfer transactions cannot be modified"
)

// ConflictResolution is the outcome of comparing a pushed record with the
// stored one.
type ConflictResolution[T models.SyncableRecord] struct {
	Winner     T
	Resolution models.Resolution
	Reason     string
}

// ResolveConflict picks the winner between the client and the server version
// of the same record by last-writer-wins on updatedAt. Ties go to the server.
//
// Timestamps are compared in whole milliseconds: devices serialize them at
// that resolution, so finer server digits must not decide a conflict.
func ResolveConflict[T models.SyncableRecord](client, server T) ConflictResolution[T] {
	clientAt := client.GetUpdatedAt().UnixMilli()
	serverAt := server.GetUpdatedAt().UnixMilli()

	if client.IsRecordDeleted() && server.IsRecordDeleted() {
		if clientAt > serverAt {
			return ConflictResolution[T]{Winner: client, Resolution: models.ResolutionClientWon, Reason: ReasonBothDeletedClientNewer}
		}
		return ConflictResolution[T]{Winner: server, Resolution: models.ResolutionServerWon, Reason: ReasonBothDeletedServerNewer}
	}

	switch {
	case clientAt > serverAt:
		return ConflictResolution[T]{Winner: client, Resolution: models.ResolutionClientWon, Reason: ReasonClientNewer}
	case serverAt > clientAt:
		return ConflictResolution[T]{Winner: server, Resolution: models.ResolutionServerWon, Reason: ReasonServerNewer}
	}

	return ConflictResolution[T]{Winner: server, Resolution: models.ResolutionServerWon, Reason: ReasonSameTimestamp}
}
