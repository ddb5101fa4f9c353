// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the headless sync agent runtime.
//
// It wires client services and background synchronization into a single
// process lifecycle: an initial sync round, periodic sync in the background
// and a graceful stop on shutdown signals.
package client
