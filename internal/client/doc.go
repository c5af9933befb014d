// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the headless sync client runtime.
//
// It starts the sync orchestrator and background workers, serves client
// metrics, and maps process signals onto engine controls:
//
//	SIGUSR1  run a manual sync cycle
//	SIGUSR2  toggle between signed in and signed out
//	SIGINT, SIGTERM  stop after the in-flight cycle finishes
package client
