// Package testutil provides testing utilities for the storage module.
//
// Backend is an in-memory storage.Backend with failure injection, call
// counting, and a record of every page request, for tests of List and FOB.
// RunBackendTests checks any storage.Backend against the shared contract.
//
// # Quick Start
//
//	mem := testutil.NewBackend()
//	mem.Seed("AZ-Dataset-0001.json", "AZ-Dataset-0002.json")
//	mem.Fail(testutil.OpList, errors.New("boom"))
//	fob, _ := storage.NewWithBackend(storage.Config{}, mem, logger.Nop())
package testutil
