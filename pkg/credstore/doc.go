// Package credstore persists the bearer credential between process runs.
//
// The store is a single named slot holding the last-issued token string or
// nothing. Only the gateway client writes it (on login success, logout, and
// forced auth-expiry reset); the session store reads it exactly once during
// bootstrap.
//
// Three implementations cover the deployment shapes of the client:
//
//   - File: a file on disk with 0600 permissions, encrypted at rest with
//     AES-256-GCM. The default for desktop and CLI use.
//   - Memory: process-local, for tests and ephemeral automation.
//   - Redis: a shared slot for headless deployments where several worker
//     processes act under one credential.
//
// An empty slot is not an error: Load returns an empty string and a nil
// error when no credential has been saved.
package credstore
