// Package google provides shared infrastructure for the Gmail connector.
//
// This package contains:
//   - OAuth token management with on-disk persistence and automatic refresh
//   - A service factory for the Gmail API client
//   - Error handling for common Google API errors (401, 403, 429)
//   - Rate limiting to respect Google API quotas
//
// # OAuth2 Scope
//
// The connector uses the read-only mail scope:
//   - https://www.googleapis.com/auth/gmail.readonly (restricted)
//
// For user-created internal apps, restricted scopes don't require verification.
package google
