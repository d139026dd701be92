// Package http provides the HTTP client used by the catalog builder.
//
// The client covers two call sites:
//   - fetching a remote ROM manifest (GetString)
//   - calling the announcement AI chat APIs (PostJSON)
//
// All requests carry the "arcade-catalog" User-Agent and are bounded
// by a 60 second timeout so a hanging endpoint cannot stall a build.
package http
