// Package gcs provides the Google Cloud Storage implementation of the
// ObjectStore port, built on the storage/v1 JSON API client.
//
// Credentials come from, in order: a static access token, a credentials
// file, or Application Default Credentials. Anonymous access is available
// for public buckets and local emulators.
package gcs
