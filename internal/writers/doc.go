// Package writers delivers rendered documents.
//
// Design:
//   - Documents are rendered completely in memory before anything is written.
//   - Files are replaced atomically (temp file in the target directory, then rename).
//   - stdout receives a single write; a consumer closing the pipe early is not an error.
package writers
