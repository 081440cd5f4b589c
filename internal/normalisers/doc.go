// Package normalisers contains body normalisers that turn raw email
// content into clean plain text suitable for storage and retrieval.
package normalisers
