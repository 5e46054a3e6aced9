// Package services defines the [CatalogProvider] interface for content sources and implements it
// for local JSON files and a remote catalog API.
//
// # Catalog Providers
//
// Every provider returns the full catalog in provider order. Order matters: playlist generation
// takes the first matches in catalog order, so providers never re-sort records.
//
// # File Catalog
//
// [FileCatalog] reads a JSON document that is either an array of records or an object with
// "movies" and "series" arrays. Movies come before series in the combined catalog.
//
// # Remote Catalog
//
// [RemoteCatalog] pages through GET {base_url}/items?limit=N&offset=M using an OAuth2 client
// credentials token. Requests are paced with a [rate.Limiter].
//
// # Validation
//
// Records are validated at the boundary with go-playground/validator before reaching the curator.
// Failures wrap [shared.ErrInvalidCatalog] and name the offending record and field.
package services
