package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Catalog and provider errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrInvalidCatalog     = fmt.Errorf("invalid catalog")
	ErrCatalogEmpty       = fmt.Errorf("catalog is empty")
	ErrItemNotFound       = fmt.Errorf("catalog item not found")

	// Input validation errors
	ErrMissingArgument  = fmt.Errorf("missing required argument")
	ErrInvalidArgument  = fmt.Errorf("invalid argument")
	ErrInvalidFlag      = fmt.Errorf("invalid flag value")
	ErrInvalidTimeOfDay = fmt.Errorf("invalid time of day")
)
