package wholesale

import "context"

//go:generate mockgen -destination=fetcher_mock.go -package=wholesale -source=fetcher.go

// Fetcher retrieves a remote CSV as header-keyed records in source order.
// Transport concerns such as timeouts live behind this interface.
type Fetcher interface {
	FetchRecords(ctx context.Context, url string) ([]map[string]string, error)
}
