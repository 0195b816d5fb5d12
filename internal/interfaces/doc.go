// Package interfaces documents the core abstractions used throughout the application.
//
// Controllers and services declare the interfaces they consume next to the
// consuming code; this package gathers them in one place and adds
// compile-time checks that the concrete types keep satisfying them.
//
// # Where the Abstractions Live
//
//   - CountryProvider: country profiles for the comparator (internal/countries/compare.go)
//   - CountryFetcher: country profiles for the favourites service (internal/favourites/service.go)
//   - CountryLookup, CountryComparer: lookup and comparison for HTTP handlers (internal/http/countries.go)
//   - FavouritesService: favourites CRUD for HTTP handlers (internal/http/favourites.go)
//   - Uploader: image hosting (internal/media/client.go)
//   - MediaDestroyer: background image removal (internal/tasks/destroy_media.go)
//   - AuditEventCleaner, AuditFilePruner: audit retention (internal/tasks/cleanup_audit.go)
//
// The country interfaces deliberately overlap: each consumer names only the
// methods it calls, so a stub in one package's tests never has to satisfy
// another package's needs.
//
// # Swapping the Image Host
//
// Implement both halves of the media contract in a new provider package:
//
//	type Client struct {
//	    bucket     string
//	    httpClient *http.Client
//	}
//
//	func (c *Client) Upload(ctx context.Context, data []byte, publicID string) (string, error)
//	func (c *Client) Destroy(ctx context.Context, publicID string) error
//
//	var _ media.Uploader = (*Client)(nil)
//
// then construct it in entrypoint.go in place of the Cloudinary client.
// media.Discard is the reference no-op implementation.
//
// # Swapping the Country Data Source
//
// Any type with a Fetch method can feed both the comparator and the
// favourites service:
//
//	func (c *OtherAPIClient) Fetch(ctx context.Context, name string) (*countries.Country, error)
//
// Keep the error contract: wrap countries.ErrNotFound for unknown names and
// return *countries.UpstreamError for transport failures, or the HTTP layer
// will map everything to a 500.
//
// # Compile-Time Interface Checks
//
// Every implementation pairing is pinned in checks.go:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// A missing method then fails the build of this package instead of surfacing
// as a runtime wiring error.
package interfaces
