package gogit

// FetchFunc exports fetchFunc for testing.
type FetchFunc = fetchFunc

// NewVersionControlRepositoryWithFetch creates an engine whose network access is replaced by fetch.
func NewVersionControlRepositoryWithFetch(mergers *MergerRegistry, fetch FetchFunc) *VersionControlRepository {
	return &VersionControlRepository{mergers: mergers, fetch: fetch}
}

// IsAuthRejection exports isAuthRejection for testing.
var IsAuthRejection = isAuthRejection //nolint:gochecknoglobals // test export
