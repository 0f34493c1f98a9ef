// pkg/feed/constants.go
package feed

const (
	// SearchServiceType is the resource type of the search query service
	SearchServiceType = "SearchQueryService"

	// BaseAddressTypePrefix prefixes every flat-container resource type
	// (PackageBaseAddress/3.0.0 and friends)
	BaseAddressTypePrefix = "PackageBaseAddress"

	// ArchiveExtension is the file extension of package archives
	ArchiveExtension = "nupkg"

	userAgent = "extpm/1.0"
)
