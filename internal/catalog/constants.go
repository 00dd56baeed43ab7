// internal/catalog/constants.go
package catalog

// Facet values used by the admin product form and the shop filters.
var (
	Textures = []string{"Straight", "Body Wave", "Deep Wave", "Loose Wave", "Kinky Curly", "Water Wave"}

	Lengths = []string{`10"`, `12"`, `14"`, `16"`, `18"`, `20"`, `22"`, `24"`, `26"`, `28"`, `30"`}

	LaceTypes = []string{"4x4 Closure", "5x5 Closure", "13x4 Frontal", "13x6 Frontal", "Full Lace", "HD Lace"}

	Colors = []string{"Natural Black", "1B", "#2", "#4", "Blonde 613", "Highlight", "Ombré"}
)

// Vendor is stamped onto every product the admin surface creates.
const Vendor = "New Era Studio"

// Tags that double as storefront feature flags.
const (
	TagBestSeller = "Best Seller"
	TagNewArrival = "New Arrival"
)
