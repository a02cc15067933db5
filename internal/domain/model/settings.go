package model

// AutoOpenMode controls what, if anything, the client opens after a save.
type AutoOpenMode string

const (
	AutoOpenNone     AutoOpenMode = "none"
	AutoOpenPage     AutoOpenMode = "page"
	AutoOpenDatabase AutoOpenMode = "database"
)

// Valid reports whether m is one of the recognized modes.
func (m AutoOpenMode) Valid() bool {
	switch m {
	case AutoOpenNone, AutoOpenPage, AutoOpenDatabase:
		return true
	}
	return false
}

// Settings holds the user's saved preferences. TitleProperty and URLProperty
// are hints, not guarantees: the writer verifies them against the live schema
// before use.
type Settings struct {
	CollectionID  string
	TitleProperty string
	URLProperty   string
	AutoOpen      AutoOpenMode
}

// DefaultSettings returns the settings used before the user configures
// anything.
func DefaultSettings() Settings {
	return Settings{
		TitleProperty: "Name",
		URLProperty:   "URL",
		AutoOpen:      AutoOpenNone,
	}
}
