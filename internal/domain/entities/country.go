// Package entities contains domain entities used across the application.
package entities

// UnknownFlagLabel is the accessibility label used when a country has no description.
const UnknownFlagLabel = "Unknown flag"

// Country is one entry of the flag catalog.
type Country struct {
	Name        string `json:"name"`        // display name, also the catalog key
	Emoji       string `json:"emoji"`       // regional indicator pair rendered as the flag
	Description string `json:"description"` // accessibility description of the flag
}

// Label returns the accessibility label of the country's flag.
func (c Country) Label() string {
	if c.Description == "" {
		return UnknownFlagLabel
	}
	return c.Description
}
