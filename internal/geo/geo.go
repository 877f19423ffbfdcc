// Package geo decides whether a posting's location is acceptable for the
// user. Pure string matching, no I/O.
package geo

import (
	"strings"

	"github.com/rloyola/panoptes/internal/model"
)

// remoteIndicators are substrings that confirm a posting is explicitly
// remote. Spanish and English variants, since the sources mix both.
var remoteIndicators = []string{
	"remote",
	"remoto",
	"teletrabajo",
	"home office",
	"trabajo desde casa",
	"anywhere",
	"worldwide",
	"global",
	"latam",
}

// IsRemote reports whether the location string explicitly marks the posting
// as remote.
func IsRemote(location string) bool {
	loc := strings.ToLower(location)
	for _, term := range remoteIndicators {
		if strings.Contains(loc, term) {
			return true
		}
	}
	return false
}

// Valid reports whether the posting should be kept for a user in
// userLocation. With remoteOnly set, only explicitly remote postings pass;
// a presential posting in the user's own country is rejected. Otherwise a
// posting passes when it is remote or located in the user's country.
func Valid(p model.Posting, userLocation string, remoteOnly bool) bool {
	loc := strings.ToLower(p.Location)
	country := strings.ToLower(strings.TrimSpace(userLocation))
	if country == "" {
		country = strings.ToLower(model.DefaultLocation)
	}

	remote := IsRemote(loc)

	if remoteOnly {
		return remote
	}

	if remote {
		return true
	}

	// Presential postings must be in the user's country.
	return strings.Contains(loc, country)
}
