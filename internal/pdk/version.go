package pdk

import (
	"fmt"
	"sort"
	"time"
)

// Version identifies one installable build of a PDK family. The pair
// (Family, Name) is unique; Name is typically the open_pdks commit hash the
// build was produced from.
type Version struct {
	Name       string
	Family     string
	CommitDate *time.Time // commit timestamp, when the release advertised one
	UploadDate time.Time  // when the release was published
	Prerelease bool
}

func (v Version) String() string {
	return fmt.Sprintf("%s/%s", v.Family, v.Name)
}

// Newer reports whether v sorts before other in a newest-first listing.
// Versions order by UploadDate descending; equal upload dates break the tie
// by Name descending so the order is deterministic.
func (v Version) Newer(other Version) bool {
	if !v.UploadDate.Equal(other.UploadDate) {
		return v.UploadDate.After(other.UploadDate)
	}
	return v.Name > other.Name
}

// SortByNewest sorts versions in place, newest first.
func SortByNewest(versions []Version) {
	sort.SliceStable(versions, func(i, j int) bool {
		return versions[i].Newer(versions[j])
	})
}
