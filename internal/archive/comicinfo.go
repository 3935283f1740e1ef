// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"encoding/xml"
	"strings"

	"github.com/pdiddy/comicbind/pkg/types"
)

// ComicInfoEntry is the conventional name of the metadata entry.
const ComicInfoEntry = "ComicInfo.xml"

// Info returns the archive's ComicInfo metadata when present and well-formed.
// The entry is matched case-insensitively at any depth, preferring the one
// closest to the archive root. Absent or malformed metadata returns ok=false,
// never an error: metadata is advisory and must not block conversion.
func (a *Archive) Info() (types.ComicInfo, bool) {
	name, ok := a.findInfoEntry()
	if !ok {
		return types.ComicInfo{}, false
	}

	data, err := a.ReadEntry(name)
	if err != nil {
		return types.ComicInfo{}, false
	}

	var ci types.ComicInfo
	if err := xml.Unmarshal(data, &ci); err != nil || ci.IsZero() {
		return types.ComicInfo{}, false
	}
	return ci, true
}

func (a *Archive) findInfoEntry() (string, bool) {
	best := ""
	for name := range a.byName {
		if isResourceFork(name) || !strings.EqualFold(entryBase(name), ComicInfoEntry) {
			continue
		}
		if best == "" || len(name) < len(best) || (len(name) == len(best) && name < best) {
			best = name
		}
	}
	return best, best != ""
}
