// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// ComicInfo holds the subset of ComicInfo.xml metadata the converter uses.
// The schema originates with ComicRack and is carried by many commercial and
// scanned archives; all fields are optional.
type ComicInfo struct {
	Title     string `xml:"Title" json:"title,omitempty" yaml:"title,omitempty"`
	Series    string `xml:"Series" json:"series,omitempty" yaml:"series,omitempty"`
	Number    string `xml:"Number" json:"number,omitempty" yaml:"number,omitempty"`
	Volume    int    `xml:"Volume" json:"volume,omitempty" yaml:"volume,omitempty"`
	Year      int    `xml:"Year" json:"year,omitempty" yaml:"year,omitempty"`
	Writer    string `xml:"Writer" json:"writer,omitempty" yaml:"writer,omitempty"`
	Publisher string `xml:"Publisher" json:"publisher,omitempty" yaml:"publisher,omitempty"`
	Summary   string `xml:"Summary" json:"summary,omitempty" yaml:"summary,omitempty"`
	PageCount int    `xml:"PageCount" json:"page_count,omitempty" yaml:"page_count,omitempty"`
}

// IsZero reports whether no metadata field is set.
func (ci ComicInfo) IsZero() bool {
	return ci == ComicInfo{}
}

// DisplayTitle returns "Series #Number" when both are present, otherwise the
// first non-empty of Title and Series.
func (ci ComicInfo) DisplayTitle() string {
	if ci.Series != "" && ci.Number != "" {
		return ci.Series + " #" + ci.Number
	}
	if ci.Title != "" {
		return ci.Title
	}
	return ci.Series
}

// Properties returns the metadata as document property key/value pairs,
// omitting empty fields.
func (ci ComicInfo) Properties() map[string]string {
	props := make(map[string]string)
	if t := ci.DisplayTitle(); t != "" {
		props["Title"] = t
	}
	if ci.Series != "" {
		props["Series"] = ci.Series
	}
	if ci.Writer != "" {
		props["Author"] = ci.Writer
	}
	if ci.Publisher != "" {
		props["Publisher"] = ci.Publisher
	}
	if s := strings.TrimSpace(ci.Summary); s != "" {
		props["Subject"] = s
	}
	return props
}
