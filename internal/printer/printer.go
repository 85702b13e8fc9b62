// Package printer renders version lists as aligned tables or JSON, the
// way list/search print their results (spec §6 "external interfaces").
package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/terassyi/gdvm/internal/version"
)

// Options controls how PrintVersions renders its rows.
type Options struct {
	// JSON renders the list as indented JSON instead of a table.
	JSON bool
	// Default marks the row with the same install-folder name with a "*"
	// in the DEFAULT column (and "default": true in JSON), if non-nil.
	Default *version.Concrete
}

// row is the JSON shape for one printed version.
type row struct {
	Version string `json:"version"`
	CSharp  bool   `json:"csharp"`
	Default bool   `json:"default"`
}

// PrintVersions writes versions to w as either a table (VERSION, TYPE,
// DEFAULT columns) or, with opts.JSON, an array of row objects.
func PrintVersions(w io.Writer, versions []version.Concrete, opts Options) error {
	rows := make([]row, 0, len(versions))
	for _, v := range versions {
		rows = append(rows, row{
			Version: v.ToRemoteStr(),
			CSharp:  v.CSharp != nil && *v.CSharp,
			Default: opts.Default != nil && v.ToInstallStr() == opts.Default.ToInstallStr(),
		})
	}

	if opts.JSON {
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal version list: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	if len(rows) == 0 {
		fmt.Fprintln(w, "No versions found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VERSION\tTYPE\tDEFAULT")
	for _, r := range rows {
		kind := "gdnative"
		if r.CSharp {
			kind = "csharp"
		}
		def := ""
		if r.Default {
			def = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Version, kind, def)
	}
	return tw.Flush()
}
