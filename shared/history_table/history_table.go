// Package historytable renders stored download runs.
package historytable

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/thirukguru/aws-netcfg/service/storage"
)

// RenderDownloads prints a table of download summaries.
func RenderDownloads(w io.Writer, downloads []storage.DownloadSummary) {
	if len(downloads) == 0 {
		fmt.Fprintln(w, "No downloads recorded")
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"ID", "Account", "Started", "Regions", "Resources", "Duration", "Data File"})
	for _, d := range downloads {
		t.AppendRow(table.Row{
			d.DownloadID,
			d.AccountID,
			d.StartedAt.Local().Format(time.DateTime),
			d.RegionCount,
			d.TotalResources,
			(time.Duration(d.DurationMS) * time.Millisecond).String(),
			d.DataFile,
		})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

// RenderDownloadDetail prints one download with its per-kind resource counts.
func RenderDownloadDetail(w io.Writer, d *storage.DownloadDetail) {
	if d == nil {
		fmt.Fprintln(w, "No download data available")
		return
	}
	fmt.Fprintf(w, "\nDownload %d (%s) for account %s\n", d.DownloadID, d.RunUUID, d.AccountID)
	fmt.Fprintf(w, "Regions: %v\n", d.Regions)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Resource", "Count"})
	for _, kind := range slices.Sorted(maps.Keys(d.ResourceCounts)) {
		t.AppendRow(table.Row{kind, d.ResourceCounts[kind]})
	}
	t.AppendFooter(table.Row{"Total", d.TotalResources})
	t.SetStyle(table.StyleRounded)
	t.Render()
}
