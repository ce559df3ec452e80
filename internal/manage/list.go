package manage

import (
	"io"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/pdktools/pdkman/internal/pdk"
)

// PrintInstalled renders the locally installed versions of a family as a
// table.
func PrintInstalled(w io.Writer, root string, versions []pdk.Version) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Version", "Status"})
	for _, version := range versions {
		status := ""
		if version.IsCurrent(root) {
			status = "current"
		}
		table.Append([]string{version.Name, status})
	}
	table.Render()
}

// PrintRemote renders the remotely available versions of a family as a
// table, marking which ones are installed or current locally.
func PrintRemote(w io.Writer, root string, versions []pdk.Version) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Version", "Published", "Status"})
	for _, version := range versions {
		status := ""
		switch {
		case version.IsCurrent(root):
			status = "current"
		case version.Installed(root):
			status = "installed"
		case version.Prerelease:
			status = "prerelease"
		}
		table.Append([]string{version.Name, version.UploadDate.Format(time.DateOnly), status})
	}
	table.Render()
}
