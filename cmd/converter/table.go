package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/mixtli/dungeon-lab-sub000/internal/orchestrators/conversion"
)

// maxErrorsShown caps the errors listed under the table per category
const maxErrorsShown = 5

// renderSummary renders one row per category plus totals, followed by the
// first errors of each category
func renderSummary(output *conversion.ConvertAllOutput) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Category", "Total", "Converted", "Failed", "Errors", "Duration"})

	for _, result := range output.Results {
		tw.AppendRow(table.Row{
			result.Category,
			result.Total,
			result.Converted,
			result.Failed,
			len(result.Errors),
			result.Duration.Round(time.Microsecond).String(),
		})
	}

	total, converted, failed := output.Totals()
	tw.AppendFooter(table.Row{"all", total, converted, failed, "", ""})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})

	var b strings.Builder
	b.WriteString(tw.Render())
	b.WriteString("\n")
	b.WriteString(strconv.Itoa(converted) + " of " + strconv.Itoa(total) + " converted")

	for _, result := range output.Results {
		if len(result.Errors) == 0 {
			continue
		}
		b.WriteString("\n\n" + result.Category + " errors:")
		for i, msg := range result.Errors {
			if i == maxErrorsShown {
				b.WriteString("\n  ... " + strconv.Itoa(len(result.Errors)-maxErrorsShown) + " more")
				break
			}
			b.WriteString("\n  - " + msg)
		}
	}
	return b.String()
}
