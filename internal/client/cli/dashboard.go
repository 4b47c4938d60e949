package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/siap-parepare/siap-cli/internal/client/models"
)

// opdCount is the number of regional work units (OPD) served by the
// archive. It is a fixed fact about the organization, not derived from
// the record data.
const opdCount = 33

// dashboard shows the archive statistics: totals, a per-year bar chart
// and the five most recently entered records.
func (a *App) dashboard(ctx context.Context) {
	if !a.loadFiles(ctx) {
		return
	}
	records := a.files.Records()

	thisYear := time.Now().Year()
	var currentYearCount int
	perYear := map[int]int{}
	for _, rec := range records {
		year, ok := rec.InputYear()
		if !ok {
			continue
		}
		perYear[year]++
		if year == thisYear {
			currentYearCount++
		}
	}

	heading.Fprintln(a.out, "Dashboard Arsip")
	fmt.Fprintf(a.out, "Total Arsip      : %d\n", len(records))
	fmt.Fprintf(a.out, "Arsip Tahun Ini  : %d\n", currentYearCount)
	fmt.Fprintf(a.out, "Jumlah OPD       : %d\n", opdCount)

	a.yearChart(perYear)
	a.recentRecords(records)
}

// yearChart prints record counts per input year, oldest first, as a
// simple bar chart.
func (a *App) yearChart(perYear map[int]int) {
	if len(perYear) == 0 {
		return
	}
	years := make([]int, 0, len(perYear))
	for y := range perYear {
		years = append(years, y)
	}
	sort.Ints(years)

	fmt.Fprintln(a.out)
	heading.Fprintln(a.out, "Arsip per Tahun")
	for _, y := range years {
		fmt.Fprintf(a.out, "%d | %s %d\n", y, strings.Repeat("#", perYear[y]), perYear[y])
	}
}

// recentRecords prints the five most recently created records.
func (a *App) recentRecords(records []models.ArchiveRecord) {
	if len(records) == 0 {
		return
	}
	recent := make([]models.ArchiveRecord, len(records))
	copy(recent, records)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > 5 {
		recent = recent[:5]
	}

	fmt.Fprintln(a.out)
	heading.Fprintln(a.out, "Arsip Terbaru")
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAMA BERKAS\tUPTD\tTANGGAL\tBOKS")
	for _, rec := range recent {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", rec.FileName, rec.UPTDName, rec.InputDate, rec.BoxNumber)
	}
	_ = w.Flush()
}
