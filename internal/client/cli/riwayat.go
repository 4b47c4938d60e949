package cli

import (
	"context"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/siap-parepare/siap-cli/internal/client/api"
	"github.com/siap-parepare/siap-cli/internal/client/models"
)

// history shows the record timeline: active records newest first, and
// for admins the deleted records with who removed them and when.
func (a *App) history(ctx context.Context) {
	if !a.loadFiles(ctx) {
		return
	}

	active := a.files.Records()
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].CreatedAt.After(active[j].CreatedAt)
	})

	heading.Fprintln(a.out, "Riwayat Arsip Aktif")
	if len(active) == 0 {
		fmt.Fprintln(a.out, "Tidak ada data arsip.")
	} else {
		w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAMA BERKAS\tUPTD\tTANGGAL\tDIBUAT OLEH")
		for _, rec := range active {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				rec.FileName, rec.UPTDName, rec.InputDate, rec.CreatedBy.Label())
		}
		_ = w.Flush()
	}

	if !a.session.IsAdmin() {
		return
	}
	a.deletedHistory(ctx)
}

// deletedHistory fetches and prints the deleted-record log. The
// endpoint is admin-only on the server as well.
func (a *App) deletedHistory(ctx context.Context) {
	entries, err := a.client.ListHistory(ctx)
	if err != nil {
		if api.IsUnauthorized(err) {
			a.session.ExpireSession()
			failure.Fprintln(a.out, noticeSessionExpired)
			return
		}
		failure.Fprintln(a.out, "Failed to load history")
		return
	}

	fmt.Fprintln(a.out)
	heading.Fprintln(a.out, "Arsip Terhapus")
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "Tidak ada arsip terhapus.")
		return
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAMA BERKAS\tUPTD\tDIHAPUS OLEH\tDIHAPUS PADA")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			e.FileName, e.UPTDName, e.DeletedBy.Label(), deletedAt(e))
	}
	_ = w.Flush()
}

func deletedAt(e models.HistoryEntry) string {
	if e.DeletedAt.IsZero() {
		return "-"
	}
	return e.DeletedAt.Format("2006-01-02 15:04")
}
