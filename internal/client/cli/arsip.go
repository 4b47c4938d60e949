package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/siap-parepare/siap-cli/internal/client/api"
	"github.com/siap-parepare/siap-cli/internal/client/models"
)

// archiveList is the record-management screen. It loads the collection
// once, then runs its own command loop over the currently displayed
// (possibly filtered) rows:
//
//	tambah      — add a record
//	edit N      — edit row N
//	lihat N     — show row N in full
//	hapus N     — delete row N (with confirmation)
//	cari KATA   — filter rows by a search term
//	cari        — clear the filter
//	kembali     — back to the main prompt
func (a *App) archiveList(ctx context.Context) {
	if !a.loadFiles(ctx) {
		return
	}

	term := ""
	for {
		shown := a.files.Filter(term)
		a.printRecords(shown, term)

		line, err := GetSimpleText(a.reader, "arsip (tambah, edit N, lihat N, hapus N, cari KATA, kembali)", a.out)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch strings.ToLower(parts[0]) {
		case "tambah":
			a.addRecord(ctx)
		case "edit":
			if rec, ok := pickRecord(shown, parts, a.out); ok {
				a.editRecord(ctx, rec)
			}
		case "lihat":
			if rec, ok := pickRecord(shown, parts, a.out); ok {
				a.showRecord(ctx, rec)
			}
		case "hapus":
			if rec, ok := pickRecord(shown, parts, a.out); ok {
				a.deleteRecord(ctx, rec)
			}
		case "cari":
			term = strings.Join(parts[1:], " ")
		case "kembali":
			return
		default:
			fmt.Fprintf(a.out, "Unknown command: %s\n", parts[0])
		}

		if !a.session.IsAuthenticated() {
			return
		}
	}
}

func (a *App) printRecords(records []models.ArchiveRecord, term string) {
	heading.Fprintln(a.out, "Daftar Arsip")
	if term != "" {
		faint.Fprintf(a.out, "filter: %q\n", term)
	}
	if len(records) == 0 {
		fmt.Fprintln(a.out, "Tidak ada data arsip.")
		return
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NO\tNAMA BERKAS\tUPTD\tTANGGAL\tJUMLAH\tBOKS")
	for i, rec := range records {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n",
			i+1, rec.FileName, rec.UPTDName, rec.InputDate, rec.FileAmount, rec.BoxNumber)
	}
	_ = w.Flush()
}

// showRecord refetches the record before display: the detail endpoint
// returns the createdBy/updatedBy references populated with full
// names, which the list response may carry as bare ids.
func (a *App) showRecord(ctx context.Context, rec models.ArchiveRecord) {
	if full, err := a.client.GetFile(ctx, rec.ID); err == nil {
		rec = *full
	} else if api.IsUnauthorized(err) {
		a.session.ExpireSession()
		failure.Fprintln(a.out, noticeSessionExpired)
		return
	}
	a.printRecordDetail(rec)
}

func (a *App) printRecordDetail(rec models.ArchiveRecord) {
	heading.Fprintln(a.out, rec.FileName)
	fmt.Fprintf(a.out, "UPTD           : %s\n", rec.UPTDName)
	fmt.Fprintf(a.out, "Tanggal Input  : %s\n", rec.InputDate)
	fmt.Fprintf(a.out, "Jumlah Berkas  : %d\n", rec.FileAmount)
	fmt.Fprintf(a.out, "Nomor Boks     : %s\n", rec.BoxNumber)
	if rec.Description != "" {
		fmt.Fprintf(a.out, "Keterangan     : %s\n", rec.Description)
	}
	if rec.CreatedBy != nil {
		fmt.Fprintf(a.out, "Dibuat oleh    : %s\n", rec.CreatedBy.Label())
	}
	if rec.UpdatedBy != nil {
		fmt.Fprintf(a.out, "Diubah oleh    : %s\n", rec.UpdatedBy.Label())
	}
}

// addRecord prompts for a fresh form and creates the record. The new
// record appears at the top of the list.
func (a *App) addRecord(ctx context.Context) {
	form, err := a.promptArchiveForm(models.ArchiveForm{})
	if err != nil {
		return
	}
	a.files.ClearEditTarget()
	a.saveRecord(ctx, form)
}

// editRecord prompts with the record's current values as defaults and
// sends the update.
func (a *App) editRecord(ctx context.Context, rec models.ArchiveRecord) {
	form, err := a.promptArchiveForm(models.ArchiveForm{
		FileName:    rec.FileName,
		UPTDName:    rec.UPTDName,
		InputDate:   rec.InputDate,
		FileAmount:  rec.FileAmount,
		BoxNumber:   rec.BoxNumber,
		Description: rec.Description,
	})
	if err != nil {
		return
	}
	a.files.SetEditTarget(rec)
	a.saveRecord(ctx, form)
}

func (a *App) saveRecord(ctx context.Context, form models.ArchiveForm) {
	if err := a.files.Save(ctx, form); err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			failure.Fprintln(a.out, verr.Message)
			return
		}
		a.printFailure(err, noticeSaveFileFailed)
		return
	}
	success.Fprintln(a.out, "File saved successfully")
}

func (a *App) deleteRecord(ctx context.Context, rec models.ArchiveRecord) {
	if !Confirm(a.reader, "Are you sure you want to delete this file record?", a.out) {
		return
	}
	if err := a.files.Remove(ctx, rec.ID); err != nil {
		a.printFailure(err, noticeDeleteFileFailed)
		return
	}
	success.Fprintln(a.out, "File deleted successfully")
}

// promptArchiveForm walks through the record fields. Existing values
// are offered as defaults so editing only changes what the user types.
func (a *App) promptArchiveForm(def models.ArchiveForm) (models.ArchiveForm, error) {
	var form models.ArchiveForm
	var err error

	if form.FileName, err = GetTextDefault(a.reader, "Nama Berkas", def.FileName, a.out); err != nil {
		return form, err
	}
	if form.UPTDName, err = GetTextDefault(a.reader, "Nama UPTD", def.UPTDName, a.out); err != nil {
		return form, err
	}
	if form.InputDate, err = GetTextDefault(a.reader, "Tanggal Input (YYYY-MM-DD)", def.InputDate, a.out); err != nil {
		return form, err
	}

	amountDef := ""
	if def.FileAmount > 0 {
		amountDef = strconv.Itoa(def.FileAmount)
	}
	amount, err := GetTextDefault(a.reader, "Jumlah Berkas", amountDef, a.out)
	if err != nil {
		return form, err
	}
	// A non-numeric amount becomes zero and fails validation with the
	// required-fields message, same as an empty one.
	form.FileAmount, _ = strconv.Atoi(amount)

	if form.BoxNumber, err = GetTextDefault(a.reader, "Nomor Boks", def.BoxNumber, a.out); err != nil {
		return form, err
	}
	if form.Description, err = GetTextDefault(a.reader, "Keterangan", def.Description, a.out); err != nil {
		return form, err
	}
	return form, nil
}

// pickRecord resolves a 1-based row number argument against the rows
// currently on screen.
func pickRecord(shown []models.ArchiveRecord, parts []string, w io.Writer) (models.ArchiveRecord, bool) {
	if len(parts) < 2 {
		fmt.Fprintln(w, "Sebutkan nomor baris, contoh: edit 1")
		return models.ArchiveRecord{}, false
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil || n < 1 || n > len(shown) {
		fmt.Fprintln(w, "Nomor baris tidak valid.")
		return models.ArchiveRecord{}, false
	}
	return shown[n-1], true
}
