package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/siap-parepare/siap-cli/internal/client/api"
	"github.com/siap-parepare/siap-cli/internal/client/models"
)

// userAdmin is the admin-only account-management screen:
//
//	edit N   — edit account on row N
//	hapus N  — delete account on row N (with confirmation)
//	kembali  — back to the main prompt
//
// Accounts are only created through self-registration, so there is no
// add command here.
func (a *App) userAdmin(ctx context.Context) {
	if err := a.users.Load(ctx); err != nil {
		a.printFailure(err, noticeLoadUsersFailed)
		return
	}

	for {
		users := a.users.Users()
		a.printUsers(users)

		line, err := GetSimpleText(a.reader, "users (edit N, hapus N, kembali)", a.out)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch strings.ToLower(parts[0]) {
		case "edit":
			if u, ok := pickUser(users, parts, a); ok {
				a.editUser(ctx, u)
			}
		case "hapus":
			if u, ok := pickUser(users, parts, a); ok {
				a.deleteUser(ctx, u)
			}
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

func (a *App) printUsers(users []models.User) {
	heading.Fprintln(a.out, "Manajemen Pengguna")
	if len(users) == 0 {
		fmt.Fprintln(a.out, "Tidak ada pengguna terdaftar.")
		return
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NO\tNAMA\tNIP\tJABATAN\tROLE")
	for i, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i+1, u.FullName, u.NIP, u.Title, u.Role)
	}
	_ = w.Flush()
}

// editUser prompts with the account's current values as defaults. An
// empty password answer leaves the stored password unchanged.
func (a *App) editUser(ctx context.Context, u models.User) {
	var form models.UserForm
	var err error

	if form.FullName, err = GetTextDefault(a.reader, "Nama Lengkap", u.FullName, a.out); err != nil {
		return
	}
	if form.NIP, err = GetTextDefault(a.reader, "NIP", u.NIP, a.out); err != nil {
		return
	}
	if form.Title, err = GetTextDefault(a.reader, "Jabatan", u.Title, a.out); err != nil {
		return
	}
	role, err := GetTextDefault(a.reader, "Role (user/admin)", string(u.Role), a.out)
	if err != nil {
		return
	}
	form.Role = models.Role(role)

	form.Password, err = GetPassword("Kata Sandi Baru (kosongkan jika tidak diubah)", a.out)
	if err != nil {
		return
	}

	if err := a.users.Save(ctx, u.ID, form); err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			failure.Fprintln(a.out, verr.Message)
			return
		}
		if msg := api.ServerMessage(err); msg != "" {
			failure.Fprintln(a.out, msg)
			return
		}
		a.printFailure(err, "Failed to save user")
		return
	}
	success.Fprintln(a.out, "User updated successfully")
}

func (a *App) deleteUser(ctx context.Context, u models.User) {
	if !Confirm(a.reader, "Apakah anda yakin ingin menghapus pengguna ini?", a.out) {
		return
	}
	if err := a.users.Remove(ctx, u.ID); err != nil {
		if msg := api.ServerMessage(err); msg != "" {
			failure.Fprintln(a.out, msg)
			return
		}
		a.printFailure(err, "Failed to delete user")
		return
	}
	success.Fprintln(a.out, "Pengguna Berhasil dihapus")
}

func pickUser(users []models.User, parts []string, a *App) (models.User, bool) {
	if len(parts) < 2 {
		fmt.Fprintln(a.out, "Sebutkan nomor baris, contoh: edit 1")
		return models.User{}, false
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil || n < 1 || n > len(users) {
		fmt.Fprintln(a.out, "Nomor baris tidak valid.")
		return models.User{}, false
	}
	return users[n-1], true
}
