package cli

import (
	"context"

	"github.com/siap-parepare/siap-cli/internal/client/models"
)

// register walks through the registration form. The password is asked
// twice; the mismatch check runs client-side before any request goes
// out, like the rest of the form validation.
func (a *App) register(ctx context.Context) {
	heading.Fprintln(a.out, "Daftar Akun SIAP")

	fullName, err := GetSimpleText(a.reader, "Nama Lengkap", a.out)
	if err != nil {
		return
	}
	nip, err := GetSimpleText(a.reader, "NIP", a.out)
	if err != nil {
		return
	}
	title, err := GetSimpleText(a.reader, "Jabatan", a.out)
	if err != nil {
		return
	}
	password, err := GetPassword("Kata Sandi", a.out)
	if err != nil {
		return
	}
	confirm, err := GetPassword("Konfirmasi Kata Sandi", a.out)
	if err != nil {
		return
	}

	res := a.session.Register(ctx, models.RegisterForm{
		FullName:        fullName,
		NIP:             nip,
		Title:           title,
		Password:        password,
		ConfirmPassword: confirm,
	})
	if !res.OK {
		failure.Fprintln(a.out, res.Message)
		return
	}
	success.Fprintf(a.out, "Selamat datang, %s\n", a.status())
}
