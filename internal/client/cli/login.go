package cli

import (
	"context"

	"github.com/siap-parepare/siap-cli/internal/client/models"
)

// login collects NIP and password and attempts to authenticate. On
// failure the message from the attempt is shown and the user stays on
// the login prompt.
func (a *App) login(ctx context.Context) {
	heading.Fprintln(a.out, "Masuk ke SIAP")

	nip, err := GetSimpleText(a.reader, "NIP", a.out)
	if err != nil {
		return
	}
	password, err := GetPassword("Kata Sandi", a.out)
	if err != nil {
		return
	}

	res := a.session.Login(ctx, models.LoginForm{NIP: nip, Password: password})
	if !res.OK {
		failure.Fprintln(a.out, res.Message)
		return
	}
	success.Fprintf(a.out, "Selamat datang, %s\n", a.status())
}
