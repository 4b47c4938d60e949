package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validRegisterForm() RegisterForm {
	return RegisterForm{
		NIP:             "198702112010011001",
		FullName:        "Andi Rahmat",
		Title:           "Arsiparis",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestRegisterForm_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RegisterForm)
		wantMsg string
	}{
		{"valid", func(f *RegisterForm) {}, ""},
		{"password mismatch", func(f *RegisterForm) {
			f.ConfirmPassword = "secret2"
		}, "Kata sandi tidak cocok"},
		{"password too short", func(f *RegisterForm) {
			f.Password = "abc"
			f.ConfirmPassword = "abc"
		}, "Kata sandi minimal 6 karakter"},
		{"nip not numeric", func(f *RegisterForm) {
			f.NIP = "19870a"
		}, "NIP harus berupa angka"},
		{"missing title", func(f *RegisterForm) {
			f.Title = ""
		}, "Isi semua field yang diperlukan"},
		{"mismatch wins over short nip", func(f *RegisterForm) {
			f.NIP = "abc"
			f.ConfirmPassword = "other1"
		}, "Kata sandi tidak cocok"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := validRegisterForm()
			tc.mutate(&f)
			err := f.Validate()
			if tc.wantMsg == "" {
				require.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tc.wantMsg, verr.Message)
		})
	}
}

func TestLoginForm_Validate(t *testing.T) {
	require.NoError(t, LoginForm{NIP: "123", Password: "secret"}.Validate())

	err := LoginForm{NIP: "123"}.Validate()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "Isi semua field yang diperlukan", verr.Message)
}

func TestArchiveForm_Validate(t *testing.T) {
	valid := ArchiveForm{
		FileName:   "Laporan Keuangan 2023",
		UPTDName:   "UPTD Perpustakaan",
		InputDate:  "2023-04-17",
		FileAmount: 12,
		BoxNumber:  "B-07",
	}
	require.NoError(t, valid.Validate())

	missing := valid
	missing.BoxNumber = ""
	err := missing.Validate()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "Please fill in all required fields", verr.Message)

	zeroAmount := valid
	zeroAmount.FileAmount = 0
	err = zeroAmount.Validate()
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "Please fill in all required fields", verr.Message)

	badDate := valid
	badDate.InputDate = "17-04-2023"
	err = badDate.Validate()
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "Tanggal harus berformat YYYY-MM-DD", verr.Message)
}

func TestUserForm_Validate(t *testing.T) {
	valid := UserForm{
		FullName: "Sri Wahyuni",
		NIP:      "197003052008012002",
		Title:    "Kepala Seksi",
		Role:     RoleAdmin,
	}
	require.NoError(t, valid.Validate(), "empty password means keep the current one")

	badNIP := valid
	badNIP.NIP = "abc123"
	err := badNIP.Validate()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "NIP must contain only numbers", verr.Message)

	shortPw := valid
	shortPw.Password = "12345"
	err = shortPw.Validate()
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "Password must be at least 6 characters", verr.Message)

	badRole := valid
	badRole.Role = "superuser"
	err = badRole.Validate()
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "Please fill in all required fields", verr.Message)
}
