package archive

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/siap-parepare/siap-cli/internal/client/api"
	"github.com/siap-parepare/siap-cli/internal/client/models"
	"github.com/siap-parepare/siap-cli/internal/logging"
)

type fakeClient struct {
	api.Client

	listResp []models.ArchiveRecord
	listErr  error
	listFn   func() ([]models.ArchiveRecord, error)

	createResp  *models.ArchiveRecord
	createErr   error
	createCalls int

	updateResp  *models.ArchiveRecord
	updateErr   error
	updateID    string
	updateCalls int

	deleteErr   error
	deleteID    string
	deleteCalls int
}

func (f *fakeClient) ListFiles(ctx context.Context) ([]models.ArchiveRecord, error) {
	if f.listFn != nil {
		return f.listFn()
	}
	return f.listResp, f.listErr
}

func (f *fakeClient) CreateFile(ctx context.Context, form models.ArchiveForm) (*models.ArchiveRecord, error) {
	f.createCalls++
	return f.createResp, f.createErr
}

func (f *fakeClient) UpdateFile(ctx context.Context, id string, form models.ArchiveForm) (*models.ArchiveRecord, error) {
	f.updateCalls++
	f.updateID = id
	return f.updateResp, f.updateErr
}

func (f *fakeClient) DeleteFile(ctx context.Context, id string) error {
	f.deleteCalls++
	f.deleteID = id
	return f.deleteErr
}

type fakeExpirer struct {
	expired int
}

func (f *fakeExpirer) ExpireSession() { f.expired++ }

func rec(id, name, uptd, box, desc string) models.ArchiveRecord {
	return models.ArchiveRecord{ID: id, FileName: name, UPTDName: uptd, BoxNumber: box, Description: desc}
}

func validForm() models.ArchiveForm {
	return models.ArchiveForm{
		FileName:   "Laporan Keuangan",
		UPTDName:   "UPTD Pasar",
		InputDate:  "2023-04-17",
		FileAmount: 4,
		BoxNumber:  "B-01",
	}
}

func newTestController(fc *fakeClient) (*Controller, *fakeExpirer) {
	exp := &fakeExpirer{}
	return NewController(fc, exp, logging.New(io.Discard, "prod")), exp
}

func loaded(t *testing.T, fc *fakeClient, records ...models.ArchiveRecord) *Controller {
	t.Helper()
	fc.listResp = records
	c, _ := newTestController(fc)
	require.NoError(t, c.Load(context.Background()))
	return c
}

func ids(records []models.ArchiveRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestLoad_ReplacesCollection(t *testing.T) {
	fc := &fakeClient{}
	c := loaded(t, fc,
		rec("r1", "Laporan A", "UPTD Pasar", "B-01", ""),
		rec("r2", "Laporan B", "UPTD Kebersihan", "B-02", ""),
	)

	require.Equal(t, []string{"r1", "r2"}, ids(c.Records()))

	fc.listResp = []models.ArchiveRecord{rec("r3", "Laporan C", "UPTD Pasar", "B-03", "")}
	require.NoError(t, c.Load(context.Background()))
	require.Equal(t, []string{"r3"}, ids(c.Records()))
}

func TestLoad_FailureLeavesCollection(t *testing.T) {
	fc := &fakeClient{}
	c := loaded(t, fc, rec("r1", "Laporan A", "UPTD Pasar", "B-01", ""))

	fc.listResp = nil
	fc.listErr = &api.Error{StatusCode: http.StatusInternalServerError}
	err := c.Load(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrSessionExpired)
	require.Equal(t, []string{"r1"}, ids(c.Records()), "no partial replace")
}

func TestLoad_UnauthorizedExpiresSession(t *testing.T) {
	fc := &fakeClient{}
	c := loaded(t, fc, rec("r1", "Laporan A", "UPTD Pasar", "B-01", ""))
	exp := &fakeExpirer{}
	c.sess = exp

	fc.listErr = &api.Error{StatusCode: http.StatusUnauthorized}
	err := c.Load(context.Background())

	require.ErrorIs(t, err, ErrSessionExpired)
	require.Equal(t, 1, exp.expired)
	require.Equal(t, []string{"r1"}, ids(c.Records()), "collection kept as it was")
}

func TestSave_CreatePrepends(t *testing.T) {
	fc := &fakeClient{}
	c := loaded(t, fc,
		rec("r1", "Laporan A", "UPTD Pasar", "B-01", ""),
		rec("r2", "Laporan B", "UPTD Kebersihan", "B-02", ""),
	)
	server := rec("r9", "Laporan Baru", "UPTD Pasar", "B-09", "")
	fc.createResp = &server

	require.NoError(t, c.Save(context.Background(), validForm()))

	got := c.Records()
	require.Equal(t, []string{"r9", "r1", "r2"}, ids(got), "new record first, others untouched")
	require.Equal(t, "Laporan Baru", got[0].FileName)
}

func TestSave_UpdateReplacesInPlace(t *testing.T) {
	fc := &fakeClient{}
	c := loaded(t, fc,
		rec("r1", "Laporan A", "UPTD Pasar", "B-01", ""),
		rec("r2", "Laporan B", "UPTD Kebersihan", "B-02", ""),
		rec("r3", "Laporan C", "UPTD Pasar", "B-03", ""),
	)
	c.SetEditTarget(c.Records()[1])

	server := rec("r2", "Laporan B (rev)", "UPTD Kebersihan", "B-02", "diperbarui")
	fc.updateResp = &server

	require.NoError(t, c.Save(context.Background(), validForm()))

	got := c.Records()
	require.Equal(t, []string{"r1", "r2", "r3"}, ids(got), "same length, same order")
	require.Equal(t, "Laporan B (rev)", got[1].FileName, "server representation wins")
	require.Equal(t, "r2", fc.updateID)
	require.Nil(t, c.EditTarget(), "edit target cleared after a successful update")
}

func TestSave_FailureLeavesCollection(t *testing.T) {
	fc := &fakeClient{}
	c := loaded(t, fc, rec("r1", "Laporan A", "UPTD Pasar", "B-01", ""))
	fc.createErr = &api.Error{StatusCode: http.StatusInternalServerError}

	err := c.Save(context.Background(), validForm())
	require.Error(t, err)
	require.Equal(t, []string{"r1"}, ids(c.Records()))
}

func TestSave_ValidationStopsRequest(t *testing.T) {
	fc := &fakeClient{}
	c, _ := newTestController(fc)

	form := validForm()
	form.FileName = ""
	err := c.Save(context.Background(), form)

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "Please fill in all required fields", verr.Message)
	require.Zero(t, fc.createCalls)
	require.Zero(t, fc.updateCalls)
}

func TestRemove_Success(t *testing.T) {
	fc := &fakeClient{}
	c := loaded(t, fc,
		rec("r1", "Laporan A", "UPTD Pasar", "B-01", ""),
		rec("r2", "Laporan B", "UPTD Kebersihan", "B-02", ""),
		rec("r3", "Laporan C", "UPTD Pasar", "B-03", ""),
	)

	require.NoError(t, c.Remove(context.Background(), "r1"))

	got := c.Records()
	require.Len(t, got, 2)
	require.Equal(t, []string{"r2", "r3"}, ids(got))
	require.Equal(t, "r1", fc.deleteID)
}

func TestRemove_FailureLeavesCollection(t *testing.T) {
	fc := &fakeClient{}
	c := loaded(t, fc, rec("r1", "Laporan A", "UPTD Pasar", "B-01", ""))
	fc.deleteErr = &api.Error{StatusCode: http.StatusBadGateway}

	err := c.Remove(context.Background(), "r1")
	require.Error(t, err)
	require.Equal(t, []string{"r1"}, ids(c.Records()))
}

func TestFilter(t *testing.T) {
	fc := &fakeClient{}
	c := loaded(t, fc,
		rec("r1", "Laporan Keuangan", "UPTD Pasar", "B-01", ""),
		rec("r2", "SK Mutasi", "UPTD Kebersihan", "B-02", "arsip pegawai"),
		rec("r3", "Laporan Aset", "UPTD Pasar", "B-03", ""),
	)

	tests := []struct {
		term string
		want []string
	}{
		{"", []string{"r1", "r2", "r3"}},
		{"laporan", []string{"r1", "r3"}},
		{"KEBERSIHAN", []string{"r2"}},
		{"b-03", []string{"r3"}},
		{"pegawai", []string{"r2"}},
		{"tidak ada", nil},
	}

	for _, tc := range tests {
		got := c.Filter(tc.term)
		if tc.want == nil {
			require.Empty(t, got, "term %q", tc.term)
			continue
		}
		require.Equal(t, tc.want, ids(got), "term %q", tc.term)
	}

	// Filtering never mutates the stored collection.
	require.Equal(t, []string{"r1", "r2", "r3"}, ids(c.Records()))
}

func TestLoad_StaleResponseDiscarded(t *testing.T) {
	fc := &fakeClient{}
	c, _ := newTestController(fc)

	// The collection moves on while the request is in flight.
	fc.listFn = func() ([]models.ArchiveRecord, error) {
		c.Reset()
		return []models.ArchiveRecord{rec("old", "Laporan Lama", "UPTD Pasar", "B-01", "")}, nil
	}

	err := c.Load(context.Background())
	require.ErrorIs(t, err, ErrStaleResponse)
	require.Empty(t, c.Records(), "stale response not applied")
}

func TestReset_ClearsCollectionAndEditTarget(t *testing.T) {
	fc := &fakeClient{}
	c := loaded(t, fc, rec("r1", "Laporan A", "UPTD Pasar", "B-01", ""))
	c.SetEditTarget(c.Records()[0])

	c.Reset()

	require.Empty(t, c.Records())
	require.Nil(t, c.EditTarget())
}
