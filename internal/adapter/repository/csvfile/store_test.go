package csvfile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ybnd/monizze-csv/internal/adapter/repository/csvfile"
	"github.com/ybnd/monizze-csv/internal/domain"
)

func tx(t *testing.T, date, voucher, amount, detail string) domain.Transaction {
	t.Helper()
	v, err := domain.NewTransaction(date, voucher, amount, detail)
	require.NoError(t, err)
	return v
}

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monizze.csv")
	store := csvfile.NewStore(path)

	history := []domain.Transaction{
		tx(t, "2023-01-01", "emv", "5", "groceries"),
		tx(t, "2024-01-05", "eco", "10.00", `said "thanks", left`),
	}
	require.NoError(t, store.WriteAll(context.Background(), history))

	rows, err := store.ReadRows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, domain.Row{Date: "2023-01-01", Voucher: "emv", Amount: "5.00", Detail: "groceries"}, rows[0])
	assert.Equal(t, domain.Row{Date: "2024-01-05", Voucher: "eco", Amount: "10.00", Detail: `said "thanks", left`}, rows[1])
}

func TestStoreWritesAllFieldsQuoted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monizze.csv")
	store := csvfile.NewStore(path)

	require.NoError(t, store.WriteAll(context.Background(), []domain.Transaction{
		tx(t, "2024-01-05", "emv", "10.00", `he said "hi"`),
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	want := `"Date","Monizze Voucher","Amount","Detail"` + "\n" +
		`"2024-01-05","emv","10.00","he said ""hi"""` + "\n"
	assert.Equal(t, want, string(data))
}

func TestStoreReadMissingFileIsNotFound(t *testing.T) {
	store := csvfile.NewStore(filepath.Join(t.TempDir(), "absent.csv"))

	_, err := store.ReadRows(context.Background())
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestStoreReadRaggedFileIsUnreadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monizze.csv")
	require.NoError(t, os.WriteFile(path, []byte("\"a\",\"b\"\n"), 0o644))

	store := csvfile.NewStore(path)
	_, err := store.ReadRows(context.Background())
	require.ErrorIs(t, err, domain.ErrRecordUnreadable)
}

func TestStoreWriteReplacesWholeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monizze.csv")
	store := csvfile.NewStore(path)

	require.NoError(t, store.WriteAll(context.Background(), []domain.Transaction{
		tx(t, "2023-01-01", "emv", "1.00", "a"),
		tx(t, "2023-02-01", "emv", "2.00", "b"),
	}))
	require.NoError(t, store.WriteAll(context.Background(), []domain.Transaction{
		tx(t, "2024-01-01", "eco", "3.00", "c"),
	}))

	rows, err := store.ReadRows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2024-01-01", rows[0].Date)
}

func TestStoreWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := csvfile.NewStore(filepath.Join(dir, "monizze.csv"))

	require.NoError(t, store.WriteAll(context.Background(), []domain.Transaction{
		tx(t, "2024-01-01", "emv", "1.00", "a"),
	}))

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "monizze.csv", files[0].Name())
}

func TestStoreReadToleratesMissingHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monizze.csv")
	require.NoError(t, os.WriteFile(path, []byte(`"2024-01-01","emv","1.00","a"`+"\n"), 0o644))

	store := csvfile.NewStore(path)
	rows, err := store.ReadRows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "emv", rows[0].Voucher)
}
