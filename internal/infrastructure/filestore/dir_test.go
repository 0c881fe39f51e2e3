package filestore_test

import (
	"testing"

	"github.com/jhoicas/autoservicio-api/internal/infrastructure/filestore"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDir_EscribirLeerEliminar(t *testing.T) {
	fs := afero.NewMemMapFs()
	dir, err := filestore.NewDir(fs, "data/tickets", "/tickets")
	require.NoError(t, err)

	ok, err := dir.Exists("ticket_1.pdf")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, dir.Write("ticket_1.pdf", []byte("%PDF-1.4")))

	ok, err = dir.Exists("ticket_1.pdf")
	require.NoError(t, err)
	assert.True(t, ok)

	data, err := dir.Read("ticket_1.pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	tmp, err := afero.Exists(fs, "data/tickets/ticket_1.pdf.tmp")
	require.NoError(t, err)
	assert.False(t, tmp, "no deben quedar temporales")

	require.NoError(t, dir.Remove("ticket_1.pdf"))
	require.NoError(t, dir.Remove("ticket_1.pdf"), "eliminar dos veces no falla")
}

func TestDir_URL(t *testing.T) {
	dir, err := filestore.NewDir(afero.NewMemMapFs(), "reportes", "reportes/")
	require.NoError(t, err)
	assert.Equal(t, "/reportes/reporte_2024-01-01.html", dir.URL("reporte_2024-01-01.html"))
}

func TestDir_RechazaRutasFueraDelDirectorio(t *testing.T) {
	dir, err := filestore.NewDir(afero.NewMemMapFs(), "reports", "/reports")
	require.NoError(t, err)

	assert.Error(t, dir.Write("../config.env", []byte("x")))
	_, err = dir.Read("sub/archivo.pdf")
	assert.Error(t, err)
}
