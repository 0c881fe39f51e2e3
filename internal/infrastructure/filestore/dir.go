// Package filestore guarda tickets y reportes en directorios sobre afero.Fs
// (disco en producción, memoria en pruebas).
package filestore

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/jhoicas/autoservicio-api/internal/application/ports"
	"github.com/spf13/afero"
)

var _ ports.ArtifactDir = (*Dir)(nil)

// Dir directorio de artefactos servido bajo un prefijo URL.
type Dir struct {
	fs        afero.Fs
	root      string
	urlPrefix string
}

// NewDir crea el directorio si no existe. urlPrefix es la ruta pública, p. ej. "/tickets".
func NewDir(fs afero.Fs, root, urlPrefix string) (*Dir, error) {
	if err := fs.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio %s: %w", root, err)
	}
	return &Dir{fs: fs, root: root, urlPrefix: "/" + strings.Trim(urlPrefix, "/")}, nil
}

// Root ruta del directorio en el sistema de archivos.
func (d *Dir) Root() string { return d.root }

func (d *Dir) path(name string) (string, error) {
	clean := filepath.Base(name)
	if clean != name || clean == "." || clean == ".." {
		return "", fmt.Errorf("nombre de archivo inválido: %q", name)
	}
	return filepath.Join(d.root, clean), nil
}

func (d *Dir) Exists(name string) (bool, error) {
	p, err := d.path(name)
	if err != nil {
		return false, err
	}
	return afero.Exists(d.fs, p)
}

// Write escribe en un archivo temporal y lo renombra para no exponer PDFs a medio escribir.
func (d *Dir) Write(name string, data []byte) error {
	p, err := d.path(name)
	if err != nil {
		return err
	}
	tmp := p + ".tmp"
	if err := afero.WriteFile(d.fs, tmp, data, 0o644); err != nil {
		return err
	}
	if err := d.fs.Rename(tmp, p); err != nil {
		_ = d.fs.Remove(tmp)
		return err
	}
	return nil
}

func (d *Dir) Read(name string) ([]byte, error) {
	p, err := d.path(name)
	if err != nil {
		return nil, err
	}
	return afero.ReadFile(d.fs, p)
}

// Remove elimina el archivo; no existir no es error.
func (d *Dir) Remove(name string) error {
	p, err := d.path(name)
	if err != nil {
		return err
	}
	if err := d.fs.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (d *Dir) URL(name string) string {
	return path.Join(d.urlPrefix, name)
}
