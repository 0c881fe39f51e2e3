package ports

import (
	"fmt"

	"github.com/jhoicas/autoservicio-api/internal/application/dto"
	"github.com/rs/zerolog/log"
)

// ArtifactDir define el puerto de salida para un directorio de archivos generados
// (tickets PDF, reportes). Los nombres son relativos al directorio.
type ArtifactDir interface {
	Exists(name string) (bool, error)
	Write(name string, data []byte) error
	Read(name string) ([]byte, error)
	Remove(name string) error
	// URL devuelve la ruta pública con la que se sirve el archivo.
	URL(name string) string
}

// Materialize escribe un PDF ad-hoc, lo relee y lo elimina. Un fallo al eliminar solo se registra.
func Materialize(dir ArtifactDir, name string, data []byte) (*dto.FileResponse, error) {
	if err := dir.Write(name, data); err != nil {
		return nil, fmt.Errorf("escribir %s: %w", name, err)
	}
	stored, err := dir.Read(name)
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", name, err)
	}
	if err := dir.Remove(name); err != nil {
		log.Warn().Err(err).Str("path", name).Msg("no se pudo eliminar el reporte temporal")
	}
	return &dto.FileResponse{Name: name, ContentType: "application/pdf", Data: stored}, nil
}
