package inventory

import "github.com/jhoicas/autoservicio-api/internal/domain/entity"

// Difference calcula la diferencia de un conteo físico (servicio de dominio).
// Diferencia = ExistenciaFisica - ExistenciaSistema; negativa indica faltante.
func Difference(physicalQty, systemQty int) int {
	return physicalQty - systemQty
}

// LatestByProduct devuelve, por producto, el conteo con fecha de conteo más reciente.
// En empate de fecha gana el primero recibido.
func LatestByProduct(counts []*entity.InventoryCount) map[string]*entity.InventoryCount {
	latest := make(map[string]*entity.InventoryCount, len(counts))
	for _, c := range counts {
		cur, ok := latest[c.ProductID]
		if !ok || c.CountedAt.After(cur.CountedAt) {
			latest[c.ProductID] = c
		}
	}
	return latest
}
