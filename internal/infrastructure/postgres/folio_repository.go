package postgres

import (
	"context"
	"fmt"

	"github.com/marlonji2360/pos-venta/internal/domain/folio"
	"github.com/marlonji2360/pos-venta/internal/domain/repository"
)

var _ repository.FolioRepository = (*FolioRepo)(nil)

// FolioRepo entrega folios consecutivos por prefijo con un contador dedicado.
// El upsert con RETURNING incrementa y lee en una sola sentencia; el bloqueo
// de fila que toma el UPDATE serializa a los escritores concurrentes del mismo
// prefijo, así no se puede repetir un consecutivo (a diferencia del clásico
// SELECT max(folio) + 1, que pierde la carrera entre dos tx sin commit).
type FolioRepo struct {
	q Querier
}

// NewFolioRepository construye el adaptador. Pasar la tx activa (el folio debe
// participar del commit/rollback del documento que lo consume).
func NewFolioRepository(q Querier) *FolioRepo {
	return &FolioRepo{q: q}
}

// Next incrementa el contador del prefijo y devuelve el folio PREFIJO-NNNNNN.
func (r *FolioRepo) Next(prefijo string) (string, error) {
	query := `
		INSERT INTO folios (prefijo, consecutivo)
		VALUES ($1, 1)
		ON CONFLICT (prefijo)
		DO UPDATE SET consecutivo = folios.consecutivo + 1
		RETURNING consecutivo`
	var consecutivo int64
	if err := r.q.QueryRow(context.Background(), query, prefijo).Scan(&consecutivo); err != nil {
		return "", fmt.Errorf("next folio %s: %w", prefijo, err)
	}
	return folio.Format(prefijo, consecutivo), nil
}
