package repository

// FolioRepository entrega folios consecutivos por prefijo (VTA, CPP).
// Next incrementa el contador del prefijo de forma atómica dentro de la
// transacción activa y devuelve el folio formateado PREFIJO-NNNNNN.
type FolioRepository interface {
	Next(prefijo string) (string, error)
}
