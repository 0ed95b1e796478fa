package http

import (
	"strconv"

	"github.com/rafabene/minipost-backend/internal/domain/errors"
)

// parseID converte um path parameter em ID. IDs são inteiros positivos;
// qualquer outra coisa falha antes de qualquer efeito colateral.
func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.ErrInvalidID
	}
	return id, nil
}
