package carting

import "errors"

var (
	// ErrItemNotFound indica incremento/decremento sobre linha inexistente
	ErrItemNotFound = errors.New("item não encontrado no carrinho")

	// ErrInvalidProduct indica produto sem identificador
	ErrInvalidProduct = errors.New("produto inválido")
)
