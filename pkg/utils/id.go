package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateIdempotencyKey gera a chave que deduplica reenvios de venda na
// retaguarda
func GenerateIdempotencyKey() (string, error) {
	return gonanoid.Generate(characters, 21)
}
