package domain

import "github.com/GstJus133718/barateira-pos-api/internal/domain"

// CustomerPayload é o cliente como a retaguarda o envia
type CustomerPayload struct {
	ID             any    `json:"id"`
	Nome           string `json:"nome"`
	Sobrenome      string `json:"sobrenome"`
	CPF            string `json:"cpf"`
	Email          string `json:"email"`
	DataNascimento string `json:"data_nascimento"`
}

func (c CustomerPayload) ToCustomer() domain.Customer {
	return domain.Customer{
		ID:        CanonicalID(c.ID),
		Name:      c.Nome,
		Lastname:  c.Sobrenome,
		CPF:       c.CPF,
		Email:     c.Email,
		BirthDate: c.DataNascimento,
	}
}

// BranchPayload é a filial como a retaguarda a envia
type BranchPayload struct {
	ID       any    `json:"id"`
	Nome     string `json:"nome"`
	Endereco string `json:"endereco"`
	Telefone string `json:"telefone"`
}

func (b BranchPayload) ToBranch() domain.Branch {
	return domain.Branch{
		ID:      CanonicalID(b.ID),
		Name:    b.Nome,
		Address: b.Endereco,
		Phone:   b.Telefone,
	}
}
