package domain

// Customer é o cliente da farmácia cadastrado na retaguarda
type Customer struct {
	ID        string `json:"id"`
	Name      string `json:"nome"`
	Lastname  string `json:"sobrenome"`
	CPF       string `json:"cpf"`
	Email     string `json:"email"`
	BirthDate string `json:"data_nascimento"`
}

// FullName retorna o nome completo para exibição e busca
func (c Customer) FullName() string {
	if c.Lastname == "" {
		return c.Name
	}
	return c.Name + " " + c.Lastname
}
