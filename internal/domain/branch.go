package domain

// Branch é uma filial física da rede
type Branch struct {
	ID      string `json:"id"`
	Name    string `json:"nome"`
	Address string `json:"endereco"`
	Phone   string `json:"telefone"`
}
