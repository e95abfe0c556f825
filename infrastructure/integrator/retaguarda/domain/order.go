package domain

// CreateOrderRequest é o corpo enviado ao endpoint de criação de venda.
// A retaguarda exige identificadores inteiros.
type CreateOrderRequest struct {
	CustomerID int         `json:"customer_id"`
	BranchID   int         `json:"branch_id"`
	Items      []OrderItem `json:"items"`
}

type OrderItem struct {
	ProdutoID  int `json:"produto_id"`
	Quantidade int `json:"quantidade"`
}

// ProductInput é o corpo de criação/edição de produto do back-office
type ProductInput struct {
	Nome           string  `json:"nome"`
	Marca          string  `json:"marca"`
	PrincipioAtivo string  `json:"principio_ativo"`
	Departamento   string  `json:"departamento"`
	PrecoUnitario  float64 `json:"preco_unitario"`
}

// CustomerInput é o corpo de criação/edição de cliente do back-office
type CustomerInput struct {
	Nome           string `json:"nome"`
	Sobrenome      string `json:"sobrenome"`
	CPF            string `json:"cpf"`
	Email          string `json:"email"`
	DataNascimento string `json:"data_nascimento"`
}

// BranchInput é o corpo de criação/edição de filial do back-office
type BranchInput struct {
	Nome     string `json:"nome"`
	Endereco string `json:"endereco"`
	Telefone string `json:"telefone"`
}

// PromotionInput é o corpo de criação de promoção: desconto percentual sobre
// o preço unitário de um produto, por período
type PromotionInput struct {
	ProdutoID          string  `json:"produto_id"`
	DescontoPercentual float64 `json:"desconto_percentual"`
	Inicio             string  `json:"inicio"`
	Fim                string  `json:"fim"`
}

// Promotion é a promoção como a retaguarda a envia
type Promotion struct {
	ID                 any     `json:"id"`
	ProdutoID          any     `json:"produto_id"`
	DescontoPercentual float64 `json:"desconto_percentual"`
	Inicio             string  `json:"inicio"`
	Fim                string  `json:"fim"`
}

// StockAdjustment é o ajuste de estoque de um produto em uma filial
type StockAdjustment struct {
	ProdutoID  string `json:"produto_id"`
	FilialID   string `json:"filial_id"`
	Quantidade int    `json:"quantidade"`
}

// StockEntry é a posição de estoque por produto e filial
type StockEntry struct {
	ProdutoID  any    `json:"produto_id"`
	FilialID   any    `json:"filial_id"`
	Produto    string `json:"produto"`
	Quantidade int    `json:"quantidade"`
}
