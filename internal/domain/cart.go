package domain

// CartStorageKey é a chave fixa sob a qual o carrinho é persistido
const CartStorageKey = "carrinho_vendas"

// CartItem é um snapshot de produto com a quantidade escolhida no carrinho.
// Existe no máximo uma linha por produto; quantidade nunca fica abaixo de 1.
type CartItem struct {
	Product  Product `json:"produto"`
	Quantity int     `json:"quantidade"`
}

// Cart é o agregado da venda em andamento: linhas em ordem de inserção mais a
// seleção de cliente e filial. Apenas as linhas são persistidas.
type Cart struct {
	Items    []*CartItem `json:"itens"`
	Customer *Customer   `json:"-"`
	Branch   *Branch     `json:"-"`
}

// NewCart cria um carrinho vazio
func NewCart() *Cart {
	return &Cart{Items: make([]*CartItem, 0)}
}

// FindItem retorna a linha do produto, ou nil quando ausente
func (c *Cart) FindItem(productID string) *CartItem {
	for _, item := range c.Items {
		if item.Product.ID == productID {
			return item
		}
	}
	return nil
}

// Add incrementa a quantidade quando o produto já está no carrinho; caso
// contrário adiciona uma nova linha com quantidade 1
func (c *Cart) Add(product Product) *CartItem {
	if item := c.FindItem(product.ID); item != nil {
		item.Quantity++
		return item
	}

	item := &CartItem{Product: product, Quantity: 1}
	c.Items = append(c.Items, item)
	return item
}

// Increment soma 1 à quantidade da linha; retorna falso quando ausente
func (c *Cart) Increment(productID string) bool {
	item := c.FindItem(productID)
	if item == nil {
		return false
	}

	item.Quantity++
	return true
}

// Decrement subtrai 1 da quantidade da linha, com piso em 1. Quantidade nunca
// chega a zero por decremento; para apagar a linha use Remove.
func (c *Cart) Decrement(productID string) bool {
	item := c.FindItem(productID)
	if item == nil {
		return false
	}

	if item.Quantity > 1 {
		item.Quantity--
	}
	return true
}

// Remove apaga a linha do produto; remover um produto ausente não é erro
func (c *Cart) Remove(productID string) {
	for i, item := range c.Items {
		if item.Product.ID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// IsEmpty indica se o carrinho não tem nenhuma linha
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
