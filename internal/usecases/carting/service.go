// Package carting mantém o razão do carrinho de cada operador do PDV:
// mutações em memória com gravação write-through no armazenamento durável.
package carting

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/GstJus133718/barateira-pos-api/infrastructure/repository"
	"github.com/GstJus133718/barateira-pos-api/internal/domain"
	"github.com/GstJus133718/barateira-pos-api/internal/usecases/pricing"
)

type CartService interface {
	GetCart(userID int) (*domain.Cart, pricing.Summary)
	AddProduct(userID int, product domain.Product) error
	Increment(userID int, productID string) error
	Decrement(userID int, productID string) error
	RemoveProduct(userID int, productID string) error
	SelectCustomer(userID int, customer *domain.Customer)
	SelectBranch(userID int, branch *domain.Branch)
	DefaultBranch(userID int, branch *domain.Branch)
	FinishSale(userID int)
}

type Service struct {
	repo  repository.CartRepository
	mu    sync.Mutex
	carts map[int]*domain.Cart
}

func NewService(repo repository.CartRepository) CartService {
	return &Service{
		repo:  repo,
		carts: make(map[int]*domain.Cart),
	}
}

// GetCart devolve o carrinho do operador e o resumo financeiro recalculado.
// O resumo nunca fica em cache entre mutações.
func (s *Service) GetCart(userID int) (*domain.Cart, pricing.Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.loadLocked(userID)
	return cart, pricing.Reconcile(cart)
}

// AddProduct incorpora o produto ao razão: linha existente tem a quantidade
// incrementada, produto novo entra com quantidade 1
func (s *Service) AddProduct(userID int, product domain.Product) error {
	if product.ID == "" {
		return ErrInvalidProduct
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.loadLocked(userID)
	cart.Add(product)
	s.persistLocked(userID, cart)

	return nil
}

func (s *Service) Increment(userID int, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.loadLocked(userID)
	if !cart.Increment(productID) {
		return ErrItemNotFound
	}

	s.persistLocked(userID, cart)
	return nil
}

// Decrement reduz a quantidade com piso em 1; para remover a linha o operador
// usa RemoveProduct
func (s *Service) Decrement(userID int, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.loadLocked(userID)
	if !cart.Decrement(productID) {
		return ErrItemNotFound
	}

	s.persistLocked(userID, cart)
	return nil
}

// RemoveProduct apaga a linha; produto ausente não é erro
func (s *Service) RemoveProduct(userID int, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.loadLocked(userID)
	cart.Remove(productID)
	s.persistLocked(userID, cart)

	return nil
}

// SelectCustomer define o cliente da venda em andamento (não persistido)
func (s *Service) SelectCustomer(userID int, customer *domain.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.loadLocked(userID)
	cart.Customer = customer
}

// SelectBranch define a filial da venda em andamento (não persistida)
func (s *Service) SelectBranch(userID int, branch *domain.Branch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.loadLocked(userID)
	cart.Branch = branch
}

// DefaultBranch define a filial da sessão quando o operador ainda não
// escolheu nenhuma: a primeira filial listada vale como padrão, mas a seleção
// explícita nunca é sobrescrita
func (s *Service) DefaultBranch(userID int, branch *domain.Branch) {
	if branch == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.loadLocked(userID)
	if cart.Branch == nil {
		cart.Branch = branch
	}
}

// FinishSale zera o razão e a seleção de cliente após um checkout bem
// sucedido; a filial selecionada é mantida para a próxima venda
func (s *Service) FinishSale(userID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.loadLocked(userID)
	cart.Items = make([]*domain.CartItem, 0)
	cart.Customer = nil
	s.persistLocked(userID, cart)
}

// loadLocked recupera o carrinho em memória, reidratando do armazenamento
// durável na primeira vez. Falha de leitura ou payload corrompido começa
// vazio, nunca derruba a sessão.
func (s *Service) loadLocked(userID int) *domain.Cart {
	if cart, ok := s.carts[userID]; ok {
		return cart
	}

	cart, err := s.repo.Load(userID, domain.CartStorageKey)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).
			Warn("Carrinho persistido ilegível, iniciando vazio")
		cart = nil
	}

	if cart == nil {
		cart = domain.NewCart()
	}

	s.carts[userID] = cart
	return cart
}

// persistLocked grava o razão completo após cada mutação. Falha de escrita é
// registrada e nunca bloqueia a operação do caixa.
func (s *Service) persistLocked(userID int, cart *domain.Cart) {
	if err := s.repo.Save(userID, domain.CartStorageKey, cart); err != nil {
		logrus.WithError(err).WithField("user_id", userID).
			Error("Erro ao persistir o carrinho")
	}
}
