// Package searching é o adaptador de busca de catálogo do PDV: consulta
// produtos e clientes na retaguarda com janela de debounce e descarte de
// respostas obsoletas, para que só o resultado do termo mais recente chegue
// à tela.
package searching

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/GstJus133718/barateira-pos-api/infrastructure/integrator/retaguarda"
	"github.com/GstJus133718/barateira-pos-api/infrastructure/repository"
	"github.com/GstJus133718/barateira-pos-api/internal/domain"
)

type Searcher interface {
	SearchProducts(ctx context.Context, term string) ([]domain.Product, error)
	SearchCustomers(ctx context.Context, term string) ([]domain.Customer, error)
}

type Service struct {
	integrator retaguarda.Integrator
	cacheRepo  repository.CatalogCacheRepository
	debounce   time.Duration

	// Sequências monotônicas por tipo de busca: uma resposta só é aplicada
	// se ainda for a consulta mais recente daquele tipo
	productSeq  atomic.Uint64
	customerSeq atomic.Uint64
}

// NewService cria o adaptador de busca com a janela de debounce informada
func NewService(integrator retaguarda.Integrator, debounce time.Duration) *Service {
	return &Service{
		integrator: integrator,
		debounce:   debounce,
	}
}

// WithCache habilita a contingência pelo cache local de catálogo quando a
// retaguarda está inacessível
func (s *Service) WithCache(cacheRepo repository.CatalogCacheRepository) *Service {
	s.cacheRepo = cacheRepo
	return s
}

// SearchProducts busca produtos pelo termo livre. Termo em branco devolve
// lista vazia sem emitir requisição.
func (s *Service) SearchProducts(ctx context.Context, term string) ([]domain.Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []domain.Product{}, nil
	}

	seq := s.productSeq.Add(1)
	if err := s.waitDebounce(ctx, &s.productSeq, seq); err != nil {
		return nil, err
	}

	products, err := s.integrator.SearchProducts(ctx, term)
	if err != nil {
		products, err = s.searchCacheFallback(term, err)
		if err != nil {
			return nil, err
		}
	}

	// Resposta atrasada de um termo substituído nunca chega à tela
	if s.productSeq.Load() != seq {
		return nil, ErrSuperseded
	}

	matched := make([]domain.Product, 0, len(products))
	for _, product := range products {
		if matchProduct(product, term) {
			matched = append(matched, product)
		}
	}

	return matched, nil
}

// SearchCustomers busca clientes por nome completo ou CPF (apenas dígitos)
func (s *Service) SearchCustomers(ctx context.Context, term string) ([]domain.Customer, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []domain.Customer{}, nil
	}

	seq := s.customerSeq.Add(1)
	if err := s.waitDebounce(ctx, &s.customerSeq, seq); err != nil {
		return nil, err
	}

	customers, err := s.integrator.SearchCustomers(ctx, term)
	if err != nil {
		return nil, err
	}

	if s.customerSeq.Load() != seq {
		return nil, ErrSuperseded
	}

	matched := make([]domain.Customer, 0, len(customers))
	for _, customer := range customers {
		if matchCustomer(customer, term) {
			matched = append(matched, customer)
		}
	}

	return matched, nil
}

// waitDebounce segura a consulta pela janela de inatividade; se um termo mais
// novo chegar durante a espera, esta consulta é abandonada antes de emitir
// qualquer requisição
func (s *Service) waitDebounce(ctx context.Context, seqCounter *atomic.Uint64, seq uint64) error {
	if s.debounce <= 0 {
		return nil
	}

	timer := time.NewTimer(s.debounce)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	if seqCounter.Load() != seq {
		return ErrSuperseded
	}

	return nil
}

func (s *Service) searchCacheFallback(term string, cause error) ([]domain.Product, error) {
	if s.cacheRepo == nil {
		return nil, cause
	}

	logrus.WithError(cause).Warn("Retaguarda indisponível, usando o cache local de catálogo")

	products, err := s.cacheRepo.Search(term)
	if err != nil {
		// Mantém o erro original: a contingência também falhou
		logrus.WithError(err).Error("Erro ao consultar o cache local de catálogo")
		return nil, cause
	}

	return products, nil
}

func matchProduct(product domain.Product, term string) bool {
	needle := strings.ToLower(term)
	fields := []string{
		product.Name,
		product.Brand,
		product.ActiveIngredient,
		product.Department,
	}

	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}

	return false
}

func matchCustomer(customer domain.Customer, term string) bool {
	needle := strings.ToLower(strings.TrimSpace(term))

	if strings.Contains(strings.ToLower(customer.FullName()), needle) {
		return true
	}

	// CPF compara apenas dígitos, ignorando pontuação de máscara
	needleDigits := digitsOnly(needle)
	if needleDigits != "" && strings.Contains(digitsOnly(customer.CPF), needleDigits) {
		return true
	}

	return false
}

func digitsOnly(s string) string {
	var builder strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			builder.WriteRune(r)
		}
	}
	return builder.String()
}
