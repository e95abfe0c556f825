package searching

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	retmocks "github.com/GstJus133718/barateira-pos-api/infrastructure/integrator/retaguarda/mocks"
	repomocks "github.com/GstJus133718/barateira-pos-api/infrastructure/repository/mocks"
	"github.com/GstJus133718/barateira-pos-api/internal/domain"
)

func TestSearchProducts_BlankTermSkipsRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Nenhuma expectativa no integrador: termo em branco não emite requisição
	mockIntegrator := retmocks.NewMockIntegrator(ctrl)
	service := NewService(mockIntegrator, 0)

	for _, term := range []string{"", "   ", "\t"} {
		products, err := service.SearchProducts(context.Background(), term)
		assert.NoError(t, err)
		assert.Empty(t, products)
	}
}

func TestSearchProducts_MatchesFixedFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIntegrator := retmocks.NewMockIntegrator(ctrl)
	mockIntegrator.EXPECT().
		SearchProducts(gomock.Any(), "dor").
		Return([]domain.Product{
			{ID: "1", Name: "Dipirona", Brand: "Medley"},
			{ID: "2", Name: "Comprimido Analgésico", Brand: "Doril"},
			{ID: "3", Name: "Antitérmico Forte", Department: "Dor e Febre"},
			{ID: "4", Name: "Protetor Solar", Brand: "Sundown", Department: "Dermocosméticos"},
			{ID: "5", Name: "Dorflex", ActiveIngredient: "Dipirona Monoidratada"},
		}, nil)

	service := NewService(mockIntegrator, 0)

	products, err := service.SearchProducts(context.Background(), "dor")
	assert.NoError(t, err)

	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}

	// "dor" casa por nome (Dorflex), marca (Doril) e departamento (Dor e Febre)
	assert.ElementsMatch(t, []string{"2", "3", "5"}, ids)
}

func TestSearchProducts_SupersededDuringDebounce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIntegrator := retmocks.NewMockIntegrator(ctrl)
	// Só o termo mais recente chega à retaguarda
	mockIntegrator.EXPECT().
		SearchProducts(gomock.Any(), "aspirina").
		Return([]domain.Product{{ID: "7", Name: "Aspirina"}}, nil)

	service := NewService(mockIntegrator, 50*time.Millisecond)

	type result struct {
		products []domain.Product
		err      error
	}

	first := make(chan result, 1)
	go func() {
		products, err := service.SearchProducts(context.Background(), "aspi")
		first <- result{products, err}
	}()

	// O termo completo chega antes da janela de debounce do primeiro vencer
	time.Sleep(10 * time.Millisecond)
	products, err := service.SearchProducts(context.Background(), "aspirina")
	assert.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, "Aspirina", products[0].Name)

	got := <-first
	assert.ErrorIs(t, got.err, ErrSuperseded)
	assert.Nil(t, got.products)
}

func TestSearchProducts_StaleResponseDiscarded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	release := make(chan struct{})

	mockIntegrator := retmocks.NewMockIntegrator(ctrl)
	// A resposta de "aspi" só chega depois que "aspirina" já foi aplicada
	mockIntegrator.EXPECT().
		SearchProducts(gomock.Any(), "aspi").
		DoAndReturn(func(context.Context, string) ([]domain.Product, error) {
			<-release
			return []domain.Product{{ID: "1", Name: "Aspirina Infantil"}}, nil
		})
	mockIntegrator.EXPECT().
		SearchProducts(gomock.Any(), "aspirina").
		Return([]domain.Product{{ID: "7", Name: "Aspirina"}}, nil)

	service := NewService(mockIntegrator, 0)

	firstErr := make(chan error, 1)
	go func() {
		_, err := service.SearchProducts(context.Background(), "aspi")
		firstErr <- err
	}()

	// Garante que a primeira consulta já está em voo antes da segunda
	time.Sleep(10 * time.Millisecond)

	products, err := service.SearchProducts(context.Background(), "aspirina")
	assert.NoError(t, err)
	assert.Len(t, products, 1)

	close(release)
	assert.ErrorIs(t, <-firstErr, ErrSuperseded)
}

func TestSearchCustomers_ByNameAndCPF(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	customers := []domain.Customer{
		{ID: "1", Name: "Maria", Lastname: "Silva", CPF: "123.456.789-00"},
		{ID: "2", Name: "João", Lastname: "Souza", CPF: "987.654.321-00"},
	}

	mockIntegrator := retmocks.NewMockIntegrator(ctrl)
	mockIntegrator.EXPECT().SearchCustomers(gomock.Any(), gomock.Any()).Return(customers, nil).Times(2)

	service := NewService(mockIntegrator, 0)

	byName, err := service.SearchCustomers(context.Background(), "maria sil")
	assert.NoError(t, err)
	assert.Len(t, byName, 1)
	assert.Equal(t, "1", byName[0].ID)

	// CPF casa por dígitos, ignorando a máscara
	byCPF, err := service.SearchCustomers(context.Background(), "98765432")
	assert.NoError(t, err)
	assert.Len(t, byCPF, 1)
	assert.Equal(t, "2", byCPF[0].ID)
}

func TestSearchProducts_CacheFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIntegrator := retmocks.NewMockIntegrator(ctrl)
	mockIntegrator.EXPECT().
		SearchProducts(gomock.Any(), "dipirona").
		Return(nil, errors.New("retaguarda fora do ar"))

	mockCache := repomocks.NewMockCatalogCacheRepository(ctrl)
	mockCache.EXPECT().
		Search("dipirona").
		Return([]domain.Product{{ID: "1", Name: "Dipirona"}}, nil)

	service := NewService(mockIntegrator, 0).WithCache(mockCache)

	products, err := service.SearchProducts(context.Background(), "dipirona")
	assert.NoError(t, err)
	assert.Len(t, products, 1)
}
