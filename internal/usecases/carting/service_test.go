package carting

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/GstJus133718/barateira-pos-api/infrastructure/repository/mocks"
	"github.com/GstJus133718/barateira-pos-api/internal/domain"
)

const operadorID = 42

func produto(id, nome string, unitario, final string) domain.Product {
	p := domain.Product{
		ID:         id,
		Name:       nome,
		UnitPrice:  decimal.RequireFromString(unitario),
		FinalPrice: decimal.RequireFromString(final),
	}
	p.Normalize()
	return p
}

func TestAddProduct_MergesExistingLine(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockCartRepository(ctrl)
	mockRepo.EXPECT().Load(operadorID, domain.CartStorageKey).Return(nil, nil)
	mockRepo.EXPECT().Save(operadorID, domain.CartStorageKey, gomock.Any()).Return(nil).Times(2)

	service := NewService(mockRepo)

	dipirona := produto("10", "Dipirona", "10.00", "8.00")

	// Adicionar duas vezes equivale a adicionar uma vez e incrementar
	assert.NoError(t, service.AddProduct(operadorID, dipirona))
	assert.NoError(t, service.AddProduct(operadorID, dipirona))

	cart, summary := service.GetCart(operadorID)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.True(t, summary.SubtotalOriginal.Equal(decimal.RequireFromString("20")))
	assert.True(t, summary.TotalDiscount.Equal(decimal.RequireFromString("4")))
	assert.True(t, summary.NetTotal.Equal(decimal.RequireFromString("16")))
}

func TestDecrement_FloorsAtOne(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockCartRepository(ctrl)
	mockRepo.EXPECT().Load(operadorID, domain.CartStorageKey).Return(nil, nil)
	mockRepo.EXPECT().Save(operadorID, domain.CartStorageKey, gomock.Any()).Return(nil).AnyTimes()

	service := NewService(mockRepo)

	assert.NoError(t, service.AddProduct(operadorID, produto("10", "Dipirona", "10.00", "10.00")))

	// Quantidade já em 1: decremento não chega a zero
	assert.NoError(t, service.Decrement(operadorID, "10"))

	cart, _ := service.GetCart(operadorID)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestDecrement_MissingLine(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockCartRepository(ctrl)
	mockRepo.EXPECT().Load(operadorID, domain.CartStorageKey).Return(nil, nil)

	service := NewService(mockRepo)

	assert.ErrorIs(t, service.Decrement(operadorID, "999"), ErrItemNotFound)
}

func TestRemoveProduct_AbsentIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockCartRepository(ctrl)
	mockRepo.EXPECT().Load(operadorID, domain.CartStorageKey).Return(nil, nil)
	mockRepo.EXPECT().Save(operadorID, domain.CartStorageKey, gomock.Any()).Return(nil).AnyTimes()

	service := NewService(mockRepo)

	assert.NoError(t, service.AddProduct(operadorID, produto("10", "Dipirona", "10.00", "10.00")))
	assert.NoError(t, service.RemoveProduct(operadorID, "nao-existe"))

	cart, _ := service.GetCart(operadorID)
	assert.Len(t, cart.Items, 1)
}

func TestPersistenceRoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Primeira sessão: captura o que foi persistido
	var persisted []byte
	mockRepo := mocks.NewMockCartRepository(ctrl)
	mockRepo.EXPECT().Load(operadorID, domain.CartStorageKey).Return(nil, nil)
	mockRepo.EXPECT().
		Save(operadorID, domain.CartStorageKey, gomock.Any()).
		DoAndReturn(func(_ int, _ string, cart *domain.Cart) error {
			payload, err := json.Marshal(cart)
			persisted = payload
			return err
		}).
		AnyTimes()

	service := NewService(mockRepo)
	assert.NoError(t, service.AddProduct(operadorID, produto("10", "Dipirona", "10.00", "8.00")))
	assert.NoError(t, service.AddProduct(operadorID, produto("20", "Omeprazol", "35.50", "35.50")))
	assert.NoError(t, service.AddProduct(operadorID, produto("10", "Dipirona", "10.00", "8.00")))

	// Segunda sessão: reidrata a partir do payload persistido
	restored := domain.NewCart()
	assert.NoError(t, json.Unmarshal(persisted, restored))

	mockRepo2 := mocks.NewMockCartRepository(ctrl)
	mockRepo2.EXPECT().Load(operadorID, domain.CartStorageKey).Return(restored, nil)

	service2 := NewService(mockRepo2)
	cart, _ := service2.GetCart(operadorID)

	quantities := map[string]int{}
	for _, item := range cart.Items {
		quantities[item.Product.ID] = item.Quantity
	}
	assert.Equal(t, map[string]int{"10": 2, "20": 1}, quantities)
}

func TestLoad_CorruptPayloadStartsEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockCartRepository(ctrl)
	mockRepo.EXPECT().
		Load(operadorID, domain.CartStorageKey).
		Return(nil, errors.New("payload corrompido"))

	service := NewService(mockRepo)

	cart, summary := service.GetCart(operadorID)
	assert.True(t, cart.IsEmpty())
	assert.True(t, summary.NetTotal.IsZero())
}

func TestPersistFailure_IsNonFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockCartRepository(ctrl)
	mockRepo.EXPECT().Load(operadorID, domain.CartStorageKey).Return(nil, nil)
	mockRepo.EXPECT().
		Save(operadorID, domain.CartStorageKey, gomock.Any()).
		Return(errors.New("banco indisponível"))

	service := NewService(mockRepo)

	// A falha de escrita é registrada, nunca propagada ao caixa
	assert.NoError(t, service.AddProduct(operadorID, produto("10", "Dipirona", "10.00", "10.00")))

	cart, _ := service.GetCart(operadorID)
	assert.Len(t, cart.Items, 1)
}

func TestFinishSale_KeepsBranchSelection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockCartRepository(ctrl)
	mockRepo.EXPECT().Load(operadorID, domain.CartStorageKey).Return(nil, nil)
	mockRepo.EXPECT().Save(operadorID, domain.CartStorageKey, gomock.Any()).Return(nil).AnyTimes()

	service := NewService(mockRepo)

	assert.NoError(t, service.AddProduct(operadorID, produto("10", "Dipirona", "10.00", "10.00")))
	service.SelectCustomer(operadorID, &domain.Customer{ID: "1", Name: "Maria"})
	service.SelectBranch(operadorID, &domain.Branch{ID: "3", Name: "Filial Centro"})

	service.FinishSale(operadorID)

	cart, _ := service.GetCart(operadorID)
	assert.True(t, cart.IsEmpty())
	assert.Nil(t, cart.Customer)
	assert.NotNil(t, cart.Branch)
	assert.Equal(t, "3", cart.Branch.ID)
}

func TestDefaultBranch_FirstListedUntilExplicitSelection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockCartRepository(ctrl)
	mockRepo.EXPECT().Load(operadorID, domain.CartStorageKey).Return(nil, nil)
	mockRepo.EXPECT().Save(operadorID, domain.CartStorageKey, gomock.Any()).Return(nil).AnyTimes()

	service := NewService(mockRepo)

	// Sessão nova começa com a primeira filial listada como padrão
	service.DefaultBranch(operadorID, &domain.Branch{ID: "1", Name: "Filial Centro"})

	cart, _ := service.GetCart(operadorID)
	assert.NotNil(t, cart.Branch)
	assert.Equal(t, "1", cart.Branch.ID)

	// Um novo padrão não substitui o que já está definido
	service.DefaultBranch(operadorID, &domain.Branch{ID: "2", Name: "Filial Norte"})

	cart, _ = service.GetCart(operadorID)
	assert.Equal(t, "1", cart.Branch.ID)

	// A escolha explícita do operador prevalece sobre qualquer padrão
	service.SelectBranch(operadorID, &domain.Branch{ID: "3", Name: "Filial Sul"})
	service.DefaultBranch(operadorID, &domain.Branch{ID: "1", Name: "Filial Centro"})

	cart, _ = service.GetCart(operadorID)
	assert.Equal(t, "3", cart.Branch.ID)
}
