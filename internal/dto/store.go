package dto

import (
	"time"

	"github.com/cardledger/card_ledger_app/internal/core/domain"
)

// CreateStoreRequest defines the data needed to register a store.
type CreateStoreRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateStoreRequest defines the data allowed when editing a store.
type UpdateStoreRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// StoreResponse mirrors domain.Store.
type StoreResponse struct {
	StoreID   string    `json:"storeID"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r CreateStoreRequest) ToDomain() domain.Store {
	return domain.Store{
		Name:    r.Name,
		Phone:   r.Phone,
		Address: r.Address,
	}
}

func (r UpdateStoreRequest) ToDomain(storeID string) domain.Store {
	return domain.Store{
		StoreID: storeID,
		Name:    r.Name,
		Phone:   r.Phone,
		Address: r.Address,
	}
}

// ToStoreResponse converts a domain.Store to StoreResponse DTO
func ToStoreResponse(s *domain.Store) StoreResponse {
	return StoreResponse{
		StoreID:   s.StoreID,
		Name:      s.Name,
		Phone:     s.Phone,
		Address:   s.Address,
		CreatedAt: s.CreatedAt,
	}
}

func ToListStoreResponse(stores []domain.Store) []StoreResponse {
	res := make([]StoreResponse, len(stores))
	for i := range stores {
		res[i] = ToStoreResponse(&stores[i])
	}
	return res
}
