package fulfillment

import (
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/pizzeria-api/internal/domain"
	"github.com/jhoicas/pizzeria-api/internal/domain/entity"
)

// DraftManager mantiene en memoria las órdenes borrador abiertas por los
// cajeros. Un borrador vive hasta que se finaliza o se descarta; no se
// persiste porque solo las líneas enviadas tienen valor contable.
type DraftManager struct {
	mu     sync.Mutex
	drafts map[string]*entity.DraftOrder
}

// NewDraftManager construye el administrador de borradores.
func NewDraftManager() *DraftManager {
	return &DraftManager{drafts: make(map[string]*entity.DraftOrder)}
}

// Open abre una orden borrador nueva con id generado.
func (m *DraftManager) Open() *entity.DraftOrder {
	m.mu.Lock()
	defer m.mu.Unlock()
	draft := entity.NewDraftOrder("ORD-" + uuid.New().String())
	m.drafts[draft.OrderID] = draft
	return draft
}

// Get devuelve el borrador abierto con ese id.
func (m *DraftManager) Get(orderID string) (*entity.DraftOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	draft, ok := m.drafts[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return draft, nil
}

// AddItem agrega una línea al borrador.
func (m *DraftManager) AddItem(orderID string, item entity.OrderItem) (*entity.DraftOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	draft, ok := m.drafts[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if err := draft.AddItem(item); err != nil {
		return nil, err
	}
	return draft, nil
}

// Take saca el borrador del administrador para enviarlo. Tras Take el id deja
// de existir: un segundo envío del mismo borrador es imposible.
func (m *DraftManager) Take(orderID string) (*entity.DraftOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	draft, ok := m.drafts[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	delete(m.drafts, orderID)
	return draft, nil
}

// Discard descarta un borrador sin enviarlo.
func (m *DraftManager) Discard(orderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.drafts[orderID]; !ok {
		return domain.ErrNotFound
	}
	delete(m.drafts, orderID)
	return nil
}
