package session

import (
	"encoding/json"
	"log/slog"
	"maps"
	"sync"
)

// Presence tracks where each connected client's pointer is, keyed by
// client id so one user may have several tabs open.
type Presence struct {
	mu        sync.RWMutex
	presences map[string]*PresencePayload
}

func NewPresence() *Presence {
	return &Presence{presences: make(map[string]*PresencePayload)}
}

func (p *Presence) Update(clientID string, v *PresencePayload) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.presences[clientID] = v
}

func (p *Presence) Remove(clientID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.presences, clientID)
}

func (p *Presence) All() map[string]*PresencePayload {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return maps.Clone(p.presences)
}

// StateMessage returns the presence of every client, or nil if there is
// none yet.
func (p *Presence) StateMessage() *Message {
	all := p.All()
	if len(all) == 0 {
		return nil
	}
	payload, err := json.Marshal(PresenceStatePayload{Presences: all})
	if err != nil {
		slog.Error("marshal presence state", "error", err)
		return nil
	}
	return &Message{Type: TypePresenceState, Payload: payload}
}
