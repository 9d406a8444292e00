package collab

import (
	"hash/fnv"
	"maps"
	"sync"
)

// palette holds the cursor colors handed out to clients.
var palette = []string{
	"#e6194b", "#3cb44b", "#4363d8", "#f58231",
	"#911eb4", "#42d4f4", "#f032e6", "#469990",
}

// ColorFor picks a stable palette color for a client id.
func ColorFor(clientID string) string {
	h := fnv.New32a()
	h.Write([]byte(clientID))
	return palette[h.Sum32()%uint32(len(palette))]
}

type PresenceManager struct {
	mu        sync.RWMutex
	presences map[string]*PresencePayload // clientID -> presence
}

func NewPresenceManager() *PresenceManager {
	return &PresenceManager{
		presences: make(map[string]*PresencePayload),
	}
}

func (pm *PresenceManager) Update(clientID string, p *PresencePayload) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.presences[clientID] = p
}

func (pm *PresenceManager) Remove(clientID string) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	delete(pm.presences, clientID)
}

func (pm *PresenceManager) GetAll() map[string]*PresencePayload {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return maps.Clone(pm.presences)
}

// SelectedBy returns the clients other than exclude whose selection
// includes id.
func (pm *PresenceManager) SelectedBy(id, exclude string) []string {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	var out []string
	for clientID, p := range pm.presences {
		if clientID == exclude {
			continue
		}
		if p.Selection.Contains(id) {
			out = append(out, clientID)
		}
	}
	return out
}

func (pm *PresenceManager) StateMessage() *Message {
	return newMessage(TypePresenceState, PresenceStatePayload{Presences: pm.GetAll()})
}
