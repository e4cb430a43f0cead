package transfer

import "sync"

// MemoryRepository keeps sessions in a map. Suitable for tests and for
// deployments that accept losing session expectations on restart (on-disk
// size still makes such uploads resumable).
type MemoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]*UploadSession
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{sessions: make(map[string]*UploadSession)}
}

func (r *MemoryRepository) Get(name string) (*UploadSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[name]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (r *MemoryRepository) Save(session *UploadSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *session
	r.sessions[session.Name] = &copied
	return nil
}

func (r *MemoryRepository) Delete(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, name)
	return nil
}
