package transfer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Service implements the chunked transfer protocol: validated append-only
// upload reconstruction, resume-point computation, chunked download
// streaming and directory queries.
type Service struct {
	store    *DiskStore
	pool     *IOPool
	locks    *LockTable
	sessions SessionRepository
	limits   Limits
}

func NewService(store *DiskStore, pool *IOPool, sessions SessionRepository, limits Limits) *Service {
	return &Service{
		store:    store,
		pool:     pool,
		locks:    NewLockTable(),
		sessions: sessions,
		limits:   limits,
	}
}

// UploadPart validates one part and appends it to its destination. The
// destination lock is held from the size read through the append, so two
// requests for the same name can never interleave their writes.
func (s *Service) UploadPart(ctx context.Context, req *PartRequest) (*UploadResult, error) {
	if err := ValidateName(req.Name); err != nil {
		return nil, err
	}

	release := s.locks.Acquire(req.Name)
	defer release()

	currentSize, err := s.store.Size(req.Name)
	if err != nil {
		if !IsKind(err, KindNotFound) {
			return nil, err
		}
		currentSize = 0
	}

	partLen := int64(len(req.Payload))
	if err := s.limits.ValidatePart(req.PartNumber, req.TotalParts, partLen, currentSize); err != nil {
		return nil, err
	}

	session, err := s.sessions.Get(req.Name)
	switch {
	case err == nil:
		if session.TotalParts != req.TotalParts {
			return nil, newError(KindInvalidArgument,
				"declared total parts %d does not match the registered %d for %s",
				req.TotalParts, session.TotalParts, req.Name)
		}
	case errors.Is(err, ErrSessionNotFound):
		session = nil
	default:
		return nil, wrapIO("failed to load upload session", err)
	}

	// Non-final parts are exactly one chunk, so a stored size that is not
	// chunk-aligned means a final short part already landed.
	if currentSize%s.limits.ChunkSize != 0 {
		return nil, newError(KindInvalidArgument, "upload for %s is already complete", req.Name)
	}

	// The only part that can legally arrive now is the one right after
	// the stored prefix.
	expected := int(currentSize/s.limits.ChunkSize) + 1
	if req.PartNumber != expected {
		return nil, newError(KindInvalidArgument,
			"expected part %d for %s, got %d", expected, req.Name, req.PartNumber)
	}

	var newSize int64
	var appendErr error
	if err := s.pool.Run(ctx, func() {
		newSize, appendErr = s.store.Append(req.Name, req.Payload)
	}); err != nil {
		return nil, wrapIO("upload interrupted", err)
	}
	if appendErr != nil {
		// The already-appended prefix stays on disk; the upload remains
		// resumable, so no cleanup here.
		return nil, appendErr
	}

	complete := req.PartNumber == req.TotalParts
	now := time.Now().Unix()
	if complete {
		if err := s.sessions.Delete(req.Name); err != nil {
			log.Warn().Err(err).Str("filename", req.Name).Msg("Failed to delete upload session")
		}
	} else {
		updated := &UploadSession{
			Name:       req.Name,
			TotalParts: req.TotalParts,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if session != nil {
			updated.CreatedAt = session.CreatedAt
		}
		if err := s.sessions.Save(updated); err != nil {
			log.Warn().Err(err).Str("filename", req.Name).Msg("Failed to save upload session")
		}
	}

	result := &UploadResult{
		Name:     req.Name,
		Size:     newSize,
		Complete: complete,
	}
	if complete {
		result.Message = "Upload complete"
	} else {
		result.Message = fmt.Sprintf("Part %d/%d uploaded", req.PartNumber, req.TotalParts)
	}
	return result, nil
}

// ResumePoint reports the chunk index a client should send next, derived
// from the bytes already on disk. Absence is reported, not papered over.
func (s *Service) ResumePoint(name string) (*ResumeInfo, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	size, err := s.store.Size(name)
	if err != nil {
		return nil, err
	}

	index := size / s.limits.ChunkSize
	return &ResumeInfo{
		Message:    fmt.Sprintf("Resume from chunk %d", index),
		Name:       name,
		ChunkIndex: index,
	}, nil
}

// ListFiles returns every stored file name, sorted.
func (s *Service) ListFiles() ([]string, error) {
	names, err := s.store.List()
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// SearchFiles returns stored names containing query as a case-insensitive
// substring. An empty result for a non-empty query is a not-found error.
func (s *Service) SearchFiles(query string) ([]string, error) {
	if query == "" {
		return nil, newError(KindInvalidArgument, "file name parameter is required")
	}

	names, err := s.store.List()
	if err != nil {
		return nil, err
	}

	lowered := strings.ToLower(query)
	matches := make([]string, 0, len(names))
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), lowered) {
			matches = append(matches, name)
		}
	}
	if len(matches) == 0 {
		return nil, newError(KindNotFound, "no matching files found")
	}
	sort.Strings(matches)
	return matches, nil
}

// Stats sums stored files for the status endpoint.
func (s *Service) Stats() (Stats, error) {
	return s.store.Stats()
}
