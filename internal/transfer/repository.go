package transfer

import "errors"

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository stores the declared shape of in-flight uploads so a
// client cannot silently change total_parts halfway through. Byte progress
// is never stored here; the file on disk carries it.
type SessionRepository interface {
	Get(name string) (*UploadSession, error)
	Save(session *UploadSession) error
	Delete(name string) error
}
