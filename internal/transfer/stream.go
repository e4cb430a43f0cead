package transfer

import (
	"context"
	"io"
)

// Download is a lazy, ordered sequence of fixed-size chunks over one stored
// file. Each Next call is an independent open-read-close against the backing
// file dispatched through the I/O pool; no handle spans the whole response.
// The sequence is finite and not restartable; a new download starts over
// from offset zero.
type Download struct {
	Name string
	Size int64

	service *Service
	ctx     context.Context
	offset  int64
}

// OpenDownload verifies the destination exists and captures its size. The
// size is fixed for the lifetime of the download; concurrent appends past
// it are not streamed.
func (s *Service) OpenDownload(ctx context.Context, name string) (*Download, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	size, err := s.store.Size(name)
	if err != nil {
		return nil, err
	}

	return &Download{
		Name:    name,
		Size:    size,
		service: s,
		ctx:     ctx,
	}, nil
}

// Next yields the next chunk, at most one chunk size long, and io.EOF after
// the final one. A file truncated mid-download surfaces as an I/O error.
func (d *Download) Next() ([]byte, error) {
	if d.offset >= d.Size {
		return nil, io.EOF
	}

	length := d.service.limits.ChunkSize
	if remaining := d.Size - d.offset; remaining < length {
		length = remaining
	}

	var chunk []byte
	var readErr error
	if err := d.service.pool.Run(d.ctx, func() {
		chunk, readErr = d.service.store.ReadRange(d.Name, d.offset, length)
	}); err != nil {
		return nil, wrapIO("download interrupted", err)
	}
	if readErr != nil {
		return nil, readErr
	}
	if len(chunk) == 0 {
		return nil, wrapIO("file truncated during download", io.ErrUnexpectedEOF)
	}

	d.offset += int64(len(chunk))
	return chunk, nil
}
