package transfer

type PartRequest struct {
	Name       string `json:"filename"`
	PartNumber int    `json:"partNumber"`
	TotalParts int    `json:"totalParts"`
	Payload    []byte `json:"-"`
}

type UploadResult struct {
	Message  string `json:"message"`
	Name     string `json:"filename"`
	Size     int64  `json:"size"`
	Complete bool   `json:"complete"`
}

type ResumeInfo struct {
	Message    string `json:"message"`
	Name       string `json:"filename"`
	ChunkIndex int64  `json:"chunkIndex"`
}

// UploadSession is the registered expectation for one in-flight upload,
// keyed by destination name. Progress itself is never stored here; the
// on-disk file size is the single source of truth for it.
type UploadSession struct {
	Name       string `json:"filename"`
	TotalParts int    `json:"totalParts"`
	CreatedAt  int64  `json:"createdAt"`
	UpdatedAt  int64  `json:"updatedAt"`
}

type Stats struct {
	FileCount  int   `json:"fileCount"`
	TotalBytes int64 `json:"totalBytes"`
}

type Limits struct {
	ChunkSize   int64
	MaxFileSize int64
	MaxParts    int
}
