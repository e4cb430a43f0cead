package transfer

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"
)

type Endpoints struct {
	service *Service
}

func NewEndpoints(service *Service) *Endpoints {
	return &Endpoints{service: service}
}

type errorResponse struct {
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
}

type listResponse struct {
	Files   []string `json:"files,omitempty"`
	Message string   `json:"message,omitempty"`
}

type searchResponse struct {
	MatchingFiles []string `json:"matching_files"`
}

func (e *Endpoints) UploadPart(ctx *fasthttp.RequestCtx) {
	form, err := ctx.MultipartForm()
	if err != nil {
		writeError(ctx, newError(KindInvalidArgument, "failed to parse multipart form"))
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		writeError(ctx, newError(KindInvalidArgument, "no file part provided"))
		return
	}
	fileHeader := files[0]

	partNumber, err := formInt(form.Value["part_number"])
	if err != nil {
		writeError(ctx, newError(KindInvalidArgument, "invalid part_number"))
		return
	}
	totalParts, err := formInt(form.Value["total_parts"])
	if err != nil {
		writeError(ctx, newError(KindInvalidArgument, "invalid total_parts"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		writeError(ctx, wrapIO("failed to open uploaded part", err))
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		writeError(ctx, wrapIO("failed to read uploaded part", err))
		return
	}

	result, err := e.service.UploadPart(ctx, &PartRequest{
		Name:       fileHeader.Filename,
		PartNumber: partNumber,
		TotalParts: totalParts,
		Payload:    payload,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, result)
}

func (e *Endpoints) DownloadFile(ctx *fasthttp.RequestCtx) {
	name, ok := ctx.UserValue("filename").(string)
	if !ok || name == "" {
		writeError(ctx, newError(KindInvalidArgument, "file name is required"))
		return
	}

	download, err := e.service.OpenDownload(ctx, name)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.SetContentType("application/octet-stream")
	ctx.Response.Header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", download.Name))
	ctx.Response.Header.Set("Content-Length", strconv.FormatInt(download.Size, 10))

	// Bytes already flushed cannot be retracted; a mid-stream failure just
	// ends the response early.
	ctx.SetBodyStreamWriter(func(w *bufio.Writer) {
		for {
			chunk, err := download.Next()
			if err == io.EOF {
				return
			}
			if err != nil {
				log.Error().Err(err).Str("filename", download.Name).Msg("Failed to stream file")
				return
			}
			if _, err := w.Write(chunk); err != nil {
				return
			}
			if err := w.Flush(); err != nil {
				return
			}
		}
	})
}

func (e *Endpoints) ResumeUpload(ctx *fasthttp.RequestCtx) {
	name := string(ctx.QueryArgs().Peek("file_name"))
	if name == "" {
		writeError(ctx, newError(KindInvalidArgument, "file_name parameter is required"))
		return
	}

	info, err := e.service.ResumePoint(name)
	if err != nil {
		writeError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, info)
}

func (e *Endpoints) ListFiles(ctx *fasthttp.RequestCtx) {
	names, err := e.service.ListFiles()
	if err != nil {
		writeError(ctx, err)
		return
	}

	if len(names) == 0 {
		writeJSON(ctx, fasthttp.StatusOK, listResponse{Message: "No files found."})
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, listResponse{Files: names})
}

func (e *Endpoints) SearchFiles(ctx *fasthttp.RequestCtx) {
	query := string(ctx.QueryArgs().Peek("file_name"))

	matches, err := e.service.SearchFiles(query)
	if err != nil {
		writeError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, searchResponse{MatchingFiles: matches})
}

func formInt(values []string) (int, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("missing value")
	}
	return strconv.Atoi(values[0])
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, body interface{}) {
	encoded, err := json.Marshal(body)
	if err != nil {
		ctx.Error("Internal Server Error", fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(encoded)
}

func writeError(ctx *fasthttp.RequestCtx, err error) {
	kind := KindOf(err)
	if kind == KindIO {
		log.Error().Err(err).Msg("Transfer request failed")
	}
	writeJSON(ctx, statusForKind(kind), errorResponse{
		Kind:   string(kind),
		Detail: Detail(err),
	})
}

func statusForKind(kind Kind) int {
	switch kind {
	case KindInvalidArgument, KindMalformedPart, KindCountLimit:
		return fasthttp.StatusBadRequest
	case KindPartTooLarge, KindQuotaExceeded:
		return fasthttp.StatusRequestEntityTooLarge
	case KindNotFound:
		return fasthttp.StatusNotFound
	default:
		return fasthttp.StatusInternalServerError
	}
}
