package status

import (
	"github.com/goccy/go-json"
	"github.com/partflow/partflow_server/internal/transfer"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"
)

type StatusEndpoints struct {
	version string
	service *transfer.Service
}

func NewEndpoints(version string, service *transfer.Service) *StatusEndpoints {
	return &StatusEndpoints{
		version: version,
		service: service,
	}
}

type StatusResponse struct {
	Version    string `json:"version"`
	FileCount  int    `json:"fileCount"`
	TotalBytes int64  `json:"totalBytes"`
}

func (s *StatusEndpoints) Status(ctx *fasthttp.RequestCtx) {
	stats, err := s.service.Stats()
	if err != nil {
		log.Error().Err(err).Msg("Failed to collect storage stats")
		ctx.Error("Internal Server Error", fasthttp.StatusInternalServerError)
		return
	}

	response := StatusResponse{
		Version:    s.version,
		FileCount:  stats.FileCount,
		TotalBytes: stats.TotalBytes,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		ctx.Error("Internal Server Error", fasthttp.StatusInternalServerError)
		return
	}

	ctx.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(responseJSON)
}
