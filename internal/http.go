package internal

import (
	"strings"

	"github.com/partflow/partflow_server/internal/health"
	"github.com/partflow/partflow_server/internal/middleware"
	"github.com/partflow/partflow_server/internal/status"
	"github.com/partflow/partflow_server/internal/transfer"
	"github.com/valyala/fasthttp"
)

func NewRequestHandler(config *Config, transferEndpoints *transfer.Endpoints, healthEndpoints *health.HealthEndpoints, statusEndpoints *status.StatusEndpoints) fasthttp.RequestHandler {
	corsMiddleware := middleware.NewCORSMiddleware(config.Server.AllowedOrigins)
	loggingMiddleware := middleware.NewLoggingMiddleware()

	handler := func(ctx *fasthttp.RequestCtx) {
		path := string(ctx.Path())

		switch {
		case path == "/upload_part" || path == "/upload_part/":
			method := string(ctx.Method())
			if method == "POST" {
				transferEndpoints.UploadPart(ctx)
			} else {
				ctx.Error("Method Not Allowed", fasthttp.StatusMethodNotAllowed)
			}

		case strings.HasPrefix(path, "/download/"):
			parts := strings.Split(path, "/")
			if len(parts) == 3 && parts[2] != "" {
				ctx.SetUserValue("filename", parts[2])
				method := string(ctx.Method())
				if method == "GET" {
					transferEndpoints.DownloadFile(ctx)
				} else {
					ctx.Error("Method Not Allowed", fasthttp.StatusMethodNotAllowed)
				}
			} else {
				ctx.Error("Not Found", fasthttp.StatusNotFound)
			}

		case path == "/resume-upload":
			method := string(ctx.Method())
			if method == "GET" {
				transferEndpoints.ResumeUpload(ctx)
			} else {
				ctx.Error("Method Not Allowed", fasthttp.StatusMethodNotAllowed)
			}

		case path == "/files" || path == "/files/":
			method := string(ctx.Method())
			if method == "GET" {
				transferEndpoints.ListFiles(ctx)
			} else {
				ctx.Error("Method Not Allowed", fasthttp.StatusMethodNotAllowed)
			}

		case path == "/search" || path == "/search/":
			method := string(ctx.Method())
			if method == "GET" {
				transferEndpoints.SearchFiles(ctx)
			} else {
				ctx.Error("Method Not Allowed", fasthttp.StatusMethodNotAllowed)
			}

		case path == "/health":
			healthEndpoints.Health(ctx)
		case path == "/status":
			statusEndpoints.Status(ctx)

		default:
			ctx.Error("Not Found", fasthttp.StatusNotFound)
		}
	}

	return corsMiddleware.Handle(loggingMiddleware.Handle(handler))
}
