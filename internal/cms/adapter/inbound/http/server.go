package http_handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"strings"

	"github.com/anthanhphan/go-media-cms/internal/cms/config"
	"github.com/anthanhphan/go-media-cms/internal/cms/domain"
	"github.com/anthanhphan/go-media-cms/internal/cms/port"
	sdklogger "github.com/anthanhphan/gosdk/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	imageField = "image"
	// room for multipart headers and boundaries around the file
	multipartOverhead = 1 << 20
)

var errFileTooLarge = fmt.Errorf("%w: file exceeds the upload size limit", domain.ErrValidation)

type Server struct {
	app    *fiber.App
	cfg    *config.Config
	media  port.MediaService
	videos port.VideoService
}

// NewServer wires middleware and routes. A nil gatherer disables /metrics.
func NewServer(cfg *config.Config, media port.MediaService, videos port.VideoService, gatherer promclient.Gatherer) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit:             int(cfg.Server.MaxUploadSize) + multipartOverhead,
		StreamRequestBody:     true,
		DisableStartupMessage: true,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.Server.AllowedOrigins, ","),
		AllowMethods: "GET,POST,DELETE,OPTIONS",
	}))

	s := &Server{
		app:    app,
		cfg:    cfg,
		media:  media,
		videos: videos,
	}

	s.app.Static(cfg.Storage.PublicPath, cfg.Storage.Root)
	if cfg.Server.MetricsEnabled && gatherer != nil {
		s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	// Routes
	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.app.Get("/health", s.handleHealth)

	s.app.Post("/upload", s.handleUpload)
	s.app.Get("/upload/list", s.handleList)
	s.app.Delete("/upload/delete", s.handleDelete)

	s.app.Get("/videos", s.handleListVideos)
	s.app.Post("/videos", s.handleCreateVideo)
	s.app.Delete("/videos/:id", s.handleDeleteVideo)
}

// App exposes the underlying fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Start() error {
	return s.app.Listen(s.cfg.Server.Addr)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) sendJSONError(c *fiber.Ctx, status int, message string, details string) error {
	body := fiber.Map{"error": message}
	if details != "" {
		body["details"] = details
	}
	return c.Status(status).JSON(body)
}

// sendServiceError maps the domain error kind to a status code.
func (s *Server) sendServiceError(c *fiber.Ctx, err error, notFound string) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return s.sendJSONError(c, fiber.StatusBadRequest, strings.TrimPrefix(err.Error(), domain.ErrValidation.Error()+": "), "")
	case errors.Is(err, domain.ErrNotFound):
		return s.sendJSONError(c, fiber.StatusNotFound, notFound, "")
	default:
		return s.sendJSONError(c, fiber.StatusInternalServerError, "Internal server error", err.Error())
	}
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) handleUpload(c *fiber.Ctx) error {
	category := c.Query("category")

	contentType := c.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Content-Type must be multipart/form-data", "")
	}

	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Invalid Content-Type", "")
	}
	boundary, ok := params["boundary"]
	if !ok {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Missing boundary in Content-Type", "")
	}

	// Use raw request body stream
	bodyStream := c.Context().RequestBodyStream()
	if bodyStream == nil {
		bodyStream = bytes.NewReader(c.Body())
	}
	mr := multipart.NewReader(bodyStream, boundary)

	var fileName string
	var src io.Reader

	// Find the image part
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return s.sendJSONError(c, fiber.StatusBadRequest, "Malformed multipart body", err.Error())
		}

		if part.FormName() == imageField && part.FileName() != "" {
			fileName = part.FileName()
			src = part
			if limit := s.cfg.Server.MaxUploadSize; limit > 0 {
				src = &limitedReader{r: part, remaining: limit}
			}
			break
		}
		_ = part.Close()
	}

	if src == nil {
		return s.sendServiceError(c, domain.ErrMissingFile, "")
	}

	record, err := s.media.Ingest(c.UserContext(), category, fileName, src)
	if err != nil {
		sdklogger.Warnw("Upload failed", "category", category, "file_name", fileName, "error", err.Error())
		return s.sendServiceError(c, err, "")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Image uploaded successfully",
		"imageUrl": record.URL,
	})
}

func (s *Server) handleList(c *fiber.Ctx) error {
	groups, err := s.media.ListByCategory(c.UserContext())
	if err != nil {
		sdklogger.Errorw("List failed", "error", err.Error())
		return s.sendServiceError(c, err, "")
	}

	body := make(fiber.Map, len(groups))
	for _, category := range domain.Categories() {
		records := groups[category]
		if records == nil {
			records = []domain.MediaRecord{}
		}
		body[string(category)] = records
	}
	return c.JSON(body)
}

func (s *Server) handleDelete(c *fiber.Ctx) error {
	category := c.Query("category")
	filename := c.Query("filename")
	if category == "" || filename == "" {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Category and filename are required", "")
	}

	if err := s.media.Delete(c.UserContext(), category, filename); err != nil {
		sdklogger.Warnw("Delete failed", "category", category, "filename", filename, "error", err.Error())
		return s.sendServiceError(c, err, "File not found")
	}

	return c.JSON(fiber.Map{"message": "File deleted successfully"})
}

type createVideoRequest struct {
	Link        string `json:"link"`
	Description string `json:"description"`
}

func (s *Server) handleListVideos(c *fiber.Ctx) error {
	videos, err := s.videos.List(c.UserContext())
	if err != nil {
		sdklogger.Errorw("Video list failed", "error", err.Error())
		return s.sendServiceError(c, err, "")
	}
	return c.JSON(videos)
}

func (s *Server) handleCreateVideo(c *fiber.Ctx) error {
	var req createVideoRequest
	if err := c.BodyParser(&req); err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}

	video, err := s.videos.Create(c.UserContext(), req.Link, req.Description)
	if err != nil {
		return s.sendServiceError(c, err, "")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Video added successfully",
		"video":   video,
	})
}

func (s *Server) handleDeleteVideo(c *fiber.Ctx) error {
	id := c.Params("id")

	removed, err := s.videos.Delete(c.UserContext(), id)
	if err != nil {
		return s.sendServiceError(c, err, "Video not found")
	}

	return c.JSON(fiber.Map{
		"message": "Video deleted",
		"removed": removed,
	})
}

// limitedReader fails once more than remaining bytes are read.
type limitedReader struct {
	r         io.Reader
	remaining int64
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.remaining <= 0 {
		var probe [1]byte
		if n, _ := l.r.Read(probe[:]); n > 0 {
			return 0, errFileTooLarge
		}
		return 0, io.EOF
	}
	if int64(len(p)) > l.remaining {
		p = p[:l.remaining]
	}
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	return n, err
}
