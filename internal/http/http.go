package http

import (
	"github.com/gin-gonic/gin"
	"github.com/kerem-kaynak/redmane/internal/appcontext"
	"github.com/kerem-kaynak/redmane/internal/http/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type APIService struct {
	engine   *gin.Engine
	context  *appcontext.Context
	registry *prometheus.Registry
}

func NewHTTPService(ctx *appcontext.Context) *APIService {
	if ctx.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.LoggerMiddleware(ctx.Logger))
	engine.Use(middleware.MetricsMiddleware(registry))
	engine.Use(middleware.CORSMiddleware(ctx.Config))

	service := &APIService{
		engine:   engine,
		context:  ctx,
		registry: registry,
	}
	service.setupRoutes()
	return service
}

func (h *APIService) Engine() *gin.Engine {
	return h.engine
}

func (h *APIService) setupRoutes() {
	h.engine.GET("/healthz", Healthz(h.context))
	h.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{})))

	h.setupProjectRoutes()
	h.setupDatasetRoutes()
	h.setupPatientRoutes()
	h.setupSampleRoutes()
	h.setupRawFileRoutes()
}

func (h *APIService) setupProjectRoutes() {
	projects := h.engine.Group("/projects")

	projects.GET("/", GetProjects(h.context))
	projects.POST("/", CreateProject(h.context))
	projects.GET("/:id", GetProject(h.context))
	projects.DELETE("/:id", DeleteProject(h.context))
}

func (h *APIService) setupDatasetRoutes() {
	h.engine.GET("/datasets/", GetDatasets(h.context))
	h.engine.POST("/datasets/", CreateDataset(h.context))
	h.engine.GET("/datasets_with_metadata/:id", GetDatasetWithMetadata(h.context))

	metadata := h.engine.Group("/datasets_metadata")
	metadata.POST("/", AddDatasetMetadata(h.context))
	metadata.PUT("/size_update", UpdateDatasetSize(h.context))
}

func (h *APIService) setupPatientRoutes() {
	h.engine.GET("/patients/", GetPatients(h.context))
	h.engine.POST("/patients/", CreatePatient(h.context))
	h.engine.GET("/patients_metadata/:id", GetPatientWithMetadata(h.context))
	h.engine.POST("/patients_metadata/", AddPatientMetadata(h.context))
	h.engine.GET("/patients_with_samples/:id", GetPatientWithSamples(h.context))
}

func (h *APIService) setupSampleRoutes() {
	samples := h.engine.Group("/samples")

	samples.GET("/", GetSamples(h.context))
	samples.POST("/", CreateSample(h.context))
	samples.GET("/:id", GetSample(h.context))

	h.engine.POST("/samples_metadata/", AddSampleMetadata(h.context))
}

func (h *APIService) setupRawFileRoutes() {
	h.engine.POST("/add_raw_files/", AddRawFiles(h.context))
	h.engine.GET("/raw_files_with_metadata/:dataset_id", GetRawFilesWithMetadata(h.context))
}
