package restapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"

	"dicegame_config/internal/app/port"
	"dicegame_config/internal/domain/entity"
	"dicegame_config/internal/infrastructure/export"
	"dicegame_config/internal/infrastructure/render"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// APIErrorResponse is the body of every non-2xx API response.
type APIErrorResponse struct {
	Error string `json:"error"`
}

// APIGasLimitResponse is returned for a single gas operation lookup.
type APIGasLimitResponse struct {
	Operation entity.GasOperation `json:"operation"`
	GasLimit  uint64              `json:"gasLimit"`
}

// ContractConfigHandler serves the contract configuration record published on the host.
type ContractConfigHandler struct {
	host     export.Host
	verifier port.VerificationService
	logger   port.Logger
}

// NewContractConfigHandler creates a new ContractConfigHandler.
func NewContractConfigHandler(host export.Host, verifier port.VerificationService, logger port.Logger) *ContractConfigHandler {
	return &ContractConfigHandler{
		host:     host,
		verifier: verifier,
		logger:   logger,
	}
}

// resolve returns the published record or writes a 404 when the host exported nothing.
func (h *ContractConfigHandler) resolve(c *gin.Context) (entity.ContractConfig, bool) {
	cfg, surface, ok := export.Resolve(h.host)
	if !ok {
		writeJSON(c, http.StatusNotFound, APIErrorResponse{Error: "contract config is not exported on this host"})
		return entity.ContractConfig{}, false
	}
	c.Header("X-Export-Surface", string(surface))
	return cfg, true
}

// GetContractConfigHandler returns the full record.
func (h *ContractConfigHandler) GetContractConfigHandler(c *gin.Context) {
	cfg, ok := h.resolve(c)
	if !ok {
		return
	}
	writeJSON(c, http.StatusOK, cfg)
}

// GetGroupHandler returns one group of the record: NETWORK, CONTRACTS, UI or GAS.
func (h *ContractConfigHandler) GetGroupHandler(c *gin.Context) {
	cfg, ok := h.resolve(c)
	if !ok {
		return
	}
	group, err := cfg.Group(c.Param("group"))
	if err != nil {
		writeJSON(c, http.StatusNotFound, APIErrorResponse{Error: err.Error() + ": " + c.Param("group")})
		return
	}
	writeJSON(c, http.StatusOK, group)
}

// GetGasLimitHandler returns the gas limit for one operation.
func (h *ContractConfigHandler) GetGasLimitHandler(c *gin.Context) {
	cfg, ok := h.resolve(c)
	if !ok {
		return
	}
	op, ok := entity.ParseGasOperation(c.Param("operation"))
	if !ok {
		writeJSON(c, http.StatusNotFound, APIErrorResponse{Error: "unknown gas operation: " + c.Param("operation")})
		return
	}
	limit, _ := cfg.GasLimit(op)
	writeJSON(c, http.StatusOK, APIGasLimitResponse{Operation: op, GasLimit: limit})
}

// GetScriptHandler serves the record as a script front-end pages can include directly.
func (h *ContractConfigHandler) GetScriptHandler(c *gin.Context) {
	h.serveRendering(c, render.FormatScript)
}

// GetRenderingHandler serves the record in the format named by ?format= (json, yaml, js).
func (h *ContractConfigHandler) GetRenderingHandler(c *gin.Context) {
	format, err := render.ParseFormat(c.DefaultQuery("format", string(render.FormatJSON)))
	if err != nil {
		writeJSON(c, http.StatusBadRequest, APIErrorResponse{Error: err.Error()})
		return
	}
	h.serveRendering(c, format)
}

func (h *ContractConfigHandler) serveRendering(c *gin.Context, format render.Format) {
	cfg, ok := h.resolve(c)
	if !ok {
		return
	}
	body, err := render.Render(format, cfg)
	if err != nil {
		h.logger.Error("Failed to render contract config", "format", format, "error", err)
		writeJSON(c, http.StatusInternalServerError, APIErrorResponse{Error: "failed to render contract config"})
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, format.ContentType(), body)
}

// GetVerificationHandler returns the latest verification report. ?refresh=true bypasses the cache.
func (h *ContractConfigHandler) GetVerificationHandler(c *gin.Context) {
	if h.verifier == nil {
		writeJSON(c, http.StatusServiceUnavailable, APIErrorResponse{Error: "verification is disabled"})
		return
	}

	var (
		report entity.VerificationReport
		err    error
	)
	if strings.EqualFold(c.Query("refresh"), "true") {
		report, err = h.verifier.Refresh(c.Request.Context())
	} else {
		report, err = h.verifier.Verify(c.Request.Context())
	}
	if err != nil {
		status := http.StatusBadGateway
		if c.Request.Context().Err() != nil {
			status = http.StatusGatewayTimeout
		}
		writeJSON(c, status, APIErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(c, http.StatusOK, report)
}

// HealthHandler reports liveness and the export surface in use.
func (h *ContractConfigHandler) HealthHandler(c *gin.Context) {
	_, surface, ok := export.Resolve(h.host)
	writeJSON(c, http.StatusOK, gin.H{"status": "ok", "exported": ok, "surface": surface})
}

func writeJSON(c *gin.Context, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(status, "application/json; charset=utf-8", body)
}
