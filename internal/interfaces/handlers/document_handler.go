package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"dochub-server/internal/config"
	"dochub-server/internal/domain/services"
	"dochub-server/internal/interfaces/dto"
	"dochub-server/internal/utils"
	"dochub-server/pkg/logger"

	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	docSvc  *services.DocumentService
	wsSvc   *services.WorkspaceService
	storage config.StorageConfig
}

func NewDocumentHandler(
	docSvc *services.DocumentService,
	wsSvc *services.WorkspaceService,
	storage config.StorageConfig,
) *DocumentHandler {
	return &DocumentHandler{
		docSvc:  docSvc,
		wsSvc:   wsSvc,
		storage: storage,
	}
}

func (h *DocumentHandler) List(c *gin.Context) {
	workspaceID := c.Param("id")

	if err := h.wsSvc.EnsureAccess(c.Request.Context(), principalFromContext(c), workspaceID); err != nil {
		handleServiceError(c, err)
		return
	}

	docs, err := h.docSvc.ListByWorkspace(c.Request.Context(), workspaceID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondWithSuccess(c, docs)
}

func (h *DocumentHandler) Create(c *gin.Context) {
	workspaceID := c.Param("id")

	if err := h.wsSvc.EnsureAccess(c.Request.Context(), principalFromContext(c), workspaceID); err != nil {
		handleServiceError(c, err)
		return
	}

	var req dto.DocumentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, 400, err.Error())
		return
	}

	filePath := utils.SanitizeString(req.FilePath, 500)
	fileName := utils.SanitizeString(req.FileName, 255)

	if !utils.ValidateFilePath(filePath, h.storage.AllowedExternalHosts, h.storage.AllowedLocalPrefixes) {
		logger.SecurityEvent("INVALID_FILE_PATH", filePath, c.ClientIP())
		respondWithError(c, http.StatusBadRequest, 400, "invalid file path")
		return
	}

	doc, err := h.docSvc.Create(c.Request.Context(), workspaceID, filePath, fileName, utils.SanitizeMetadata(req.Metadata))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	logger.DocumentAccess(principalID(c), doc.ID, "CREATE", c.ClientIP())
	respondCreated(c, doc)
}

func (h *DocumentHandler) Update(c *gin.Context) {
	var req dto.DocumentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, http.StatusBadRequest, 400, err.Error())
		return
	}

	var filePath, fileName *string
	if req.FilePath != nil {
		clean := utils.SanitizeString(*req.FilePath, 500)
		if !utils.ValidateFilePath(clean, h.storage.AllowedExternalHosts, h.storage.AllowedLocalPrefixes) {
			respondWithError(c, http.StatusBadRequest, 400, "invalid file path")
			return
		}
		filePath = &clean
	}
	if req.FileName != nil {
		clean := utils.SanitizeString(*req.FileName, 255)
		fileName = &clean
	}

	var metadata map[string]string
	if req.Metadata != nil {
		metadata = utils.SanitizeMetadata(req.Metadata)
	}

	doc, err := h.docSvc.Update(c.Request.Context(), c.Param("id"), filePath, fileName, metadata)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	logger.DocumentAccess(principalID(c), doc.ID, "UPDATE", c.ClientIP())
	respondWithSuccess(c, doc)
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	docID := c.Param("id")

	if err := h.docSvc.Delete(c.Request.Context(), docID); err != nil {
		handleServiceError(c, err)
		return
	}

	logger.DocumentAccess(principalID(c), docID, "DELETE", c.ClientIP())
	respondWithSuccess(c, dto.MessageResponse{Message: "Document deleted"})
}

func (h *DocumentHandler) Search(c *gin.Context) {
	query := utils.SanitizeString(c.Query("q"), 200)

	docs, err := h.docSvc.Search(c.Request.Context(), principalFromContext(c), query)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondWithSuccess(c, docs)
}

func (h *DocumentHandler) View(c *gin.Context) {
	doc, err := h.docSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	logger.DocumentAccess(principalID(c), doc.ID, "VIEW", c.ClientIP())
	h.serveDocument(c, doc.FilePath, doc.FileName)
}

// PublicView serves a document through its opaque public link, with no
// authentication at all.
func (h *DocumentHandler) PublicView(c *gin.Context) {
	doc, err := h.docSvc.GetByPublicURL(c.Request.Context(), c.Param("public_url"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	h.serveDocument(c, doc.FilePath, doc.FileName)
}

func (h *DocumentHandler) serveDocument(c *gin.Context, filePath, fileName string) {
	if strings.HasPrefix(filePath, "http://") || strings.HasPrefix(filePath, "https://") {
		if !utils.ValidateExternalURL(filePath, h.storage.AllowedExternalHosts) {
			respondWithError(c, http.StatusForbidden, 403, "external URL not allowed")
			return
		}
		c.Redirect(http.StatusFound, filePath)
		return
	}

	localPath, ok := h.resolveLocalPath(filePath)
	if !ok {
		respondWithError(c, http.StatusBadRequest, 400, "invalid file path")
		return
	}
	if _, err := os.Stat(localPath); err != nil {
		respondWithError(c, http.StatusNotFound, 404, "file not found")
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filepath.Base(fileName)+`"`)
	c.File(localPath)
}

// resolveLocalPath maps a stored file path onto the storage base directory,
// refusing anything that escapes it.
func (h *DocumentHandler) resolveLocalPath(filePath string) (string, bool) {
	var relative string
	found := false
	for _, prefix := range h.storage.AllowedLocalPrefixes {
		if strings.HasPrefix(filePath, prefix) {
			relative = strings.TrimPrefix(filePath, prefix)
			found = true
			break
		}
	}
	if !found {
		return "", false
	}

	full := filepath.Join(h.storage.Path, filepath.Clean("/"+relative))
	base := filepath.Clean(h.storage.Path)
	if !strings.HasPrefix(full, base) {
		return "", false
	}
	return full, true
}

func principalID(c *gin.Context) string {
	p := principalFromContext(c)
	if p == nil {
		return ""
	}
	if p.User != nil {
		return p.User.ID
	}
	if p.Token != nil {
		return "token:" + p.Token.ID
	}
	return ""
}
