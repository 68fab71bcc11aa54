package handler

import (
	"net/http"
	"strconv"
	"strings"

	"study-hub/backend/common"
	"study-hub/backend/model"
	"study-hub/backend/service"

	"github.com/gin-gonic/gin"
)

func callerID(c *gin.Context) (int64, bool) {
	id := c.GetInt64("user_id")
	return id, id != 0
}

// ListFiles returns the caller's entries under a parent folder. Anonymous
// callers get an empty result, not an error.
func ListFiles(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		common.RespSuccess(c, []*model.File{})
		return
	}

	var parentFolderID int64
	if raw := c.Query("parent_folder_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			common.RespErrorStr(c, http.StatusBadRequest, "invalid parent_folder_id")
			return
		}
		parentFolderID = id
	}

	files, err := model.ListFiles(userID, parentFolderID)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to list files", err)
		return
	}
	common.RespSuccess(c, files)
}

// GetFile resolves one file; unowned or missing degrades to null.
func GetFile(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		common.RespSuccess(c, nil)
		return
	}
	fileID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.RespErrorStr(c, http.StatusBadRequest, "invalid file id")
		return
	}
	file, err := model.GetFileForUser(fileID, userID)
	if err != nil {
		common.RespSuccess(c, nil)
		return
	}
	common.RespSuccess(c, file)
}

type createFolderPayload struct {
	Name           string `json:"name" validate:"required,max=255"`
	ParentFolderID int64  `json:"parent_folder_id"`
	Color          string `json:"color" validate:"max=32"`
}

func CreateFolder(c *gin.Context) {
	var payload createFolderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	if err := common.Validate.Struct(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	folder, err := model.CreateFolder(c.GetInt64("user_id"), strings.TrimSpace(payload.Name), payload.ParentFolderID, payload.Color)
	if err != nil {
		common.RespAppError(c, err)
		return
	}
	common.RespSuccess(c, folder)
}

// MintUploadURL is phase one of the upload handshake: the client PUTs the
// bytes to the returned presigned URL, then registers the key via SaveFile.
func MintUploadURL(c *gin.Context) {
	if service.Storage == nil {
		common.RespErrorStr(c, http.StatusInternalServerError, "blob storage is not configured")
		return
	}
	target, err := service.Storage.MintUploadTarget(c.Request.Context())
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to mint upload target", err)
		return
	}
	common.RespSuccess(c, target)
}

type saveFilePayload struct {
	StorageKey     string `json:"storage_key" validate:"required"`
	Name           string `json:"name" validate:"required,max=255"`
	Type           string `json:"type" validate:"required,max=100"`
	ParentFolderID int64  `json:"parent_folder_id"`
}

func SaveFile(c *gin.Context) {
	var payload saveFilePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	if err := common.Validate.Struct(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	file, err := model.SaveFile(c.GetInt64("user_id"), payload.StorageKey, strings.TrimSpace(payload.Name), payload.Type, payload.ParentFolderID)
	if err != nil {
		common.RespAppError(c, err)
		return
	}
	common.RespSuccess(c, file)
}

func DeleteFile(c *gin.Context) {
	fileID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.RespErrorStr(c, http.StatusBadRequest, "invalid file id")
		return
	}
	if err := model.DeleteFile(fileID, c.GetInt64("user_id")); err != nil {
		common.RespAppError(c, err)
		return
	}
	common.RespSuccess(c, nil)
}

// GetFileURL mints a retrieval URL. Unowned, folder-kind and key-less files
// all degrade silently to null, matching the query contract.
func GetFileURL(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		common.RespSuccess(c, nil)
		return
	}
	fileID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.RespErrorStr(c, http.StatusBadRequest, "invalid file id")
		return
	}

	file, err := model.GetFileForUser(fileID, userID)
	if err != nil || file.IsFolder || file.StorageKey == "" {
		common.RespSuccess(c, nil)
		return
	}
	if service.Storage == nil {
		common.RespSuccess(c, nil)
		return
	}
	url, err := service.Storage.ResolveURL(c.Request.Context(), file.StorageKey)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to resolve file url", err)
		return
	}
	common.RespSuccess(c, gin.H{"url": url})
}
