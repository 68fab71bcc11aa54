package handler

import (
	"study-hub/backend/common"

	"github.com/gin-gonic/gin"
)

func GetStatus(c *gin.Context) {
	common.RespSuccess(c, gin.H{
		"version":     common.Version,
		"system_name": common.SystemName,
	})
}
