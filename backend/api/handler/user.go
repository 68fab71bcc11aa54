package handler

import (
	"net/http"
	"strings"

	"study-hub/backend/common"
	"study-hub/backend/model"
	"study-hub/backend/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type registerPayload struct {
	Username    string `json:"username" validate:"required,min=3,max=20"`
	Password    string `json:"password" validate:"required,min=6"`
	DisplayName string `json:"display_name" validate:"max=50"`
	Email       string `json:"email" validate:"omitempty,email"`
}

func Register(c *gin.Context) {
	var payload registerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	if err := common.Validate.Struct(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	if _, err := model.GetUserByUsername(payload.Username); err == nil {
		common.RespErrorStr(c, http.StatusConflict, "username already taken")
		return
	}

	displayName := payload.DisplayName
	if displayName == "" {
		displayName = payload.Username
	}
	user := &model.User{
		Username:    strings.TrimSpace(payload.Username),
		Password:    payload.Password,
		DisplayName: displayName,
		Email:       payload.Email,
	}
	if err := user.Insert(); err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to register", err)
		return
	}
	common.RespSuccess(c, user)
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.RespError(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	user := &model.User{
		Username: payload.Username,
		Password: payload.Password,
	}
	if err := user.ValidateAndFill(); err != nil {
		common.RespAppError(c, err)
		return
	}

	token, err := service.GenerateToken(user)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to generate token", err)
		return
	}
	refreshToken, err := service.GenerateRefreshToken(user)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to generate token", err)
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Set("username", user.Username)
	_ = session.Save()

	common.RespSuccess(c, gin.H{
		"user":          user,
		"token":         token,
		"refresh_token": refreshToken,
	})
}

func RefreshToken(c *gin.Context) {
	var payload struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil || payload.RefreshToken == "" {
		common.RespErrorStr(c, http.StatusBadRequest, "refresh_token is required")
		return
	}

	claims, err := service.ValidateRefreshToken(payload.RefreshToken)
	if err != nil {
		common.RespErrorStr(c, http.StatusUnauthorized, "invalid refresh token")
		return
	}
	user, err := model.GetUserById(claims.UserID)
	if err != nil {
		common.RespAppError(c, err)
		return
	}

	token, err := service.GenerateToken(user)
	if err != nil {
		common.RespError(c, http.StatusInternalServerError, "failed to generate token", err)
		return
	}
	common.RespSuccess(c, gin.H{"token": token})
}

func Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	_ = session.Save()

	// Blacklist the bearer token until it would have expired anyway.
	if common.RedisEnabled {
		authHeader := c.GetHeader("Authorization")
		if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 && parts[0] == "Bearer" {
			common.RDB.Set(c, "jwt:blacklist:"+parts[1], "1", common.JWTExpiry)
		}
	}
	common.RespSuccessStr(c, "logged out")
}

func GetSelf(c *gin.Context) {
	user, err := model.GetUserById(c.GetInt64("user_id"))
	if err != nil {
		common.RespAppError(c, err)
		return
	}
	common.RespSuccess(c, user)
}
