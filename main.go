package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"study-hub/backend/api/middleware"
	"study-hub/backend/api/route"
	"study-hub/backend/common"
	"study-hub/backend/model"
	"study-hub/backend/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
)

func main() {
	flag.Parse()
	if *common.PrintVersion {
		println(common.Version)
		os.Exit(0)
	}
	if *common.PrintHelpFlag {
		common.PrintHelp()
		os.Exit(0)
	}
	common.SetupGinLog()
	common.SysLog(common.SystemName + " " + common.Version + " started")
	if os.Getenv("GIN_MODE") != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := common.LoadConfigFile(); err != nil {
		common.FatalLog(err)
	}
	if err := common.InitRedisClient(); err != nil {
		common.FatalLog(err)
	}
	if err := model.InitDB(); err != nil {
		common.FatalLog(err)
	}
	defer func() {
		if err := model.CloseDB(); err != nil {
			common.FatalLog(err)
		}
	}()

	service.InitStorage()
	service.InitCompletions()

	server := gin.Default()
	server.Use(middleware.CORS())

	if common.RedisEnabled {
		opt := common.ParseRedisOption()
		store, _ := redis.NewStore(opt.MinIdleConns, opt.Network, opt.Addr, opt.Username, opt.Password, []byte(common.SessionSecret))
		server.Use(sessions.Sessions(common.SessionCookieName, store))
	} else {
		store := cookie.NewStore([]byte(common.SessionSecret))
		server.Use(sessions.Sessions(common.SessionCookieName, store))
	}

	route.SetApiRouter(server)
	server.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "API route not found",
		})
	})

	setupGracefulShutdown()

	port := strconv.Itoa(*common.Port)
	common.SysLog("Server listening on port: " + port)
	if err := server.Run(":" + port); err != nil {
		log.Fatal("failed to start server: " + err.Error())
	}
}

func setupGracefulShutdown() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		common.SysLog("Shutting down...")
		if err := model.CloseDB(); err != nil {
			common.SysLog("Error closing database: " + err.Error())
		}
		os.Exit(0)
	}()
}
