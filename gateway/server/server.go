package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/MLR-commits/Intranet_BAcademic/realtime"
	"github.com/MLR-commits/Intranet_BAcademic/res"
	"github.com/MLR-commits/Intranet_BAcademic/services"
	"github.com/MLR-commits/Intranet_BAcademic/settings"
	"github.com/MLR-commits/Intranet_BAcademic/stack"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

var settingsData = settings.GetSettings()

func init() {
	if err := godotenv.Load(); err != nil {
		log.Fatalf("No .env file found")
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		httpOrigin := "http://" + settingsData.CLIENT_URL
		httpsOrigin := "https://" + settingsData.CLIENT_URL
		return origin == httpOrigin || origin == httpsOrigin
	},
}

// clientClaims resolves the JWT either from the Authorization header or,
// since browsers cannot set headers on websocket handshakes, from the
// token query param
func clientClaims(c *gin.Context) (*services.Claims, error) {
	tokenString := c.Query("token")
	if tokenString == "" {
		extracted, err := services.ExtractToken(c.GetHeader("Authorization"))
		if err != nil {
			return nil, err
		}
		tokenString = extracted
	}
	return services.VerifyToken(tokenString)
}

func Init() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	hub := realtime.NewHub(logger)

	// Fan NATS events out to the rooms
	natsClient := stack.NewNats()
	_, err = natsClient.Subscribe(res.NOTIFY_SUBJECT, func(m *nats.Msg) {
		var payload res.NotifyAcademic
		if err := natsClient.DecodeJSON(m.Data, &payload); err != nil {
			logger.Error("Could not decode event", zap.Error(err))
			return
		}
		hub.HandleNotify(payload)
	})
	if err != nil {
		log.Fatalf("Could not subscribe to %s", res.NOTIFY_SUBJECT)
	}

	router := gin.New()
	router.SetTrustedProxies([]string{"localhost"})
	router.Use(ginzap.GinzapWithConfig(logger, &ginzap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
	}))
	router.Use(ginzap.RecoveryWithZap(logger, true))

	router.GET("/ws", func(c *gin.Context) {
		claims, err := clientClaims(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, &res.Response{
				Success: false,
				Message: "Unauthorized",
			})
			return
		}
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Error("Could not upgrade connection", zap.Error(err))
			return
		}
		client := realtime.NewClient(hub, conn, claims.ID, claims.UserType)
		go client.Run()
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, &res.Response{
			Success: true,
			Data: map[string]interface{}{
				"clients": hub.ClientCount(),
			},
		})
	})
	// No route
	router.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(404, res.Response{
			Success: false,
			Message: "Not found",
		})
	})
	// Init server
	if err := router.Run(fmt.Sprintf(":%d", settingsData.GATEWAY_PORT)); err != nil {
		log.Fatalf("Error init server")
	}
}
