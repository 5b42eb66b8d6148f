package main

import (
	"github.com/MLR-commits/Intranet_BAcademic/api/server"
)

// @title          Academic API
// @version        1.0
// @description    API Server for the academic management service

// @host     localhost:8080
// @BasePath /api/academic

// @securityDefinitions.apikey ApiKeyAuth
// @in                         header
// @name                       Authorization
// @description                BearerJWTToken in Authorization Header

// @accept  json
// @produce json

// @schemes http https
func main() {
	server.Init()
}
