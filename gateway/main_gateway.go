package main

import (
	"github.com/MLR-commits/Intranet_BAcademic/gateway/server"
)

// Realtime gateway. Subscribes to the academic event subject and fans the
// events out to connected websocket clients by room
func main() {
	server.Init()
}
