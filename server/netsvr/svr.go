package netsvr

import (
	"net/http"

	"github.com/zintix-labs/tosslab/server/app"
)

// NetSvr is a router that can also be started and stopped.
//
// Only the outermost wiring holds a NetSvr; route registration works on
// NetRouter so handlers never see Run/Shutdown. Any net/http compatible
// framework can sit behind it.
type NetSvr interface {
	NetRouter
	app.Component
}

// NetRouter is the routing half of NetSvr.
type NetRouter interface {
	Use(middleware func(http.Handler) http.Handler)

	Get(path string, h http.HandlerFunc)
	Post(path string, h http.HandlerFunc)
	Put(path string, h http.HandlerFunc)
	Delete(path string, h http.HandlerFunc)

	Group(path string, fn func(NetRouter))
}
