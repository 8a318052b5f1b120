package service

import (
	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v3"
	fiberadaptor "github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"

	"github.com/theapemachine/jsonrpc-go/pkg/jsonrpc"
)

/*
RPCService mounts a jsonrpc.Server on a fiber app, with request logging and
a healthcheck endpoint. It is safe for concurrent use because jsonrpc.Server
is, provided the supplied handler is too.
*/
type RPCService struct {
	app    *fiber.App
	server *jsonrpc.Server
}

/*
NewRPCService constructs a service around the supplied handler.
*/
func NewRPCService(name string, handler jsonrpc.Handler) *RPCService {
	srv := &RPCService{
		app: fiber.New(fiber.Config{
			AppName:      name,
			ServerHeader: "JSONRPC-Go-Server",
		}),
		server: jsonrpc.NewServer(handler),
	}

	srv.app.Use(logger.New(), healthcheck.New())
	srv.app.Get("/", srv.handleRoot)
	srv.app.Post("/rpc", fiberadaptor.HTTPHandler(srv.server))

	return srv
}

func (srv *RPCService) handleRoot(ctx fiber.Ctx) error {
	return ctx.SendString("OK")
}

// App exposes the underlying fiber app, mainly for tests.
func (srv *RPCService) App() *fiber.App {
	return srv.app
}

// Start listens on addr until Shutdown is called.
func (srv *RPCService) Start(addr string) error {
	log.Info("serving JSON-RPC", "addr", addr)

	return srv.app.Listen(addr, fiber.ListenConfig{
		DisableStartupMessage: true,
	})
}

func (srv *RPCService) Shutdown() error {
	return srv.app.Shutdown()
}
