package cli

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/trendops/storecheck/internal/config"
)

// StoreDependencies holds all handlers the storefront fixture serves
type StoreDependencies struct {
	ServerConfig       config.ServerConfig
	HomeHandler        http.Handler
	SearchHandler      http.Handler
	ProductHandler     http.Handler
	BasketHandler      http.Handler
	LoginHandler       http.Handler
	CartAPIHandler     http.Handler
	ProductsAPIHandler http.Handler
}

// RunServe starts the storefront fixture web server
func RunServe(deps StoreDependencies) error {
	listener, server, err := StartServer(deps)
	if err != nil {
		return err
	}
	defer listener.Close()

	return WaitForShutdown(server, nil)
}

// StartServer creates and starts the HTTP server, returning the listener and server
func StartServer(deps StoreDependencies) (net.Listener, *http.Server, error) {
	// Set up routes
	mux := http.NewServeMux()
	mux.Handle("/sr", deps.SearchHandler)
	mux.Handle("/sepet", deps.BasketHandler)
	mux.Handle("/giris", deps.LoginHandler)
	mux.Handle("/api/cart", deps.CartAPIHandler)
	mux.Handle("/api/cart/", deps.CartAPIHandler)
	mux.Handle("/api/products", deps.ProductsAPIHandler)
	mux.Handle("/", rootHandler(deps.HomeHandler, deps.ProductHandler))

	// Create listener
	addr := fmt.Sprintf(":%s", deps.ServerConfig.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create listener: %w", err)
	}

	// Create HTTP server
	server := &http.Server{
		Handler: mux,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server listening on %s", listener.Addr().String())
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	return listener, server, nil
}

// rootHandler dispatches the catch-all route. The homepage and the slug-p-id
// product detail paths both land on "/" because product slugs are arbitrary.
func rootHandler(home, product http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			home.ServeHTTP(w, r)
			return
		}
		if strings.Contains(r.URL.Path, "-p-") {
			product.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

// WaitForShutdown waits for a shutdown signal and gracefully shuts down the server
// If shutdown channel is nil, a new channel will be created and registered with signal.Notify
// shutdownTimeout can be passed for testing; use 0 for default 30 seconds
func WaitForShutdown(server *http.Server, shutdown chan os.Signal) error {
	return WaitForShutdownWithTimeout(server, shutdown, 30*time.Second)
}

// WaitForShutdownWithTimeout allows specifying a custom shutdown timeout (primarily for testing)
func WaitForShutdownWithTimeout(server *http.Server, shutdown chan os.Signal, shutdownTimeout time.Duration) error {
	// Channel to listen for interrupt or terminate signals
	if shutdown == nil {
		shutdown = make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	}

	// Wait for shutdown signal
	sig := <-shutdown
	log.Printf("Received signal: %v, shutting down server...", sig)

	// Give outstanding requests time to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := server.Shutdown(ctx); err != nil {
		// Force close the server after timeout
		// Note: The nested error case where both Shutdown AND Close fail is unreachable
		// in practice because http.Server.Close() does not propagate listener close errors.
		if err := server.Close(); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	log.Println("Server stopped")
	return nil
}
