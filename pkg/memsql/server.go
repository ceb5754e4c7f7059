// Package memsql runs an embedded in-memory MySQL server, used by the
// "memory" database driver for demos and throwaway environments.
package memsql

import (
	"context"
	"fmt"
	"net"
	"time"

	sqle "github.com/dolthub/go-mysql-server"
	"github.com/dolthub/go-mysql-server/memory"
	"github.com/dolthub/go-mysql-server/server"
	"github.com/dolthub/go-mysql-server/sql"

	"itdocsapi/pkg/logger"
)

// Server is a running in-memory MySQL server holding a single database.
type Server struct {
	Name   string
	Port   int
	server *server.Server
	cancel context.CancelFunc
}

// Start launches a server on a free localhost port with an empty database
// named name, and waits until it accepts connections.
func Start(ctx context.Context, name string) (*Server, error) {
	port, err := freePort()
	if err != nil {
		return nil, fmt.Errorf("failed to get free port: %w", err)
	}

	db := memory.NewDatabase(name)
	provider := memory.NewDBProvider(db)
	engine := sqle.NewDefault(provider)

	cfg := server.Config{
		Protocol: "tcp",
		Address:  fmt.Sprintf("localhost:%d", port),
	}
	s, err := server.NewServer(cfg, engine, sql.NewContext, memory.NewSessionBuilder(provider), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	go func() {
		if err := s.Start(); err != nil {
			logger.Errorf("In-memory MySQL server %s stopped: %v", name, err)
		}
	}()
	// parent context cancellation stops the server too
	go func() {
		<-serverCtx.Done()
		s.Close()
	}()

	readyCtx, readyCancel := context.WithTimeout(ctx, 5*time.Second)
	defer readyCancel()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-readyCtx.Done():
			cancel()
			return nil, fmt.Errorf("in-memory MySQL server did not start: %w", readyCtx.Err())
		case <-ticker.C:
			conn, err := net.DialTimeout("tcp", cfg.Address, 100*time.Millisecond)
			if err == nil {
				conn.Close()
				logger.Infof("Started in-memory MySQL server on port %d with database %s", port, name)
				return &Server{Name: name, Port: port, server: s, cancel: cancel}, nil
			}
		}
	}
}

// DSN returns a go-sql-driver/mysql data source name for the server's database.
func (s *Server) DSN() string {
	return fmt.Sprintf("root:@tcp(localhost:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local", s.Port, s.Name)
}

// Close stops the server. The data is lost.
func (s *Server) Close() error {
	err := s.server.Close()
	s.cancel()
	if err != nil {
		return fmt.Errorf("failed to close in-memory MySQL server: %w", err)
	}
	logger.Infof("Closed in-memory MySQL server on port %d", s.Port)
	return nil
}

func freePort() (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}
	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}
