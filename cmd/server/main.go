// roomcrawl-server serves one solo run per SSH connection. Build:
//
//	go build -o roomcrawl-server ./cmd/server
//
// Usage:
//
//	./roomcrawl-server [-port 2222] [-key server_host_key] [-config tuning.yaml]
//
// Connect with:
//
//	ssh -t -p 2222 localhost
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
	"unicode"

	gossh "github.com/gliderlabs/ssh"
	xssh "golang.org/x/crypto/ssh"

	"roomcrawl/internal/config"
	"roomcrawl/internal/game"
	internalssh "roomcrawl/internal/ssh"
)

// maxNameBytes bounds the user name that ends up in log lines.
const maxNameBytes = 16

// allowedTerms lists the TERM values accepted from clients; anything else
// falls back to xterm-256color.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"rxvt-unicode-256color": true,
}

func main() {
	port := flag.Int("port", 2222, "SSH server port")
	keyFile := flag.String("key", "server_host_key", "Path to the PEM-encoded host key (auto-generated if absent)")
	cfgPath := flag.String("config", "", "Path to a YAML tuning file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	tuning, err := config.Load(*cfgPath)
	if err != nil {
		logger.Error("load tuning", "err", err)
		os.Exit(1)
	}
	signer, err := loadOrCreateHostKey(*keyFile, logger)
	if err != nil {
		logger.Error("host key", "err", err)
		os.Exit(1)
	}

	srv := &gossh.Server{
		Addr: fmt.Sprintf(":%d", *port),
		Handler: func(s gossh.Session) {
			handleSession(s, tuning, logger)
		},
		// Accept PTY requests from any client.
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// No authentication: every client gets an anonymous run.
		HostSigners: []gossh.Signer{signer},
	}

	logger.Info("roomcrawl SSH server listening", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

// handleSession runs a game for one connection. It blocks for the duration
// of the connection so the SSH session stays open.
func handleSession(s gossh.Session, tuning *config.Tuning, logger *slog.Logger) {
	pty, winCh, hasPTY := s.Pty()
	if !hasPTY {
		fmt.Fprintln(s, "This game requires a PTY. Connect with: ssh -t -p 2222 <host>")
		return
	}
	log := logger.With("user", sanitizeName(s.User()), "remote", s.RemoteAddr().String())

	term := "xterm-256color"
	for _, env := range s.Environ() {
		if v, ok := strings.CutPrefix(env, "TERM="); ok && allowedTerms[v] {
			term = v
			break
		}
	}

	// TERM must be set in the process environment while tcell reads terminfo.
	tty := internalssh.NewSessionTty(s, pty, winCh)
	termMu.Lock()
	_ = os.Setenv("TERM", term)
	screen, err := internalssh.NewScreen(tty)
	termMu.Unlock()
	if err != nil {
		fmt.Fprintf(s, "%v\n", err)
		log.Warn("session screen", "err", err)
		return
	}

	log.Info("session started", "term", term)
	g := game.NewWithScreen(screen, tuning, time.Now().UnixNano(), log, nil)
	g.Run(s.Context())
	log.Info("session ended")
}

// termMu protects os.Setenv("TERM") around screen creation.
var termMu sync.Mutex

// sanitizeName strips control characters and truncates to maxNameBytes
// without splitting a rune.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsControl(r) {
			continue
		}
		if b.Len()+len(string(r)) > maxNameBytes {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string, logger *slog.Logger) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			logger.Info("loaded host key", "path", path)
			return signer, nil
		}
	}

	logger.Info("generating ed25519 host key", "path", path)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	// Persisting is best effort; a fresh key next start only upsets known_hosts.
	if block, err := xssh.MarshalPrivateKey(key, "roomcrawl server"); err == nil {
		if err := os.WriteFile(path, pem.EncodeToMemory(block), 0o600); err != nil {
			logger.Warn("persist host key", "path", path, "err", err)
		}
	}
	return signer, nil
}
