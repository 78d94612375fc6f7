package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/renato0307/remux/internal/logging"
	"github.com/renato0307/remux/internal/paths"
	"github.com/renato0307/remux/internal/ports"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

// DefaultSSHTimeout bounds dialing and the handshake
const DefaultSSHTimeout = 10 * time.Second

// SSHConfig describes how to reach the remote host
type SSHConfig struct {
	Host                  string
	IdentityFile          string
	InsecureIgnoreHostKey bool
	KnownHostsFile        string
	Port                  int
	Timeout               time.Duration
	User                  string
}

// SSH runs each command in its own session over one shared client connection.
// The connection is dialed lazily and redialed after it breaks.
type SSH struct {
	cfg SSHConfig

	mu     sync.Mutex
	client *ssh.Client
}

var _ ports.Executor = (*SSH)(nil)

// NewSSH validates cfg and returns an executor; it does not dial
func NewSSH(cfg SSHConfig) (*SSH, error) {
	if cfg.Host == "" {
		return nil, errors.New("ssh host is required")
	}
	if cfg.User == "" {
		return nil, errors.New("ssh user is required")
	}
	if cfg.Port == 0 {
		cfg.Port = 22
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultSSHTimeout
	}
	if cfg.IdentityFile == "" {
		cfg.IdentityFile = "~/.ssh/id_ed25519"
	}
	if cfg.KnownHostsFile == "" {
		cfg.KnownHostsFile = "~/.ssh/known_hosts"
	}
	return &SSH{cfg: cfg}, nil
}

func (s *SSH) address() string {
	return net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
}

func (s *SSH) clientConfig() (*ssh.ClientConfig, error) {
	key, err := os.ReadFile(paths.ExpandPath(s.cfg.IdentityFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read identity file: %w", err)
	}
	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to parse identity file: %w", err)
	}

	hostKeyCallback := ssh.InsecureIgnoreHostKey()
	if !s.cfg.InsecureIgnoreHostKey {
		hostKeyCallback, err = knownhosts.New(paths.ExpandPath(s.cfg.KnownHostsFile))
		if err != nil {
			return nil, fmt.Errorf("failed to load known hosts: %w", err)
		}
	}

	return &ssh.ClientConfig{
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: hostKeyCallback,
		Timeout:         s.cfg.Timeout,
		User:            s.cfg.User,
	}, nil
}

func (s *SSH) connect() (*ssh.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return s.client, nil
	}

	cfg, err := s.clientConfig()
	if err != nil {
		return nil, err
	}

	logging.Logger.Info("Dialing SSH host", "address", s.address(), "user", s.cfg.User)
	client, err := ssh.Dial("tcp", s.address(), cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %w", ports.ErrTransport, s.address(), err)
	}
	s.client = client
	return client, nil
}

// drop forgets client so the next Exec redials
func (s *SSH) drop(client *ssh.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == client {
		_ = s.client.Close()
		s.client = nil
	}
}

// Exec runs command in a new SSH session. If ctx ends first the session is closed
// and a transport error is returned.
func (s *SSH) Exec(ctx context.Context, command string) (ports.ExecResult, error) {
	client, err := s.connect()
	if err != nil {
		return ports.ExecResult{}, err
	}

	session, err := client.NewSession()
	if err != nil {
		logging.Logger.Warn("SSH connection broken, will redial", "address", s.address(), "error", err)
		s.drop(client)
		return ports.ExecResult{}, fmt.Errorf("%w: open session: %w", ports.ErrTransport, err)
	}
	defer session.Close()

	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr

	done := make(chan error, 1)
	go func() { done <- session.Run(command) }()

	select {
	case <-ctx.Done():
		_ = session.Signal(ssh.SIGKILL)
		return ports.ExecResult{}, fmt.Errorf("%w: %w", ports.ErrTransport, ctx.Err())
	case err = <-done:
	}

	result := ports.ExecResult{Stderr: stderr.String(), Stdout: stdout.String()}

	var exitErr *ssh.ExitError
	var missingErr *ssh.ExitMissingError
	switch {
	case err == nil:
		code := 0
		result.StatusCode = &code
	case errors.As(err, &exitErr):
		code := exitErr.ExitStatus()
		result.StatusCode = &code
	case errors.As(err, &missingErr):
		// Remote side closed without reporting a status
	default:
		s.drop(client)
		return ports.ExecResult{}, fmt.Errorf("%w: %w", ports.ErrTransport, err)
	}
	return result, nil
}

// Close releases the shared connection
func (s *SSH) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		return nil
	}
	err := s.client.Close()
	s.client = nil
	return err
}
