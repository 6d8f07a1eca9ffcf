package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/mdouchement/pumpd"
	"github.com/mdouchement/pumpd/environment"
	"go.yaml.in/yaml/v4"
)

type config struct {
	Socket string `yaml:"socket"`
}

func configPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "pumpctl", "pumpctl.yml") // Does not follow XDG..
}

// resolveSocket looks for the control socket in order: the flag, the env
// (or the daemon default), the client config. Then it asks for a path and
// remembers the answer in the client config.
func resolveSocket(flag, cpath string, in io.Reader, out io.Writer) (string, error) {
	if flag != "" {
		return flag, nil
	}

	socket := environment.GetEnvPath(environment.KeySocket, pumpd.DefaultSocket)
	if exists(socket) {
		return socket, nil
	}

	var cfg config
	if cpath != "" {
		p, err := os.ReadFile(cpath)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return "", err
		default:
			if err = yaml.Unmarshal(p, &cfg); err != nil {
				return "", fmt.Errorf("%s: %w", cpath, err)
			}
			if exists(cfg.Socket) {
				return cfg.Socket, nil
			}
			fmt.Fprintln(out, "Invalid socket path:", cfg.Socket)
		}
	}

	fmt.Fprint(out, "Enter a socket path: ")
	socket, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || socket == "") {
		return "", err
	}
	socket = strings.TrimSpace(socket)

	if cpath == "" {
		return socket, nil
	}
	if err = os.MkdirAll(filepath.Dir(cpath), 0o755); err != nil {
		return "", err
	}

	cfg.Socket = socket
	p, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}

	return socket, os.WriteFile(cpath, p, 0o600)
}

func exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

func unixTransport(socket string) *http.Transport {
	return &http.Transport{
		DialContext: func(ctx context.Context, _, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "unix", socket)
		},
	}
}
