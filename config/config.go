// Package config loads the Face's ambient configuration (spec.md §10
// AMBIENT STACK "Configuration"): which forwarder to dial, the default
// Interest lifetime, and whether to verify Data signatures. Grounded on
// the teacher's functional-options construction style for engine.Face,
// adapted here to a YAML-file-backed Settings struct since nothing in
// spec.md or the teacher requires per-call configuration — a Face is
// normally brought up once, from one settings file, for the lifetime of
// a process.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/named-data/ndndface/engine"
	"github.com/named-data/ndndface/face"
)

// DefaultPort mirrors engine.DefaultPort, restated here as a config-level
// constant.
const DefaultPort uint16 = 6363

// DefaultInterestLifetime is spec.md's "4000ms" default Interest
// lifetime (wire.DefaultInterestLifetime, restated here so Settings'
// zero value prints sensibly before Defaults is applied).
const DefaultInterestLifetime = 4000 * time.Millisecond

// DefaultLocalSocket is the conventional local forwarder control socket
// path (spec.md §6).
const DefaultLocalSocket = "/var/run/ndnd.sock"

// Settings configures how a Face connects and behaves. The zero value is
// not directly usable; call Defaults or Load.
type Settings struct {
	// LocalSocket, if non-empty, is a Unix-domain socket path to a local
	// forwarder. Takes priority over RemoteHost/Hosts (spec.md §4.7.1:
	// "prefer the local forwarder when configured").
	LocalSocket string `yaml:"local_socket"`

	// RemoteHost and RemotePort dial a single remote forwarder directly,
	// bypassing the host-and-port failover strategy (spec.md §4.8's
	// "otherwise" branch). RemotePort defaults to DefaultPort.
	RemoteHost string `yaml:"remote_host"`
	RemotePort uint16 `yaml:"remote_port"`

	// Hosts, if RemoteHost is empty, are candidate forwarder hosts tried
	// in shuffled order via hoststrategy.Strategy (spec.md §4.8).
	Hosts []string `yaml:"hosts"`

	// WebSocketURL, if non-empty, dials a face.WebSocketFace at this URL
	// instead of a stream socket — the browser/WebSocket variant of the
	// forwarder's control port (spec.md §6's "9696 ... out of scope
	// here", supplemented by SPEC_FULL.md §6 to actually implement that
	// path). Takes priority over RemoteHost/Hosts, but not LocalSocket.
	WebSocketURL string `yaml:"websocket_url"`

	// QuicURL, if non-empty and WebSocketURL is unset, dials a
	// face.QuicFace (WebTransport/QUIC datagrams) at this URL instead of
	// a stream socket.
	QuicURL string `yaml:"quic_url"`

	// VerifyEnabled toggles signature verification of inbound Data
	// (spec.md §4.4). Defaults to true.
	VerifyEnabled bool `yaml:"verify_enabled"`

	// DefaultInterestLifetime is the lifetime applied to Interests
	// expressed without an explicit template (spec.md §3.2).
	DefaultInterestLifetime time.Duration `yaml:"default_interest_lifetime_ms"`
}

// Defaults returns the spec-mandated default Settings: a local forwarder
// socket, port 6363, 4000ms lifetime, verification on.
func Defaults() Settings {
	return Settings{
		LocalSocket:             DefaultLocalSocket,
		RemotePort:              DefaultPort,
		VerifyEnabled:           true,
		DefaultInterestLifetime: DefaultInterestLifetime,
	}
}

// Load reads Settings from a YAML file at path, starting from Defaults
// so a file only needs to override what it changes.
func Load(path string) (Settings, error) {
	s := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return Settings{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if s.RemotePort == 0 {
		s.RemotePort = DefaultPort
	}
	return s, nil
}

// TransportFactory builds the engine.TransportFactory matching s: a Unix
// StreamFace to LocalSocket when configured; otherwise a WebSocketFace or
// QuicFace when one of those URLs is set (spec.md §6's 9696 variants);
// otherwise a TCP StreamFace to whatever host:port the Face is told to
// dial (direct or probed).
func (s Settings) TransportFactory() engine.TransportFactory {
	switch {
	case s.LocalSocket != "":
		return func(string, uint16) (face.Transport, error) {
			return face.NewStreamFace("unix", s.LocalSocket, true), nil
		}
	case s.WebSocketURL != "":
		return func(string, uint16) (face.Transport, error) {
			return face.NewWebSocketFace(s.WebSocketURL, false), nil
		}
	case s.QuicURL != "":
		return func(string, uint16) (face.Transport, error) {
			return face.NewQuicFace(s.QuicURL), nil
		}
	}
	return func(host string, port uint16) (face.Transport, error) {
		return face.NewStreamFace("tcp", fmt.Sprintf("%s:%d", host, port), false), nil
	}
}

// Options builds the engine.Option slice matching s: transport factory,
// verification toggle, and either a fixed host or a host-and-port
// failover strategy, per spec.md §4.7.1/§4.8.
func (s Settings) Options() []engine.Option {
	opts := []engine.Option{
		engine.WithTransportFactory(s.TransportFactory()),
		engine.WithVerify(s.VerifyEnabled),
		engine.WithDefaultInterestLifetime(s.DefaultInterestLifetime),
	}
	switch {
	case s.LocalSocket != "":
		// A local socket needs no host/port; NewStreamFace embeds the
		// path, and the factory above ignores its host/port arguments.
		opts = append(opts, engine.WithHost("local", 0))
	case s.WebSocketURL != "":
		// Likewise, the URL is embedded in the factory closure above.
		opts = append(opts, engine.WithHost("websocket", 0))
	case s.QuicURL != "":
		opts = append(opts, engine.WithHost("quic", 0))
	case s.RemoteHost != "":
		opts = append(opts, engine.WithHost(s.RemoteHost, s.RemotePort))
	case len(s.Hosts) > 0:
		opts = append(opts, engine.WithHostCandidates(s.Hosts, s.RemotePort, nil))
	}
	return opts
}
