package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/rtshim/pkg/appmodel"
	"github.com/charlie0129/rtshim/pkg/config"
	"github.com/charlie0129/rtshim/pkg/events"
	"github.com/charlie0129/rtshim/pkg/power"
	"github.com/charlie0129/rtshim/pkg/resources"
)

// Server serves the runtime facilities over HTTP. Everything it uses is
// passed in or derived from its config; there is no package state.
type Server struct {
	conf config.Config
	opts Options
	hub  *events.EventHub
	done chan struct{}

	mu          sync.RWMutex
	manager     *power.Manager
	backendName string
	pollEvery   time.Duration
	pkg         *appmodel.PackageID
	strings     *resources.Loader
	// bridge is the charge subscription feeding the event hub. It exists
	// only while at least one event stream is open.
	bridge    power.Handle
	bridged   bool
	closeOnce sync.Once
}

// NewServer returns a Server using m for power status. The package identity
// and string resources are loaded from conf. The backend overrides in opts
// are kept when the config is reloaded.
func NewServer(conf config.Config, m *power.Manager, opts Options) *Server {
	s := &Server{
		conf:        conf,
		opts:        opts,
		hub:         events.NewEventHub(),
		done:        make(chan struct{}),
		manager:     m,
		backendName: opts.backend(conf),
		pollEvery:   opts.pollInterval(conf),
	}
	s.loadFacilities()
	return s
}

// Manager returns the power manager currently in use.
func (s *Server) Manager() *power.Manager {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.manager
}

func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logrus.StandardLogger()))
	router.GET("/battery", s.getBattery)
	router.GET("/current-charge", s.getCurrentCharge)
	router.GET("/events", s.streamEvents)
	router.GET("/package", s.getPackage)
	router.GET("/strings/:name", s.getString)
	router.GET("/config", s.getConfig)
	router.GET("/version", getVersion)

	return router
}

// Reload re-reads the config, rebuilds whatever depends on it and tells
// event stream clients about it.
func (s *Server) Reload() error {
	if err := s.conf.Load(); err != nil {
		return pkgerrors.Wrap(err, "failed to reload config")
	}

	name, interval := s.opts.backend(s.conf), s.opts.pollInterval(s.conf)
	if name != s.backendName || interval != s.pollEvery {
		if err := s.switchBackend(name, interval); err != nil {
			logrus.Errorf("keeping backend %s: %v", s.backendName, err)
		}
	}
	s.loadFacilities()

	logrus.Infof("config reloaded")
	s.hub.Publish(events.ConfigReloaded, events.ConfigReloadedEvent{
		Backend: s.Manager().Backend(),
		Locale:  s.conf.Locale(),
		Ts:      time.Now().Unix(),
	})

	return nil
}

// Close ends all event streams and releases the charge subscription.
func (s *Server) Close() {
	s.closeOnce.Do(func() {
		close(s.done)

		s.mu.Lock()
		defer s.mu.Unlock()
		s.unbridgeLocked()

		if err := s.manager.Close(); err != nil {
			logrus.Errorf("failed to close backend: %v", err)
		}
	})
}

func (s *Server) switchBackend(name string, interval time.Duration) error {
	b, err := power.NewBackend(name, power.Options{PollInterval: interval})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	hadBridge := s.bridged
	s.unbridgeLocked()
	if err := s.manager.Close(); err != nil {
		logrus.Warnf("failed to close backend %s: %v", s.manager.Backend(), err)
	}
	s.manager = power.NewManager(b)
	s.backendName = name
	s.pollEvery = interval
	if hadBridge {
		s.bridgeLocked()
	}

	logrus.WithField("backend", b.Name()).Info("power backend switched")

	return nil
}

func (s *Server) loadFacilities() {
	var provider appmodel.Provider
	if p := s.conf.ManifestPath(); p != "" {
		m, err := appmodel.LoadManifest(p)
		if err != nil {
			logrus.Errorf("failed to load package manifest: %v", err)
		} else {
			provider = m
		}
	} else {
		bi, err := appmodel.NewBuildInfo()
		if err != nil {
			logrus.Warnf("package identity unavailable: %v", err)
		} else {
			provider = bi
		}
	}

	var loader *resources.Loader
	if dir := s.conf.ResourcesDir(); dir != "" {
		var err error
		if loc := s.conf.Locale(); loc != "" {
			loader, err = resources.NewLoader(os.DirFS(dir), loc)
		} else {
			loader, err = resources.NewForCurrentLocale(os.DirFS(dir))
		}
		if err != nil {
			logrus.Errorf("failed to load string resources from %s: %v", dir, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if provider != nil {
		s.pkg = appmodel.NewPackageID(provider)
	} else {
		s.pkg = nil
	}
	s.strings = loader
}

// bridgeLocked subscribes the event hub to charge changes.
func (s *Server) bridgeLocked() {
	if s.bridged {
		return
	}

	m := s.manager
	h, err := m.Subscribe(func() { s.publishCharge(m) })
	if err != nil {
		logrus.Warnf("charge change events unavailable: %v", err)
		return
	}
	s.bridge = h
	s.bridged = true
}

func (s *Server) unbridgeLocked() {
	if !s.bridged {
		return
	}
	s.manager.Unsubscribe(s.bridge)
	s.bridged = false
}

func (s *Server) publishCharge(m *power.Manager) {
	p, err := m.RemainingChargePercent()
	if err != nil {
		logrus.Debugf("failed to read charge after change: %v", err)
		return
	}

	ev := events.ChargeChangedEvent{
		Percent: p,
		Ts:      time.Now().Unix(),
	}
	if st, err := m.BatteryStatus(); err == nil {
		ev.Status = st.String()
	}

	s.hub.Publish(events.BatteryCharge, ev)
}

// Run starts the daemon and blocks until SIGINT or SIGTERM.
func Run(opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	configPath, unixSocketPath := opts.ConfigPath, opts.SocketPath

	conf, err := config.NewFile(configPath)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to parse config during startup")
	}
	logrus.WithFields(conf.LogrusFields()).Infof("config loaded")

	b, err := power.NewBackend(opts.backend(conf), power.Options{PollInterval: opts.pollInterval(conf)})
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"backend":    b.Name(),
		"overridden": opts.Backend != "",
	}).Info("power backend selected")

	s := NewServer(conf, power.NewManager(b), opts)
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reload := func() {
		if err := s.Reload(); err != nil {
			logrus.Errorf("%v", err)
		}
	}

	// Receive SIGHUP to reload config
	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGHUP)
		for {
			select {
			case <-ctx.Done():
				return
			case <-sigc:
				reload()
			}
		}
	}()

	if err := config.Watch(ctx, configPath, 0, reload); err != nil {
		logrus.Warnf("config file changes will not be picked up automatically: %v", err)
	}

	srv := &http.Server{
		Handler: s.Router(),
	}

	// A socket left behind by a crashed daemon blocks Listen.
	if err := os.Remove(unixSocketPath); err != nil && !os.IsNotExist(err) {
		return pkgerrors.Wrapf(err, "failed to remove stale socket %s", unixSocketPath)
	}

	// Create the socket to listen on:
	l, err := net.Listen("unix", unixSocketPath)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to listen on %s", unixSocketPath)
	}

	if conf.AllowNonRootAccess() || opts.AllowNonRoot {
		logrus.Infof("non-root access is allowed, changing permissions of %s to 0777", unixSocketPath)
		err = os.Chmod(unixSocketPath, 0777)
		if err != nil {
			return pkgerrors.Wrapf(err, "failed to change permissions of %s", unixSocketPath)
		}
	}

	serveErr := make(chan error, 1)
	// Serve HTTP on unix socket
	go func() {
		logrus.Infof("http server listening on %s", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// Handle common process-killing signals, so we can gracefully shut down:
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	// Wait for a SIGINT or SIGTERM:
	select {
	case sig := <-sigc:
		logrus.Infof("caught signal \"%s\": shutting down.", sig)
	case err := <-serveErr:
		return pkgerrors.Wrap(err, "http server failed")
	}

	// Event streams only end when the server is closed.
	s.Close()

	logrus.Info("shutting down http server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = srv.Shutdown(shutdownCtx)
	if err != nil {
		logrus.Errorf("failed to shutdown http server: %v", err)
	}
	shutdownCancel()

	logrus.Info("exiting")
	return nil
}
