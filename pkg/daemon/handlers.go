package daemon

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/rtshim/pkg/config"
	"github.com/charlie0129/rtshim/pkg/platform"
	"github.com/charlie0129/rtshim/pkg/version"
)

// abort responds with err. Unsupported facilities map to 501.
func abort(c *gin.Context, what string, err error) {
	code := http.StatusInternalServerError
	if errors.Is(err, platform.ErrUnsupported) {
		code = http.StatusNotImplemented
	} else {
		logrus.Errorf("%s failed: %v", what, err)
	}
	c.IndentedJSON(code, err.Error())
	_ = c.AbortWithError(code, err)
}

func (s *Server) getBattery(c *gin.Context) {
	r, err := s.Manager().Report()
	if err != nil {
		abort(c, "getBattery", err)
		return
	}

	c.IndentedJSON(http.StatusOK, r)
}

func (s *Server) getCurrentCharge(c *gin.Context) {
	charge, err := s.Manager().RemainingChargePercent()
	if err != nil {
		abort(c, "getCurrentCharge", err)
		return
	}

	c.IndentedJSON(http.StatusOK, charge)
}

func (s *Server) getPackage(c *gin.Context) {
	s.mu.RLock()
	id := s.pkg
	s.mu.RUnlock()

	if id == nil {
		abort(c, "getPackage", pkgerrors.Wrap(platform.ErrUnsupported, "no package identity"))
		return
	}

	info, err := id.Info()
	if err != nil {
		abort(c, "getPackage", err)
		return
	}

	c.IndentedJSON(http.StatusOK, info)
}

func (s *Server) getString(c *gin.Context) {
	s.mu.RLock()
	l := s.strings
	s.mu.RUnlock()

	if l == nil {
		abort(c, "getString", pkgerrors.Wrap(platform.ErrUnsupported, "no string resources configured"))
		return
	}

	name := c.Param("name")
	v, ok := l.Lookup(name)
	if !ok {
		c.IndentedJSON(http.StatusNotFound, fmt.Sprintf("no string named %s for locale %s", name, l.Locale()))
		return
	}

	c.IndentedJSON(http.StatusOK, v)
}

func (s *Server) getConfig(c *gin.Context) {
	fc, err := config.NewRawFileConfigFromConfig(s.conf)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.IndentedJSON(http.StatusOK, fc)
}

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}

// streamEvents sends hub events to the client as server-sent events until
// the client goes away or the server is closed.
func (s *Server) streamEvents(c *gin.Context) {
	ch := s.hub.Subscribe()
	s.mu.Lock()
	s.bridgeLocked()
	s.mu.Unlock()

	defer func() {
		s.hub.Unsubscribe(ch)
		s.mu.Lock()
		if s.hub.Len() == 0 {
			s.unbridgeLocked()
		}
		s.mu.Unlock()
	}()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	// Keep idle connections from being reaped by proxies.
	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case <-s.done:
			return false
		case <-keepalive.C:
			_, err := io.WriteString(w, ": keepalive\n\n")
			return err == nil
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(ev.Name, string(ev.Data))
			return true
		}
	})

	logrus.WithField("subscribers", s.hub.Len()).Debug("event stream closed")
}
