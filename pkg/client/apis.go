package client

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/charlie0129/rtshim/pkg/appmodel"
	"github.com/charlie0129/rtshim/pkg/config"
	"github.com/charlie0129/rtshim/pkg/power"
)

func (c *Client) GetBattery() (*power.Report, error) {
	ret, err := c.Get("/battery")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get battery status")
	}

	var r power.Report
	if err := json.Unmarshal([]byte(ret), &r); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal battery status")
	}

	return &r, nil
}

func (c *Client) GetCurrentCharge() (int, error) {
	ret, err := c.Get("/current-charge")
	if err != nil {
		return 0, pkgerrors.Wrapf(err, "failed to get current charge")
	}
	currentCharge, err := strconv.Atoi(strings.TrimSpace(ret))
	if err != nil {
		return 0, pkgerrors.Wrapf(err, "failed to unmarshal current charge")
	}
	return currentCharge, nil
}

func (c *Client) GetPackage() (*appmodel.Info, error) {
	ret, err := c.Get("/package")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get package identity")
	}

	var info appmodel.Info
	if err := json.Unmarshal([]byte(ret), &info); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal package identity")
	}

	return &info, nil
}

// GetString returns the localized string called name. A missing string is
// reported as ErrNotFound.
func (c *Client) GetString(name string) (string, error) {
	ret, err := c.Get("/strings/" + url.PathEscape(name))
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get string %s", name)
	}

	var s string
	if err := json.Unmarshal([]byte(ret), &s); err != nil {
		return "", pkgerrors.Wrapf(err, "failed to unmarshal string %s", name)
	}

	return s, nil
}

func (c *Client) GetConfig() (*config.RawFileConfig, error) {
	ret, err := c.Get("/config")
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to get config")
	}

	var conf config.RawFileConfig
	if err := json.Unmarshal([]byte(ret), &conf); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal config")
	}

	return &conf, nil
}

func (c *Client) GetVersion() (string, error) {
	ret, err := c.Get("/version")
	if err != nil {
		return "", pkgerrors.Wrapf(err, "failed to get version")
	}

	var v string
	if err := json.Unmarshal([]byte(ret), &v); err != nil {
		return "", pkgerrors.Wrapf(err, "failed to unmarshal version")
	}

	return v, nil
}
