package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mithrel/docsmith/internal/render"
	"github.com/mithrel/docsmith/pkg/api"
)

// Settings is the typed view of a loaded configuration.
type Settings struct {
	BaseURL     string
	Timeout     time.Duration
	Kind        api.Kind
	View        api.ViewMode
	Pager       bool
	Style       string
	WordWrap    int
	LogLevel    string
	LogFormat   string
	MetricsAddr string
}

// Resolve validates v and returns its typed settings.
func Resolve(v *viper.Viper) (Settings, error) {
	if err := CheckConfigValidity(v); err != nil {
		return Settings{}, err
	}
	timeout, _ := time.ParseDuration(strings.TrimSpace(v.GetString("service.timeout")))
	kind, _ := api.ParseKind(v.GetString("generate.kind"))
	view, _ := api.ParseViewMode(v.GetString("output.view"))
	return Settings{
		BaseURL:     strings.TrimRight(strings.TrimSpace(v.GetString("service.base_url")), "/"),
		Timeout:     timeout,
		Kind:        kind,
		View:        view,
		Pager:       v.GetBool("output.pager"),
		Style:       v.GetString("render.style"),
		WordWrap:    v.GetInt("render.word_wrap"),
		LogLevel:    strings.ToLower(v.GetString("log.level")),
		LogFormat:   strings.ToLower(v.GetString("log.format")),
		MetricsAddr: strings.TrimSpace(v.GetString("metrics.addr")),
	}, nil
}

// CheckConfigValidity reports every problem in v as one joined error.
func CheckConfigValidity(v *viper.Viper) error {
	var errs []error

	base := strings.TrimSpace(v.GetString("service.base_url"))
	if base == "" {
		errs = append(errs, errors.New("service.base_url is required"))
	} else if u, err := url.Parse(base); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("service.base_url must be an http(s) URL, got %q", base))
	}

	if s := strings.TrimSpace(v.GetString("service.timeout")); s != "" {
		if d, err := time.ParseDuration(s); err != nil {
			errs = append(errs, fmt.Errorf("service.timeout must be a duration like 90s, got %q", s))
		} else if d < 0 {
			errs = append(errs, errors.New("service.timeout must not be negative"))
		}
	}

	if k := v.GetString("generate.kind"); k != "" {
		if _, ok := api.ParseKind(k); !ok {
			errs = append(errs, fmt.Errorf("generate.kind must be one of %s, got %q", strings.Join(api.KindNames(), ", "), k))
		}
	}

	if view := v.GetString("output.view"); view != "" {
		if _, ok := api.ParseViewMode(view); !ok {
			errs = append(errs, fmt.Errorf("output.view must be preview or raw, got %q", view))
		}
	}

	if style := v.GetString("render.style"); style != "" && !slices.Contains(render.Styles, style) {
		errs = append(errs, fmt.Errorf("render.style must be one of %s, got %q", strings.Join(render.Styles, ", "), style))
	}
	if v.GetInt("render.word_wrap") <= 0 {
		errs = append(errs, errors.New("render.word_wrap must be greater than 0"))
	}

	switch strings.ToLower(v.GetString("log.level")) {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be debug, info, warn or error, got %q", v.GetString("log.level")))
	}
	switch strings.ToLower(v.GetString("log.format")) {
	case "", "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be console or json, got %q", v.GetString("log.format")))
	}

	return errors.Join(errs...)
}
