package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	cookieexpires "github.com/always-cache/cookie-expires"
	"github.com/always-cache/cookie-expires/rfc6265"
	"github.com/always-cache/cookie-expires/store"
)

func serveCmd() *cobra.Command {
	var (
		configFilenameFlag string
		portFlag           int
		dbFilenameFlag     string
		malformedFlag      string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the cookie expiry inspection service",
		Long: "Runs an HTTP service that parses cookie-date strings, fetches URLs and " +
			"reports (and stores) the expiry times of the cookies they set.",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := Config{
				Port:      portFlag,
				DB:        dbFilenameFlag,
				Malformed: policyDropAttribute,
			}
			if configFilenameFlag != "" {
				fileConfig, err := getConfig(configFilenameFlag)
				if err != nil {
					return err
				}
				if fileConfig.Port > 0 {
					config.Port = fileConfig.Port
				}
				if fileConfig.DB != "" {
					config.DB = fileConfig.DB
				}
				if fileConfig.Malformed != "" {
					config.Malformed = fileConfig.Malformed
				}
			}
			if malformedFlag != "" {
				config.Malformed = malformedFlag
			}
			if config.Malformed != policyDropAttribute && config.Malformed != policyRejectCookie {
				return fmt.Errorf("unsupported malformed attribute policy: %s", config.Malformed)
			}
			return runServe(config)
		},
	}
	cmd.Flags().StringVar(&configFilenameFlag, "config", "", "Path to config file")
	cmd.Flags().IntVar(&portFlag, "port", 8080, "Port to listen on")
	cmd.Flags().StringVar(&dbFilenameFlag, "db", "cookies.db", "Cookie DB file name (use 'memory' for in-memory db)")
	cmd.Flags().StringVar(&malformedFlag, "malformed", "",
		"Malformed attribute policy: drop-attribute or reject-cookie (overrides config)")
	return cmd
}

func runServe(config Config) error {
	dbFilename := config.DB
	if dbFilename == "memory" {
		dbFilename = ""
	}
	i := &inspector{
		store:  store.NewSQLiteStore(dbFilename),
		policy: config.Malformed,
		httpClient: http.Client{
			// do not follow redirects, cookies are set per response
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}

	log.Info().Msgf("Listening on port %d with policy '%s'", config.Port, config.Malformed)
	return http.ListenAndServe(fmt.Sprintf(":%d", config.Port), i.router())
}

type inspector struct {
	store      store.CookieStore
	handler    cookieexpires.ExpiresHandler
	policy     string
	httpClient http.Client
}

func (i *inspector) router() http.Handler {
	r := chi.NewRouter()
	r.Get("/parse", i.handleParse)
	r.Get("/inspect", i.handleInspect)
	r.Get("/cookies", i.handleCookies)
	return r
}

type parseResult struct {
	Input   string `json:"input"`
	Expires string `json:"expires,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (i *inspector) handleParse(w http.ResponseWriter, r *http.Request) {
	value := r.URL.Query().Get("value")
	result := parseResult{Input: value}
	if date, err := rfc6265.ParseCookieDate(value); err != nil {
		result.Error = err.Error()
	} else {
		result.Expires = date.Format(time.RFC3339)
	}
	sendJSON(w, result)
}

type inspectedCookie struct {
	Name    string `json:"name"`
	Value   string `json:"value"`
	Domain  string `json:"domain"`
	Path    string `json:"path"`
	Expires string `json:"expires,omitempty"`
	Session bool   `json:"session"`
	// Rejected is true when the Expires attribute was malformed and the
	// policy is to reject the whole cookie.
	Rejected bool   `json:"rejected,omitempty"`
	Error    string `json:"error,omitempty"`
}

type inspectReport struct {
	URL     string            `json:"url"`
	Cookies []inspectedCookie `json:"cookies"`
}

func (i *inspector) handleInspect(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("url")
	targetURL, err := url.Parse(target)
	if err != nil || targetURL.Host == "" {
		http.Error(w, "Please specify a url parameter", http.StatusBadRequest)
		return
	}

	req, err := http.NewRequest("GET", targetURL.String(), nil)
	if err != nil {
		http.Error(w, "Could not create request", http.StatusBadRequest)
		return
	}
	res, err := i.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Str("url", target).Msg("Error fetching target")
		http.Error(w, "Could not fetch target", http.StatusBadGateway)
		return
	}
	res.Body.Close()

	report := inspectReport{URL: targetURL.String()}
	for _, header := range res.Header.Values("Set-Cookie") {
		inspected := i.inspect(targetURL, header)
		report.Cookies = append(report.Cookies, inspected)
	}
	log.Debug().Str("url", target).Int("cookies", len(report.Cookies)).Msg("Inspected target")
	sendJSON(w, report)
}

// inspect runs the Expires handler on one Set-Cookie header and stores the
// resulting cookie, applying the configured malformed attribute policy.
func (i *inspector) inspect(targetURL *url.URL, header string) inspectedCookie {
	sc := rfc6265.ParseSetCookie(header)
	cookie := cookieexpires.Cookie{
		Name:   sc.Name,
		Value:  sc.Value,
		Domain: targetURL.Hostname(),
		Path:   "/",
	}

	inspected := inspectedCookie{
		Name:   cookie.Name,
		Value:  cookie.Value,
		Domain: cookie.Domain,
		Path:   cookie.Path,
	}

	if raw, ok := sc.Attribute(i.handler.AttributeName()); ok {
		cookie.RawExpires = raw
		if err := i.handler.Parse(&cookie, raw); err != nil {
			inspected.Error = err.Error()
			if i.policy == policyRejectCookie {
				inspected.Rejected = true
				log.Debug().Str("cookie", cookie.Name).Str("expires", raw).Msg("Rejecting cookie")
				return inspected
			}
			log.Debug().Str("cookie", cookie.Name).Str("expires", raw).Msg("Dropping expires attribute")
		}
	}

	inspected.Session = cookie.Session()
	if !cookie.Session() {
		inspected.Expires = cookie.Expires.Format(time.RFC3339)
	}

	if err := i.store.Put(cookie); err != nil {
		log.Error().Err(err).Str("cookie", cookie.Name).Msg("Could not store cookie")
		inspected.Error = err.Error()
	}
	return inspected
}

func (i *inspector) handleCookies(w http.ResponseWriter, r *http.Request) {
	if err := i.store.PurgeExpired(); err != nil {
		log.Error().Err(err).Msg("Could not purge expired cookies")
	}
	cookies, err := i.store.All(r.URL.Query().Get("domain"))
	if err != nil {
		log.Error().Err(err).Msg("Could not list cookies")
		http.Error(w, "Could not list cookies", http.StatusInternalServerError)
		return
	}
	list := make([]inspectedCookie, 0, len(cookies))
	for _, cookie := range cookies {
		inspected := inspectedCookie{
			Name:    cookie.Name,
			Value:   cookie.Value,
			Domain:  cookie.Domain,
			Path:    cookie.Path,
			Session: cookie.Session(),
		}
		if !cookie.Session() {
			inspected.Expires = cookie.Expires.Format(time.RFC3339)
		}
		list = append(list, inspected)
	}
	sendJSON(w, list)
}

func sendJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Error writing to client")
	}
}
