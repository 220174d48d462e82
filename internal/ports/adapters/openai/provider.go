package openai

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// Provider is an OpenAI-compatible embeddings service known by name.
type Provider struct {
	Name    string
	BaseURL string
}

const DefaultProvider = "openai"

var providers = []Provider{
	{Name: "openai", BaseURL: "https://api.openai.com/v1"},
	{Name: "openrouter", BaseURL: "https://openrouter.ai/api/v1"},
}

// ProviderNames lists the known providers in a stable order.
func ProviderNames() []string {
	out := make([]string, len(providers))
	for i, p := range providers {
		out[i] = p.Name
	}
	return out
}

// LookupProvider finds a provider by name; an empty name selects the default.
func LookupProvider(name string) (Provider, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultProvider
	}
	for _, p := range providers {
		if p.Name == name {
			return p, nil
		}
	}
	return Provider{}, fmt.Errorf("unknown provider %q (want one of %s)", name, strings.Join(ProviderNames(), ", "))
}

// Host is the hostname of the provider's base URL.
func (p Provider) Host() string {
	u, err := url.Parse(p.BaseURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// ResolveBaseURL returns the endpoint to call: baseURL when set, otherwise
// the provider's own URL, without a trailing slash. The result must be an
// absolute https URL without userinfo, query or fragment, whose host is in
// allowedHosts. An empty allowedHosts admits only the provider's host.
func ResolveBaseURL(provider, baseURL string, allowedHosts []string) (string, error) {
	p, err := LookupProvider(provider)
	if err != nil {
		return "", err
	}
	raw := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if raw == "" {
		raw = p.BaseURL
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid OPENAI_BASE_URL: %w", err)
	}
	if reason := urlProblem(u); reason != "" {
		return "", fmt.Errorf("invalid OPENAI_BASE_URL %q: %s", raw, reason)
	}

	allowed := hostList(allowedHosts)
	if len(allowed) == 0 {
		allowed = []string{p.Host()}
	}
	if host := strings.ToLower(u.Hostname()); !slices.Contains(allowed, host) {
		return "", fmt.Errorf("invalid OPENAI_BASE_URL %q: host %q is not in OPENAI_ALLOWED_HOSTS (%s)", raw, host, strings.Join(allowed, ", "))
	}
	return raw, nil
}

func urlProblem(u *url.URL) string {
	switch {
	case !u.IsAbs() || u.Host == "":
		return "absolute URL with host is required"
	case u.User != nil:
		return "userinfo is not allowed"
	case u.RawQuery != "" || u.Fragment != "":
		return "query and fragment are not allowed"
	case !strings.EqualFold(u.Scheme, "https"):
		return "https is required"
	}
	return ""
}

// hostList reduces entries such as "https://Host:8443/" to bare lowercase
// hostnames and drops blanks.
func hostList(entries []string) []string {
	var out []string
	for _, e := range entries {
		h := strings.ToLower(strings.TrimSpace(e))
		if i := strings.Index(h, "://"); i >= 0 {
			h = h[i+3:]
		}
		h, _, _ = strings.Cut(h, "/")
		h, _, _ = strings.Cut(h, ":")
		if h != "" && !slices.Contains(out, h) {
			out = append(out, h)
		}
	}
	return out
}
