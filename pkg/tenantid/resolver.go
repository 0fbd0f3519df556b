package tenantid

import (
	"fmt"
	"net"
	"net/http"
	"regexp"
	"strings"
)

// Source identifies where a tenant identifier was extracted from.
type Source string

const (
	SourceHeader       Source = "header"
	SourceSubdomain    Source = "subdomain"
	SourcePath         Source = "path"
	SourceCustomDomain Source = "custom-domain"
)

// Identity is a resolved tenant identifier together with its origin.
// The source determines which directory lookup field applies: slugs for
// header, subdomain and path sources, registered hostnames for
// custom-domain.
type Identity struct {
	Identifier string
	Source     Source
}

const (
	// MaxIdentifierLength keeps slugs DNS-compatible and bounds lookup keys.
	MaxIdentifierLength = 63
)

// slugPattern ensures DNS-safe tenant slugs: alphanumeric start, allows hyphens.
var slugPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*$`)

// Config holds the platform routing conventions, read once at process start.
type Config struct {
	BaseDomain         string   `env:"PLATFORM_BASE_DOMAIN" envDefault:"omnex.app"`
	ReservedSubdomains []string `env:"PLATFORM_RESERVED_SUBDOMAINS" envDefault:"admin,www,api,app"`
	TenantPathPrefix   string   `env:"PLATFORM_TENANT_PATH_PREFIX" envDefault:"/tenant/"`
	AdminPathPrefix    string   `env:"PLATFORM_ADMIN_PATH_PREFIX" envDefault:"/admin"`
	OverrideHeader     string   `env:"PLATFORM_TENANT_OVERRIDE_HEADER" envDefault:"X-Omnex-Tenant"`
}

// Resolver extracts tenant identity from request metadata. It holds only
// immutable configuration and is safe for concurrent use.
type Resolver struct {
	baseDomain       string
	baseSuffix       string
	reserved         map[string]struct{}
	tenantPathPrefix string
	adminPathPrefix  string
	overrideHeader   string
}

// NewResolver builds a Resolver from config, applying defaults for any
// zero-value field so a partially filled Config still behaves sensibly.
func NewResolver(cfg Config) *Resolver {
	if cfg.BaseDomain == "" {
		cfg.BaseDomain = "omnex.app"
	}
	if len(cfg.ReservedSubdomains) == 0 {
		cfg.ReservedSubdomains = []string{"admin", "www", "api", "app"}
	}
	if cfg.TenantPathPrefix == "" {
		cfg.TenantPathPrefix = "/tenant/"
	}
	if cfg.AdminPathPrefix == "" {
		cfg.AdminPathPrefix = "/admin"
	}
	if cfg.OverrideHeader == "" {
		cfg.OverrideHeader = "X-Omnex-Tenant"
	}

	reserved := make(map[string]struct{}, len(cfg.ReservedSubdomains))
	for _, s := range cfg.ReservedSubdomains {
		reserved[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}

	return &Resolver{
		baseDomain:       strings.ToLower(cfg.BaseDomain),
		baseSuffix:       "." + strings.ToLower(cfg.BaseDomain),
		reserved:         reserved,
		tenantPathPrefix: cfg.TenantPathPrefix,
		adminPathPrefix:  cfg.AdminPathPrefix,
		overrideHeader:   cfg.OverrideHeader,
	}
}

// Resolve extracts a tenant identity from request metadata, in strict
// precedence order:
//
//  1. Explicit override header (trusted internal callers).
//  2. Subdomain of the platform base domain, excluding reserved slugs.
//  3. Tenant path prefix segment: /tenant/<slug>/... (fallback for
//     environments without wildcard subdomain routing).
//  4. Bare custom hostname: registered custom domains are validated by the
//     tenant directory, not here.
//
// Returns nil when no tenant identifier is present. The header lookup
// function may be nil when no headers are available.
func (r *Resolver) Resolve(host, path string, header func(string) string) (*Identity, error) {
	if header != nil {
		if v := strings.TrimSpace(header(r.overrideHeader)); v != "" {
			if !isValidSlug(v) {
				return nil, fmt.Errorf("%w: header value %q", ErrInvalidIdentifier, v)
			}
			return &Identity{Identifier: v, Source: SourceHeader}, nil
		}
	}

	host = normalizeHost(host)

	if slug, ok := r.subdomainSlug(host); ok {
		if _, res := r.reserved[slug]; !res {
			return &Identity{Identifier: slug, Source: SourceSubdomain}, nil
		}
	}

	if slug, ok := r.pathSlug(path); ok {
		if !isValidSlug(slug) {
			return nil, fmt.Errorf("%w: path segment %q", ErrInvalidIdentifier, slug)
		}
		return &Identity{Identifier: slug, Source: SourcePath}, nil
	}

	if r.isCustomDomain(host) {
		return &Identity{Identifier: host, Source: SourceCustomDomain}, nil
	}

	return nil, nil
}

// ResolveRequest is a convenience wrapper over Resolve for HTTP handlers.
func (r *Resolver) ResolveRequest(req *http.Request) (*Identity, error) {
	return r.Resolve(req.Host, req.URL.Path, req.Header.Get)
}

// IsPlatformAdmin classifies a request as targeting the platform-admin
// surface. The check is independent of tenant resolution and performs no I/O.
func (r *Resolver) IsPlatformAdmin(host, path string) bool {
	host = normalizeHost(host)
	if slug, ok := r.subdomainSlug(host); ok && slug == "admin" {
		return true
	}
	return path == r.adminPathPrefix || strings.HasPrefix(path, r.adminPathPrefix+"/")
}

// subdomainSlug returns the leading label when host is <slug>.<baseDomain>.
func (r *Resolver) subdomainSlug(host string) (string, bool) {
	if !strings.HasSuffix(host, r.baseSuffix) {
		return "", false
	}
	slug := host[:len(host)-len(r.baseSuffix)]
	if slug == "" || strings.Contains(slug, ".") || !isValidSlug(slug) {
		return "", false
	}
	return slug, true
}

// pathSlug returns the segment following the tenant path prefix.
func (r *Resolver) pathSlug(path string) (string, bool) {
	if !strings.HasPrefix(path, r.tenantPathPrefix) {
		return "", false
	}
	rest := strings.TrimPrefix(path, r.tenantPathPrefix)
	if rest == "" {
		return "", false
	}
	if idx := strings.IndexByte(rest, '/'); idx != -1 {
		rest = rest[:idx]
	}
	return rest, rest != ""
}

// isCustomDomain reports whether host is a plausible registered custom
// hostname: present, not localhost or an IP literal, not part of the
// platform base domain, and structured as a real hostname.
func (r *Resolver) isCustomDomain(host string) bool {
	if host == "" || host == "localhost" {
		return false
	}
	if host == r.baseDomain || strings.HasSuffix(host, r.baseSuffix) {
		return false
	}
	if !strings.Contains(host, ".") {
		return false
	}
	if net.ParseIP(host) != nil {
		return false
	}
	return true
}

// normalizeHost lowercases the host and strips any port suffix.
func normalizeHost(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.ToLower(strings.TrimSpace(host))
}

func isValidSlug(s string) bool {
	if s == "" || len(s) > MaxIdentifierLength {
		return false
	}
	return slugPattern.MatchString(s)
}
