package config

import "sort"

// TargetConfig holds settings for one target URL prefix.
type TargetConfig struct {
	// Headers are extra HTTP headers, e.g. a session cookie.
	Headers map[string]string `yaml:"headers,omitempty"`

	// Paths are extra seed paths for this target.
	Paths []string `yaml:"paths,omitempty"`

	// Proxy is a SOCKS5 proxy in "host:port" form.
	Proxy string `yaml:"proxy,omitempty"`

	// UserAgent overrides the default User-Agent.
	UserAgent string `yaml:"userAgent,omitempty"`
}

// File represents the structure of the .protravel configuration file.
type File struct {
	// Targets maps target URL prefixes to their configuration.
	// Keys must match the crawl command's URL argument exactly.
	Targets map[string]TargetConfig `yaml:"targets,omitempty"`

	// Defaults applies to every target unless overridden.
	Defaults TargetConfig `yaml:"defaults,omitempty"`
}

// GetTargetConfig returns the configuration for target merged over defaults.
// Headers merge by name, paths accumulate, scalar fields are replaced.
func (cf *File) GetTargetConfig(target string) TargetConfig {
	result := TargetConfig{
		Proxy:     cf.Defaults.Proxy,
		UserAgent: cf.Defaults.UserAgent,
	}
	if len(cf.Defaults.Headers) > 0 {
		result.Headers = make(map[string]string, len(cf.Defaults.Headers))
		for k, v := range cf.Defaults.Headers {
			result.Headers[k] = v
		}
	}
	result.Paths = append(result.Paths, cf.Defaults.Paths...)

	tc, ok := cf.Targets[target]
	if !ok {
		return result
	}

	if len(tc.Headers) > 0 {
		if result.Headers == nil {
			result.Headers = make(map[string]string, len(tc.Headers))
		}
		for k, v := range tc.Headers {
			result.Headers[k] = v
		}
	}
	result.Paths = append(result.Paths, tc.Paths...)
	if tc.Proxy != "" {
		result.Proxy = tc.Proxy
	}
	if tc.UserAgent != "" {
		result.UserAgent = tc.UserAgent
	}

	return result
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
