package config

import "fmt"

// Loader loads all configuration files for a pipeline run. Empty paths
// fall back to the embedded defaults.
type Loader struct {
	TunablesPath  string
	StopwordsPath string
	DenylistPath  string
}

// Settings holds the loaded configuration for a pipeline run.
type Settings struct {
	Tunables  Tunables
	Stopwords Stopwords
	Denylist  Denylist
}

// Load reads all configuration files and returns the assembled settings.
func (l *Loader) Load() (*Settings, error) {
	s := &Settings{
		Tunables:  DefaultTunables(),
		Stopwords: DefaultStopwords(),
		Denylist:  DefaultDenylist(),
	}

	if l.TunablesPath != "" {
		tun, err := LoadTunables(l.TunablesPath)
		if err != nil {
			return nil, fmt.Errorf("load tunables: %w", err)
		}
		s.Tunables = tun
	}

	if l.StopwordsPath != "" {
		sw, err := LoadStopwords(l.StopwordsPath)
		if err != nil {
			return nil, fmt.Errorf("load stopwords: %w", err)
		}
		s.Stopwords = sw
	}

	if l.DenylistPath != "" {
		dl, err := LoadDenylist(l.DenylistPath)
		if err != nil {
			return nil, fmt.Errorf("load denylist: %w", err)
		}
		s.Denylist = dl
	}

	return s, nil
}
