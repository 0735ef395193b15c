package main

import (
	"bytes"
	"net/netip"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/yago-123/addrange"
)

// Config is the optional YAML seed file of the demo: the range to manage and
// the leases already handed out.
type Config struct {
	// CIDR takes precedence over First/Last when set
	CIDR      string        `yaml:"cidr"`
	First     string        `yaml:"first"`
	Last      string        `yaml:"last"`
	LooseCIDR bool          `yaml:"loose_cidr"`
	Leases    []LeaseConfig `yaml:"leases"`
}

// LeaseConfig is an address already occupied by a holder.
type LeaseConfig struct {
	Address string `yaml:"address"`
	Holder  string `yaml:"holder"`
}

func loadConfig(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	return &cfg, nil
}

// buildRange constructs the configured range and occupies the seed leases.
func (c *Config) buildRange(opts ...addrange.Option) (*addrange.Range, error) {
	var (
		r   *addrange.Range
		err error
	)
	switch {
	case c.CIDR != "":
		if c.LooseCIDR {
			opts = append(opts, addrange.WithLooseCIDR())
		}
		r, err = addrange.ParseCIDR(c.CIDR, opts...)
	case c.First != "" && c.Last != "":
		r, err = addrange.Parse(c.First, c.Last, opts...)
	default:
		return nil, errors.New("either cidr or first and last must be set")
	}
	if err != nil {
		return nil, err
	}

	for _, l := range c.Leases {
		ip, errParse := netip.ParseAddr(l.Address)
		if errParse != nil {
			return nil, errors.Wrapf(errParse, "lease %q", l.Address)
		}
		if errOccupy := r.Occupy(ip, l.Holder); errOccupy != nil {
			return nil, errors.Wrapf(errOccupy, "lease %q", l.Address)
		}
	}
	return r, nil
}
