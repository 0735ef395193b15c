package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/yago-123/addrange"
)

func main() {
	var (
		cfg        Config
		configFile string
		allocate   int
		holder     string
		logLevel   string
		dump       bool
	)

	app := kingpin.New("addrange", "Allocate and release addresses from a range.")
	app.HelpFlag.Short('h')
	app.Flag("config", "YAML seed file with the range and existing leases").StringVar(&configFile)
	app.Flag("cidr", "Network to manage, e.g. 10.0.0.0/24").StringVar(&cfg.CIDR)
	app.Flag("first", "First address of the range").StringVar(&cfg.First)
	app.Flag("last", "Last address of the range").StringVar(&cfg.Last)
	app.Flag("loose-cidr", "Accept a CIDR whose address has host bits set").BoolVar(&cfg.LooseCIDR)
	app.Flag("allocate", "Number of addresses to allocate").Default("5").IntVar(&allocate)
	app.Flag("holder", "Holder name prefix for allocated addresses").Default("host").StringVar(&holder)
	app.Flag("log.level", "Only log messages with the given severity or above").Default("info").EnumVar(&logLevel, "debug", "info", "warn", "error")
	app.Flag("dump", "Dump the interval list to stderr when done").BoolVar(&dump)
	kingpin.MustParse(app.Parse(os.Args[1:]))

	logger := newLogger(logLevel)

	if configFile != "" {
		fileCfg, err := loadConfig(configFile)
		if err != nil {
			level.Error(logger).Log("msg", "error loading config", "err", err)
			os.Exit(1)
		}
		mergeFlags(fileCfg, &cfg)
		cfg = *fileCfg
	}

	if err := run(logger, &cfg, allocate, holder, dump); err != nil {
		level.Error(logger).Log("msg", "error running demo", "err", err)
		os.Exit(1)
	}
}

func newLogger(lvl string) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	var allow level.Option
	switch lvl {
	case "debug":
		allow = level.AllowDebug()
	case "warn":
		allow = level.AllowWarn()
	case "error":
		allow = level.AllowError()
	default:
		allow = level.AllowInfo()
	}
	return log.With(level.NewFilter(logger, allow), "ts", log.DefaultTimestampUTC)
}

// mergeFlags lets bounds given on the command line override the seed file.
func mergeFlags(dst, flags *Config) {
	if flags.CIDR != "" {
		dst.CIDR = flags.CIDR
	}
	if flags.First != "" {
		dst.First = flags.First
	}
	if flags.Last != "" {
		dst.Last = flags.Last
	}
	if flags.LooseCIDR {
		dst.LooseCIDR = true
	}
}

func run(logger log.Logger, cfg *Config, allocate int, holder string, dump bool) error {
	r, err := cfg.buildRange(addrange.WithLogger(logger))
	if err != nil {
		return err
	}
	defer r.Destroy()
	level.Info(logger).Log("msg", "range ready", "range", r)

	ips := make([]addrange.Address, 0, allocate)
	for i := 0; i < allocate; i++ {
		ip, errAllocation := r.Allocate(fmt.Sprintf("%s-%d", holder, i))
		if errAllocation != nil {
			level.Warn(logger).Log("msg", "error allocating address", "err", errAllocation)
			break
		}
		level.Info(logger).Log("msg", "allocated address", "addr", ip)
		ips = append(ips, ip)
	}

	level.Info(logger).Log("msg", "taking snapshot of the range")
	snapshot, err := r.Snapshot()
	if err != nil {
		return err
	}

	for _, ip := range ips {
		if errRelease := r.Free(ip.Addr()); errRelease != nil {
			level.Warn(logger).Log("msg", "error releasing address", "addr", ip, "err", errRelease)
			continue
		}
		level.Info(logger).Log("msg", "released address", "addr", ip)
	}

	level.Info(logger).Log("msg", "recreating range from snapshot")
	restored, err := addrange.NewFromSnapshot(snapshot, addrange.WithLogger(logger))
	if err != nil {
		return err
	}
	defer restored.Destroy()

	it := restored.OccupiedAddrs()
	for n := range it.Seq() {
		occ, ok := n.(addrange.OccupiedAddress)
		if !ok {
			continue
		}
		level.Info(logger).Log("msg", "restored lease", "addr", occ.Address, "holder", occ.Holder)
	}
	it.Close()

	if dump {
		return restored.Dump(os.Stderr)
	}
	return nil
}
