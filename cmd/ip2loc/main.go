// Command ip2loc looks up, inspects and exports IP2Location binary databases.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/proipinfo/ip2loc"
)

const version = "0.4.0"

// Globals are the flags shared by every command.
type Globals struct {
	DB        string `name:"db" short:"d" help:"Path to the database file (.BIN, optionally gzip/zstd/zip/xz/lz4 compressed)" env:"IP2LOC_DB" type:"path"`
	Mmap      bool   `help:"Memory-map uncompressed databases instead of reading them"`
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error)" default:"warn" env:"IP2LOC_LOG_LEVEL"`
	LogFormat string `name:"log-format" help:"Log format" enum:"text,json" default:"text"`

	stdout io.Writer `kong:"-"`
}

// CLI defines the command-line interface.
type CLI struct {
	Globals

	Lookup  LookupCmd  `cmd:"" help:"Look up one or more addresses"`
	Export  ExportCmd  `cmd:"" help:"Export every record of the database"`
	Info    InfoCmd    `cmd:"" help:"Show database header information"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

func (g *Globals) logger() (*ip2loc.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(g.LogLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", g.LogLevel, err)
	}
	if g.LogFormat == "json" {
		return ip2loc.NewJSONLogger(os.Stderr, level), nil
	}
	return ip2loc.NewTextLogger(os.Stderr, level), nil
}

func (g *Globals) open() (*ip2loc.DB, error) {
	if g.DB == "" {
		return nil, fmt.Errorf("no database given: use --db or IP2LOC_DB")
	}
	logger, err := g.logger()
	if err != nil {
		return nil, err
	}
	opts := []ip2loc.Option{ip2loc.WithLogger(logger)}
	if g.Mmap {
		opts = append(opts, ip2loc.WithMmap())
	}
	return ip2loc.Open(g.DB, opts...)
}

// LookupCmd resolves addresses concurrently and prints one JSON value per
// address, in argument order. Addresses outside every range print null.
type LookupCmd struct {
	Addrs  []string `arg:"" name:"addr" help:"IPv4 or IPv6 addresses"`
	Jobs   int      `short:"j" help:"Concurrent lookups" default:"8"`
	Fields []string `short:"f" help:"Only print these fields (e.g. country_short,city)" sep:","`
}

func (c *LookupCmd) Run(g *Globals) error {
	fields := make([]ip2loc.Field, 0, len(c.Fields))
	for _, name := range c.Fields {
		f, ok := ip2loc.ParseField(strings.TrimSpace(name))
		if !ok {
			return fmt.Errorf("unknown field %q", name)
		}
		fields = append(fields, f)
	}

	db, err := g.open()
	if err != nil {
		return err
	}
	defer db.Close()

	results := make([]*ip2loc.Record, len(c.Addrs))
	var eg errgroup.Group
	eg.SetLimit(max(c.Jobs, 1))
	for i, addr := range c.Addrs {
		eg.Go(func() error {
			rec, err := db.Lookup(addr)
			if err != nil {
				return fmt.Errorf("lookup %s: %w", addr, err)
			}
			results[i] = rec
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	enc := json.NewEncoder(g.stdout)
	for _, rec := range results {
		var v any = rec
		if rec != nil && len(fields) > 0 {
			v = project(rec, fields)
		}
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return nil
}

func project(rec *ip2loc.Record, fields []ip2loc.Field) map[string]string {
	out := map[string]string{"ip": rec.IP}
	for _, f := range fields {
		if v, ok := rec.Get(f); ok {
			out[f.String()] = v
		}
	}
	return out
}

// ExportCmd streams every record to a file or stdout.
type ExportCmd struct {
	Format string `help:"Output format" enum:"jsonl,msgpack" default:"jsonl"`
	Out    string `short:"o" help:"Output file (default stdout)" type:"path"`
}

func (c *ExportCmd) Run(g *Globals) error {
	format, err := ip2loc.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	db, err := g.open()
	if err != nil {
		return err
	}
	defer db.Close()

	w := g.stdout
	if c.Out != "" {
		f, err := os.Create(c.Out)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	n, err := ip2loc.Export(context.Background(), db, w, format)
	if err != nil {
		return err
	}
	if c.Out != "" {
		fmt.Fprintf(os.Stderr, "Exported %d records to %s\n", n, c.Out)
	}
	return nil
}

// InfoCmd prints the database header.
type InfoCmd struct{}

func (c *InfoCmd) Run(g *Globals) error {
	db, err := g.open()
	if err != nil {
		return err
	}
	defer db.Close()

	h := db.Header()
	sum, err := db.Fingerprint()
	if err != nil {
		return err
	}
	names := make([]string, 0, len(h.Fields()))
	for _, f := range h.Fields() {
		names = append(names, f.String())
	}

	w := g.stdout
	fmt.Fprintf(w, "Database:   %s\n", g.DB)
	fmt.Fprintf(w, "Size:       %s\n", humanize.Bytes(uint64(db.Size())))
	fmt.Fprintf(w, "BLAKE3:     %s\n", sum)
	fmt.Fprintf(w, "Type:       DB%d\n", h.Type)
	fmt.Fprintf(w, "Date:       %s\n", h.Date().Format("2006-01-02"))
	fmt.Fprintf(w, "Columns:    %d\n", h.ColumnCount)
	fmt.Fprintf(w, "IPv4 rows:  %s (index: %t)\n", humanize.Comma(int64(h.IPv4Count)), h.IPv4IndexBase != 0)
	fmt.Fprintf(w, "IPv6 rows:  %s (index: %t)\n", humanize.Comma(int64(h.IPv6Count)), h.IPv6IndexBase != 0)
	fmt.Fprintf(w, "Fields:     %s\n", strings.Join(names, ", "))
	return nil
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run(g *Globals) error {
	fmt.Fprintf(g.stdout, "ip2loc version %s\n", version)
	return nil
}

func run(args []string, stdout io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("ip2loc"),
		kong.Description("IP2Location binary database lookup and export"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cli.stdout = stdout
	return ctx.Run(&cli.Globals)
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "ip2loc: %v\n", err)
		os.Exit(1)
	}
}
