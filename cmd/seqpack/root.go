package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/hupe1980/seqpack"
	"github.com/hupe1980/seqpack/alphabet"
	"github.com/hupe1980/seqpack/codec"
	"github.com/hupe1980/seqpack/sequence"
	"github.com/spf13/cobra"
)

// cli holds the global flags shared by all subcommands.
type cli struct {
	configPath string
	workers    int
	chunkSize  int
	kind       string
	jsonOut    bool
	logLevel   string
	store      string

	cfg seqpack.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{cfg: seqpack.DefaultConfig()}

	root := &cobra.Command{
		Use:           "seqpack",
		Short:         "Bit-packed DNA, RNA and protein sequences with parallel pattern search",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.loadConfig(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "YAML engine configuration file")
	pf.IntVar(&c.workers, "workers", 0, "worker pool size (0 uses GOMAXPROCS)")
	pf.IntVar(&c.chunkSize, "chunk-size", 0, "symbols per chunk (0 derives from the alphabet)")
	pf.StringVar(&c.kind, "kind", "", "alphabet: dna, rna, dna-iupac, rna-iupac, protein (default: detect)")
	pf.BoolVar(&c.jsonOut, "json", false, "print JSON")
	pf.StringVar(&c.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&c.store, "store", "", "sequence store: a directory, s3://bucket/prefix or minio://host/bucket/prefix")

	root.AddCommand(
		newFindCmd(c),
		newAlignCmd(c),
		newRevcompCmd(c),
		newStatsCmd(c),
		newPackCmd(c),
		newUnpackCmd(c),
		newListCmd(c),
	)
	return root
}

// loadConfig merges the config file and the flags that were set.
func (c *cli) loadConfig(cmd *cobra.Command) error {
	if c.configPath != "" {
		cfg, err := seqpack.LoadConfig(c.configPath)
		if err != nil {
			return err
		}
		c.cfg = cfg
	}
	flags := cmd.Flags()
	if flags.Changed("workers") {
		c.cfg.Workers = c.workers
	}
	if flags.Changed("chunk-size") {
		c.cfg.ChunkSize = c.chunkSize
	}
	if flags.Changed("log-level") {
		c.cfg.LogLevel = c.logLevel
	}
	return c.cfg.Validate()
}

func (c *cli) engine() (*seqpack.Engine, error) {
	opts := []seqpack.Option{seqpack.WithConfig(c.cfg)}
	if c.cfg.LogLevel == "" {
		opts = append(opts, seqpack.WithLogLevel(slog.LevelWarn))
	}
	return seqpack.New(opts...)
}

// sequenceKind returns the --kind alphabet, or the narrowest alphabet
// that accepts raw.
func (c *cli) sequenceKind(raw string) (alphabet.Kind, error) {
	if c.kind == "" {
		a, ok := alphabet.Detect([]byte(raw))
		if !ok {
			return 0, fmt.Errorf("%w: no alphabet accepts the input", seqpack.ErrInvalidSymbol)
		}
		return a.Kind(), nil
	}
	kind, ok := alphabet.ParseKind(c.kind)
	if !ok {
		return 0, fmt.Errorf("%w: %q", seqpack.ErrUnknownKind, c.kind)
	}
	return kind, nil
}

// parseSequence packs a sequence argument.
func (c *cli) parseSequence(raw string) (*sequence.Packed, error) {
	raw = strings.TrimSpace(raw)
	kind, err := c.sequenceKind(raw)
	if err != nil {
		return nil, err
	}
	return seqpack.BuildString(kind, raw)
}

func (c *cli) printJSON(w io.Writer, v any) error {
	data, err := codec.GoJSON{}.MarshalIndent(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
