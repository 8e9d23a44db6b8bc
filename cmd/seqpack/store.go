package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/hupe1980/seqpack"
	"github.com/hupe1980/seqpack/blobstore"
	miniostore "github.com/hupe1980/seqpack/blobstore/minio"
	s3store "github.com/hupe1980/seqpack/blobstore/s3"
	"github.com/hupe1980/seqpack/persistence"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/cobra"
)

var errNoStore = errors.New("--store is required")

// openBlobStore resolves a --store value.
//
//	/path/to/dir                 local directory
//	s3://bucket/prefix           Amazon S3 (default credential chain)
//	s3://bucket/prefix?commit-table=t
//	                             S3 with catalog commits in DynamoDB table t
//	minio://host:port/bucket/p   MinIO over HTTP, credentials from MINIO_* env
//	minios://host:port/bucket/p  MinIO over HTTPS
func openBlobStore(ctx context.Context, uri string) (blobstore.Store, error) {
	if uri == "" {
		return nil, errNoStore
	}
	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" || u.Scheme == "file" {
		if err == nil && u.Scheme == "file" {
			uri = u.Path
		}
		return blobstore.NewLocalStore(uri), nil
	}

	switch u.Scheme {
	case "s3":
		prefix := s3store.WithPrefix(strings.Trim(u.Path, "/"))
		if table := u.Query().Get("commit-table"); table != "" {
			return s3store.NewWithCommits(ctx, u.Host, table, prefix)
		}
		return s3store.New(ctx, u.Host, prefix)

	case "minio", "minios":
		bucket, prefix, _ := strings.Cut(strings.Trim(u.Path, "/"), "/")
		if bucket == "" {
			return nil, fmt.Errorf("store %q: missing bucket", uri)
		}
		client, err := minio.New(u.Host, &minio.Options{
			Creds:  credentials.NewEnvMinio(),
			Secure: u.Scheme == "minios",
		})
		if err != nil {
			return nil, err
		}
		return miniostore.NewStore(client, bucket, prefix), nil

	default:
		return nil, fmt.Errorf("store %q: unsupported scheme %q", uri, u.Scheme)
	}
}

func (c *cli) openStore(ctx context.Context, eng *seqpack.Engine, opts ...persistence.StoreOption) (*persistence.Store, error) {
	blobs, err := openBlobStore(ctx, c.store)
	if err != nil {
		return nil, err
	}
	return eng.OpenStore(blobs, opts...), nil
}

func newPackCmd(c *cli) *cobra.Command {
	var (
		compression string
		id          string
		description string
	)
	cmd := &cobra.Command{
		Use:   "pack <name> <sequence>",
		Short: "Pack a sequence and save it to the store",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			comp, err := persistence.ParseCompression(compression)
			if err != nil {
				return err
			}
			eng, err := c.engine()
			if err != nil {
				return err
			}
			store, err := c.openStore(ctx, eng, persistence.WithCompression(comp))
			if err != nil {
				return err
			}
			seq, err := c.parseSequence(args[1])
			if err != nil {
				return err
			}
			if id != "" {
				seq = seq.WithID(id)
			}
			if description != "" {
				seq = seq.WithDescription(description)
			}
			if err := eng.Save(ctx, store, args[0], seq); err != nil {
				return err
			}

			entry, err := store.Stat(ctx, args[0])
			if err != nil {
				return err
			}
			if c.jsonOut {
				return c.printJSON(cmd.OutOrStdout(), entry)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d symbols\t%d bytes (%s)\n",
				entry.Name, entry.Kind, entry.Length, entry.StoredBytes, entry.Compression)
			return err
		},
	}
	cmd.Flags().StringVar(&compression, "compression", "zstd", "payload compression: none, lz4, zstd")
	cmd.Flags().StringVar(&id, "id", "", "sequence identifier")
	cmd.Flags().StringVar(&description, "description", "", "sequence description")
	return cmd
}

func newUnpackCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "unpack <name>",
		Short: "Load a sequence from the store and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			eng, err := c.engine()
			if err != nil {
				return err
			}
			store, err := c.openStore(ctx, eng)
			if err != nil {
				return err
			}
			seq, err := eng.Load(ctx, store, args[0])
			if err != nil {
				return err
			}
			defer eng.Release(seq)

			if c.jsonOut {
				meta := seq.Metadata()
				return c.printJSON(cmd.OutOrStdout(), map[string]any{
					"name":        args[0],
					"kind":        seq.Kind().String(),
					"id":          meta.ID,
					"description": meta.Description,
					"sequence":    seq.String(),
				})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), seq.String())
			return err
		},
	}
}

func newListCmd(c *cli) *cobra.Command {
	var verify bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the sequences in the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			eng, err := c.engine()
			if err != nil {
				return err
			}
			store, err := c.openStore(ctx, eng)
			if err != nil {
				return err
			}
			if verify {
				problems, err := store.Verify(ctx)
				if err != nil {
					return err
				}
				for name, perr := range problems {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", name, perr)
				}
				if len(problems) > 0 {
					return fmt.Errorf("%d damaged sequences", len(problems))
				}
			}

			entries, err := store.List(ctx)
			if err != nil {
				return err
			}
			if c.jsonOut {
				return c.printJSON(cmd.OutOrStdout(), entries)
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d\t%s\n", e.Name, e.Kind, e.Length, e.ID)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&verify, "verify", false, "decode every blob and check its checksum")
	return cmd
}
