package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mixtli/dungeon-lab-sub000/internal/errors"
	documentrepo "github.com/mixtli/dungeon-lab-sub000/internal/repositories/document"
)

func newVerifyCommand(opts *cliOptions) *cobra.Command {
	var (
		redisAddrs []string
		remove     bool
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Scan the redis document sink for corrupted documents",
		Long: `Scan every document stored in redis and list those that no longer decode
or are stored under the wrong key. With --delete they are removed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("redis-addr") {
				opts.cfg.RedisAddrs = redisAddrs
			}
			if len(opts.cfg.RedisAddrs) == 0 {
				return errors.InvalidArgument("a redis address is required")
			}

			repo, closeRepo, err := newDocumentRepository(cmd.Context(), opts.cfg)
			if err != nil {
				return err
			}
			defer closeRepo()

			output, err := repo.Verify(cmd.Context(), &documentrepo.VerifyInput{Delete: remove})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, key := range output.Corrupt {
				fmt.Fprintf(w, "corrupted: %s\n", key)
			}
			fmt.Fprintf(w, "Checked %d documents, found %d corrupted", output.Checked, len(output.Corrupt))
			if remove {
				fmt.Fprintf(w, ", deleted %d", output.Deleted)
			}
			fmt.Fprintln(w)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&redisAddrs, "redis-addr", nil, "Redis address (repeatable)")
	cmd.Flags().BoolVar(&remove, "delete", false, "Delete the corrupted documents")
	return cmd
}
