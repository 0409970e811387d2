package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/clearlend/docmatch/internal/dedup"
	"github.com/clearlend/docmatch/internal/ingest"
	"github.com/clearlend/docmatch/internal/labels"
	"github.com/clearlend/docmatch/internal/model"
)

var dedupeCmd = &cobra.Command{
	Use:   "dedupe <dir>",
	Short: "Label duplicate documents in an extraction feed",
	Long: `Loads extracted-document JSON files and labels each record as
original, duplicate, or error. When <dir> contains subdirectories, each
one is treated as a separate document category and deduplicated
concurrently; otherwise <dir> itself is the single category.

Records are grouped by the key label (e.g. loan number) and each group
is resolved by the configured strategy. Results print as JSON lines.

Examples:
  # Signed-and-dated beats signed-only beats unsigned
  dedupe ./feed --strategy signature-date

  # Keep certified copies when present
  dedupe ./feed --strategy preferred --prefer-substring certified`,
	Args: cobra.ExactArgs(1),
	RunE: runDedupe,
}

func init() {
	f := dedupeCmd.Flags()
	f.String("strategy", "", "all-original, filename, signature, preferred, or signature-date (default from config)")
	f.String("skill", "", "extraction skill holding the dedup labels (default from config)")
	f.String("key-label", "", "label extracted as the grouping key (default from config)")
	f.String("signature-label", "", "label extracted as the signature value (default from config)")
	f.String("signature-date-label", "", "label extracted as the signature date (default from config)")
	f.String("prefer-substring", "", "filename substring preferred by the preferred strategy (default from config)")

	rootCmd.AddCommand(dedupeCmd)
}

func runDedupe(cmd *cobra.Command, args []string) error {
	dir := args[0]

	strategy := flagOrConfig(cmd, "strategy", cfg.Dedup.Strategy)
	switch dedup.Strategy(strategy) {
	case dedup.StrategyAllOriginal, dedup.StrategyFilename, dedup.StrategySignature,
		dedup.StrategyPreferred, dedup.StrategySignatureDate:
	default:
		return eris.Errorf("dedupe: unknown strategy %q", strategy)
	}

	skill := flagOrConfig(cmd, "skill", cfg.Dedup.Skill)
	keyLabel := flagOrConfig(cmd, "key-label", cfg.Dedup.KeyLabel)
	signatureLabel := flagOrConfig(cmd, "signature-label", cfg.Dedup.SignatureLabel)
	signatureDateLabel := flagOrConfig(cmd, "signature-date-label", cfg.Dedup.SignatureDateLabel)
	preferSubstring := flagOrConfig(cmd, "prefer-substring", cfg.Dedup.PreferSubstring)

	dirs, err := ingest.Subdirs(dir)
	if err != nil {
		return err
	}
	if len(dirs) == 0 {
		dirs = []string{dir}
	}

	engine := dedup.New(dedup.Strategy(strategy), func(d *model.DocumentRecord) (string, error) {
		doc, err := labels.Parse(d.Data)
		if err != nil {
			return "", err
		}
		key := doc.First(skill, keyLabel)
		if key == "" {
			return "", eris.Errorf("label %q not found", keyLabel)
		}
		return key, nil
	}).WithSignature(func(d *model.DocumentRecord) bool {
		doc, err := labels.Parse(d.Data)
		if err != nil {
			return false
		}
		return dedup.ValidSignature(doc.First(skill, signatureLabel))
	}).WithSignatureDate(func(d *model.DocumentRecord) string {
		doc, err := labels.Parse(d.Data)
		if err != nil {
			return ""
		}
		return doc.First(skill, signatureDateLabel)
	}).WithPrefer(func(d *model.DocumentRecord) bool {
		return preferSubstring != "" &&
			strings.Contains(strings.ToLower(d.Filename), strings.ToLower(preferSubstring))
	})

	var mu sync.Mutex
	var labeled []*model.DocumentRecord

	g := new(errgroup.Group)
	for _, categoryDir := range dirs {
		categoryDir := categoryDir
		g.Go(func() error {
			docs, err := ingest.LoadDir(categoryDir)
			if err != nil {
				return err
			}
			engine.Label(docs)

			mu.Lock()
			labeled = append(labeled, docs...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	var originals, duplicates, errored int
	for _, d := range labeled {
		switch d.Status {
		case model.StatusOriginal:
			originals++
		case model.StatusDuplicate:
			duplicates++
		case model.StatusError:
			errored++
		}
		// Extracted data stays out of the report; only the labeling matters.
		d.Data = nil
		if err := enc.Encode(d); err != nil {
			return eris.Wrap(err, "dedupe: encode record")
		}
	}

	zap.L().Info("dedupe complete",
		zap.Int("originals", originals),
		zap.Int("duplicates", duplicates),
		zap.Int("errors", errored),
	)
	fmt.Fprintf(os.Stderr, "%d originals, %d duplicates, %d errors\n", originals, duplicates, errored)
	return nil
}

// flagOrConfig returns the flag value when set, the config value otherwise.
func flagOrConfig(cmd *cobra.Command, name, fallback string) string {
	if v, _ := cmd.Flags().GetString(name); v != "" {
		return v
	}
	return fallback
}
