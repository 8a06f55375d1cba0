package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/poiesic/sanctum"
	"github.com/poiesic/sanctum/core"
	"github.com/poiesic/sanctum/pipeline"
)

// seedDocs is a small demo corpus spanning the three visibility tiers. Two
// documents carry PII so a freshly seeded database exercises masking and the
// token vault.
var seedDocs = []pipeline.Document{
	{
		Text: "The deployment runbook lives in the platform wiki. Rollbacks are " +
			"triggered from the deploy dashboard and complete within five minutes.",
		Metadata: core.DocumentMetadata{
			TenantID: "acme", ProjectID: "handbook", Department: "platform",
			Source: "wiki", Visibility: core.VisibilityPublic,
			OwnerUserID: "ops-bot",
		},
	},
	{
		Text: "Quarterly infrastructure budget review.\n\nSpending on managed " +
			"databases grew 12% quarter over quarter. The savings plan renewal " +
			"is due in November.",
		Metadata: core.DocumentMetadata{
			TenantID: "acme", ProjectID: "handbook", Department: "finance",
			Source: "reports", Classification: core.ClassificationConfidential,
			Visibility: core.VisibilityShared, OwnerUserID: "u-finance-lead",
			GroupIDs: []string{"finance", "leadership"},
		},
	},
	{
		Text: "Incident 4821 postmortem. Paging escalation reached Jane Doe at " +
			"jane.doe@acme.example or 555-014-2248 before the on-call rotation " +
			"was corrected.",
		Metadata: core.DocumentMetadata{
			TenantID: "acme", ProjectID: "handbook", Department: "platform",
			Source: "incidents", Visibility: core.VisibilityShared,
			OwnerUserID: "u-sre-1", GroupIDs: []string{"sre"},
		},
	},
	{
		Text: "Personal interview notes. Candidate can be reached at " +
			"candidate@mail.example for the follow-up round.",
		Metadata: core.DocumentMetadata{
			TenantID: "acme", ProjectID: "handbook", Department: "people",
			Source: "notes", Visibility: core.VisibilityPrivate,
			OwnerUserID: "u-recruiter",
		},
	},
	{
		Text: "Globex onboarding checklist. New hires request hardware through " +
			"the portal and complete security training in the first week.",
		Metadata: core.DocumentMetadata{
			TenantID: "globex", ProjectID: "onboarding", Department: "people",
			Source: "wiki", Visibility: core.VisibilityPublic,
			OwnerUserID: "hr-bot",
		},
	},
}

var (
	dbPath = flag.String("db", "./sanctum_db", "path to BadgerDB database directory")
	secret = flag.String("secret", "seed-secret", "pseudonymization secret")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func main() {
	kb, err := sanctum.Open(*dbPath, *secret)
	if err != nil {
		panic(err)
	}
	defer kb.Close()

	ingestor, err := kb.NewBatchIngestor(2)
	if err != nil {
		panic(err)
	}
	defer ingestor.Release()

	results, err := ingestor.IngestAll(context.Background(), seedDocs)
	if err != nil {
		panic(err)
	}

	indexed := 0
	for i, res := range results {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "document %d failed: %v\n", i, res.Err)
			continue
		}
		indexed += res.Result.ChunksIndexed
	}
	fmt.Printf("Seeded %d documents, %d chunks indexed\n", len(seedDocs), indexed)
}
