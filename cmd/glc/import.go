package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/golives/glc/internal/assets"
	"github.com/golives/glc/internal/assets/gcs"
	assetmemory "github.com/golives/glc/internal/assets/memory"
	"github.com/golives/glc/internal/catalog"
	"github.com/golives/glc/internal/catalog/firebase"
	catmemory "github.com/golives/glc/internal/catalog/memory"
	"github.com/golives/glc/internal/config"
	"github.com/golives/glc/internal/csvfile"
	"github.com/golives/glc/internal/importer"
	"github.com/golives/glc/internal/journal"
	"github.com/golives/glc/internal/types"
)

const banner = `
  ____           _     _                  ____      _        _
 / ___| ___     | |   (_)_   _____  ___  / ___|__ _| |_ __ _| | ___   __ _
| |  _ / _ \ _  | |   | \ \ / / _ \/ __|| |   / _` + "`" + ` | __/ _` + "`" + ` | |/ _ \ / _` + "`" + ` |
| |_| | (_) |_| | |___| |\ V /  __/\__ \| |__| (_| | || (_| | | (_) | (_| |
 \____|\___/    |_____|_| \_/ \___||___/ \____\__,_|\__\__,_|_|\___/ \__, |
                                                                     |___/
`

var (
	importFile    string
	importImages  string
	importCreator string
	importEmail   string
	importDryRun  bool
	importYes     bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import catalog records from a CSV export",
	Long: `Interactively import property-implementation records.

The header is validated against the catalog schema, the first row is
transformed and shown for confirmation, its screenshot is uploaded and the
record written, and after review the remaining rows are imported. Rejecting
the imported trial record deletes the uploaded screenshot and the record.

Example:
  glc import                          # Prompt for everything
  glc import --csv golives.csv --images ./shots
  glc import --dry-run                # Rehearse with no remote writes`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importFile, "csv", "", "import CSV file (prompted if not set)")
	importCmd.Flags().StringVar(&importImages, "images", "", "screenshots folder (prompted if not set)")
	importCmd.Flags().StringVar(&importCreator, "creator", "", "operator name (prompted if not set)")
	importCmd.Flags().StringVar(&importEmail, "email", "", "operator email (prompted if not set)")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "use in-memory backends, no remote writes")
	importCmd.Flags().BoolVar(&importYes, "yes", false, "answer yes at both confirmation gates (non-interactive)")
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	fmt.Print(green(banner))

	dryRun := importDryRun || config.GetBool("dry-run")

	filename := importFile
	if filename == "" {
		filename = askPath("What is the import filename?", config.GetString("csv"))
	} else if _, err := os.Stat(filename); err != nil {
		return fmt.Errorf("cannot find import file %s", filename)
	}
	imagesDir := importImages
	if imagesDir == "" {
		imagesDir = askPath("What is the screenshots folder path?", config.GetString("images"))
	} else if _, err := os.Stat(imagesDir); err != nil {
		return fmt.Errorf("cannot find screenshots folder %s", imagesDir)
	}
	creator := importCreator
	if creator == "" {
		creator = askRequired("Your name? (i.e. John Doe)")
	}
	domain := config.GetString("email-domain")
	email := importEmail
	if email == "" {
		email = askEmail(fmt.Sprintf("Your @%s email address?", domain), domain)
	}

	file, err := csvfile.Read(filename)
	if err != nil {
		return err
	}

	logf, closeLog := setupSessionLogger()
	defer closeLog()

	store, uploader, err := buildBackends(ctx, dryRun)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
		_ = uploader.Close()
	}()

	var jnl *journal.Journal
	if !dryRun {
		jnl, err = journal.Open(config.JournalPath())
		if err != nil {
			return err
		}
		defer func() { _ = jnl.Close() }()
	}

	eng := &importer.Importer{
		Store:    store,
		Assets:   uploader,
		Prompter: buildPrompter(),
		Journal:  jnl,
		Infof: func(format string, args ...interface{}) {
			fmt.Println(green(fmt.Sprintf(format, args...)))
			logf("INFO "+format, args...)
		},
		Warnf: func(format string, args ...interface{}) {
			fmt.Println(yellow("WARNING: " + fmt.Sprintf(format, args...)))
			logf("WARN "+format, args...)
		},
	}

	fmt.Println("\nConnecting to Catalog database...")
	res, err := eng.Run(ctx, file, importer.Options{
		Creator:    creator,
		Email:      email,
		SourceFile: filename,
		ImagesDir:  imagesDir,
		CatalogURL: config.GetString("catalog-url"),
		Schema:     types.DefaultSchema(),
	})

	logf("run finished: state=%s imported=%d skipped=%d err=%v", res.State, res.Imported, res.Skipped, err)
	printOutcome(res, err, dryRun)
	if err != nil {
		return err
	}
	return nil
}

func buildBackends(ctx context.Context, dryRun bool) (catalog.Store, assets.Uploader, error) {
	if dryRun {
		fmt.Println(cyan("Dry run: using in-memory catalog and asset store"))
		return catmemory.New(), assetmemory.New(), nil
	}

	creds := config.GetString("credentials-file")
	if _, err := os.Stat(creds); err != nil {
		return nil, nil, fmt.Errorf("cannot find %s - required to authenticate against the Go-Lives Catalog", creds)
	}

	store, err := firebase.New(ctx, firebase.Config{
		DatabaseURL:     config.GetString("database-url"),
		CredentialsFile: creds,
	})
	if err != nil {
		return nil, nil, err
	}
	uploader, err := gcs.New(ctx, gcs.Config{
		Bucket:          config.GetString("storage-bucket"),
		CredentialsFile: creds,
	})
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	return store, uploader, nil
}

// buildPrompter returns the interactive gates, or auto-yes gates when the
// operator passed --yes.
func buildPrompter() importer.Prompter {
	if importYes {
		return autoYesPrompter{}
	}
	return interactivePrompter{}
}

type autoYesPrompter struct{}

func (autoYesPrompter) ConfirmSample(rec *types.Record) (bool, error) {
	fmt.Println(green("\nSample formatted record (row #1) from your file:"))
	printRecord(rec)
	return true, nil
}

func (autoYesPrompter) AwaitReview(recordURL string) error {
	fmt.Println(grey(recordURL))
	return nil
}

func (autoYesPrompter) ConfirmContinue(*types.Record) (bool, error) {
	return true, nil
}

func printOutcome(res *importer.Result, err error, dryRun bool) {
	switch res.State {
	case importer.StateSuccess:
		fmt.Println(green(fmt.Sprintf("\nImport finished: %d record(s) imported, %d skipped", res.Imported, res.Skipped)))
		if dryRun {
			fmt.Println(cyan("Dry run: nothing was written to the catalog"))
		}
	case importer.StateRolledBack:
		if res.Rollback != nil && !res.Rollback.Clean() {
			fmt.Println(bgRed("Rollback incomplete - manual cleanup required, see warnings above"))
		}
		fmt.Println(yellow("Import cancelled :) try again later"))
	case importer.StateAborted:
		if err != nil {
			fmt.Println(bgRed(fmt.Sprintf("Import failed: %v", err)))
		} else {
			fmt.Println(yellow("Import cancelled :) try again later"))
		}
	}
}
