package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"vocabuilder/internal/bootstrap"
	libraryin "vocabuilder/internal/modules/library/adapter/in"
	librarydto "vocabuilder/internal/modules/library/dto"
	sessiondto "vocabuilder/internal/modules/session/dto"
	"vocabuilder/internal/platform/config"
	apperrors "vocabuilder/internal/platform/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "error:", err)
		if errors.Is(err, apperrors.ErrStorage) {
			_, _ = fmt.Fprintln(os.Stderr, "the local store may be corrupt; run `vocabuilder reset --yes` to start over")
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "vocabuilder",
		Short:         "Weekly vocabulary builder with spaced review",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", ".vocabuilder", "data directory")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newIngestCmd(&dataDir))
	root.AddCommand(newWatchCmd(&dataDir))
	root.AddCommand(newWordsCmd(&dataDir))
	root.AddCommand(newWeeksCmd(&dataDir))
	root.AddCommand(newLoadCmd(&dataDir))
	root.AddCommand(newActiveCmd(&dataDir))
	root.AddCommand(newDueCmd(&dataDir))
	root.AddCommand(newScheduleCmd(&dataDir))
	root.AddCommand(newQuizCmd(&dataDir))
	root.AddCommand(newExportCmd(&dataDir))
	root.AddCommand(newResetCmd(&dataDir))
	root.AddCommand(newPluginCmd(&dataDir))
	return root
}

func loadApp(dataDir string, opts bootstrap.Options) (*bootstrap.App, error) {
	cfg, err := config.Load(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, opts)
}

// withApp opens the app for one command and closes it afterwards.
func withApp(dataDir string, fn func(app *bootstrap.App) error) error {
	app, err := loadApp(dataDir, bootstrap.Options{})
	if err != nil {
		return err
	}
	runErr := fn(app)
	if closeErr := app.Close(); closeErr != nil && runErr == nil {
		return fmt.Errorf("close store: %w", closeErr)
	}
	return runErr
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir, bootstrap.Options{LogToFile: true})
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			return bootstrap.RunTUI(app)
		},
	}
}

func newIngestCmd(dataDir *string) *cobra.Command {
	var enrich []string
	var noLoad bool

	cmd := &cobra.Command{
		Use:   "ingest <file>",
		Short: "Ingest a CSV or JSON word list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.IngestFile(cmd.Context(), args[0], enrich, !noLoad)
				if err != nil {
					return err
				}
				printIngest(cmd, out)
				return nil
			})
		},
	}
	cmd.Flags().StringSliceVar(&enrich, "enrich", nil, "plugins to run over the new words (default: configured list)")
	cmd.Flags().BoolVar(&noLoad, "no-load", false, "do not load week 1 day 1 after ingesting")
	return cmd
}

func printIngest(cmd *cobra.Command, out sessiondto.IngestOutput) {
	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "inserted %d, skipped %d, library now %d words\n", out.Inserted, out.Skipped, out.Total)
	if out.Truncated > 0 {
		_, _ = fmt.Fprintf(w, "truncated %d oversized values\n", out.Truncated)
	}
	if len(out.Enriched) > 0 {
		_, _ = fmt.Fprintf(w, "enriched by %s\n", strings.Join(out.Enriched, ", "))
	}
	if out.Active != nil {
		_, _ = fmt.Fprintf(w, "loaded week %d day %d (%d words)\n", out.Active.Week, out.Active.Day, len(out.Active.Words))
	}
}

func newWatchCmd(dataDir *string) *cobra.Command {
	var enrich []string

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Ingest word lists dropped into a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return withApp(*dataDir, func(app *bootstrap.App) error {
				watcher := libraryin.NewInboxWatcher(app.Logger.With("component", "inbox"), args[0], libraryin.DefaultSettleDelay,
					func(ctx context.Context, path string) error {
						out, err := app.SessionCLI.IngestFile(ctx, path, enrich, true)
						if err != nil {
							return err
						}
						printIngest(cmd, out)
						return nil
					})
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "watching %s, ctrl+c to stop\n", args[0])
				return watcher.Run(ctx)
			})
		},
	}
	cmd.Flags().StringSliceVar(&enrich, "enrich", nil, "plugins to run over each file")
	return cmd
}

func newWordsCmd(dataDir *string) *cobra.Command {
	words := &cobra.Command{Use: "words", Short: "Library commands"}

	words.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List library words in storage order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				list, err := app.LibraryCLI.ListWords(cmd.Context())
				if err != nil {
					return err
				}
				if len(list) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "library is empty")
					return nil
				}
				printWords(cmd, list)
				return nil
			})
		},
	})

	words.AddCommand(&cobra.Command{
		Use:   "export-csv <file>",
		Short: "Write the library as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				n, err := app.LibraryCLI.ExportCSV(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d words to %s\n", n, args[0])
				return nil
			})
		},
	})
	return words
}

func printWords(cmd *cobra.Command, list []librarydto.WordOutput) {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, w := range list {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", w.Icon, w.Word, w.PartOfSpeech, w.Definition)
	}
	_ = tw.Flush()
}

func newWeeksCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "weeks",
		Short: "Show how the words split into weeks and days",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.Overview(cmd.Context())
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "%d words (%d seed, %d library), %d per week, %d per day, %d days per week\n",
					out.Total, out.Seed, out.Library, out.PerWeek, out.PerDay, out.DaysPerWeek)
				_, _ = fmt.Fprintf(w, "%d weeks of content, %d selectable\n", out.Weeks, out.SelectorWeeks)
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				for _, b := range out.Buckets {
					marker := ""
					if b.Week == out.ActiveWeek && b.Day == out.ActiveDay {
						marker = "*"
					}
					_, _ = fmt.Fprintf(tw, "week %d\tday %d\t%d words\t%s\n", b.Week, b.Day, b.Size, marker)
				}
				return tw.Flush()
			})
		},
	}
}

func newLoadCmd(dataDir *string) *cobra.Command {
	var week, day int
	cmd := &cobra.Command{
		Use:   "load --week <n> --day <n>",
		Short: "Load a week and day as the active set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.Load(cmd.Context(), week, day)
				if err != nil {
					return err
				}
				printActive(cmd, out)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&week, "week", 1, "week number")
	cmd.Flags().IntVar(&day, "day", 1, "day number")
	return cmd
}

func printActive(cmd *cobra.Command, out sessiondto.ActiveSetOutput) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "week %d day %d: %d words (%d seen for the first time)\n",
		out.Week, out.Day, len(out.Words), out.Stamped)
	printWords(cmd, out.Words)
}

func newActiveCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "active",
		Short: "Show the active set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.Active(cmd.Context())
				if err != nil {
					return err
				}
				printActive(cmd, out)
				return nil
			})
		},
	}
}

func newDueCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "due",
		Short: "List active words due for review today",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				due, err := app.SessionCLI.Due(cmd.Context())
				if err != nil {
					return err
				}
				if len(due) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "nothing due")
					return nil
				}
				printWords(cmd, due)
				return nil
			})
		},
	}
}

func newScheduleCmd(dataDir *string) *cobra.Command {
	schedule := &cobra.Command{Use: "schedule", Short: "Spaced review schedule"}
	schedule.AddCommand(&cobra.Command{
		Use:   "status [word...]",
		Short: "Show first-seen dates and review timing",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				words := args
				if len(words) == 0 {
					active, err := app.SessionCLI.Active(cmd.Context())
					if err != nil {
						return err
					}
					for _, w := range active.Words {
						words = append(words, w.Word)
					}
				}
				status, err := app.ScheduleCLI.Status(cmd.Context(), words)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				for _, s := range status {
					if !s.Seen {
						_, _ = fmt.Fprintf(tw, "%s\tunseen\t\t\n", s.Word)
						continue
					}
					next := "-"
					if s.Due {
						next = "due"
					} else if s.HasNext {
						next = fmt.Sprintf("in %dd", s.NextDueIn)
					}
					_, _ = fmt.Fprintf(tw, "%s\t%s\tday %d\t%s\n", s.Word, s.FirstSeen.Format("2006-01-02"), s.ElapsedDays, next)
				}
				return tw.Flush()
			})
		},
	})
	return schedule
}

func newQuizCmd(dataDir *string) *cobra.Command {
	quiz := &cobra.Command{Use: "quiz", Short: "Quiz the active set"}

	quiz.AddCommand(&cobra.Command{
		Use:   "next",
		Short: "Pick the next word to define",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				p, err := app.QuizCLI.Next(cmd.Context())
				if err != nil {
					return err
				}
				tag := ""
				if p.Spaced {
					tag = " (review)"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s [%s]%s\n", p.Icon, p.Word, p.PartOfSpeech, tag)
				return nil
			})
		},
	})

	quiz.AddCommand(&cobra.Command{
		Use:   "check <word> <answer...>",
		Short: "Check a typed definition",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.QuizCLI.Check(cmd.Context(), args[0], strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
				printVerdict(cmd, out.Correct, out.Word, out.Definition)
				return nil
			})
		},
	})

	quiz.AddCommand(&cobra.Command{
		Use:   "review",
		Short: "Print multiple-choice questions for due words",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				items, err := app.QuizCLI.Review(cmd.Context())
				if err != nil {
					return err
				}
				if len(items) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "nothing due")
					return nil
				}
				w := cmd.OutOrStdout()
				for _, item := range items {
					_, _ = fmt.Fprintf(w, "%s\n", item.Word)
					for i, choice := range item.Choices {
						_, _ = fmt.Fprintf(w, "  %d. %s\n", i+1, choice)
					}
				}
				return nil
			})
		},
	})

	quiz.AddCommand(&cobra.Command{
		Use:   "grade <word> <choice>",
		Short: "Grade a multiple-choice answer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.QuizCLI.Grade(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				printVerdict(cmd, out.Correct, out.Word, out.Definition)
				return nil
			})
		},
	})

	var count int
	story := &cobra.Command{
		Use:   "story",
		Short: "Draw words for a short story",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.QuizCLI.Story(cmd.Context(), count)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "write a short story using: %s\n", strings.Join(out.Words, ", "))
				return nil
			})
		},
	}
	story.Flags().IntVar(&count, "count", 0, "number of words (default 5)")
	quiz.AddCommand(story)
	return quiz
}

func printVerdict(cmd *cobra.Command, correct bool, word, definition string) {
	verdict := "wrong"
	if correct {
		verdict = "correct"
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s means %q\n", verdict, word, definition)
}

func newExportCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write the active set as a markdown study sheet",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.Export(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d words to %s\n", out.Words, out.Path)
				return nil
			})
		},
	}
}

func newResetCmd(dataDir *string) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset --yes",
		Short: "Erase the library, review history and active set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("%w: reset erases all data, pass --yes to confirm", apperrors.ErrInvalidInput)
			}
			return withApp(*dataDir, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.Reset(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "all data cleared (%d review records)\n", out.ScheduleCleared)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}

func newPluginCmd(dataDir *string) *cobra.Command {
	plugin := &cobra.Command{Use: "plugin", Short: "Enrichment plugins"}

	plugin.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List plugins from the manifest",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				list, err := app.PluginCLI.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(list) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins")
					return nil
				}
				for _, p := range list {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tenabled=%t\t%s\t%s\n",
						p.Name, p.Version, p.Enabled, strings.Join(p.Capabilities, ","), p.Binary)
				}
				return nil
			})
		},
	})

	plugin.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Check plugin binaries, checksums and handshakes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(*dataDir, func(app *bootstrap.App) error {
				results, err := app.PluginCLI.Doctor(cmd.Context())
				if err != nil {
					return err
				}
				if len(results) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no plugins")
					return nil
				}
				for _, r := range results {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\tchecksum=%t\treachable=%t\tlifecycle=%t\t%s\n",
						r.Name, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK, r.Error)
				}
				return nil
			})
		},
	})
	return plugin
}
