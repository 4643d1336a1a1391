package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"rolereader/resume-matcher/internal/client"
	"rolereader/resume-matcher/internal/dashboard"
	"rolereader/resume-matcher/internal/models"
)

const usage = `usage: dashboard [-api URL] <command> [flags]

commands:
  compare -resume FILE -job FILE   compare a resume with a job description
  history [-limit N]               list past comparisons
  show ID                          show one comparison
  delete ID                        delete one comparison
  similar ID [-limit N]            list comparisons for similar roles
  health [-watch]                  check (or keep checking) the service
`

func main() {
	_ = godotenv.Load()

	apiURL := flag.String("api", envOr("RESUME_MATCHER_API", client.DefaultBaseURL), "service base URL")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := client.New(*apiURL)
	args := flag.Args()[1:]

	var err error
	switch flag.Arg(0) {
	case "compare":
		err = runCompare(ctx, api, args)
	case "history":
		err = runHistory(ctx, api, args)
	case "show":
		err = runShow(ctx, api, args)
	case "delete":
		err = runDelete(ctx, api, args)
	case "similar":
		err = runSimilar(ctx, api, args)
	case "health":
		err = runHealth(ctx, api, args)
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		log.Printf("❌ %v", err)
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func runCompare(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	resumePath := fs.String("resume", "", "resume file (.txt, .pdf or .docx)")
	jobPath := fs.String("job", "", "job description text file")
	fs.Parse(args)

	if *resumePath == "" || *jobPath == "" {
		return errors.New("both -resume and -job are required")
	}

	job, err := os.ReadFile(*jobPath)
	if err != nil {
		return err
	}

	panel := dashboard.NewPanel[*models.ComparisonResponse]("An error occurred")

	switch ext := filepath.Ext(*resumePath); ext {
	case ".pdf", ".docx":
		err = panel.Load(ctx, func(ctx context.Context) (*models.ComparisonResponse, error) {
			f, err := os.Open(*resumePath)
			if err != nil {
				return nil, err
			}
			defer f.Close()
			return api.CompareResumeFile(ctx, filepath.Base(*resumePath), f, string(job))
		})
	default:
		resume, readErr := os.ReadFile(*resumePath)
		if readErr != nil {
			return readErr
		}
		form := dashboard.ComparisonForm{ResumeText: string(resume), JobDescription: string(job)}
		if !form.CanSubmit(panel.State() == dashboard.StateLoading) {
			return errors.New("resume and job description must not be empty")
		}
		req := form.Request()
		err = panel.Load(ctx, func(ctx context.Context) (*models.ComparisonResponse, error) {
			return api.CompareResume(ctx, req.ResumeText, req.JobDescription)
		})
	}
	if err != nil {
		return errors.New(panel.ErrorText())
	}

	return dashboard.RenderResult(os.Stdout, panel.Value())
}

func runHistory(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	limit := fs.Int("limit", 20, "number of comparisons")
	fs.Parse(args)

	panel := dashboard.NewPanel[[]models.ComparisonHistoryResponse]("Failed to load history")
	if err := panel.Load(ctx, func(ctx context.Context) ([]models.ComparisonHistoryResponse, error) {
		return api.GetComparisonHistory(ctx, *limit)
	}); err != nil {
		return errors.New(panel.ErrorText())
	}

	return dashboard.RenderHistory(os.Stdout, dashboard.BuildHistory(panel.Value()))
}

func parseID(args []string) (uint, []string, error) {
	if len(args) == 0 {
		return 0, nil, errors.New("a comparison ID is required")
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil || id == 0 {
		return 0, nil, fmt.Errorf("invalid comparison ID %q", args[0])
	}
	return uint(id), args[1:], nil
}

func runShow(ctx context.Context, api *client.Client, args []string) error {
	id, _, err := parseID(args)
	if err != nil {
		return err
	}

	resp, err := api.GetComparison(ctx, id)
	if err != nil {
		return err
	}
	return dashboard.RenderResult(os.Stdout, resp)
}

func runDelete(ctx context.Context, api *client.Client, args []string) error {
	id, _, err := parseID(args)
	if err != nil {
		return err
	}

	if err := api.DeleteComparison(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Comparison %d deleted\n", id)
	return nil
}

func runSimilar(ctx context.Context, api *client.Client, args []string) error {
	id, rest, err := parseID(args)
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("similar", flag.ExitOnError)
	limit := fs.Int("limit", 5, "number of comparisons")
	fs.Parse(rest)

	similar, err := api.SimilarComparisons(ctx, id, *limit)
	if err != nil {
		return err
	}

	return dashboard.RenderSimilar(os.Stdout, similar)
}

func runHealth(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("health", flag.ExitOnError)
	watch := fs.Bool("watch", false, "keep checking every 30 seconds")
	interval := fs.Duration("interval", dashboard.DefaultHealthInterval, "poll interval with -watch")
	fs.Parse(args)

	monitor := dashboard.NewHealthMonitor(api, *interval)
	render := func(status dashboard.HealthStatus) {
		fmt.Printf("[%s] ", time.Now().Format("15:04:05"))
		dashboard.RenderHealth(os.Stdout, status, monitor.Health(), monitor.ErrorText())
	}

	if !*watch {
		status := monitor.Check(ctx)
		render(status)
		if status == dashboard.StatusOffline {
			return errors.New(monitor.ErrorText())
		}
		return nil
	}

	monitor.OnChange(render)
	monitor.Start(ctx)
	<-ctx.Done()
	monitor.Stop()
	return nil
}
