package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sena-ops/lintmerge/internal/config"
	"github.com/Sena-ops/lintmerge/internal/parser"
	"github.com/Sena-ops/lintmerge/internal/report"
	"github.com/Sena-ops/lintmerge/internal/scanner"
	"github.com/Sena-ops/lintmerge/internal/session"
)

var (
	noClangTidy    bool
	noCppcheck     bool
	enableAnalyzer bool
	fixMode        bool
	outputDir      string
	configPath     string
	jobs           int
	sarifOut       bool
	verbose        bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Run the configured analyzers and write a merged summary",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) > 0 {
			root = args[0]
		}
		root, err := filepath.Abs(root)
		if err != nil {
			return fmt.Errorf("resolve root: %w", err)
		}

		cfg, cfgFile, err := loadConfig(root)
		if err != nil {
			return err
		}
		applyFlags(cmd, &cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}
		timeout, _ := cfg.ToolTimeout()

		outDir := cfg.OutputDir
		if !filepath.IsAbs(outDir) {
			outDir = filepath.Join(root, outDir)
		}
		logger.Infow("starting analysis", "root", root, "output", outDir, "config", cfgFile)

		files, err := parser.DetectSourceFiles(root, layoutFrom(cfg.Discovery))
		if err != nil {
			logger.Errorw("discovery failed", "error", err)
			return err
		}
		logger.Infof("files to analyze: %d headers", len(files.Headers))
		if verbose {
			for _, f := range files.All() {
				fmt.Fprintf(cmd.OutOrStdout(), "  - [%s] %s\n", f.Kind, f.Path)
			}
		}

		tools := cfg.EnabledTools()
		sess := &session.Session{
			Runner:    scanner.NewRegistry(cfg.Tools),
			Logger:    logger,
			OutputDir: outDir,
			Jobs:      cfg.Jobs,
			Timeout:   timeout,
			SARIF:     sarifOut,
		}
		out, err := sess.Run(cmd.Context(), session.Plan{
			Tools: tools,
			Request: scanner.Request{
				Root:        root,
				Headers:     files.Headers,
				Standard:    cfg.Standard,
				IncludeDirs: cfg.IncludeDirs,
			},
			Meta: report.Metadata{
				Project:     cfg.Project,
				Target:      root,
				Standard:    cfg.Standard,
				Scope:       strings.Join(cfg.Discovery.Headers, ", "),
				ConfigFiles: configFiles(cfg, cfgFile),
				Tools:       tools,
			},
		})
		if err != nil {
			logger.Errorw("failed to write summary", "error", err)
			return err
		}

		printOutcome(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&noClangTidy, "no-clang-tidy", false, "Skip clang-tidy")
	analyzeCmd.Flags().BoolVar(&noCppcheck, "no-cppcheck", false, "Skip cppcheck")
	analyzeCmd.Flags().BoolVar(&enableAnalyzer, "enable-clang-analyzer", false, "Run the Clang Static Analyzer")
	analyzeCmd.Flags().BoolVar(&fixMode, "fix", false, "Let clang-tidy apply fixes")
	analyzeCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Report directory (default from config: static_analysis_reports)")
	analyzeCmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file (default: nearest "+config.FileName+")")
	analyzeCmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "Tools to run in parallel")
	analyzeCmd.Flags().BoolVar(&sarifOut, "sarif", false, "Also export the session as SARIF")
	analyzeCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "List every discovered file")
	rootCmd.AddCommand(analyzeCmd)
}

func loadConfig(root string) (config.Config, string, error) {
	if configPath != "" {
		cfg, err := config.LoadFile(configPath)
		return cfg, configPath, err
	}
	return config.Load(root)
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if noClangTidy {
		cfg.Tools.ClangTidy.Enabled = false
	}
	if noCppcheck {
		cfg.Tools.Cppcheck.Enabled = false
	}
	if enableAnalyzer {
		cfg.Tools.ClangAnalyzer.Enabled = true
	}
	if fixMode {
		cfg.Tools.ClangTidy.Fix = true
		logger.Warn("clang-tidy fix mode is enabled, sources will be modified")
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir = outputDir
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Jobs = jobs
	}
}

func layoutFrom(d config.Discovery) parser.Layout {
	return parser.Layout{
		Headers:          d.Headers,
		Sources:          d.Sources,
		Benchmarks:       d.Benchmarks,
		HeaderExts:       d.HeaderExts,
		SourceExts:       d.SourceExts,
		RespectGitignore: d.RespectGitignore,
	}
}

func configFiles(cfg config.Config, cfgFile string) []string {
	var out []string
	if cfgFile != "" {
		out = append(out, filepath.Base(cfgFile))
	}
	if cfg.Tools.ClangTidy.Enabled && cfg.Tools.ClangTidy.ConfigFile != "" {
		out = append(out, cfg.Tools.ClangTidy.ConfigFile)
	}
	return out
}

func printOutcome(w io.Writer, out session.Outcome) {
	bold := color.New(color.Bold)
	for _, row := range out.Document.Tools {
		fmt.Fprintf(w, "- %s: %d issue(s)\n", row.Tool, row.IssuesCount)
	}

	total := color.New(color.FgGreen, color.Bold)
	if out.Summary.TotalIssues > 0 {
		total = color.New(color.FgYellow, color.Bold)
	}
	bold.Fprintf(w, "Summary: ")
	fmt.Fprintln(w, out.SummaryPath)
	if out.SARIFPath != "" {
		bold.Fprintf(w, "SARIF: ")
		fmt.Fprintln(w, out.SARIFPath)
	}
	total.Fprintf(w, "Total issues: %d\n", out.Summary.TotalIssues)

	if out.Summary.TotalIssues > 0 {
		fmt.Fprintln(w, "Next steps:")
		fmt.Fprintln(w, "  1. Review the summary report")
		fmt.Fprintln(w, "  2. Fix high-priority issues")
		fmt.Fprintln(w, "  3. Keep improving continuously")
	}
}
