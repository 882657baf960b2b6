// InvestSight — automated investment research and recommendations
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AIDataFireGirl/investsight/api"
	"github.com/AIDataFireGirl/investsight/internal/config"
	"github.com/AIDataFireGirl/investsight/internal/datasource"
	"github.com/AIDataFireGirl/investsight/internal/recorder"
	"github.com/AIDataFireGirl/investsight/internal/research"
	"github.com/AIDataFireGirl/investsight/internal/tickers"
	"github.com/AIDataFireGirl/investsight/pkg/models"
	"github.com/AIDataFireGirl/investsight/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "investsight",
	Short: "InvestSight — automated investment research and recommendations",
	Long: `InvestSight researches a stock the way an analyst team would:
gather recent news and financial statements, score sentiment,
valuation, growth, and risk, and produce a buy/hold/sell
recommendation with confidence and position sizing.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if cfg.Logging.File != "" {
			f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			log.SetOutput(f)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(researchCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(newsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
}

// newPipeline wires the production pipeline. Run recording is active
// when a history database is configured.
func newPipeline() (*research.Pipeline, error) {
	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if cfg.Research.HistoryDB != "" {
		r, err := recorder.NewSQLiteRecorder(cfg.Research.HistoryDB)
		if err != nil {
			return nil, fmt.Errorf("open history db: %w", err)
		}
		rec = r
	}
	return research.NewPipeline(cfg, datasource.NewGatherer(cfg), rec), nil
}

func printProgress(stage, message string) {
	fmt.Printf("   [%s] %s\n", stage, message)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("InvestSight %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Research Command ---

var researchCmd = &cobra.Command{
	Use:   "research [ticker]",
	Short: "Run full research on a stock",
	Long:  "Gather news and financial statements, analyze them, and produce a recommendation.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")
		period, _ := cmd.Flags().GetString("period")
		save, _ := cmd.Flags().GetBool("save")

		p, err := newPipeline()
		if err != nil {
			return err
		}
		defer p.Close()

		fmt.Printf("🔍 Researching %s\n", utils.NormalizeTicker(args[0]))
		fmt.Printf("   Market Status: %s\n", utils.MarketStatus())

		result, err := p.Research(cmd.Context(), args[0], research.Options{
			DaysBack: days,
			Period:   period,
			Progress: printProgress,
		})
		if err != nil {
			return err
		}

		displaySummary(result)

		if save {
			path, err := research.SaveResults(result, cfg.Research.OutputDir, "")
			if err != nil {
				return err
			}
			fmt.Printf("💾 Results saved to %s\n", path)
		}
		return nil
	},
}

func init() {
	researchCmd.Flags().Int("days", 0, "days of news to gather (default from config)")
	researchCmd.Flags().String("period", "", "statement period: annual or quarterly")
	researchCmd.Flags().Bool("save", false, "save results to a timestamped JSON file")
}

// --- Compare Command ---

var compareCmd = &cobra.Command{
	Use:   "compare [tickers...]",
	Short: "Research multiple stocks for comparison",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")
		period, _ := cmd.Flags().GetString("period")
		save, _ := cmd.Flags().GetBool("save")

		p, err := newPipeline()
		if err != nil {
			return err
		}
		defer p.Close()

		fmt.Printf("📊 Comparative research: %s\n", strings.Join(args, ", "))

		comp := p.ResearchMany(cmd.Context(), args, research.Options{
			DaysBack: days,
			Period:   period,
		})
		displayComparison(comp)

		if save {
			path, err := research.SaveResults(comp, cfg.Research.OutputDir, "")
			if err != nil {
				return err
			}
			fmt.Printf("💾 Results saved to %s\n", path)
		}
		return nil
	},
}

func init() {
	compareCmd.Flags().Int("days", 0, "days of news to gather (default from config)")
	compareCmd.Flags().String("period", "", "statement period: annual or quarterly")
	compareCmd.Flags().Bool("save", false, "save results to a timestamped JSON file")
}

// --- News Command ---

var newsCmd = &cobra.Command{
	Use:   "news [ticker]",
	Short: "Gather and score recent news for a stock",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")

		p := research.NewPipeline(cfg, datasource.NewGatherer(cfg), nil)
		bundle, err := p.NewsBundle(cmd.Context(), args[0], research.Options{DaysBack: days})
		if err != nil {
			return err
		}

		fmt.Printf("📰 News: %s (%d articles, sentiment %s)\n",
			bundle.Ticker, bundle.Summary.TotalArticles, bundle.Summary.SentimentOverview)
		if len(bundle.Summary.TopSources) > 0 {
			var sources []string
			for _, s := range bundle.Summary.TopSources {
				sources = append(sources, fmt.Sprintf("%s (%d)", s.Name, s.Count))
			}
			fmt.Printf("   Top Sources: %s\n", strings.Join(sources, ", "))
		}
		fmt.Println()

		for i, a := range bundle.Articles {
			if i >= 10 {
				fmt.Printf("   ... and %d more\n", len(bundle.Articles)-10)
				break
			}
			fmt.Printf("  %2d. [%.1f] %s\n", i+1, a.Relevance, a.Title)
			fmt.Printf("      %s, %s\n", a.Source, a.PublishedAt.Format("2006-01-02"))
		}
		return nil
	},
}

func init() {
	newsCmd.Flags().Int("days", 0, "days of news to gather (default from config)")
}

// --- Report Command ---

var reportCmd = &cobra.Command{
	Use:   "report [ticker]",
	Short: "Analyze financial reports for a stock",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		period, _ := cmd.Flags().GetString("period")

		p := research.NewPipeline(cfg, datasource.NewGatherer(cfg), nil)
		analysis, err := p.ReportAnalysis(cmd.Context(), args[0], research.Options{Period: period})
		if err != nil {
			return err
		}

		fmt.Printf("📈 Report Analysis: %s (%s)\n", analysis.Ticker, analysis.Company.Name)
		fmt.Printf("   Sector:     %s / %s\n", analysis.Company.Sector, analysis.Company.Industry)
		if analysis.Company.MarketCap > 0 {
			fmt.Printf("   Market Cap: %s\n", utils.FormatUSDCompact(analysis.Company.MarketCap))
		}
		fmt.Printf("   Period:     %s\n", analysis.Period)
		fmt.Println()

		printMetrics("Profitability", analysis.Financials.Profitability)
		printMetrics("Liquidity", analysis.Financials.Liquidity)
		printMetrics("Efficiency", analysis.Financials.Efficiency)

		if len(analysis.Earnings.GrowthRates) > 0 {
			fmt.Printf("   Earnings Growth: %s average\n", utils.FormatPercent(analysis.Earnings.AverageGrowth))
		}
		fmt.Println()

		for _, ins := range analysis.Insights {
			fmt.Printf("   %s [%s] %s\n", severityIcon(ins.Severity), ins.Category, ins.Message)
		}
		fmt.Printf("\n   Overall: %s\n", analysis.Summary.OverallSentiment)
		return nil
	},
}

func init() {
	reportCmd.Flags().String("period", "", "statement period: annual or quarterly")
}

func printMetrics(label string, metrics map[string]float64) {
	if len(metrics) == 0 {
		return
	}
	keys := make([]string, 0, len(metrics))
	for k := range metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Printf("   %s:\n", label)
	for _, k := range keys {
		fmt.Printf("     %-16s %.2f\n", k+":", metrics[k])
	}
}

func severityIcon(s models.Severity) string {
	switch s {
	case models.SeverityPositive:
		return "✅"
	case models.SeverityNegative:
		return "❌"
	case models.SeverityWarning:
		return "⚠️ "
	default:
		return "ℹ️ "
	}
}

// --- Demo Command ---

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run demo research on AAPL, MSFT, and GOOGL",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("🎯 Running in Demo Mode")

		demoStocks := []string{"AAPL", "MSFT", "GOOGL"}
		fmt.Printf("Researching demo stocks: %s\n", strings.Join(demoStocks, ", "))

		p, err := newPipeline()
		if err != nil {
			return err
		}
		defer p.Close()

		for _, stock := range demoStocks {
			fmt.Printf("\n🔍 Researching %s...\n", stock)
			result, err := p.Research(cmd.Context(), stock, research.Options{})
			if err != nil {
				fmt.Printf("❌ Research failed for %s: %v\n", stock, err)
				continue
			}
			displaySummary(result)

			if _, err := research.SaveResults(result, cfg.Research.OutputDir,
				fmt.Sprintf("demo_%s_research.json", stock)); err != nil {
				return err
			}
		}

		fmt.Println("\n📊 Running comparative analysis...")
		comp := p.ResearchMany(cmd.Context(), demoStocks, research.Options{})
		if _, err := research.SaveResults(comp, cfg.Research.OutputDir,
			"demo_comparative_analysis.json"); err != nil {
			return err
		}

		fmt.Println("\n✅ Demo completed")
		return nil
	},
}

// --- Search Command ---

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the ticker directory by symbol or company name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		dir, err := tickers.NewDirectory()
		if err != nil {
			return err
		}
		defer dir.Close()

		entries, err := dir.Search(args[0], limit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Printf("No matches for %q\n", args[0])
			return nil
		}

		fmt.Printf("  %-7s %-32s %-24s %s\n", "SYMBOL", "NAME", "SECTOR", "EXCHANGE")
		for _, e := range entries {
			fmt.Printf("  %-7s %-32s %-24s %s\n", e.Symbol, e.Name, e.Sector, e.Exchange)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().Int("limit", 10, "maximum number of matches")
}

// --- Watch Command ---

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-research a watchlist on a schedule",
	Long:  "Load the configured YAML watchlist and research every ticker on its cron schedule, recording each run.",
	RunE: func(cmd *cobra.Command, args []string) error {
		once, _ := cmd.Flags().GetBool("once")

		wl, err := config.LoadWatchlist(cfg.Research.Watchlist)
		if err != nil {
			return err
		}

		p, err := newPipeline()
		if err != nil {
			return err
		}
		defer p.Close()

		w := research.NewWatcher(p, wl)
		if once {
			w.RunOnce(cmd.Context())
			return nil
		}

		if err := w.Start(); err != nil {
			return err
		}
		fmt.Printf("⏰ Watching %d tickers on schedule %q. Ctrl-C to stop.\n",
			len(wl.Tickers), wl.Schedule)

		done := make(chan os.Signal, 1)
		signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
		<-done

		w.Stop()
		return nil
	},
}

func init() {
	watchCmd.Flags().Bool("once", false, "research the watchlist once and exit")
}

// --- Serve Command (API Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		api.Version = version

		srv, err := api.NewServer(cfg)
		if err != nil {
			return err
		}
		defer srv.Close()

		port := cfg.API.Port
		if override, _ := cmd.Flags().GetInt("port"); override != 0 {
			port = override
		}
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, port)

		fmt.Printf("🌐 Starting InvestSight API server on %s\n", addr)
		return srv.ListenAndServe(addr)
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "listen port (overrides config)")
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show system status, configuration, and recent runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  InvestSight — System Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:       %s (%s)\n", version, commit)
		fmt.Printf("  Market Status: %s\n", utils.MarketStatus())
		fmt.Printf("  Time (ET):     %s\n", utils.FormatDateTimeET(utils.NowET()))
		fmt.Println()

		// Config summary
		historyDB := cfg.Research.HistoryDB
		if historyDB == "" {
			historyDB = "disabled"
		}
		fmt.Println("  Configuration:")
		fmt.Printf("    News Sources:  NewsAPI + %d RSS feeds\n", len(cfg.News.Feeds))
		fmt.Printf("    Period:        %s\n", cfg.Research.Period)
		fmt.Printf("    Output Dir:    %s\n", cfg.Research.OutputDir)
		fmt.Printf("    History DB:    %s\n", historyDB)
		fmt.Printf("    API Server:    %s:%d\n", cfg.API.Host, cfg.API.Port)
		fmt.Println()

		// API keys status
		fmt.Println("  API Keys:")
		keys := config.CheckAPIKeys(cfg)
		for _, k := range keys {
			status := "❌ not set"
			if k.IsSet {
				status = fmt.Sprintf("✅ set (%s: %s)", k.Source, k.Masked)
			}
			fmt.Printf("    %-25s %s\n", k.Name+":", status)
		}

		// Run history
		if cfg.Research.HistoryDB != "" {
			rec, err := recorder.NewSQLiteRecorder(cfg.Research.HistoryDB)
			if err != nil {
				return err
			}
			defer rec.Close()

			runs, err := rec.RecentRuns(5)
			if err != nil {
				return err
			}

			fmt.Println()
			fmt.Println("  Recent Runs:")
			if len(runs) == 0 {
				fmt.Println("    none recorded")
			}
			for _, run := range runs {
				fmt.Printf("    %-6s %-5s (score %.2f) %s\n",
					run.Ticker, run.Action, run.Score,
					run.CreatedAt.Format("2006-01-02 15:04"))
			}
		}

		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}

// displaySummary prints the research verdict for one ticker.
func displaySummary(res *models.ResearchResult) {
	rec := res.Insights.Recommendation

	fmt.Println("\n═══════════════════════════════════════")
	fmt.Println("  📊 Research Summary")
	fmt.Println("═══════════════════════════════════════")
	fmt.Printf("  Stock:          %s (%s)\n", res.Ticker, res.Report.Company.Name)
	fmt.Printf("  Research Date:  %s\n", res.ResearchDate.Format("2006-01-02 15:04:05"))
	fmt.Printf("  Articles:       %d\n", res.News.Summary.TotalArticles)
	fmt.Printf("  Sentiment:      %s\n", res.Insights.Sentiment.OverallSentiment)
	fmt.Printf("  Overall Score:  %.2f\n", res.Insights.Combined.OverallScore)
	fmt.Println()
	fmt.Printf("  📈 Recommendation: %s (%s confidence)\n",
		strings.ToUpper(string(rec.Action)), rec.Confidence)
	fmt.Printf("     Rationale:     %s\n", rec.Rationale)
	fmt.Printf("     Time Horizon:  %s\n", rec.TimeHorizon)
	fmt.Printf("     Position Size: %s\n", rec.PositionSize)

	if len(res.Insights.KeyRisks) > 0 {
		fmt.Println("\n  ⚠️  Key Risks:")
		for i, r := range res.Insights.KeyRisks {
			fmt.Printf("    %d. %s\n", i+1, r)
		}
	}
	if len(res.Insights.Opportunities) > 0 {
		fmt.Println("\n  🎯 Opportunities:")
		for i, o := range res.Insights.Opportunities {
			fmt.Printf("    %d. %s\n", i+1, o)
		}
	}
	fmt.Println("═══════════════════════════════════════")
}

// displayComparison prints a comparison table, best score first.
func displayComparison(comp *models.ComparativeResearch) {
	type row struct {
		ticker string
		res    *models.ResearchResult
	}
	rows := make([]row, 0, len(comp.Results))
	for t, r := range comp.Results {
		rows = append(rows, row{ticker: t, res: r})
	}
	sort.Slice(rows, func(i, j int) bool {
		si := rows[i].res.Insights.Combined.OverallScore
		sj := rows[j].res.Insights.Combined.OverallScore
		if si != sj {
			return si > sj
		}
		return rows[i].ticker < rows[j].ticker
	})

	fmt.Println("\n═══════════════════════════════════════")
	fmt.Println("  📊 Comparison")
	fmt.Println("═══════════════════════════════════════")
	fmt.Printf("  %-7s %-6s %-11s %s\n", "SYMBOL", "SCORE", "ACTION", "CONFIDENCE")
	for _, r := range rows {
		rec := r.res.Insights.Recommendation
		fmt.Printf("  %-7s %-6.2f %-11s %s\n", r.ticker,
			r.res.Insights.Combined.OverallScore, rec.Action, rec.Confidence)
	}

	if len(comp.Errors) > 0 {
		fmt.Println()
		failed := make([]string, 0, len(comp.Errors))
		for t := range comp.Errors {
			failed = append(failed, t)
		}
		sort.Strings(failed)
		for _, t := range failed {
			fmt.Printf("  ❌ %s: %s\n", t, comp.Errors[t])
		}
	}
	fmt.Println("═══════════════════════════════════════")
}
