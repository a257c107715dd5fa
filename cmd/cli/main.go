package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"invest-sim/internal/analysis"
	"invest-sim/internal/config"
	"invest-sim/internal/data"
	"invest-sim/internal/model"
	"invest-sim/internal/sim"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "passive":
		cmdPassive(os.Args[2:])
	case "crossover":
		cmdCrossover(os.Args[2:])
	case "momentum":
		cmdMomentum(os.Args[2:])
	case "protective-put":
		cmdProtectivePut(os.Args[2:])
	case "bull-call":
		cmdBullCall(os.Args[2:])
	case "rank":
		cmdRank(os.Args[2:])
	case "fetch":
		cmdFetch(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli passive --initial 500 --monthly 500 --years 10 --rate 12")
	fmt.Println("  cli crossover --ticker PETR4.SA --period 2y --capital 10000 --out results/crossover.csv")
	fmt.Println("  cli momentum --tickers PETR4.SA,VALE3.SA,ITUB4.SA --period 2y --out results/momentum.csv")
	fmt.Println("  cli protective-put --ticker PETR4.SA --monthly 500 --strike-pct 5 --premium-pct 2")
	fmt.Println("  cli bull-call --ticker PETR4.SA --monthly 500")
	fmt.Println("  cli rank --tickers PETR4.SA,VALE3.SA,ITUB4.SA --period 1y")
	fmt.Println("  cli fetch --ticker PETR4.SA --period 2y --out petr4.json")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - --data reads a saved history JSON instead of hitting the provider")
	fmt.Println("  - --config points at a YAML file overriding the built-in defaults")
}

func loadConfig(path string) *config.Config {
	if path == "" {
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fatal(err)
	}
	return cfg
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}

// dailyHistory resolves a ticker's daily bars from --data or the provider.
func dailyHistory(cfg *config.Config, dataPath, ticker, period string) *model.History {
	if dataPath != "" {
		hist, err := data.LoadHistoryJSON(dataPath)
		if err != nil {
			fatal(err)
		}
		return hist
	}
	client := data.NewYahooClient(cfg.Provider.BaseURL, cfg.Provider.Timeout())
	hist, err := client.FetchHistory(ticker, period)
	if err != nil {
		fatal(err)
	}
	return hist
}

// monthlyHistory is dailyHistory resampled to month-end closes.
func monthlyHistory(cfg *config.Config, dataPath, ticker, period string) *model.History {
	if dataPath != "" {
		hist, err := data.LoadHistoryJSON(dataPath)
		if err != nil {
			fatal(err)
		}
		hist.Bars = model.ResampleMonthly(hist.Bars)
		return hist
	}
	client := data.NewYahooClient(cfg.Provider.BaseURL, cfg.Provider.Timeout())
	hist, err := client.FetchMonthly(ticker, period)
	if err != nil {
		fatal(err)
	}
	return hist
}

func ensureDir(path string) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fatal(err)
	}
}

func cmdPassive(args []string) {
	fs := flag.NewFlagSet("passive", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	initial := fs.Float64("initial", 0, "Initial capital (0=config default)")
	monthly := fs.Float64("monthly", 0, "Monthly contribution (0=config default)")
	years := fs.Int("years", 10, "Horizon in years")
	rate := fs.Float64("rate", 12, "Expected annual return, percent")
	_ = fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	if *initial == 0 {
		*initial = cfg.Defaults.InitialCapital
	}
	if *monthly == 0 {
		*monthly = cfg.Defaults.MonthlyContribution
	}

	balances, err := sim.SimulatePassive(*initial, *monthly, *years, *rate)
	if err != nil {
		fatal(err)
	}
	s := analysis.SummarizePassive(balances, *initial, *monthly)
	fmt.Printf("Months simulated: %d\n", len(balances)-1)
	fmt.Printf("Total contributed: $%.2f\n", s.TotalContributed)
	fmt.Printf("Final balance:     $%.2f\n", s.FinalBalance)
	fmt.Printf("Net gain:          $%.2f (%.1f%%)\n", s.NetGain, s.ReturnPct)
}

func cmdCrossover(args []string) {
	fs := flag.NewFlagSet("crossover", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	dataPath := fs.String("data", "", "Path to saved history JSON (skips the provider)")
	ticker := fs.String("ticker", "", "Ticker symbol")
	period := fs.String("period", "", "History period (6mo,1y,2y,5y,10y,ytd,max)")
	capital := fs.Float64("capital", 0, "Initial capital (0=config default)")
	outPath := fs.String("out", "", "Optional output CSV path")
	_ = fs.Parse(args)

	if *ticker == "" && *dataPath == "" {
		fmt.Println("--ticker or --data is required")
		os.Exit(2)
	}

	cfg := loadConfig(*cfgPath)
	if *period == "" {
		*period = cfg.Defaults.Period
	}
	if *capital == 0 {
		*capital = cfg.Defaults.InitialCapital
	}

	hist := dailyHistory(cfg, *dataPath, *ticker, *period)
	res, err := sim.SimulateCrossover(hist.Bars, *capital)
	if err != nil {
		fatal(err)
	}

	s := analysis.SummarizeCrossover(res.Ledger, *capital, res.FinalCapital)
	fmt.Printf("%s: %d bars, %d trades\n", hist.Ticker, len(res.Annotated), len(res.Ledger))
	fmt.Printf("Operations: %d (wins %d / losses %d)\n", s.Operations, s.Wins, s.Losses)
	fmt.Printf("Final capital: $%.2f  net $%.2f (%.1f%%)\n", s.FinalCapital, s.NetGain, s.ReturnPct)

	if *outPath != "" {
		ensureDir(*outPath)
		if err := sim.WriteCrossoverCSV(*outPath, res.Ledger); err != nil {
			fatal(err)
		}
		fmt.Printf("Wrote %d rows to %s\n", len(res.Ledger), *outPath)
	}
}

func cmdMomentum(args []string) {
	fs := flag.NewFlagSet("momentum", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	tickers := fs.String("tickers", "", "Comma-separated tickers (default: config watchlist)")
	period := fs.String("period", "", "History period")
	initial := fs.Float64("initial", 0, "Initial capital (0=config default)")
	monthly := fs.Float64("monthly", 0, "Monthly contribution (0=config default)")
	outPath := fs.String("out", "", "Optional output CSV path")
	_ = fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	list := splitTickers(*tickers)
	if len(list) == 0 {
		list = cfg.Watchlist
	}
	if *period == "" {
		*period = cfg.Defaults.Period
	}
	if *initial == 0 {
		*initial = cfg.Defaults.InitialCapital
	}
	if *monthly == 0 {
		*monthly = cfg.Defaults.MonthlyContribution
	}

	client := data.NewYahooClient(cfg.Provider.BaseURL, cfg.Provider.Timeout())
	in := sim.MomentumInput{
		Tickers:             make([]string, 0, len(list)),
		Closes:              map[string][]float64{},
		InitialCapital:      *initial,
		MonthlyContribution: *monthly,
	}
	minLen := -1
	series := map[string]*model.History{}
	for _, t := range list {
		hist, err := client.FetchMonthly(t, *period)
		if err != nil {
			fatal(err)
		}
		series[t] = hist
		in.Tickers = append(in.Tickers, t)
		if minLen < 0 || len(hist.Bars) < minLen {
			minLen = len(hist.Bars)
		}
	}
	// Align every ticker to the shortest shared tail.
	for _, t := range in.Tickers {
		bars := series[t].Bars
		bars = bars[len(bars)-minLen:]
		closes := make([]float64, len(bars))
		for i, b := range bars {
			closes[i] = b.Close
		}
		in.Closes[t] = closes
		if t == in.Tickers[0] {
			in.Dates = make([]time.Time, len(bars))
			for i, b := range bars {
				in.Dates[i] = b.Date
			}
		}
	}

	res, err := sim.SimulateMomentum(in)
	if err != nil {
		fatal(err)
	}

	s := analysis.SummarizeMomentum(res)
	fmt.Printf("Cycles: %d  Final balance: $%.2f\n", s.Cycles, res.FinalBalance)
	fmt.Printf("Allocated: $%.2f  net $%.2f (%.1f%%)\n", s.TotalAllocated, s.NetGain, s.ReturnPct)
	if res.Recommendation != nil {
		fmt.Printf("Next month (%s): %s\n",
			res.Recommendation.Date.Format("2006-01-02"),
			strings.Join(res.Recommendation.Tickers, ", "))
	}

	if *outPath != "" {
		ensureDir(*outPath)
		if err := sim.WriteMomentumCSV(*outPath, res.Ledger); err != nil {
			fatal(err)
		}
		fmt.Printf("Wrote %d rows to %s\n", len(res.Ledger), *outPath)
	}
}

func cmdProtectivePut(args []string) {
	fs := flag.NewFlagSet("protective-put", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	dataPath := fs.String("data", "", "Path to saved history JSON (skips the provider)")
	ticker := fs.String("ticker", "", "Ticker symbol")
	period := fs.String("period", "", "History period")
	monthly := fs.Float64("monthly", 0, "Monthly contribution (0=config default)")
	strikePct := fs.Int("strike-pct", 0, "Strike percent below purchase price (0=config default)")
	premiumPct := fs.Int("premium-pct", 0, "Premium percent of purchase price (0=config default)")
	outPath := fs.String("out", "", "Optional output CSV path")
	_ = fs.Parse(args)

	if *ticker == "" && *dataPath == "" {
		fmt.Println("--ticker or --data is required")
		os.Exit(2)
	}

	cfg := loadConfig(*cfgPath)
	if *period == "" {
		*period = cfg.Defaults.Period
	}
	if *monthly == 0 {
		*monthly = cfg.Defaults.MonthlyContribution
	}
	if *strikePct == 0 {
		*strikePct = cfg.Defaults.ProtectivePut.StrikePct
	}
	if *premiumPct == 0 {
		*premiumPct = cfg.Defaults.ProtectivePut.PremiumPct
	}

	hist := monthlyHistory(cfg, *dataPath, *ticker, *period)
	rows, err := sim.SimulateProtectivePut(hist.Bars, *monthly, *strikePct, *premiumPct)
	if err != nil {
		fatal(err)
	}

	s := analysis.SummarizeProtectivePut(rows)
	fmt.Printf("%s: %d months\n", hist.Ticker, s.Months)
	fmt.Printf("Total cost: $%.2f  final value: $%.2f  net $%.2f\n", s.TotalCost, s.TotalFinalValue, s.NetProfit)
	fmt.Printf("Profitable: %d  losing: %d  put exercised: %d\n", s.ProfitableMonths, s.LosingMonths, s.ProtectedMonths)

	if *outPath != "" {
		ensureDir(*outPath)
		if err := sim.WriteProtectivePutCSV(*outPath, rows); err != nil {
			fatal(err)
		}
		fmt.Printf("Wrote %d rows to %s\n", len(rows), *outPath)
	}
}

func cmdBullCall(args []string) {
	fs := flag.NewFlagSet("bull-call", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	dataPath := fs.String("data", "", "Path to saved history JSON (skips the provider)")
	ticker := fs.String("ticker", "", "Ticker symbol")
	period := fs.String("period", "", "History period")
	monthly := fs.Float64("monthly", 0, "Monthly contribution (0=config default)")
	otmPct := fs.Int("otm-pct", 0, "OTM strike percent above price (0=config default)")
	itmPct := fs.Int("itm-pct", 0, "ITM strike percent below price (0=config default)")
	premITM := fs.Int("premium-itm-pct", 0, "ITM premium percent (0=config default)")
	premOTM := fs.Int("premium-otm-pct", 0, "OTM premium percent (0=config default)")
	outPath := fs.String("out", "", "Optional output CSV path")
	_ = fs.Parse(args)

	if *ticker == "" && *dataPath == "" {
		fmt.Println("--ticker or --data is required")
		os.Exit(2)
	}

	cfg := loadConfig(*cfgPath)
	if *period == "" {
		*period = cfg.Defaults.Period
	}
	if *monthly == 0 {
		*monthly = cfg.Defaults.MonthlyContribution
	}
	params := sim.BullCallParams{
		OTMPct:        orInt(*otmPct, cfg.Defaults.BullCall.OTMPct),
		ITMPct:        orInt(*itmPct, cfg.Defaults.BullCall.ITMPct),
		PremiumITMPct: orInt(*premITM, cfg.Defaults.BullCall.PremiumITMPct),
		PremiumOTMPct: orInt(*premOTM, cfg.Defaults.BullCall.PremiumOTMPct),
	}

	hist := monthlyHistory(cfg, *dataPath, *ticker, *period)
	rows, err := sim.SimulateBullCall(hist.Bars, *monthly, params)
	if err != nil {
		fatal(err)
	}

	s := analysis.SummarizeBullCall(rows)
	fmt.Printf("%s: %d months\n", hist.Ticker, s.Months)
	fmt.Printf("Total cost: $%.2f  payoff: $%.2f  net $%.2f\n", s.TotalCost, s.TotalFinalValue, s.NetProfit)
	fmt.Printf("Profitable: %d  losing: %d\n", s.ProfitableMonths, s.LosingMonths)

	if *outPath != "" {
		ensureDir(*outPath)
		if err := sim.WriteBullCallCSV(*outPath, rows); err != nil {
			fatal(err)
		}
		fmt.Printf("Wrote %d rows to %s\n", len(rows), *outPath)
	}
}

func cmdRank(args []string) {
	fs := flag.NewFlagSet("rank", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	tickers := fs.String("tickers", "", "Comma-separated tickers (default: config watchlist)")
	period := fs.String("period", "", "History period")
	_ = fs.Parse(args)

	cfg := loadConfig(*cfgPath)
	list := splitTickers(*tickers)
	if len(list) == 0 {
		list = cfg.Watchlist
	}
	if *period == "" {
		*period = cfg.Defaults.Period
	}

	client := data.NewYahooClient(cfg.Provider.BaseURL, cfg.Provider.Timeout())
	closes := map[string][]float64{}
	for _, t := range list {
		hist, err := client.FetchMonthly(t, *period)
		if err != nil {
			fatal(err)
		}
		closes[t] = hist.Closes()
	}

	ranked := analysis.RankByTrailingReturn(list, closes)
	fmt.Printf("%-4s %-12s %-10s %-10s %-6s\n", "rank", "ticker", "last", "trail%", "months")
	for _, r := range ranked {
		fmt.Printf("%-4d %-12s %-10.2f %-10.2f %-6d\n", r.Rank, r.Ticker, r.LastClose, r.TrailingPct, r.MonthsOfData)
	}
}

func cmdFetch(args []string) {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	ticker := fs.String("ticker", "", "Ticker symbol")
	period := fs.String("period", "", "History period")
	outPath := fs.String("out", "", "Output JSON path (default <ticker>.json)")
	monthly := fs.Bool("monthly", false, "Resample to month-end closes before saving")
	_ = fs.Parse(args)

	if *ticker == "" {
		fmt.Println("--ticker is required")
		os.Exit(2)
	}

	cfg := loadConfig(*cfgPath)
	if *period == "" {
		*period = cfg.Defaults.Period
	}
	if *outPath == "" {
		*outPath = strings.ToLower(*ticker) + ".json"
	}

	client := data.NewYahooClient(cfg.Provider.BaseURL, cfg.Provider.Timeout())
	var (
		hist *model.History
		err  error
	)
	if *monthly {
		hist, err = client.FetchMonthly(*ticker, *period)
	} else {
		hist, err = client.FetchHistory(*ticker, *period)
	}
	if err != nil {
		fatal(err)
	}

	ensureDir(*outPath)
	if err := data.SaveHistoryJSON(hist, *outPath); err != nil {
		fatal(err)
	}
	fmt.Printf("Wrote %d bars to %s\n", len(hist.Bars), *outPath)
}

func splitTickers(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, strings.ToUpper(p))
		}
	}
	return out
}

func orInt(v, def int) int {
	if v != 0 {
		return v
	}
	return def
}
