// Command report prints derived finance views for the configured backend
// and optionally writes them to a spreadsheet.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"spendsmart/internal/backend"
	"spendsmart/internal/config"
	"spendsmart/internal/export"
	applog "spendsmart/internal/log"
	"spendsmart/internal/services"
)

func main() {
	_ = godotenv.Load()

	xlsxPath := flag.String("xlsx", "", "write a full workbook to this path")
	showCategories := flag.Bool("categories", true, "print the per-category breakdown")
	showUpcoming := flag.Bool("upcoming", true, "print upcoming payments")
	showCosts := flag.Bool("costs", true, "print the subscription cost overview")
	flag.Parse()

	logger := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentReport)
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Reports never publish events, so the broker is skipped entirely.
	opts := backend.FromAppConfig(cfg)
	opts.AMQPURL = ""

	factory := backend.NewFactory(logger)
	result, err := factory.Create(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "initialize backend: %v\n", err)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer result.Cleanup()
	}

	service := services.NewFinanceService(result.Store, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	summary, upcoming, err := service.Dashboard(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "derive dashboard: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Dashboard")
	export.WriteSummary(os.Stdout, summary)

	if *showCategories {
		totals, err := service.CategoryBreakdown(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "derive category breakdown: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("\nSpending by category")
		export.WriteCategoryBreakdown(os.Stdout, totals)
	}

	if *showUpcoming {
		fmt.Println("\nUpcoming payments")
		export.WriteUpcoming(os.Stdout, upcoming)
	}

	if *showCosts {
		overview, err := service.SubscriptionOverview(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "derive subscription overview: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("\nSubscription costs")
		export.WriteCostOverview(os.Stdout, overview)
	}

	if *xlsxPath != "" {
		expenses, err := service.ListExpenses(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "list expenses: %v\n", err)
			os.Exit(1)
		}
		goals, err := service.ListGoals(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "list goals: %v\n", err)
			os.Exit(1)
		}
		subscriptions, err := service.ListSubscriptions(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "list subscriptions: %v\n", err)
			os.Exit(1)
		}

		wb := export.Workbook{
			Summary:       summary,
			Expenses:      expenses,
			Goals:         goals,
			Subscriptions: subscriptions,
		}
		if err := export.WriteXLSX(wb, *xlsxPath); err != nil {
			fmt.Fprintf(os.Stderr, "write workbook: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nWorkbook written to %s\n", *xlsxPath)
	}
}
