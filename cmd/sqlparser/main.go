package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/repr"
	"github.com/sirupsen/logrus"

	sqlfront "github.com/Chahine-tech/sqlfront-go"
	"github.com/Chahine-tech/sqlfront-go/internal/config"
)

const banner = `
 ███████╗ ██████╗ ██╗     ███████╗███╗   ██╗███████╗
 ██╔════╝██╔═══██╗██║     ██╔════╝████╗  ██║██╔════╝
 ███████╗██║   ██║██║     █████╗  ██╔██╗ ██║███████╗
 ╚════██║██║▄▄ ██║██║     ██╔══╝  ██║╚██╗██║╚════██║
 ███████║╚██████╔╝███████╗███████╗██║ ╚████║███████║
 ╚══════╝ ╚══▀▀═╝ ╚══════╝╚══════╝╚═╝  ╚═══╝╚══════╝

 sqlfront — SQL lexer, parser and structural query analyzer
`

var log = logrus.StandardLogger()

func main() {
	var (
		queryFile    = flag.String("query", "", "File containing the SQL query")
		queryText    = flag.String("sql", "", "SQL query string")
		outputFormat = flag.String("output", "json", "Output format (json, table)")
		verbose      = flag.Bool("verbose", false, "Verbose mode")
		configFile   = flag.String("config", "", "Configuration file path")
		dialectFlag  = flag.String("dialect", "", "SQL dialect (ansi, mysql, postgresql, sqlserver, sqlite)")
		strictFlag   = flag.Bool("strict", false, "Reject trailing tokens after a complete statement")
		showAST      = flag.Bool("ast", false, "Print the parsed AST instead of the analysis")
		showHelp     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if *showHelp {
		fmt.Print(banner)
		showUsage()
		return
	}

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.WithError(err).Warn("could not load config, falling back to defaults")
		cfg = config.DefaultConfig()
	}

	if *outputFormat != "json" {
		cfg.Output.Format = *outputFormat
	}
	if *dialectFlag != "" {
		cfg.Parser.Dialect = *dialectFlag
	}
	if *strictFlag {
		cfg.Parser.Strict = true
	}

	var sql string
	switch {
	case *queryFile != "":
		content, err := os.ReadFile(*queryFile)
		if err != nil {
			log.WithError(err).Fatal("failed to read query file")
		}
		sql = string(content)
	case *queryText != "":
		sql = *queryText
	default:
		showUsage()
		os.Exit(1)
	}

	if err := analyzeQueryString(sql, cfg, *verbose, *showAST); err != nil {
		log.WithError(err).Fatal("failed to analyze query")
	}
}

func showUsage() {
	fmt.Println("sqlfront - SQL lexer, parser and structural query analyzer")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  sqlparser -query file.sql          Analyze SQL query from file")
	fmt.Println("  sqlparser -sql \"SELECT * FROM...\"   Analyze SQL query from string")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -output FORMAT    Output format: json, table (default: json)")
	fmt.Println("  -dialect DIALECT  SQL dialect: ansi, mysql, postgresql, sqlserver, sqlite")
	fmt.Println("  -strict           Reject trailing tokens after a complete statement")
	fmt.Println("  -ast              Print the parsed AST instead of the analysis")
	fmt.Println("  -verbose          Enable verbose output")
	fmt.Println("  -config FILE      Configuration file path")
	fmt.Println("  -help             Show this help")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  sqlparser -query complex_query.sql -output json -dialect mysql")
	fmt.Println("  sqlparser -sql \"SELECT u.name, o.total FROM users u JOIN orders o ON u.id = o.user_id\" -dialect postgresql")
}

func analyzeQueryString(sql string, cfg *config.Config, verbose, showAST bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	start := time.Now()

	opts := sqlfront.Options{
		Strict:  cfg.Parser.Strict,
		Dialect: cfg.Parser.Dialect,
	}

	if verbose {
		fmt.Print(banner)
		log.WithFields(logrus.Fields{
			"dialect": cfg.Parser.Dialect,
			"strict":  cfg.Parser.Strict,
		}).Debug("parsing query")
	}

	if showAST {
		result := sqlfront.ParseSQLContext(ctx, sql, opts)
		if !result.Success {
			return fmt.Errorf("parse error: %s", result.Error)
		}
		repr.Println(result.AST)
		return nil
	}

	result := sqlfront.AnalyzeSQLContext(ctx, sql, opts)
	if !result.Success {
		return fmt.Errorf("parse error: %s", result.Error)
	}

	if verbose {
		log.WithFields(logrus.Fields{
			"statementType": result.Query.Type,
			"elapsed":       time.Since(start),
		}).Debug("parse complete")
	}

	return outputAnalysis(result, cfg)
}

func outputAnalysis(result sqlfront.AnalyzeResult, cfg *config.Config) error {
	switch cfg.Output.Format {
	case "table":
		return outputTable(result)
	default:
		return outputJSON(result, cfg.Output.Pretty)
	}
}

func outputJSON(v interface{}, pretty bool) error {
	var data []byte
	var err error
	if pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func outputTable(result sqlfront.AnalyzeResult) error {
	fmt.Printf("Statement type: %s\n", result.Query.Type)
	if result.Analysis == nil {
		fmt.Println("(no structural analysis for this statement type)")
		return nil
	}

	a := result.Analysis
	fmt.Printf("Complexity: %s (score %d)\n", a.ComplexityLevel, a.Complexity)
	if len(a.ComplexityFactors) > 0 {
		fmt.Println("Factors:")
		for _, f := range a.ComplexityFactors {
			fmt.Printf("  - %s\n", f)
		}
	}

	if len(a.Tables) > 0 {
		fmt.Println("Tables:")
		for _, t := range a.Tables {
			if t.Alias != "" {
				fmt.Printf("  - %s AS %s\n", t.Name, t.Alias)
			} else {
				fmt.Printf("  - %s\n", t.Name)
			}
		}
	}

	if len(a.Joins) > 0 {
		fmt.Println("Joins:")
		for _, j := range a.Joins {
			fmt.Printf("  - %s JOIN %s\n", j.Kind, j.Table)
		}
	}

	if len(a.Conditions) > 0 {
		fmt.Println("Conditions:")
		for _, c := range a.Conditions {
			fmt.Printf("  - %s %s %s (%s)\n", c.Field, c.Operator, c.Value, c.Type)
		}
	}

	return nil
}
