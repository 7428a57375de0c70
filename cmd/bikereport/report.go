package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jgoulah/bikereport/internal/aggregate"
	"github.com/jgoulah/bikereport/internal/export"
	"github.com/jgoulah/bikereport/internal/render"
	"github.com/jgoulah/bikereport/internal/snapshot"
	"github.com/spf13/cobra"
)

var (
	reportSource  string
	reportHTML    string
	reportPDF     string
	reportXLSX    string
	reportVisible bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the rental report",
	Long: `Loads the dataset, computes average rentals by weather situation and by
weekday/weekend, and total rentals per date, then prints each table with its
conclusions. Use --html, --pdf or --xlsx to also write those renderings.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportSource, "source", "csv", "Dataset source (csv or sqlite)")
	reportCmd.Flags().StringVar(&reportHTML, "html", "", "Write the chart dashboard to this HTML file")
	reportCmd.Flags().StringVar(&reportPDF, "pdf", "", "Print the chart dashboard to this PDF file (needs Chrome)")
	reportCmd.Flags().StringVar(&reportXLSX, "xlsx", "", "Write the aggregate tables to this XLSX file")
	reportCmd.Flags().BoolVar(&reportVisible, "visible", false, "Show browser window while printing the PDF")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log := newLogger(cfg).WithField("command", "report")

	table, err := loadTable(cfg, reportSource, log)
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}
	log.WithFields(map[string]interface{}{"source": table.Name(), "rows": table.Len(), "columns": table.Header()}).Infof("dataset loaded")

	result, aggErr := aggregate.All(table)
	if aggErr != nil {
		log.Warnf("aggregation failed, affected sections are skipped: %v", aggErr)
	}

	if err := render.WriteText(cmd.OutOrStdout(), result); err != nil {
		return fmt.Errorf("printing report: %w", err)
	}

	htmlPath := firstNonEmpty(reportHTML, cfg.Output.HTML)
	pdfPath := firstNonEmpty(reportPDF, cfg.Output.PDF)
	xlsxPath := firstNonEmpty(reportXLSX, cfg.Output.XLSX)

	// The PDF is printed from the HTML dashboard, so render one if needed
	if pdfPath != "" && htmlPath == "" {
		dir, err := os.MkdirTemp("", "bikereport")
		if err != nil {
			return fmt.Errorf("creating temp directory: %w", err)
		}
		defer os.RemoveAll(dir)
		htmlPath = filepath.Join(dir, "dashboard.html")
	}

	if htmlPath != "" {
		if err := writeFile(htmlPath, func(f *os.File) error { return render.WriteHTML(f, result) }); err != nil {
			return fmt.Errorf("writing dashboard: %w", err)
		}
		log.WithField("path", htmlPath).Infof("dashboard written")
	}

	if pdfPath != "" {
		opts := snapshot.Options{Visible: reportVisible}
		if err := snapshot.PrintPDF(context.Background(), htmlPath, pdfPath, opts); err != nil {
			return fmt.Errorf("printing PDF: %w", err)
		}
		log.WithField("path", pdfPath).Infof("PDF written")
	}

	if xlsxPath != "" {
		if err := writeFile(xlsxPath, func(f *os.File) error { return export.WriteXLSX(f, result) }); err != nil {
			return fmt.Errorf("writing workbook: %w", err)
		}
		log.WithField("path", xlsxPath).Infof("workbook written")
	}

	if aggErr != nil {
		return fmt.Errorf("report incomplete: %w", aggErr)
	}
	return nil
}

func writeFile(path string, write func(f *os.File) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
