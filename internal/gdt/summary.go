package gdt

import (
	"fmt"
	"strings"

	"edge-gdt-validator/pkg/models"
)

const rule = "======================================================================"

var statusMarkers = map[models.ValidationStatus]string{
	models.StatusPass:       "[PASS]",
	models.StatusWarn:       "[WARN]",
	models.StatusFail:       "[FAIL]",
	models.StatusNotChecked: "[N/C] ",
}

// FormatSummary формирует текстовую сводку отчета.
// Для машинной обработки следует использовать сам отчет, а не этот текст.
func FormatSummary(report *models.EdgeValidationReport) string {
	var b strings.Builder

	b.WriteString(rule + "\n")
	b.WriteString("GD&T VALIDATION REPORT\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Specification: %s\n", report.SpecificationID)
	if report.PartID != "" {
		fmt.Fprintf(&b, "Part: %s\n", report.PartID)
	}
	if report.ID != "" {
		fmt.Fprintf(&b, "Report ID: %s\n", report.ID)
	}
	fmt.Fprintf(&b, "Timestamp: %s\n", report.Timestamp.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "Overall Status: %s\n\n", strings.ToUpper(report.OverallStatus().String()))

	fmt.Fprintf(&b, "Total Checks: %d\n", report.TotalChecks)
	fmt.Fprintf(&b, "  Passed:   %d (%.1f%%)\n", report.PassedChecks, report.Percentage(report.PassedChecks))
	fmt.Fprintf(&b, "  Warnings: %d (%.1f%%)\n", report.WarningChecks, report.Percentage(report.WarningChecks))
	fmt.Fprintf(&b, "  Failed:   %d (%.1f%%)\n", report.FailedChecks, report.Percentage(report.FailedChecks))

	if len(report.ChamferResults) > 0 || report.ProfileConsistency != nil {
		b.WriteString("\nCHAMFER VALIDATION:\n")
		for _, o := range models.AllOrientations() {
			results, ok := report.ChamferResults[o]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "  %s:\n", strings.ToUpper(string(o)))
			for _, result := range results {
				writeResult(&b, result)
			}
		}
		if report.ProfileConsistency != nil {
			b.WriteString("  ALL EDGES:\n")
			writeResult(&b, *report.ProfileConsistency)
		}
	}

	if len(report.SquarenessResults) > 0 {
		b.WriteString("\nEDGE SQUARENESS:\n")
		for _, o := range models.AllOrientations() {
			if result, ok := report.SquarenessResults[o]; ok {
				fmt.Fprintf(&b, "  %s:\n", strings.ToUpper(string(o)))
				writeResult(&b, result)
			}
		}
	}

	if len(report.DripEdgeResults) > 0 {
		b.WriteString("\nDRIP EDGE VALIDATION:\n")
		for _, o := range models.AllOrientations() {
			results, ok := report.DripEdgeResults[o]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "  %s:\n", strings.ToUpper(string(o)))
			for _, result := range results {
				writeResult(&b, result)
			}
		}
	}

	b.WriteString(rule + "\n")
	return b.String()
}

func writeResult(b *strings.Builder, result models.ValidationResult) {
	fmt.Fprintf(b, "    %s %s: %s\n", statusMarkers[result.Status], result.CheckName, result.Message)
	for _, recommendation := range result.Recommendations {
		if strings.TrimSpace(recommendation) == "" {
			continue
		}
		fmt.Fprintf(b, "      -> %s\n", recommendation)
	}
}
