package service

import (
	"fmt"

	"edge-gdt-validator/internal/model"
	"edge-gdt-validator/pkg/models"
)

// reportToModel раскладывает отчет в строки базы данных в порядке подсчета
func reportToModel(report *models.EdgeValidationReport, source string) *model.ValidationRun {
	run := &model.ValidationRun{
		ID:              report.ID,
		SpecificationID: report.SpecificationID,
		PartID:          report.PartID,
		Source:          source,
		ValidatedAt:     report.Timestamp,
		OverallStatus:   report.OverallStatus().String(),
		TotalChecks:     report.TotalChecks,
		PassedChecks:    report.PassedChecks,
		WarningChecks:   report.WarningChecks,
		FailedChecks:    report.FailedChecks,
	}

	add := func(section string, o models.Orientation, r models.ValidationResult) {
		run.Checks = append(run.Checks, model.CheckResult{
			Section:              section,
			Orientation:          string(o),
			CheckName:            r.CheckName,
			Status:               r.Status.String(),
			MeasuredValue:        r.MeasuredValue,
			NominalValue:         r.NominalValue,
			Deviation:            r.Deviation,
			Tolerance:            r.Tolerance,
			CompliancePercentage: r.CompliancePercentage,
			Message:              r.Message,
			Recommendations:      r.Recommendations,
		})
	}

	for _, o := range models.AllOrientations() {
		for _, r := range report.ChamferResults[o] {
			add(model.SectionChamfer, o, r)
		}
	}
	if report.ProfileConsistency != nil {
		add(model.SectionConsistency, "", *report.ProfileConsistency)
	}
	for _, o := range models.AllOrientations() {
		if r, ok := report.SquarenessResults[o]; ok {
			add(model.SectionSquareness, o, r)
		}
	}
	for _, o := range models.AllOrientations() {
		for _, r := range report.DripEdgeResults[o] {
			add(model.SectionDripEdge, o, r)
		}
	}

	return run
}

// modelToReport восстанавливает отчет из сохраненного прогона
func modelToReport(run *model.ValidationRun) (*models.EdgeValidationReport, error) {
	report := models.NewEdgeValidationReport(run.SpecificationID, run.ValidatedAt.UTC())
	report.ID = run.ID
	report.PartID = run.PartID
	report.TotalChecks = run.TotalChecks
	report.PassedChecks = run.PassedChecks
	report.WarningChecks = run.WarningChecks
	report.FailedChecks = run.FailedChecks

	for _, check := range run.Checks {
		status, err := models.ParseValidationStatus(check.Status)
		if err != nil {
			return nil, fmt.Errorf("check %d of run %s: %w", check.Position, run.ID, err)
		}
		result := models.ValidationResult{
			CheckName:            check.CheckName,
			Status:               status,
			MeasuredValue:        check.MeasuredValue,
			NominalValue:         check.NominalValue,
			Deviation:            check.Deviation,
			Tolerance:            check.Tolerance,
			CompliancePercentage: check.CompliancePercentage,
			Message:              check.Message,
			Recommendations:      check.Recommendations,
		}

		if check.Section == model.SectionConsistency {
			report.ProfileConsistency = &result
			continue
		}

		o, err := models.ParseOrientation(check.Orientation)
		if err != nil {
			return nil, fmt.Errorf("check %d of run %s: %w", check.Position, run.ID, err)
		}
		switch check.Section {
		case model.SectionChamfer:
			report.ChamferResults[o] = append(report.ChamferResults[o], result)
		case model.SectionSquareness:
			report.SquarenessResults[o] = result
		case model.SectionDripEdge:
			report.DripEdgeResults[o] = append(report.DripEdgeResults[o], result)
		default:
			return nil, fmt.Errorf("check %d of run %s: unknown section %q", check.Position, run.ID, check.Section)
		}
	}

	return report, nil
}
