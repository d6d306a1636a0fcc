package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"edge-gdt-validator/internal/gdt"
	"edge-gdt-validator/internal/simulate"
	"edge-gdt-validator/internal/spec"
	"edge-gdt-validator/pkg/models"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

func main() {
	specID := flag.String("spec", spec.C8StandardID, "specification ID")
	catalogPath := flag.String("catalog", "", "YAML file with additional specifications")
	seed := flag.Uint64("seed", 1, "simulation seed")
	noise := flag.Float64("noise", 0.01, "relative measurement noise")
	withDrip := flag.Bool("drip", true, "simulate drip edge readings")
	parallelism := flag.Int("parallelism", gdt.DefaultParallelism, "orientations evaluated concurrently")
	server := flag.String("server", "", "validation server base URL, e.g. http://localhost:8080")
	flag.Parse()

	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	var (
		summary string
		status  models.ValidationStatus
		err     error
	)
	if *server != "" {
		summary, status, err = runRemote(*server, models.SimulateRequest{
			SpecificationID: *specID,
			Seed:            *seed,
			NoiseFactor:     *noise,
			WithDrip:        *withDrip,
		})
	} else {
		summary, status, err = runLocal(*specID, *catalogPath, *seed, *noise, *withDrip, *parallelism)
	}
	if err != nil {
		logger.Fatalf("Ошибка проверки: %v", err)
	}

	fmt.Print(summary)
	if status == models.StatusFail {
		os.Exit(2)
	}
}

func runLocal(specID, catalogPath string, seed uint64, noise float64, withDrip bool, parallelism int) (string, models.ValidationStatus, error) {
	catalog := spec.DefaultCatalog()
	if catalogPath != "" {
		if _, err := catalog.LoadCatalog(catalogPath); err != nil {
			return "", models.StatusNotChecked, err
		}
	}

	processSpec, err := catalog.Get(specID)
	if err != nil {
		return "", models.StatusNotChecked, err
	}

	set := simulate.MeasurementSet(processSpec, seed, noise, withDrip)
	report := gdt.NewEngine(processSpec, gdt.WithParallelism(parallelism)).
		ValidateAll(set.ChamferMeasurements, set.EdgePoints, set.DripMeasurements)
	report.PartID = fmt.Sprintf("SIM-%d", seed)

	return gdt.FormatSummary(report), report.OverallStatus(), nil
}

func runRemote(baseURL string, req models.SimulateRequest) (string, models.ValidationStatus, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	httpClient := &http.Client{Timeout: 30 * time.Second}

	payload, err := json.Marshal(req)
	if err != nil {
		return "", models.StatusNotChecked, err
	}

	resp, err := httpClient.Post(baseURL+"/api/v1/validations/simulate", "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", models.StatusNotChecked, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", models.StatusNotChecked, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusCreated {
		return "", models.StatusNotChecked, fmt.Errorf("server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var created struct {
		ID            string                  `json:"id"`
		OverallStatus models.ValidationStatus `json:"overall_status"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		return "", models.StatusNotChecked, fmt.Errorf("decode report: %w", err)
	}

	summaryResp, err := httpClient.Get(fmt.Sprintf("%s/api/v1/validations/%s/summary", baseURL, created.ID))
	if err != nil {
		return "", models.StatusNotChecked, fmt.Errorf("fetch summary: %w", err)
	}
	defer summaryResp.Body.Close()

	summary, err := io.ReadAll(summaryResp.Body)
	if err != nil {
		return "", models.StatusNotChecked, fmt.Errorf("read summary: %w", err)
	}
	if summaryResp.StatusCode != http.StatusOK {
		return "", models.StatusNotChecked, fmt.Errorf("summary returned status %d", summaryResp.StatusCode)
	}

	return string(summary), created.OverallStatus, nil
}
