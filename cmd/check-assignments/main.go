package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"smarthospital-client/internal/audit"
	"smarthospital-client/internal/client"
	"smarthospital-client/internal/config"
	"smarthospital-client/internal/logger"
	"smarthospital-client/internal/report"
	"smarthospital-client/internal/repository"
)

// check-assignments 一致性审计工具
// 拉取床位/患者/设备快照，检查分配约束（床位-患者对称性、约束 A/B/C），
// 有 critical 级发现时以非零退出码结束
func main() {
	var xlsxPath = flag.String("xlsx", "", "Write audit findings to an Excel file (e.g., 'audit.xlsx')")
	var timeoutSec = flag.Int("timeout", 60, "Overall fetch timeout in seconds")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level, cfg.Log.Format, "check-assignments")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	apiClient := client.New(cfg.API.BaseURL, cfg.API.Token,
		time.Duration(cfg.API.TimeoutSeconds)*time.Second, zapLogger)
	bedsRepo := repository.NewRestBedsRepo(apiClient, zapLogger)
	patientsRepo := repository.NewRestPatientsRepo(apiClient, zapLogger)
	devicesRepo := repository.NewRestDevicesRepo(apiClient, zapLogger)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(*timeoutSec)*time.Second)
	defer cancel()

	beds, err := bedsRepo.ListBeds(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch beds: %v", err)
	}
	patients, err := patientsRepo.ListPatients(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch patients: %v", err)
	}
	devices, err := devicesRepo.ListDevices(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch devices: %v", err)
	}

	fmt.Printf("Fetched %d beds, %d patients, %d devices from %s\n",
		len(beds), len(patients), len(devices), cfg.API.BaseURL)

	findings := audit.Run(beds, patients, devices)

	if len(findings) == 0 {
		fmt.Println("OK: no assignment consistency violations found")
	} else {
		fmt.Printf("Found %d violation(s):\n\n", len(findings))
		for i, f := range findings {
			fmt.Printf("%d. [%s] %s\n", i+1, f.Severity, f.Check)
			if f.BedID != "" {
				fmt.Printf("   bed: %s\n", f.BedID)
			}
			if f.RoomID != "" {
				fmt.Printf("   room: %s\n", f.RoomID)
			}
			if f.DeviceID != "" {
				fmt.Printf("   device: %s\n", f.DeviceID)
			}
			if f.PatientID != "" {
				fmt.Printf("   patient: %s\n", f.PatientID)
			}
			fmt.Printf("   %s\n\n", f.Detail)
		}
	}

	if *xlsxPath != "" {
		data, err := report.GenerateAuditReport(findings)
		if err != nil {
			log.Fatalf("Failed to generate Excel report: %v", err)
		}
		if err := os.WriteFile(*xlsxPath, data, 0o644); err != nil {
			log.Fatalf("Failed to write Excel report: %v", err)
		}
		fmt.Printf("Audit report written to %s\n", *xlsxPath)
	}

	if audit.HasCritical(findings) {
		os.Exit(1)
	}
}
