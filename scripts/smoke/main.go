// Command smoke probes a running API instance and reports per-endpoint
// status. Exit code 1 when any critical endpoint fails, so it can gate
// deploys from CI.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

type target struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Status   int    `json:"status"`
	Critical bool   `json:"critical"`
}

type probe struct {
	Target   target
	Status   int
	OK       bool
	Error    error
	Duration time.Duration
}

func defaultTargets() []target {
	return []target{
		{Method: http.MethodGet, Path: "/health", Status: http.StatusOK, Critical: true},
		{Method: http.MethodGet, Path: "/ready", Status: http.StatusOK, Critical: true},
		{Method: http.MethodGet, Path: "/metrics", Status: http.StatusOK, Critical: false},
		{Method: http.MethodGet, Path: "/api/v1/catalog/chapters", Status: http.StatusOK, Critical: true},
		{Method: http.MethodGet, Path: "/api/v1/catalog/courses", Status: http.StatusOK, Critical: true},
		{Method: http.MethodGet, Path: "/api/v1/announcements", Status: http.StatusOK, Critical: false},
		{Method: http.MethodGet, Path: "/api/v1/teacher/profile", Status: http.StatusOK, Critical: false},
		{Method: http.MethodGet, Path: "/api/v1/auth/session", Status: http.StatusUnauthorized, Critical: true},
	}
}

func main() {
	var (
		base        string
		targetsPath string
		timeout     time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:8080", "API base URL")
	flag.StringVar(&targetsPath, "targets", "", "Optional JSON targets file overriding the built-in set")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	targets := defaultTargets()
	if targetsPath != "" {
		loaded, err := loadTargets(targetsPath)
		if err != nil {
			log.Fatalf("failed to load targets: %v", err)
		}
		targets = loaded
	}

	client := &http.Client{Timeout: timeout}
	var failures int

	probes := make([]probe, 0, len(targets))
	for _, t := range targets {
		p := probeTarget(client, base, t)
		if !p.OK && t.Critical {
			failures++
		}
		probes = append(probes, p)
	}

	printReport(probes)
	if failures > 0 {
		fmt.Printf("%d critical endpoint(s) failing\n", failures)
		os.Exit(1)
	}
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg struct {
		Targets []target `json:"targets"`
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return cfg.Targets, nil
}

func probeTarget(client *http.Client, base string, tgt target) probe {
	p := probe{Target: tgt}

	req, err := http.NewRequest(tgt.Method, base+tgt.Path, nil)
	if err != nil {
		p.Error = err
		return p
	}

	start := time.Now()
	resp, err := client.Do(req)
	p.Duration = time.Since(start)
	if err != nil {
		p.Error = err
		return p
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	p.Status = resp.StatusCode
	want := tgt.Status
	if want == 0 {
		want = http.StatusOK
	}
	p.OK = p.Status == want
	return p
}

func printReport(probes []probe) {
	for _, p := range probes {
		mark := "ok"
		switch {
		case p.Error != nil:
			mark = fmt.Sprintf("ERROR %v", p.Error)
		case !p.OK:
			mark = fmt.Sprintf("FAIL got %d want %d", p.Status, p.Target.Status)
		}
		fmt.Printf("%-6s %-40s %8s  %s\n", p.Target.Method, p.Target.Path, p.Duration.Round(time.Millisecond), mark)
	}
}
