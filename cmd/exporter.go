package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/kardianos/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"ring-cli/internal/client"
	"ring-cli/pkg/models"
)

// Variables to hold flag values
var (
	expHost       string
	expUser       string
	expPass       string
	expPort       string
	serviceAction string // "install", "uninstall", "start", "stop"
)

// --- SERVICE WRAPPER ---

// program implements the kardianos/service interface
type program struct {
	exit      chan struct{}
	server    *http.Server
	collector *RingCollector
}

func (p *program) Start(s service.Service) error {
	// Start should not block. Do the actual work async.
	p.exit = make(chan struct{})
	go p.run()
	return nil
}

func (p *program) run() {
	// 1. Initial Login
	log.Println("Attempting initial login...")
	if err := p.collector.login(); err != nil {
		log.Printf("Fatal: Initial login failed: %v", err)
		// We exit so the service manager attempts a restart.
		os.Exit(1)
	}
	log.Println("Initial login successful.")

	// 2. Setup Prometheus
	registry := prometheus.NewRegistry()
	registry.MustRegister(p.collector)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)

	addr := fmt.Sprintf(":%s", expPort)
	p.server = &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	log.Printf("Ring Exporter listening on %s", addr)

	// Blocking call to listen
	if err := p.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("HTTP Server error: %v", err)
	}
}

func (p *program) Stop(s service.Service) error {
	// Stop should not block. Signal the app to stop.
	log.Println("Stopping service...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if p.server != nil {
		if err := p.server.Shutdown(ctx); err != nil {
			log.Printf("Server forced to shutdown: %v", err)
		}
	}
	close(p.exit)
	return nil
}

// --- COLLECTOR LOGIC ---

// RingCollector scrapes the Ring API on every Prometheus collection. The
// token expires from time to time; an authentication failure mid-scrape
// triggers one re-login with the stored credentials.
type RingCollector struct {
	mutex    sync.Mutex
	cfg      client.ClientConfig
	username string
	password string
	api      *client.RingClient
}

var (
	upDesc = prometheus.NewDesc(
		"ring_up", "Was the last scrape successful.", nil, nil,
	)
	scrapeDurationDesc = prometheus.NewDesc(
		"ring_scrape_duration_seconds", "Time taken to scrape API.", nil, nil,
	)
	deviceBatteryDesc = prometheus.NewDesc(
		"ring_device_battery_percent", "Battery level per device.", []string{"id", "description", "type"}, nil,
	)
	deviceCountDesc = prometheus.NewDesc(
		"ring_devices_total", "Total devices grouped by type.", []string{"type"}, nil,
	)
	activeDingsDesc = prometheus.NewDesc(
		"ring_active_dings_total", "Active dings grouped by kind.", []string{"kind"}, nil,
	)
)

func (c *RingCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- upDesc
	ch <- scrapeDurationDesc
	ch <- deviceBatteryDesc
	ch <- deviceCountDesc
	ch <- activeDingsDesc
}

func (c *RingCollector) Collect(ch chan<- prometheus.Metric) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	start := time.Now()
	success := 1.0

	// 1. Devices
	if devices, err := c.fetchDevicesWithRelogin(); err == nil {
		typeCounts := make(map[string]float64)
		for _, d := range devices {
			typeCounts[string(d.Type)]++

			// Mains-powered hardware carries the sentinel: no gauge.
			if d.BatteryLife == models.BatteryNotApplicable {
				continue
			}
			ch <- prometheus.MustNewConstMetric(deviceBatteryDesc, prometheus.GaugeValue,
				float64(d.BatteryLife), strconv.FormatUint(d.ID, 10), d.Description, string(d.Type))
		}
		for ty, cnt := range typeCounts {
			ch <- prometheus.MustNewConstMetric(deviceCountDesc, prometheus.GaugeValue, cnt, ty)
		}
	} else {
		success = 0.0
		log.Printf("Error scraping devices: %v", err)
	}

	// 2. Active dings
	if dings, err := c.fetchActiveDingsWithRelogin(); err == nil {
		kindCounts := make(map[string]float64)
		for _, d := range dings {
			kindCounts[string(d.Type)]++
		}
		for kind, cnt := range kindCounts {
			ch <- prometheus.MustNewConstMetric(activeDingsDesc, prometheus.GaugeValue, cnt, kind)
		}
	} else {
		success = 0.0
		log.Printf("Error scraping active dings: %v", err)
	}

	ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue, success)
	ch <- prometheus.MustNewConstMetric(scrapeDurationDesc, prometheus.GaugeValue, time.Since(start).Seconds())
}

// login builds a fresh authenticated client from the stored credentials.
func (c *RingCollector) login() error {
	api, err := client.NewFromCredentials(c.cfg, c.username, c.password)
	if err != nil {
		return err
	}
	c.api = api
	return nil
}

// --- RE-LOGIN HELPERS ---

func (c *RingCollector) fetchDevicesWithRelogin() ([]models.Device, error) {
	res, err := c.api.ListDevices()
	if err == nil {
		return res, nil
	}
	if errors.Is(err, client.ErrAuthentication) {
		if e := c.login(); e == nil {
			return c.api.ListDevices()
		}
	}
	return nil, err
}

func (c *RingCollector) fetchActiveDingsWithRelogin() ([]models.Ding, error) {
	res, err := c.api.ListActiveDings()
	if err == nil {
		return res, nil
	}
	if errors.Is(err, client.ErrAuthentication) {
		if e := c.login(); e == nil {
			return c.api.ListActiveDings()
		}
	}
	return nil, err
}

// --- COMMAND ---

var exporterCmd = &cobra.Command{
	Use:   "exporter",
	Short: "Start Prometheus Exporter service",
	Long: `Starts a long-running HTTP server that exposes Ring device and ding
metrics. Can be installed as a system service.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Setup Client Config
		hostClean := strings.TrimRight(expHost, "/")

		// 2. Define Service Configuration
		svcConfig := &service.Config{
			Name:        "ring-exporter",
			DisplayName: "Ring Prometheus Exporter",
			Description: "Exposes Ring device metrics to Prometheus",
			// Arguments passed to the binary when run as a service
			Arguments: []string{
				"exporter",
				"--username", expUser,
				"--password", expPass,
				"--port", expPort,
			},
		}
		if hostClean != "" {
			svcConfig.Arguments = append(svcConfig.Arguments, "--host", hostClean)
		}

		prg := &program{
			collector: &RingCollector{
				cfg:      client.ClientConfig{BaseURL: hostClean, Logger: logger},
				username: expUser,
				password: expPass,
			},
		}

		s, err := service.New(prg, svcConfig)
		if err != nil {
			log.Fatal(err)
		}

		// 3. Handle Service Control Actions (Install, Start, Stop, Uninstall)
		if serviceAction != "" {
			if serviceAction == "install" {
				// Validate required flags before installing
				if expUser == "" || expPass == "" {
					log.Fatal("Error: You must provide credentials (--username, --password) to install the service.")
				}
			}

			err = service.Control(s, serviceAction)
			if err != nil {
				log.Fatalf("Failed to %s service: %v", serviceAction, err)
			}
			fmt.Printf("Service action '%s' completed successfully.\n", serviceAction)
			return
		}

		// 4. Run the Service (Blocking)
		// This happens when the Service Manager starts the binary, OR when run interactively
		svcLogger, err := s.Logger(nil)
		if err != nil {
			log.Fatal(err)
		}
		if err = s.Run(); err != nil {
			svcLogger.Error(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(exporterCmd)
	exporterCmd.Flags().StringVar(&expHost, "host", "", "API base URL override")
	exporterCmd.Flags().StringVar(&expUser, "username", "", "Ring account username")
	exporterCmd.Flags().StringVar(&expPass, "password", "", "Ring account password")
	exporterCmd.Flags().StringVar(&expPort, "port", "9100", "Port to listen on")

	exporterCmd.Flags().StringVar(&serviceAction, "service", "", "Service action: install, uninstall, start, stop")
}
